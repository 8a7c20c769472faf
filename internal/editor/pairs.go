package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// MinPairs is the cardinality floor of a match pair list. The editor itself
// refuses removals below it; the surface disables the remove control and
// shows the minimum-count note instead of raising an error.
const MinPairs = 2

// AppendPair appends {image: "", text: ""}. Unconditional.
func AppendPair(record models.ContentRecord, field string) (models.FieldPatch, bool) {
	pairs := append(clonePairs(record.Pairs(field)), models.Pair{})
	return models.FieldPatch{Field: field, Value: pairs}, true
}

// UpdatePairText replaces the text of the pair at index.
func UpdatePairText(record models.ContentRecord, field string, index int, text string) (models.FieldPatch, bool) {
	pairs := record.Pairs(field)
	if index < 0 || index >= len(pairs) {
		return models.FieldPatch{}, false
	}
	next := clonePairs(pairs)
	next[index].Text = text
	return models.FieldPatch{Field: field, Value: next}, true
}

// UpdatePairImage replaces the image URL of the pair at index. Both the
// upload completion and the manual-URL channel land here.
func UpdatePairImage(record models.ContentRecord, field string, index int, url string) (models.FieldPatch, bool) {
	pairs := record.Pairs(field)
	if index < 0 || index >= len(pairs) {
		return models.FieldPatch{}, false
	}
	next := clonePairs(pairs)
	next[index].Image = url
	return models.FieldPatch{Field: field, Value: next}, true
}

// CanRemovePair reports whether a removal is currently allowed.
func CanRemovePair(record models.ContentRecord, field string) bool {
	return len(record.Pairs(field)) > MinPairs
}

// RemovePair removes the pair at index, unless the list is at or below the
// minimum; then it is a no-op.
func RemovePair(record models.ContentRecord, field string, index int) (models.FieldPatch, bool) {
	pairs := record.Pairs(field)
	if index < 0 || index >= len(pairs) {
		return models.FieldPatch{}, false
	}
	if len(pairs) <= MinPairs {
		return models.FieldPatch{}, false
	}
	return models.FieldPatch{Field: field, Value: removeAt(pairs, index)}, true
}
