package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// The words editor backs four distinct semantic fields (letters, words,
// correctOrder, choices) with identical mechanics: positional identity, no
// reordering, no uniqueness constraint, removal allowed down to empty.

// AppendWord appends one empty entry. Always allowed.
func AppendWord(record models.ContentRecord, field string) (models.FieldPatch, bool) {
	words := append(cloneStrings(record.Words(field)), "")
	return models.FieldPatch{Field: field, Value: words}, true
}

// UpdateWord replaces the entry at index. Out-of-range indices are a caller
// bug; the record stays untouched.
func UpdateWord(record models.ContentRecord, field string, index int, value string) (models.FieldPatch, bool) {
	words := record.Words(field)
	if index < 0 || index >= len(words) {
		return models.FieldPatch{}, false
	}
	next := cloneStrings(words)
	next[index] = value
	return models.FieldPatch{Field: field, Value: next}, true
}

// RemoveWord removes the entry at index. Always allowed, including down to an
// empty list.
func RemoveWord(record models.ContentRecord, field string, index int) (models.FieldPatch, bool) {
	words := record.Words(field)
	if index < 0 || index >= len(words) {
		return models.FieldPatch{}, false
	}
	return models.FieldPatch{Field: field, Value: removeAt(words, index)}, true
}
