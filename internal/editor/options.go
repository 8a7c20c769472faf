package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// Options editor: ordered {text, isCorrect} pairs, unconstrained cardinality.
// Whether at least one option is marked correct is a downstream concern, not
// enforced here.

// AppendOption appends {text: "", isCorrect: false}.
func AppendOption(record models.ContentRecord, field string) (models.FieldPatch, bool) {
	options := append(cloneOptions(record.Options(field)), models.Option{})
	return models.FieldPatch{Field: field, Value: options}, true
}

// UpdateOptionText replaces the text of the option at index.
func UpdateOptionText(record models.ContentRecord, field string, index int, text string) (models.FieldPatch, bool) {
	options := record.Options(field)
	if index < 0 || index >= len(options) {
		return models.FieldPatch{}, false
	}
	next := cloneOptions(options)
	next[index].Text = text
	return models.FieldPatch{Field: field, Value: next}, true
}

// SetOptionCorrect replaces the isCorrect flag of the option at index.
func SetOptionCorrect(record models.ContentRecord, field string, index int, correct bool) (models.FieldPatch, bool) {
	options := record.Options(field)
	if index < 0 || index >= len(options) {
		return models.FieldPatch{}, false
	}
	next := cloneOptions(options)
	next[index].IsCorrect = correct
	return models.FieldPatch{Field: field, Value: next}, true
}

// RemoveOption removes the option at index. Unconditional.
func RemoveOption(record models.ContentRecord, field string, index int) (models.FieldPatch, bool) {
	options := record.Options(field)
	if index < 0 || index >= len(options) {
		return models.FieldPatch{}, false
	}
	return models.FieldPatch{Field: field, Value: removeAt(options, index)}, true
}
