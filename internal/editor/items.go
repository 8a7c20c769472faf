package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// Items editor: ordered {image, correctText} entries, no minimum.

// AppendItem appends {image: "", correctText: ""}.
func AppendItem(record models.ContentRecord, field string) (models.FieldPatch, bool) {
	items := append(cloneItems(record.Items(field)), models.Item{})
	return models.FieldPatch{Field: field, Value: items}, true
}

// UpdateItemText replaces the correct text of the item at index.
func UpdateItemText(record models.ContentRecord, field string, index int, text string) (models.FieldPatch, bool) {
	items := record.Items(field)
	if index < 0 || index >= len(items) {
		return models.FieldPatch{}, false
	}
	next := cloneItems(items)
	next[index].CorrectText = text
	return models.FieldPatch{Field: field, Value: next}, true
}

// UpdateItemImage replaces the image URL of the item at index.
func UpdateItemImage(record models.ContentRecord, field string, index int, url string) (models.FieldPatch, bool) {
	items := record.Items(field)
	if index < 0 || index >= len(items) {
		return models.FieldPatch{}, false
	}
	next := cloneItems(items)
	next[index].Image = url
	return models.FieldPatch{Field: field, Value: next}, true
}

// RemoveItem removes the item at index. Unconditional.
func RemoveItem(record models.ContentRecord, field string, index int) (models.FieldPatch, bool) {
	items := record.Items(field)
	if index < 0 || index >= len(items) {
		return models.FieldPatch{}, false
	}
	return models.FieldPatch{Field: field, Value: removeAt(items, index)}, true
}
