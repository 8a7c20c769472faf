package editor

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// SetText replaces a scalar string field. Pure pass-through: no validation,
// no length limit; every edit emits the full new value.
func SetText(field, value string) (models.FieldPatch, bool) {
	return models.FieldPatch{Field: field, Value: value}, true
}
