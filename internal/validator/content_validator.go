package validator

import (
	"fmt"

	"github.com/wordsteps/authoring-service/internal/models"
	"github.com/wordsteps/authoring-service/internal/schema"
)

// ContentValidator checks the structural shape of a content record against
// its type's field composition: value kinds and cardinality floors only.
// Semantic correctness (e.g. that at least one option is marked correct) is
// deliberately out of scope and belongs to a downstream validator.
type ContentValidator struct{}

// NewContentValidator creates a new content validator
func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// ValidateRecord validates the record's present fields against the schema of
// the given type. Absent fields are fine: they read as empty defaults. An
// unknown type is not an error here; the dispatcher treats it as inert.
func (v *ContentValidator) ValidateRecord(tag models.QuestionType, record models.ContentRecord) error {
	s, ok := schema.Lookup(tag)
	if !ok {
		return nil
	}

	for _, spec := range s.Fields {
		if _, present := record[spec.Name]; !present {
			continue
		}
		if err := v.validateField(spec, record); err != nil {
			return err
		}
	}
	return nil
}

func (v *ContentValidator) validateField(spec schema.FieldSpec, record models.ContentRecord) error {
	switch spec.Editor {
	case schema.EditorText, schema.EditorMedia:
		if _, ok := record[spec.Name].(string); !ok {
			return fmt.Errorf("field %q must be a string", spec.Name)
		}

	case schema.EditorWords:
		if !isList(record[spec.Name]) {
			return fmt.Errorf("field %q must be a list of strings", spec.Name)
		}

	case schema.EditorOptions:
		if !isList(record[spec.Name]) {
			return fmt.Errorf("field %q must be a list of options", spec.Name)
		}

	case schema.EditorPairs:
		if !isList(record[spec.Name]) {
			return fmt.Errorf("field %q must be a list of pairs", spec.Name)
		}
		if n := len(record.Pairs(spec.Name)); n > 0 && n < spec.MinItems {
			return fmt.Errorf("field %q must have at least %d entries", spec.Name, spec.MinItems)
		}

	case schema.EditorItems:
		if !isList(record[spec.Name]) {
			return fmt.Errorf("field %q must be a list of items", spec.Name)
		}
	}
	return nil
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []string, []models.Option, []models.Pair, []models.Item:
		return true
	}
	return false
}
