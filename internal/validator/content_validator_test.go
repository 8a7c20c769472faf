package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordsteps/authoring-service/internal/models"
)

func TestValidateRecord_UnknownTypeIsNotAnError(t *testing.T) {
	v := NewContentValidator()

	err := v.ValidateRecord("mcq_tripple", models.ContentRecord{"anything": 42})
	assert.NoError(t, err)
}

func TestValidateRecord_AbsentFieldsAreFine(t *testing.T) {
	v := NewContentValidator()

	assert.NoError(t, v.ValidateRecord(models.MCQSingle, models.ContentRecord{}))
	assert.NoError(t, v.ValidateRecord(models.MatchImageText, nil))
}

func TestValidateRecord_ShapeChecks(t *testing.T) {
	v := NewContentValidator()

	tests := []struct {
		name    string
		tag     models.QuestionType
		record  models.ContentRecord
		wantErr bool
	}{
		{
			"valid mcq",
			models.MCQSingle,
			models.ContentRecord{"text": "q", "options": []any{map[string]any{"text": "a"}}},
			false,
		},
		{
			"text must be a string",
			models.MCQSingle,
			models.ContentRecord{"text": 42},
			true,
		},
		{
			"options must be a list",
			models.MCQSingle,
			models.ContentRecord{"options": "nope"},
			true,
		},
		{
			"words accept typed list",
			models.WriteWords,
			models.ContentRecord{"words": []string{"a", "b"}},
			false,
		},
		{
			"media field must be a string",
			models.ListenRepeat,
			models.ContentRecord{"audioUrl": []any{}},
			true,
		},
		{
			"fields outside the composition are ignored",
			models.FreeText,
			models.ContentRecord{"text": "q", "options": "garbage"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRecord(tt.tag, tt.record)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecord_PairFloor(t *testing.T) {
	v := NewContentValidator()

	// One stored pair is below the floor.
	err := v.ValidateRecord(models.MatchImageText, models.ContentRecord{
		"pairs": []any{map[string]any{"image": "", "text": "a"}},
	})
	assert.Error(t, err)

	// Two pairs satisfy it; an absent list does too.
	assert.NoError(t, v.ValidateRecord(models.MatchImageText, models.ContentRecord{
		"pairs": []models.Pair{{Text: "a"}, {Text: "b"}},
	}))
	assert.NoError(t, v.ValidateRecord(models.MatchImageText, models.ContentRecord{}))
}

func TestValidator_CustomStructRules(t *testing.T) {
	v := New()

	type req struct {
		Type models.QuestionType `json:"type" validate:"required,question_type"`
		Kind models.MediaKind    `json:"kind" validate:"required,media_kind"`
	}

	assert.NoError(t, v.ValidateStruct(&req{Type: models.MCQSingle, Kind: models.MediaImage}))
	assert.Error(t, v.ValidateStruct(&req{Type: "mcq_tripple", Kind: models.MediaImage}))
	assert.Error(t, v.ValidateStruct(&req{Type: models.MCQSingle, Kind: "video"}))
}
