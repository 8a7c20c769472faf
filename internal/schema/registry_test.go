package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsteps/authoring-service/internal/models"
)

func TestLookup_EveryKnownTypeIsRegistered(t *testing.T) {
	for _, tag := range models.KnownQuestionTypes() {
		s, ok := Lookup(tag)
		require.True(t, ok, "type %s missing from registry", tag)
		assert.Equal(t, tag, s.Type)
		require.NotEmpty(t, s.Fields)
		assert.Equal(t, models.FieldText, s.Fields[0].Name, "every composition starts with the prompt text")
	}
}

func TestLookup_UnknownTag(t *testing.T) {
	_, ok := Lookup("mcq_tripple")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestRegistry_Compositions(t *testing.T) {
	tests := []struct {
		tag    models.QuestionType
		fields []string
	}{
		{models.MCQSingle, []string{"text", "options"}},
		{models.MCQMultiple, []string{"text", "options"}},
		{models.MatchImageText, []string{"text", "pairs"}},
		{models.DrawCircleSingle, []string{"text", "imageUrl", "options"}},
		{models.DrawCircleMultiple, []string{"text", "imageUrl", "options"}},
		{models.ListenRepeat, []string{"text", "audioUrl"}},
		{models.BreakWord, []string{"text", "word"}},
		{models.ComposeWord, []string{"text", "word", "letters"}},
		{models.WriteWords, []string{"text", "words"}},
		{models.FillSentence, []string{"text", "sentence", "choices"}},
		{models.OrderWords, []string{"text", "words", "correctOrder"}},
		{models.SelectImageText, []string{"text", "items"}},
		{models.ReadQuestion, []string{"text"}},
		{models.FreeText, []string{"text"}},
		{models.FreeTextUpload, []string{"text"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			s, ok := Lookup(tt.tag)
			require.True(t, ok)

			names := make([]string, 0, len(s.Fields))
			for _, f := range s.Fields {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.fields, names)
		})
	}
}

func TestRegistry_UploadBindings(t *testing.T) {
	s, _ := Lookup(models.MatchImageText)
	spec, ok := s.Field(models.FieldPairs)
	require.True(t, ok)
	assert.Equal(t, models.MediaImage, spec.Upload)
	assert.Equal(t, 2, spec.MinItems)
	assert.True(t, s.NeedsImageUpload())
	assert.False(t, s.NeedsAudioUpload())

	s, _ = Lookup(models.ListenRepeat)
	spec, ok = s.Field(models.FieldAudioURL)
	require.True(t, ok)
	assert.Equal(t, EditorMedia, spec.Editor)
	assert.Equal(t, models.MediaAudio, spec.Upload)
	assert.True(t, s.NeedsAudioUpload())

	s, _ = Lookup(models.DrawCircleSingle)
	assert.True(t, s.NeedsImageUpload())

	s, _ = Lookup(models.FreeText)
	assert.False(t, s.NeedsImageUpload())
	assert.False(t, s.NeedsAudioUpload())
}

func TestSchema_Field(t *testing.T) {
	s, _ := Lookup(models.ComposeWord)

	spec, ok := s.Field(models.FieldLetters)
	require.True(t, ok)
	assert.Equal(t, EditorWords, spec.Editor)

	_, ok = s.Field("pairs")
	assert.False(t, ok, "fields outside the composition are not wired")
}

func TestAll_CanonicalOrder(t *testing.T) {
	schemas := All()
	require.Len(t, schemas, len(models.KnownQuestionTypes()))

	for i, tag := range models.KnownQuestionTypes() {
		assert.Equal(t, tag, schemas[i].Type)
	}
}
