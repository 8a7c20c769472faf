package schema

import (
	"github.com/wordsteps/authoring-service/internal/models"
)

// EditorKind names the generic editor mounted for a field.
type EditorKind string

const (
	EditorText    EditorKind = "text"
	EditorWords   EditorKind = "words"
	EditorOptions EditorKind = "options"
	EditorPairs   EditorKind = "pairs"
	EditorItems   EditorKind = "items"
	EditorMedia   EditorKind = "media"
)

// FieldSpec describes one editable field of a question type: which editor it
// mounts, its cardinality floor, and which upload kind its media sub-fields
// are bound to.
type FieldSpec struct {
	Name     string           `json:"name"`
	Editor   EditorKind       `json:"editor"`
	MinItems int              `json:"min_items,omitempty"`
	Upload   models.MediaKind `json:"upload,omitempty"`
}

// Schema is the full field composition for one question type.
type Schema struct {
	Type   models.QuestionType `json:"type"`
	Fields []FieldSpec         `json:"fields"`
}

// Field returns the spec for a named field.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// NeedsImageUpload reports whether any field of the composition binds the
// image upload collaborator.
func (s Schema) NeedsImageUpload() bool {
	return s.needsUpload(models.MediaImage)
}

// NeedsAudioUpload reports whether any field of the composition binds the
// audio upload collaborator.
func (s Schema) NeedsAudioUpload() bool {
	return s.needsUpload(models.MediaAudio)
}

func (s Schema) needsUpload(kind models.MediaKind) bool {
	for _, f := range s.Fields {
		if f.Upload == kind {
			return true
		}
	}
	return false
}

// registry is the authoritative composition table. Field names and order
// match existing stored records; adding a question type is a data change
// here, not a code change elsewhere.
var registry = map[models.QuestionType]Schema{
	models.MCQSingle: {
		Type: models.MCQSingle,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldOptions, Editor: EditorOptions},
		},
	},
	models.MCQMultiple: {
		Type: models.MCQMultiple,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldOptions, Editor: EditorOptions},
		},
	},
	models.MatchImageText: {
		Type: models.MatchImageText,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldPairs, Editor: EditorPairs, MinItems: 2, Upload: models.MediaImage},
		},
	},
	models.DrawCircleSingle: {
		Type: models.DrawCircleSingle,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldImageURL, Editor: EditorMedia, Upload: models.MediaImage},
			{Name: models.FieldOptions, Editor: EditorOptions},
		},
	},
	models.DrawCircleMultiple: {
		Type: models.DrawCircleMultiple,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldImageURL, Editor: EditorMedia, Upload: models.MediaImage},
			{Name: models.FieldOptions, Editor: EditorOptions},
		},
	},
	models.ListenRepeat: {
		Type: models.ListenRepeat,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldAudioURL, Editor: EditorMedia, Upload: models.MediaAudio},
		},
	},
	models.BreakWord: {
		Type: models.BreakWord,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldWord, Editor: EditorText},
		},
	},
	models.ComposeWord: {
		Type: models.ComposeWord,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldWord, Editor: EditorText},
			{Name: models.FieldLetters, Editor: EditorWords},
		},
	},
	models.WriteWords: {
		Type: models.WriteWords,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldWords, Editor: EditorWords},
		},
	},
	models.FillSentence: {
		Type: models.FillSentence,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldSentence, Editor: EditorText},
			{Name: models.FieldChoices, Editor: EditorWords},
		},
	},
	models.OrderWords: {
		Type: models.OrderWords,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldWords, Editor: EditorWords},
			{Name: models.FieldCorrectOrder, Editor: EditorWords},
		},
	},
	models.SelectImageText: {
		Type: models.SelectImageText,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
			{Name: models.FieldItems, Editor: EditorItems, Upload: models.MediaImage},
		},
	},
	models.ReadQuestion: {
		Type: models.ReadQuestion,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
		},
	},
	models.FreeText: {
		Type: models.FreeText,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
		},
	},
	models.FreeTextUpload: {
		Type: models.FreeTextUpload,
		Fields: []FieldSpec{
			{Name: models.FieldText, Editor: EditorText},
		},
	},
}

// Lookup resolves the schema for a type tag. ok is false for unknown tags;
// the caller must then treat the record as inert: no field wiring, no
// mutation, no patches.
func Lookup(tag models.QuestionType) (Schema, bool) {
	s, ok := registry[tag]
	return s, ok
}

// All returns every registered schema in the canonical type order.
func All() []Schema {
	schemas := make([]Schema, 0, len(registry))
	for _, t := range models.KnownQuestionTypes() {
		schemas = append(schemas, registry[t])
	}
	return schemas
}
