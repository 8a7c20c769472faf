package models

// Field names used by the per-type compositions. These are the wire names of
// existing stored records and must not be renamed.
const (
	FieldText         = "text"
	FieldWord         = "word"
	FieldWords        = "words"
	FieldLetters      = "letters"
	FieldCorrectOrder = "correctOrder"
	FieldChoices      = "choices"
	FieldSentence     = "sentence"
	FieldOptions      = "options"
	FieldPairs        = "pairs"
	FieldItems        = "items"
	FieldImageURL     = "imageUrl"
	FieldAudioURL     = "audioUrl"
)

// Option is a single answer choice. Identity is positional; there is no
// stable id.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Pair couples an image URL with a text label. The owning list carries a
// minimum length of 2, enforced by the pair editor.
type Pair struct {
	Image string `json:"image"`
	Text  string `json:"text"`
}

// Item couples an image URL with the text that correctly describes it.
type Item struct {
	Image       string `json:"image"`
	CorrectText string `json:"correctText"`
}

// ContentRecord is the per-question bag of field values. Its shape is
// determined entirely by the question type; absent fields read as empty
// defaults and are never written back as explicit defaults.
//
// Records are treated as immutable snapshots: every mutation goes through
// With, which shallow-copies the map so unrelated fields stay structurally
// shared with the previous snapshot.
type ContentRecord map[string]any

// With returns a new record with one field replaced. The receiver is never
// modified.
func (r ContentRecord) With(field string, value any) ContentRecord {
	next := make(ContentRecord, len(r)+1)
	for k, v := range r {
		next[k] = v
	}
	next[field] = value
	return next
}

// Clone returns a shallow copy of the record.
func (r ContentRecord) Clone() ContentRecord {
	next := make(ContentRecord, len(r))
	for k, v := range r {
		next[k] = v
	}
	return next
}

// Text reads a scalar string field, defaulting to "".
func (r ContentRecord) Text(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Words reads an ordered list of strings, defaulting to an empty list.
// Records decoded from JSON carry []any; records built by the editors carry
// []string. Both shapes are accepted.
func (r ContentRecord) Words(field string) []string {
	switch v := r[field].(type) {
	case []string:
		return v
	case []any:
		words := make([]string, 0, len(v))
		for _, e := range v {
			s, _ := e.(string)
			words = append(words, s)
		}
		return words
	default:
		return nil
	}
}

// Options reads an ordered list of options, defaulting to an empty list.
func (r ContentRecord) Options(field string) []Option {
	switch v := r[field].(type) {
	case []Option:
		return v
	case []any:
		options := make([]Option, 0, len(v))
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				options = append(options, Option{})
				continue
			}
			text, _ := m["text"].(string)
			correct, _ := m["isCorrect"].(bool)
			options = append(options, Option{Text: text, IsCorrect: correct})
		}
		return options
	default:
		return nil
	}
}

// Pairs reads an ordered list of image/text pairs, defaulting to an empty
// list.
func (r ContentRecord) Pairs(field string) []Pair {
	switch v := r[field].(type) {
	case []Pair:
		return v
	case []any:
		pairs := make([]Pair, 0, len(v))
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				pairs = append(pairs, Pair{})
				continue
			}
			image, _ := m["image"].(string)
			text, _ := m["text"].(string)
			pairs = append(pairs, Pair{Image: image, Text: text})
		}
		return pairs
	default:
		return nil
	}
}

// Items reads an ordered list of image/correct-text items, defaulting to an
// empty list.
func (r ContentRecord) Items(field string) []Item {
	switch v := r[field].(type) {
	case []Item:
		return v
	case []any:
		items := make([]Item, 0, len(v))
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				items = append(items, Item{})
				continue
			}
			image, _ := m["image"].(string)
			correct, _ := m["correctText"].(string)
			items = append(items, Item{Image: image, CorrectText: correct})
		}
		return items
	default:
		return nil
	}
}

// FieldPatch is the partial update a leaf editor emits. The session merges
// patches by field path so two asynchronous completions touching different
// fields cannot erase each other.
type FieldPatch struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Apply merges the patch into a snapshot, producing a new record.
func (p FieldPatch) Apply(r ContentRecord) ContentRecord {
	return r.With(p.Field, p.Value)
}
