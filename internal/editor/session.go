package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wordsteps/authoring-service/internal/models"
	"github.com/wordsteps/authoring-service/internal/schema"
)

// OpKind names the editing operations the dispatcher accepts.
type OpKind string

const (
	OpSet    OpKind = "set"    // scalar text, or the manual-URL channel of a media field
	OpClear  OpKind = "clear"  // reset a media field to empty
	OpAppend OpKind = "append" // append an empty element to a list field
	OpUpdate OpKind = "update" // replace one attribute of one list element
	OpRemove OpKind = "remove" // remove one list element
)

// Operation is one edit emitted by the authoring surface. Field selects the
// target, the schema selects the editor, and Attr names the sub-attribute for
// list-element updates (text, isCorrect, image, correctText).
type Operation struct {
	Field string `json:"field" validate:"required"`
	Op    OpKind `json:"op" validate:"required,oneof=set clear append update remove"`
	Index int    `json:"index"`
	Attr  string `json:"attr,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Session is the type-dispatching editing engine for one open question. It
// owns the current record snapshot, routes operations to the editor matching
// the schema's field spec, and coordinates asynchronous media uploads.
//
// The record is the single source of truth: every applied operation replaces
// it with a new snapshot, and upload completions merge by field path against
// the snapshot current at completion time, so concurrent uploads cannot erase
// each other's unrelated edits.
type Session struct {
	id       string
	qType    models.QuestionType
	schema   schema.Schema
	known    bool
	uploader Uploader
	logger   *slog.Logger

	mu      sync.Mutex
	record  models.ContentRecord
	uploads map[string]UploadState

	// onPatch, when set, observes every applied patch together with the
	// resulting snapshot. Called outside the session lock.
	onPatch func(models.FieldPatch, models.ContentRecord)
}

// NewSession opens an editing session for a record with the given type tag.
// An unrecognized tag produces an inert session: the record passes through
// untouched and every operation is refused.
func NewSession(id string, tag models.QuestionType, record models.ContentRecord, uploader Uploader, logger *slog.Logger) *Session {
	if record == nil {
		record = models.ContentRecord{}
	}
	s, known := schema.Lookup(tag)
	return &Session{
		id:       id,
		qType:    tag,
		schema:   s,
		known:    known,
		uploader: uploader,
		logger:   logger,
		record:   record,
		uploads:  make(map[string]UploadState),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Type returns the session's question type tag.
func (s *Session) Type() models.QuestionType { return s.qType }

// Known reports whether the type tag resolved to a schema.
func (s *Session) Known() bool { return s.known }

// Schema returns the field composition wired for this session. Zero value
// for unknown tags.
func (s *Session) Schema() schema.Schema { return s.schema }

// OnPatch registers the patch observer.
func (s *Session) OnPatch(fn func(models.FieldPatch, models.ContentRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPatch = fn
}

// Record returns the current snapshot. Snapshots are never mutated in place,
// so the caller may hold it across edits.
func (s *Session) Record() models.ContentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// CanRemove reports whether removing an element from the named list field is
// currently allowed. Only the pair editor carries a floor.
func (s *Session) CanRemove(field string) bool {
	spec, ok := s.schema.Field(field)
	if !ok {
		return false
	}
	if spec.Editor != schema.EditorPairs {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return CanRemovePair(s.record, field)
}

// Apply routes one operation through the schema to the matching editor and,
// on success, advances the snapshot. Refused operations (unknown tag, field
// not in the composition, out-of-range index, pair floor) leave the record
// untouched and return false; nothing is ever raised.
func (s *Session) Apply(op Operation) (models.FieldPatch, bool) {
	s.mu.Lock()
	patch, ok := s.applyLocked(op)
	var snapshot models.ContentRecord
	notify := s.onPatch
	if ok {
		s.record = patch.Apply(s.record)
		snapshot = s.record
	}
	s.mu.Unlock()

	if ok && notify != nil {
		notify(patch, snapshot)
	}
	return patch, ok
}

func (s *Session) applyLocked(op Operation) (models.FieldPatch, bool) {
	if !s.known {
		return models.FieldPatch{}, false
	}
	spec, ok := s.schema.Field(op.Field)
	if !ok {
		return models.FieldPatch{}, false
	}

	switch spec.Editor {
	case schema.EditorText:
		if op.Op != OpSet {
			return models.FieldPatch{}, false
		}
		value, ok := op.Value.(string)
		if !ok {
			return models.FieldPatch{}, false
		}
		return SetText(op.Field, value)

	case schema.EditorWords:
		switch op.Op {
		case OpAppend:
			return AppendWord(s.record, op.Field)
		case OpUpdate:
			value, ok := op.Value.(string)
			if !ok {
				return models.FieldPatch{}, false
			}
			return UpdateWord(s.record, op.Field, op.Index, value)
		case OpRemove:
			return RemoveWord(s.record, op.Field, op.Index)
		}

	case schema.EditorOptions:
		switch op.Op {
		case OpAppend:
			return AppendOption(s.record, op.Field)
		case OpUpdate:
			switch op.Attr {
			case "text":
				value, ok := op.Value.(string)
				if !ok {
					return models.FieldPatch{}, false
				}
				return UpdateOptionText(s.record, op.Field, op.Index, value)
			case "isCorrect":
				value, ok := op.Value.(bool)
				if !ok {
					return models.FieldPatch{}, false
				}
				return SetOptionCorrect(s.record, op.Field, op.Index, value)
			}
		case OpRemove:
			return RemoveOption(s.record, op.Field, op.Index)
		}

	case schema.EditorPairs:
		switch op.Op {
		case OpAppend:
			return AppendPair(s.record, op.Field)
		case OpUpdate:
			value, ok := op.Value.(string)
			if !ok {
				return models.FieldPatch{}, false
			}
			switch op.Attr {
			case "text":
				return UpdatePairText(s.record, op.Field, op.Index, value)
			case "image":
				return UpdatePairImage(s.record, op.Field, op.Index, value)
			}
		case OpRemove:
			return RemovePair(s.record, op.Field, op.Index)
		}

	case schema.EditorItems:
		switch op.Op {
		case OpAppend:
			return AppendItem(s.record, op.Field)
		case OpUpdate:
			value, ok := op.Value.(string)
			if !ok {
				return models.FieldPatch{}, false
			}
			switch op.Attr {
			case "correctText":
				return UpdateItemText(s.record, op.Field, op.Index, value)
			case "image":
				return UpdateItemImage(s.record, op.Field, op.Index, value)
			}
		case OpRemove:
			return RemoveItem(s.record, op.Field, op.Index)
		}

	case schema.EditorMedia:
		switch op.Op {
		case OpSet:
			value, ok := op.Value.(string)
			if !ok {
				return models.FieldPatch{}, false
			}
			return SetMediaURL(op.Field, value)
		case OpClear:
			return ClearMedia(op.Field)
		}
	}

	return models.FieldPatch{}, false
}

// StartUpload runs the file channel of a media slot: it marks the slot busy,
// invokes the upload collaborator off the calling goroutine, and on success
// merges exactly one URL patch against the snapshot current at completion
// time. Collaborator failure (error or empty URL) leaves the record
// untouched. The returned channel closes when the upload settles; accepted
// is false when the path is not wired for upload in this session's schema.
func (s *Session) StartUpload(ctx context.Context, path FieldPath, file File) (done <-chan struct{}, accepted bool) {
	spec, kind, ok := s.uploadSpec(path)
	if !ok || s.uploader == nil {
		return nil, false
	}

	key := path.Key()
	s.mu.Lock()
	s.uploads[key] = UploadState{Busy: true}
	s.mu.Unlock()

	ch := make(chan struct{})
	go func() {
		defer close(ch)
		url, err := s.uploader.Upload(ctx, file, kind, func(percent int) {
			s.setProgress(key, percent)
		})
		s.completeUpload(path, spec.Editor, url, err)
	}()
	return ch, true
}

func (s *Session) uploadSpec(path FieldPath) (schema.FieldSpec, models.MediaKind, bool) {
	if !s.known {
		return schema.FieldSpec{}, "", false
	}
	spec, ok := s.schema.Field(path.Field)
	if !ok || spec.Upload == "" {
		return schema.FieldSpec{}, "", false
	}
	switch spec.Editor {
	case schema.EditorMedia:
		if path.Index >= 0 {
			return schema.FieldSpec{}, "", false
		}
	case schema.EditorPairs, schema.EditorItems:
		if path.Index < 0 {
			return schema.FieldSpec{}, "", false
		}
	default:
		return schema.FieldSpec{}, "", false
	}
	return spec, spec.Upload, true
}

func (s *Session) setProgress(key string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.uploads[key]; ok && st.Busy {
		st.Progress = percent
		s.uploads[key] = st
	}
}

func (s *Session) completeUpload(path FieldPath, editorKind schema.EditorKind, url string, err error) {
	s.mu.Lock()
	delete(s.uploads, path.Key())

	if err != nil || url == "" {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("upload failed, field left unchanged",
				"session_id", s.id, "field", path.Key(), "error", err)
		}
		return
	}

	var patch models.FieldPatch
	var ok bool
	switch editorKind {
	case schema.EditorMedia:
		patch, ok = SetMediaURL(path.Field, url)
	case schema.EditorPairs:
		// The element may have been removed while the upload was in
		// flight; then the completion is dropped silently.
		patch, ok = UpdatePairImage(s.record, path.Field, path.Index, url)
	case schema.EditorItems:
		patch, ok = UpdateItemImage(s.record, path.Field, path.Index, url)
	}

	var snapshot models.ContentRecord
	notify := s.onPatch
	if ok {
		s.record = patch.Apply(s.record)
		snapshot = s.record
	}
	s.mu.Unlock()

	if ok && notify != nil {
		notify(patch, snapshot)
	}
}

// UploadStates returns a copy of the per-field upload states currently in
// flight, keyed by field path.
func (s *Session) UploadStates() map[string]UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	states := make(map[string]UploadState, len(s.uploads))
	for k, v := range s.uploads {
		states[k] = v
	}
	return states
}
