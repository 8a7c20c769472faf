package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wordsteps/authoring-service/internal/assets"
	"github.com/wordsteps/authoring-service/internal/cache"
	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/events"
	"github.com/wordsteps/authoring-service/internal/models"
	"github.com/wordsteps/authoring-service/internal/schema"
	"github.com/wordsteps/authoring-service/internal/validator"
)

const sessionCachePrefix = "authoring:session:"

// EditingService owns the open editing sessions: it dispatches operations
// through the schema registry, coordinates media uploads, keeps session
// snapshots alive in the cache, and publishes authoring events.
type EditingService interface {
	OpenSession(ctx context.Context, req *OpenSessionRequest) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	ApplyOperations(ctx context.Context, id string, ops []editor.Operation) (*ApplyResult, error)
	StartUpload(ctx context.Context, id string, path editor.FieldPath, file editor.File) error
	UploadStates(ctx context.Context, id string) (map[string]editor.UploadState, error)
	CloseSession(ctx context.Context, id string) error
}

// OpenSessionRequest opens an editing session for a (possibly pre-filled)
// content record. An unknown question type is accepted and yields an inert
// session whose record passes through untouched.
type OpenSessionRequest struct {
	QuestionType models.QuestionType  `json:"question_type" validate:"required"`
	Content      models.ContentRecord `json:"content"`
	EditorID     string               `json:"editor_id"`
}

// FieldView is the rendered state of one wired field: its editor kind, the
// current value, and render-time affordances (resolved image URLs, whether
// removal is currently allowed).
type FieldView struct {
	Name      string            `json:"name"`
	Editor    schema.EditorKind `json:"editor"`
	Upload    models.MediaKind  `json:"upload,omitempty"`
	MinItems  int               `json:"min_items,omitempty"`
	Value     any               `json:"value"`
	CanRemove bool              `json:"can_remove"`
	Resolved  []string          `json:"resolved,omitempty"`
}

// SessionView is what the authoring surface renders: the wired field
// compositions for known types, or an inert placeholder (no fields) for
// unknown ones.
type SessionView struct {
	ID           string                        `json:"id"`
	QuestionType models.QuestionType           `json:"question_type"`
	Known        bool                          `json:"known"`
	Fields       []FieldView                   `json:"fields"`
	Record       models.ContentRecord          `json:"record"`
	Uploads      map[string]editor.UploadState `json:"uploads"`
}

// AppliedOp reports the outcome of a single operation. Refused operations
// are not errors; they simply did not mutate the record.
type AppliedOp struct {
	Op      editor.Operation   `json:"op"`
	Applied bool               `json:"applied"`
	Patch   *models.FieldPatch `json:"patch,omitempty"`
}

// ApplyResult is the outcome of an operation batch plus the resulting
// snapshot.
type ApplyResult struct {
	Results []AppliedOp          `json:"results"`
	Record  models.ContentRecord `json:"record"`
}

// sessionSnapshot is the cache representation of a session, enough to
// rehydrate it on another instance. In-flight uploads are not part of the
// snapshot; they belong to the instance that started them.
type sessionSnapshot struct {
	QuestionType models.QuestionType  `json:"question_type"`
	EditorID     string               `json:"editor_id"`
	Record       models.ContentRecord `json:"record"`
}

type editingService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	uploader  editor.Uploader
	cache     cache.CacheService
	resolver  *assets.Resolver
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	ttl       time.Duration
}

type sessionEntry struct {
	session  *editor.Session
	editorID string
}

func NewEditingService(
	uploader editor.Uploader,
	cacheService cache.CacheService,
	resolver *assets.Resolver,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
	sessionTTL time.Duration,
) EditingService {
	return &editingService{
		sessions:  make(map[string]*sessionEntry),
		uploader:  uploader,
		cache:     cacheService,
		resolver:  resolver,
		publisher: publisher,
		validator: v,
		logger:    logger,
		ttl:       sessionTTL,
	}
}

func (s *editingService) OpenSession(ctx context.Context, req *OpenSessionRequest) (*SessionView, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}
	if err := s.validator.Content().ValidateRecord(req.QuestionType, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	id := uuid.NewString()
	sess := editor.NewSession(id, req.QuestionType, req.Content, s.uploader, s.logger)
	s.wireSession(sess, req.EditorID)

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: sess, editorID: req.EditorID}
	s.mu.Unlock()

	s.persist(ctx, sess, req.EditorID)
	s.publish(ctx, events.NewAuthoringEvent(events.EventSessionOpened, events.SessionOpenedEvent{
		SessionID:    id,
		QuestionType: req.QuestionType,
		KnownType:    sess.Known(),
		EditorID:     req.EditorID,
	}))

	s.logger.Info("editing session opened",
		"session_id", id, "question_type", req.QuestionType, "known", sess.Known())

	return s.view(sess), nil
}

func (s *editingService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	entry, err := s.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(entry.session), nil
}

func (s *editingService) ApplyOperations(ctx context.Context, id string, ops []editor.Operation) (*ApplyResult, error) {
	entry, err := s.entry(ctx, id)
	if err != nil {
		return nil, err
	}

	results := make([]AppliedOp, 0, len(ops))
	for _, op := range ops {
		patch, applied := entry.session.Apply(op)
		res := AppliedOp{Op: op, Applied: applied}
		if applied {
			p := patch
			res.Patch = &p
		} else {
			s.logger.Debug("operation refused",
				"session_id", id, "field", op.Field, "op", op.Op, "index", op.Index)
		}
		results = append(results, res)
	}

	return &ApplyResult{Results: results, Record: entry.session.Record()}, nil
}

func (s *editingService) StartUpload(ctx context.Context, id string, path editor.FieldPath, file editor.File) error {
	entry, err := s.entry(ctx, id)
	if err != nil {
		return err
	}

	// Detach from the request context: the upload outlives the HTTP
	// request that started it.
	done, accepted := entry.session.StartUpload(context.Background(), path, file)
	if !accepted {
		return fmt.Errorf("%w: %s", ErrUploadNotWired, path.Key())
	}

	go func() {
		<-done
		if url := urlAt(entry.session, path); url != "" {
			spec, _ := entry.session.Schema().Field(path.Field)
			s.publish(context.Background(), events.NewAuthoringEvent(events.EventUploadCompleted, events.UploadCompletedEvent{
				SessionID: id,
				FieldPath: path.Key(),
				Kind:      spec.Upload,
				URL:       url,
			}))
		}
	}()
	return nil
}

func (s *editingService) UploadStates(ctx context.Context, id string) (map[string]editor.UploadState, error) {
	entry, err := s.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	return entry.session.UploadStates(), nil
}

func (s *editingService) CloseSession(ctx context.Context, id string) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	if err := s.cache.Delete(ctx, sessionCachePrefix+id); err != nil {
		s.logger.Warn("failed to drop session snapshot", "session_id", id, "error", err)
	}
	s.publish(ctx, events.NewAuthoringEvent(events.EventSessionClosed, events.SessionClosedEvent{
		SessionID: id,
		EditorID:  entry.editorID,
	}))
	return nil
}

// entry finds a live session, falling back to the cached snapshot so a
// session can migrate between instances.
func (s *editingService) entry(ctx context.Context, id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return entry, nil
	}

	var snap sessionSnapshot
	if err := s.cache.Get(ctx, sessionCachePrefix+id, &snap); err != nil {
		return nil, ErrSessionNotFound
	}

	sess := editor.NewSession(id, snap.QuestionType, snap.Record, s.uploader, s.logger)
	s.wireSession(sess, snap.EditorID)

	s.mu.Lock()
	// Another request may have rehydrated concurrently; keep the winner.
	if existing, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	entry = &sessionEntry{session: sess, editorID: snap.EditorID}
	s.sessions[id] = entry
	s.mu.Unlock()
	return entry, nil
}

// wireSession installs the patch observer that persists every new snapshot
// and emits draft-updated events, including patches merged by asynchronous
// upload completions.
func (s *editingService) wireSession(sess *editor.Session, editorID string) {
	sess.OnPatch(func(patch models.FieldPatch, record models.ContentRecord) {
		ctx := context.Background()
		s.persistRecord(ctx, sess, editorID, record)
		s.publish(ctx, events.NewAuthoringEvent(events.EventDraftUpdated, events.DraftUpdatedEvent{
			SessionID:    sess.ID(),
			QuestionType: sess.Type(),
			Field:        patch.Field,
			EditorID:     editorID,
		}))
	})
}

func (s *editingService) persist(ctx context.Context, sess *editor.Session, editorID string) {
	s.persistRecord(ctx, sess, editorID, sess.Record())
}

func (s *editingService) persistRecord(ctx context.Context, sess *editor.Session, editorID string, record models.ContentRecord) {
	snap := sessionSnapshot{
		QuestionType: sess.Type(),
		EditorID:     editorID,
		Record:       record,
	}
	if err := s.cache.Set(ctx, sessionCachePrefix+sess.ID(), snap, s.ttl); err != nil {
		s.logger.Warn("failed to persist session snapshot", "session_id", sess.ID(), "error", err)
	}
}

func (s *editingService) publish(ctx context.Context, event *events.AuthoringEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAuthoringEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish authoring event", "event_type", event.Type, "error", err)
	}
}

// view renders the dispatcher output: the wired field compositions for a
// known type, or no fields at all for an unknown tag.
func (s *editingService) view(sess *editor.Session) *SessionView {
	record := sess.Record()
	v := &SessionView{
		ID:           sess.ID(),
		QuestionType: sess.Type(),
		Known:        sess.Known(),
		Record:       record,
		Uploads:      sess.UploadStates(),
	}
	if !sess.Known() {
		return v
	}

	for _, spec := range sess.Schema().Fields {
		fv := FieldView{
			Name:      spec.Name,
			Editor:    spec.Editor,
			Upload:    spec.Upload,
			MinItems:  spec.MinItems,
			CanRemove: true,
		}
		switch spec.Editor {
		case schema.EditorText:
			fv.Value = record.Text(spec.Name)
		case schema.EditorWords:
			fv.Value = valueOrEmpty(record.Words(spec.Name))
		case schema.EditorOptions:
			fv.Value = valueOrEmpty(record.Options(spec.Name))
		case schema.EditorPairs:
			pairs := record.Pairs(spec.Name)
			fv.Value = valueOrEmpty(pairs)
			fv.CanRemove = len(pairs) > spec.MinItems
			for _, p := range pairs {
				fv.Resolved = append(fv.Resolved, s.resolver.ResolveImage(p.Image))
			}
		case schema.EditorItems:
			items := record.Items(spec.Name)
			fv.Value = valueOrEmpty(items)
			for _, it := range items {
				fv.Resolved = append(fv.Resolved, s.resolver.ResolveImage(it.Image))
			}
		case schema.EditorMedia:
			value := record.Text(spec.Name)
			fv.Value = value
			if spec.Upload == models.MediaImage && value != "" {
				fv.Resolved = []string{s.resolver.ResolveImage(value)}
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func valueOrEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// urlAt reads the media URL currently stored at a field path.
func urlAt(sess *editor.Session, path editor.FieldPath) string {
	record := sess.Record()
	if path.Index < 0 {
		return record.Text(path.Field)
	}
	spec, ok := sess.Schema().Field(path.Field)
	if !ok {
		return ""
	}
	switch spec.Editor {
	case schema.EditorPairs:
		pairs := record.Pairs(path.Field)
		if path.Index < len(pairs) {
			return pairs[path.Index].Image
		}
	case schema.EditorItems:
		items := record.Items(path.Field)
		if path.Index < len(items) {
			return items[path.Index].Image
		}
	}
	return ""
}
