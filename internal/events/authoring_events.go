package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/wordsteps/authoring-service/internal/models"
)

// EventType represents different types of authoring events
type EventType string

const (
	// Editing session events
	EventSessionOpened EventType = "session.opened"
	EventSessionClosed EventType = "session.closed"
	EventDraftUpdated  EventType = "draft.updated"

	// Media events
	EventUploadCompleted EventType = "media.upload_completed"

	// Export events
	EventQuestionsExported EventType = "questions.exported"
)

// AuthoringEvent is the base event structure for all authoring events
type AuthoringEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SessionOpenedEvent struct {
	SessionID    string              `json:"session_id"`
	QuestionType models.QuestionType `json:"question_type"`
	KnownType    bool                `json:"known_type"`
	EditorID     string              `json:"editor_id"`
}

type SessionClosedEvent struct {
	SessionID string `json:"session_id"`
	EditorID  string `json:"editor_id"`
}

type DraftUpdatedEvent struct {
	SessionID    string              `json:"session_id"`
	QuestionType models.QuestionType `json:"question_type"`
	Field        string              `json:"field"`
	EditorID     string              `json:"editor_id"`
}

type UploadCompletedEvent struct {
	SessionID string           `json:"session_id"`
	FieldPath string           `json:"field_path"`
	Kind      models.MediaKind `json:"kind"`
	URL       string           `json:"url"`
}

type QuestionsExportedEvent struct {
	Format   string `json:"format"`
	Count    int    `json:"count"`
	EditorID string `json:"editor_id"`
}

// NewAuthoringEvent wraps a payload in the base envelope.
func NewAuthoringEvent(eventType EventType, data interface{}) *AuthoringEvent {
	return &AuthoringEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "authoring-service",
		Version:   "1.0",
		Data:      data,
	}
}
