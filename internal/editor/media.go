package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/wordsteps/authoring-service/internal/models"
)

// File is the binary blob handed to the upload collaborator when the user
// selects or drops a file.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Uploader is the upload collaborator contract. A successful upload resolves
// to a non-empty URL. An error or an empty URL both mean failure; failure is
// silent at the editing boundary (no field mutation, nothing propagated) and
// must be surfaced by the collaborator itself. progress may be nil.
type Uploader interface {
	Upload(ctx context.Context, file File, kind models.MediaKind, progress func(percent int)) (string, error)
}

// UploadState is the busy/progress pair of a single media field. State is
// keyed per field path, so a pair list with several uploads in flight can
// attribute progress to the right element.
type UploadState struct {
	Busy     bool `json:"busy"`
	Progress int  `json:"progress"`
}

// FieldPath identifies a media slot inside a record: a scalar media field
// (Index < 0) or the image of one element of a pair/item list.
type FieldPath struct {
	Field string `json:"field"`
	Index int    `json:"index"`
}

// ScalarPath addresses a top-level media field like imageUrl or audioUrl.
func ScalarPath(field string) FieldPath {
	return FieldPath{Field: field, Index: -1}
}

// ElementPath addresses the image of one list element.
func ElementPath(field string, index int) FieldPath {
	return FieldPath{Field: field, Index: index}
}

// Key is the stable map key for upload-state tracking.
func (p FieldPath) Key() string {
	if p.Index < 0 {
		return p.Field
	}
	return fmt.Sprintf("%s[%d]", p.Field, p.Index)
}

// SetMediaURL is the manual-URL channel: it binds the typed value directly to
// the field, bypassing upload entirely.
func SetMediaURL(field, url string) (models.FieldPatch, bool) {
	return models.FieldPatch{Field: field, Value: url}, true
}

// ClearMedia resets a media field to empty, backing the preview's remove
// control.
func ClearMedia(field string) (models.FieldPatch, bool) {
	return models.FieldPatch{Field: field, Value: ""}, true
}
