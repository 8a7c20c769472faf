package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/schema"
	"github.com/wordsteps/authoring-service/internal/services"
	"github.com/wordsteps/authoring-service/internal/utils"
	"github.com/wordsteps/authoring-service/internal/validator"
)

type EditorHandler struct {
	BaseHandler
	editingService services.EditingService
	validator      *validator.Validator
}

func NewEditorHandler(
	editingService services.EditingService,
	validator *validator.Validator,
	logger utils.Logger,
) *EditorHandler {
	return &EditorHandler{
		BaseHandler:    NewBaseHandler(logger),
		editingService: editingService,
		validator:      validator,
	}
}

// ListQuestionTypes returns every registered question type with its field
// composition, in registry order.
func (h *EditorHandler) ListQuestionTypes(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Question types retrieved", schema.All())
}

// OpenSession opens an editing session for a content record
func (h *EditorHandler) OpenSession(c *gin.Context) {
	h.LogRequest(c, "Opening editing session")

	var req services.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	view, err := h.editingService.OpenSession(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to open editing session")
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Editing session opened", view)
}

// GetSession returns the rendered state of a session
func (h *EditorHandler) GetSession(c *gin.Context) {
	id := c.Param("id")

	view, err := h.editingService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to get editing session")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Editing session retrieved", view)
}

type applyOperationsRequest struct {
	Operations []editor.Operation `json:"operations" validate:"required,min=1,dive"`
}

// ApplyOperations applies a batch of editing operations to a session.
// Refused operations are reported per entry, not as request failures.
func (h *EditorHandler) ApplyOperations(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Applying editing operations", "session_id", id)

	var req applyOperationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ToValidationErrors(err),
		})
		return
	}

	result, err := h.editingService.ApplyOperations(c.Request.Context(), id, req.Operations)
	if err != nil {
		h.handleServiceError(c, err, "Failed to apply operations")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Operations applied", result)
}

// StartUpload accepts a multipart file for a wired media field and starts
// the upload in the background. The response only acknowledges acceptance;
// progress is polled via GetUploadStates.
func (h *EditorHandler) StartUpload(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Starting media upload", "session_id", id)

	field := c.PostForm("field")
	if field == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing form value: field",
		})
		return
	}

	path := editor.ScalarPath(field)
	if raw := c.PostForm("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid form value: index",
				Details: raw,
			})
			return
		}
		path = editor.ElementPath(field, index)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing form file: file",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	// The upload outlives the request, so the multipart temp file must be
	// drained before the handler returns.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		file.Close()
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	file.Close()

	err = h.editingService.StartUpload(c.Request.Context(), id, path, editor.File{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      &buf,
	})
	if err != nil {
		h.handleServiceError(c, err, "Failed to start upload")
		return
	}

	h.RespondWithSuccess(c, http.StatusAccepted, "Upload started", gin.H{
		"session_id": id,
		"field_path": path.Key(),
	})
}

// GetUploadStates returns the per-field upload states of a session
func (h *EditorHandler) GetUploadStates(c *gin.Context) {
	id := c.Param("id")

	states, err := h.editingService.UploadStates(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to get upload states")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Upload states retrieved", states)
}

// CloseSession closes an editing session and drops its snapshot
func (h *EditorHandler) CloseSession(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Closing editing session", "session_id", id)

	if err := h.editingService.CloseSession(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to close editing session")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Editing session closed", gin.H{"session_id": id})
}

func (h *EditorHandler) handleServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Editing session not found", err)
	case errors.Is(err, services.ErrSessionClosed):
		h.RespondWithError(c, http.StatusGone, "Editing session already closed", err)
	case errors.Is(err, services.ErrUploadNotWired):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Field is not wired for upload", err, err.Error())
	case errors.Is(err, services.ErrUploadRejected):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Upload rejected", err)
	case errors.Is(err, services.ErrValidationFailed):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err.Error())
	case errors.Is(err, services.ErrBadRequest):
		h.RespondWithError(c, http.StatusBadRequest, "Bad request", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, message, err)
	}
}
