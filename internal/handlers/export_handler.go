package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordsteps/authoring-service/internal/services"
	"github.com/wordsteps/authoring-service/internal/utils"
	"github.com/wordsteps/authoring-service/internal/validator"
)

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
	validator     *validator.Validator
}

func NewExportHandler(
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
		validator:     validator,
	}
}

type exportQuestionsRequest struct {
	Format    string                    `json:"format" validate:"required,oneof=csv xlsx"`
	Questions []services.ExportQuestion `json:"questions" validate:"required,min=1"`
	EditorID  string                    `json:"editor_id"`
}

// ExportQuestions renders the posted questions as a CSV or Excel download
func (h *ExportHandler) ExportQuestions(c *gin.Context) {
	h.LogRequest(c, "Exporting questions")

	var req exportQuestionsRequest
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

	var (
		data        []byte
		err         error
		contentType string
	)
	switch req.Format {
	case "csv":
		data, err = h.exportService.ExportQuestionsToCSV(c.Request.Context(), req.Questions, req.EditorID)
		contentType = "text/csv"
	case "xlsx":
		data, err = h.exportService.ExportQuestionsToExcel(c.Request.Context(), req.Questions, req.EditorID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("questions-%s.%s", time.Now().Format("20060102-150405"), req.Format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrExportEmpty):
		h.RespondWithError(c, http.StatusBadRequest, "Nothing to export", err)
	case errors.Is(err, services.ErrExportInvalidFormat):
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export questions", err)
	}
}
