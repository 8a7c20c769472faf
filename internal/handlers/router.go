package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wordsteps/authoring-service/internal/services"
	"github.com/wordsteps/authoring-service/internal/utils"
	"github.com/wordsteps/authoring-service/internal/validator"
)

type HandlerManager struct {
	editorHandler *EditorHandler
	exportHandler *ExportHandler
}

func NewHandlerManager(
	editingService services.EditingService,
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		editorHandler: NewEditorHandler(editingService, validator, logger),
		exportHandler: NewExportHandler(exportService, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "authoring-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Question type registry
		v1.GET("/question-types", hm.editorHandler.ListQuestionTypes)

		// Editing session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.editorHandler.OpenSession)
			sessions.GET("/:id", hm.editorHandler.GetSession)
			sessions.POST("/:id/operations", hm.editorHandler.ApplyOperations)
			sessions.POST("/:id/uploads", hm.editorHandler.StartUpload)
			sessions.GET("/:id/uploads", hm.editorHandler.GetUploadStates)
			sessions.DELETE("/:id", hm.editorHandler.CloseSession)
		}

		// Export routes
		v1.POST("/export", hm.exportHandler.ExportQuestions)
	}
}
