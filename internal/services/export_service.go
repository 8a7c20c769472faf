package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wordsteps/authoring-service/internal/events"
	"github.com/wordsteps/authoring-service/internal/models"
	"github.com/wordsteps/authoring-service/internal/schema"
)

// ExportService dumps authored questions to spreadsheet formats for review
// outside the editor.
type ExportService interface {
	ExportQuestionsToCSV(ctx context.Context, questions []ExportQuestion, editorID string) ([]byte, error)
	ExportQuestionsToExcel(ctx context.Context, questions []ExportQuestion, editorID string) ([]byte, error)
}

// ExportQuestion is one row of an export: a type tag plus its content record.
type ExportQuestion struct {
	QuestionType models.QuestionType  `json:"question_type"`
	Content      models.ContentRecord `json:"content"`
}

type exportService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewExportService(publisher events.EventPublisher, logger *slog.Logger) ExportService {
	return &exportService{
		publisher: publisher,
		logger:    logger,
	}
}

var exportHeaders = []string{
	"Question Type", "Known Type", "Text", "Fields",
}

func (s *exportService) ExportQuestionsToCSV(ctx context.Context, questions []ExportQuestion, editorID string) ([]byte, error) {
	if len(questions) == 0 {
		return nil, ErrExportEmpty
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, q := range questions {
		if err := writer.Write(questionToRow(q)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	s.published(ctx, "csv", len(questions), editorID)
	return []byte(buf.String()), nil
}

func (s *exportService) ExportQuestionsToExcel(ctx context.Context, questions []ExportQuestion, editorID string) ([]byte, error) {
	if len(questions) == 0 {
		return nil, ErrExportEmpty
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, q := range questions {
		for colIndex, value := range questionToRow(q) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.published(ctx, "xlsx", len(questions), editorID)
	return buf.Bytes(), nil
}

// questionToRow flattens a record into one export row. Wired fields other
// than the text are serialized as JSON so the export stays lossless across
// every composition.
func questionToRow(q ExportQuestion) []string {
	sch, known := schema.Lookup(q.QuestionType)

	fields := make(map[string]any)
	if known {
		for _, spec := range sch.Fields {
			if spec.Name == models.FieldText {
				continue
			}
			if v, ok := q.Content[spec.Name]; ok {
				fields[spec.Name] = v
			}
		}
	} else {
		for k, v := range q.Content {
			if k != models.FieldText {
				fields[k] = v
			}
		}
	}

	encoded := ""
	if len(fields) > 0 {
		if b, err := json.Marshal(fields); err == nil {
			encoded = string(b)
		}
	}

	return []string{
		string(q.QuestionType),
		fmt.Sprintf("%t", known),
		q.Content.Text(models.FieldText),
		encoded,
	}
}

func (s *exportService) published(ctx context.Context, format string, count int, editorID string) {
	if s.publisher == nil {
		return
	}
	event := events.NewAuthoringEvent(events.EventQuestionsExported, events.QuestionsExportedEvent{
		Format:   format,
		Count:    count,
		EditorID: editorID,
	})
	if err := s.publisher.PublishAuthoringEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish export event", "format", format, "error", err)
	}
}
