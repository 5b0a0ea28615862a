package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/exitwp/app/writer"
)

var _ TaskInterface = (*ConvertExportTask)(nil)

// ConvertExportTask converts one export file: parse, then write.
type ConvertExportTask struct {
	Task
	parser ExportParser
	writer ExportWriter

	// Stats is filled in after a successful write.
	Stats writer.Stats
}

func NewConvertExportTask(path string, parser ExportParser, writer ExportWriter) *ConvertExportTask {
	return &ConvertExportTask{
		Task:   NewTask(TaskTypeConvertExport, path),
		parser: parser,
		writer: writer,
	}
}

func (t *ConvertExportTask) Execute(ctx context.Context) error {
	if t.StartedAt == nil {
		t.Start()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	slog.Info("Working on export", "task_id", t.GetID(), "file", t.Source)

	model, err := t.parser.Parse(t.Source)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", t.Source, err)
	}

	slog.Info("Extracted items",
		"file", t.Source,
		"title", model.Header.Title,
		"items", len(model.Items))

	stats, err := t.writer.Write(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", t.Source, err)
	}
	t.Stats = stats

	slog.Info("Task completed",
		"type", t.GetType(),
		"file", t.Source,
		"duration", t.GetDuration(),
		"written", stats.Written,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"images", stats.Images,
		"image_errors", stats.ImageErrors)

	return nil
}
