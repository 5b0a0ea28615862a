package tasks

import (
	"context"

	"github.com/lysyi3m/exitwp/app/export"
	"github.com/lysyi3m/exitwp/app/writer"
)

// ExportParser turns an export file into a model.
// Implemented by *export.Parser.
type ExportParser interface {
	Parse(path string) (*export.Model, error)
}

// ExportWriter writes a parsed model to the content tree.
// Implemented by *writer.Writer.
type ExportWriter interface {
	Write(ctx context.Context, model *export.Model) (writer.Stats, error)
}
