package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/lysyi3m/exitwp/app/export"
)

func TestRunner_RunsInOrder(t *testing.T) {
	parser := &fakeParser{model: &export.Model{}}
	w := &fakeWriter{}

	tasks := []TaskInterface{
		NewConvertExportTask("a.xml", parser, w),
		NewConvertExportTask("b.xml", parser, w),
	}

	runner := NewRunner()
	if err := runner.Run(context.Background(), tasks); err != nil {
		t.Fatal(err)
	}

	if len(parser.paths) != 2 || parser.paths[0] != "a.xml" || parser.paths[1] != "b.xml" {
		t.Errorf("Expected [a.xml b.xml], got %v", parser.paths)
	}
	if runner.Completed() != 2 {
		t.Errorf("Expected 2 completed tasks, got %d", runner.Completed())
	}
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	failing := &fakeParser{err: export.ErrForbiddenSlug}
	healthy := &fakeParser{model: &export.Model{}}

	tasks := []TaskInterface{
		NewConvertExportTask("bad.xml", failing, &fakeWriter{}),
		NewConvertExportTask("good.xml", healthy, &fakeWriter{}),
	}

	runner := NewRunner()
	err := runner.Run(context.Background(), tasks)
	if !errors.Is(err, export.ErrForbiddenSlug) {
		t.Errorf("Expected ErrForbiddenSlug, got %v", err)
	}
	if len(healthy.paths) != 0 {
		t.Error("Expected later tasks to be skipped")
	}
	if runner.Completed() != 0 {
		t.Errorf("Expected 0 completed tasks, got %d", runner.Completed())
	}
}

func TestRunner_Cancelled(t *testing.T) {
	parser := &fakeParser{model: &export.Model{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner().Run(ctx, []TaskInterface{NewConvertExportTask("a.xml", parser, &fakeWriter{})})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(parser.paths) != 0 {
		t.Error("Expected no work after cancellation")
	}
}
