package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// Runner executes tasks one after another. Export files share the output
// tree, so they are never converted concurrently.
type Runner struct {
	completed int
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run stops at the first failing task; its error is returned wrapped.
func (r *Runner) Run(ctx context.Context, tasks []TaskInterface) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.executeTask(ctx, task); err != nil {
			return err
		}
		r.completed++
	}

	return nil
}

// Completed reports how many tasks finished successfully.
func (r *Runner) Completed() int {
	return r.completed
}

func (r *Runner) executeTask(ctx context.Context, task TaskInterface) error {
	task.Start()

	if err := task.Execute(ctx); err != nil {
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"file", task.GetSource(),
			"duration", task.GetDuration(),
			"error", err)
		return fmt.Errorf("task %s: %w", task.GetID(), err)
	}

	return nil
}
