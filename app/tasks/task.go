package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

type TaskType string

const (
	TaskTypeConvertExport TaskType = "convert_export"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetSource() string
	Start()
	GetDuration() time.Duration
}

// Task holds the bookkeeping shared by every task: identity, input and timing.
type Task struct {
	ID        string
	Type      TaskType
	Source    string
	StartedAt *time.Time
}

var taskSeq atomic.Uint64

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

// GetSource returns the export file the task works on.
func (t *Task) GetSource() string {
	return t.Source
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, source string) Task {
	return Task{
		ID:     fmt.Sprintf("%s-%d", taskType, taskSeq.Add(1)),
		Type:   taskType,
		Source: source,
	}
}
