package build

import (
	"fmt"
	"math/rand"
	"time"
)

// Task is one unit of batch work: rendering and writing a single
// recipe page.
type Task struct {
	ID        string
	Slug      string
	StartedAt *time.Time
}

func NewTask(slug string) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:   uniqueID,
		Slug: slug,
	}
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) Duration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}
