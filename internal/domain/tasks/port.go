package tasks

import (
	"context"
	"errors"
)

// ErrNotFound is the domain-level miss; handlers map it to 404 locally
// and it never reaches the failure interceptor.
var ErrNotFound = errors.New("task not found")

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, t *Task) error
	Get(ctx context.Context, board string, id TaskID) (*Task, error)
	List(ctx context.Context, board string, limit int) ([]*Task, error)
	Delete(ctx context.Context, board string, id TaskID) error
}
