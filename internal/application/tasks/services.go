package tasks

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/adiwahyudi/board-api/internal/apperr"
	"github.com/adiwahyudi/board-api/internal/application"
	domain "github.com/adiwahyudi/board-api/internal/domain/tasks"
)

// Service implements use-cases untuk Task
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

//
// ==== USE CASES ====
//

// Command untuk create task
type CreateTaskCommand struct {
	BoardID     string
	Title       string
	Description string
	Status      string
}

// Command untuk update task
type UpdateTaskCommand struct {
	BoardID     string
	ID          string
	Title       string
	Description string
	Status      string
}

// Create validates the command and persists a new task.
func (s *Service) Create(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error) {
	if cmd.Title == "" {
		return nil, apperr.E("title is required",
			apperr.WithStatus(http.StatusBadRequest),
			apperr.WithKind("ValidationError"),
		)
	}
	status := domain.Status(cmd.Status)
	if cmd.Status == "" {
		status = domain.StatusOpen
	}
	if !domain.ValidStatus(status) {
		return nil, apperr.E("invalid task status: "+cmd.Status,
			apperr.WithStatus(http.StatusBadRequest),
			apperr.WithKind("ValidationError"),
		)
	}

	now := s.Clock.Now()
	t := &domain.Task{
		ID:          domain.TaskID(uuid.NewString()),
		BoardID:     cmd.BoardID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get fetches a single task scoped to its board.
func (s *Service) Get(ctx context.Context, board string, id domain.TaskID) (*domain.Task, error) {
	return s.Repo.Get(ctx, board, id)
}

// List returns the board's tasks, newest first.
func (s *Service) List(ctx context.Context, board string, limit int) ([]*domain.Task, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.Repo.List(ctx, board, limit)
}

// Update replaces the mutable fields of an existing task.
func (s *Service) Update(ctx context.Context, cmd UpdateTaskCommand) (*domain.Task, error) {
	t, err := s.Repo.Get(ctx, cmd.BoardID, domain.TaskID(cmd.ID))
	if err != nil {
		return nil, err
	}

	if cmd.Title != "" {
		t.Title = cmd.Title
	}
	if cmd.Description != "" {
		t.Description = cmd.Description
	}
	if cmd.Status != "" {
		status := domain.Status(cmd.Status)
		if !domain.ValidStatus(status) {
			return nil, apperr.E("invalid task status: "+cmd.Status,
				apperr.WithStatus(http.StatusBadRequest),
				apperr.WithKind("ValidationError"),
			)
		}
		t.Status = status
	}
	t.UpdatedAt = s.Clock.Now()

	if err := s.Repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task from its board.
func (s *Service) Delete(ctx context.Context, board string, id domain.TaskID) error {
	return s.Repo.Delete(ctx, board, id)
}
