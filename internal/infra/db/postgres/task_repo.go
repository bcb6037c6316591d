package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	domain "github.com/adiwahyudi/board-api/internal/domain/tasks"
)

type TaskRepository struct{ db *sql.DB }

func NewTaskRepository(db *sql.DB) *TaskRepository { return &TaskRepository{db: db} }

// Save insert/update Task record
func (r *TaskRepository) Save(ctx context.Context, t *domain.Task) error {
	const q = `
INSERT INTO tasks
(id, board_id, title, description, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
 title = EXCLUDED.title,
 description = EXCLUDED.description,
 status = EXCLUDED.status,
 updated_at = EXCLUDED.updated_at;`

	board := stringOrDash(t.BoardID)
	status := stringOrDash(string(t.Status))
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := t.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	_, err := r.db.ExecContext(ctx, q,
		t.ID, board, t.Title, t.Description, status, created, updated,
	)
	return err
}

// Get by ID + board
func (r *TaskRepository) Get(ctx context.Context, board string, id domain.TaskID) (*domain.Task, error) {
	const q = `
SELECT id, board_id, title, description, status, created_at, updated_at
FROM tasks
WHERE board_id=$1 AND id=$2 LIMIT 1;`

	var t domain.Task
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, board, id).Scan(
		&t.ID, &t.BoardID, &t.Title, &desc, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Description = desc.String
	return &t, nil
}

// List tasks per board, newest first
func (r *TaskRepository) List(ctx context.Context, board string, limit int) ([]*domain.Task, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, board_id, title, description, status, created_at, updated_at
FROM tasks
WHERE board_id=$1 ORDER BY created_at DESC LIMIT $2;`

	rows, err := r.db.QueryContext(ctx, q, board, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		var t domain.Task
		var desc sql.NullString
		if err := rows.Scan(
			&t.ID, &t.BoardID, &t.Title, &desc, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Description = desc.String
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Delete by ID + board
func (r *TaskRepository) Delete(ctx context.Context, board string, id domain.TaskID) error {
	const q = `DELETE FROM tasks WHERE board_id=$1 AND id=$2;`
	res, err := r.db.ExecContext(ctx, q, board, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
