package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/adiwahyudi/board-api/internal/domain/tasks"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Save insert/update Task record
func (r *TaskRepository) Save(ctx context.Context, t *domain.Task) error {
	const q = `
INSERT INTO tasks
(id, board_id, title, description, status, created_at, updated_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 title=VALUES(title),
 description=VALUES(description),
 status=VALUES(status),
 updated_at=VALUES(updated_at);
`
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
WHERE board_id=? AND id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, board, id)

	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List tasks per board, newest first
func (r *TaskRepository) List(ctx context.Context, board string, limit int) ([]*domain.Task, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, board_id, title, description, status, created_at, updated_at
FROM tasks
WHERE board_id=? ORDER BY created_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, board, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete by ID + board
func (r *TaskRepository) Delete(ctx context.Context, board string, id domain.TaskID) error {
	const q = `DELETE FROM tasks WHERE board_id=? AND id=?;`
	res, err := r.db.ExecContext(ctx, q, board, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTask(scan func(...any) error) (*domain.Task, error) {
	var t domain.Task
	var desc sql.NullString
	if err := scan(
		&t.ID, &t.BoardID, &t.Title, &desc, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Description = desc.String
	return &t, nil
}
