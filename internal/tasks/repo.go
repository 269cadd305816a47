package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

// Repository is the Task Store contract the task service depends on.
type Repository interface {
	Insert(ctx context.Context, t *Task) error
	ListByOwner(ctx context.Context, userID string) ([]Task, error)
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

type PostgresRepository struct {
	Pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{Pool: pool}
}

func (r *PostgresRepository) Insert(ctx context.Context, t *Task) error {
	return r.Pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, assignee, estimated_hours, priority)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Title, t.Description, t.Assignee, t.EstimatedHours, string(t.Priority),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Task, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, user_id::text, title, description, assignee, estimated_hours, priority, created_at, updated_at
		 FROM tasks
		 WHERE user_id = $1::uuid
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Assignee,
			&t.EstimatedHours, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	t := &Task{}
	err := r.Pool.QueryRow(ctx,
		`SELECT id, user_id::text, title, description, assignee, estimated_hours, priority, created_at, updated_at
		 FROM tasks
		 WHERE id = $1::uuid`,
		id,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Assignee,
		&t.EstimatedHours, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *Task) error {
	err := r.Pool.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, assignee = $4, estimated_hours = $5, priority = $6, updated_at = now()
		 WHERE id = $1::uuid
		 RETURNING updated_at`,
		t.ID, t.Title, t.Description, t.Assignee, t.EstimatedHours, string(t.Priority),
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
