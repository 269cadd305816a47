// Package tasks implements per-account task CRUD. Every operation is
// scoped to the caller's account id; update and delete verify ownership
// before touching the record.
package tasks

import (
	"context"
	"strings"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the caller's tasks in insertion order. Never nil.
func (s *Service) List(ctx context.Context, userID string) ([]Task, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Create validates the request, applies defaults for omitted fields,
// and persists the task with the caller as owner.
func (s *Service) Create(ctx context.Context, userID string, req CreateTaskRequest) (*Task, error) {
	t := &Task{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Priority: PriorityMedium,
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Assignee != nil {
		t.Assignee = *req.Assignee
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = *req.EstimatedHours
	}
	if req.Priority != nil {
		t.Priority = Priority(*req.Priority)
	}

	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a partial update after verifying the task exists and
// belongs to the caller. Absent fields and the owner reference are
// preserved; last writer wins.
func (s *Service) Update(ctx context.Context, userID, taskID string, req UpdateTaskRequest) (*Task, error) {
	t, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Assignee != nil {
		t.Assignee = *req.Assignee
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = *req.EstimatedHours
	}
	if req.Priority != nil {
		t.Priority = Priority(*req.Priority)
	}

	if err := validate(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task after the same ownership check as Update.
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.owned(ctx, userID, taskID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, taskID)
}

// owned fetches the task and rejects callers that do not own it.
// Existence is checked first so an unknown id is 404, not 403.
func (s *Service) owned(ctx context.Context, userID, taskID string) (*Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func validate(t *Task) error {
	if t.Title == "" {
		return domain.Validationf("title is required")
	}
	if t.EstimatedHours < 0 {
		return domain.Validationf("estimatedHours must not be negative")
	}
	if !t.Priority.Valid() {
		return domain.Validationf("priority must be one of Low, Medium, High")
	}
	return nil
}
