package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/halcyonworks/mission-control/domain"
)

var validTaskStatuses = map[domain.TaskStatus]bool{
	domain.TaskStatusOpen:    true,
	domain.TaskStatusWaiting: true,
	domain.TaskStatusDone:    true,
}

// TaskService manages follow-up tasks.
type TaskService struct {
	tasks     domain.TaskRepository
	companies domain.CompanyRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository, companies domain.CompanyRepository) *TaskService {
	return &TaskService{tasks: tasks, companies: companies}
}

// CreateTaskInput carries the fields of a new or updated task.
type CreateTaskInput struct {
	CompanyID string            `json:"companyId"`
	Title     string            `json:"title"`
	Status    domain.TaskStatus `json:"status"`
	DueAt     *time.Time        `json:"dueAt"`
}

// Create validates and stores a task. A company reference, when
// present, must resolve.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = domain.TaskStatusOpen
	}
	if !validTaskStatuses[in.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if in.CompanyID != "" {
		if _, err := s.companies.GetByID(ctx, in.CompanyID); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		CompanyID: in.CompanyID,
		Title:     title,
		Status:    in.Status,
		DueAt:     in.DueAt,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns a single task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// List returns tasks for a company, or every non-done task when no
// company is given.
func (s *TaskService) List(ctx context.Context, companyID string) ([]*domain.Task, error) {
	if companyID != "" {
		return s.tasks.ListByCompany(ctx, companyID)
	}
	return s.tasks.ListOpen(ctx)
}

// Update applies the input on top of the stored task.
func (s *TaskService) Update(ctx context.Context, id string, in CreateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		task.Title = title
	}
	if in.Status != "" {
		if !validTaskStatuses[in.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
		}
		task.Status = in.Status
	}
	if in.DueAt != nil {
		task.DueAt = in.DueAt
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
