package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CalendarSyncer mirrors the calendar adapter surface the task service
// needs
type CalendarSyncer interface {
	SyncTask(ctx context.Context, userID uuid.UUID, title, description string, due time.Time) string
	RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id, userID uuid.UUID, input UpdateTaskInput) (*Task, error)
	ToggleCompleted(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	DeleteTask(ctx context.Context, id, userID uuid.UUID) error
	CountTasks(ctx context.Context, userID uuid.UUID) (total, completed int64, err error)
}

type service struct {
	repo     Repository
	calendar CalendarSyncer
	logger   *zap.Logger
}

func NewService(repo Repository, calendar CalendarSyncer, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		calendar: calendar,
		logger:   logger,
	}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		RoutineID:   input.RoutineID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Only tasks with a due instant are anchored on the calendar
	if s.calendar != nil && task.DueDate != nil {
		if eventID := s.calendar.SyncTask(ctx, task.UserID, task.Title, task.Description, *task.DueDate); eventID != "" {
			if err := s.repo.UpdateEventID(ctx, task.ID, eventID); err != nil {
				s.logger.Error("Failed to persist calendar event id",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
			} else {
				task.GoogleCalendarEventID = eventID
			}
		}
	}

	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTask(ctx context.Context, id, userID uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		if !validPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.RoutineID != nil {
		task.RoutineID = input.RoutineID
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) ToggleCompleted(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}

	task.Completed = !task.Completed
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task and, best effort, its remote calendar
// event
func (s *service) DeleteTask(ctx context.Context, id, userID uuid.UUID) error {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return ErrTaskNotFound
	}

	if s.calendar != nil && task.GoogleCalendarEventID != "" {
		if ok := s.calendar.RemoveEvent(ctx, userID, task.GoogleCalendarEventID); !ok {
			s.logger.Warn("Failed to remove calendar event, continuing with local delete",
				zap.String("task_id", task.ID.String()),
				zap.String("event_id", task.GoogleCalendarEventID))
		}
	}

	return s.repo.Delete(ctx, task.ID)
}

func (s *service) CountTasks(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	return s.repo.CountByUser(ctx, userID)
}
