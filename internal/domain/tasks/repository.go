package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// TaskStatus narrows a task list to a predefined slice of it
type TaskStatus string

const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusToday     TaskStatus = "today"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

// TaskFilter defines the filtering options for tasks
type TaskFilter struct {
	UserID   *uuid.UUID
	Status   TaskStatus
	Now      time.Time
	Page     int
	PageSize int
}

// Repository defines the interface for task persistence operations
type Repository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error
	CountByUser(ctx context.Context, userID uuid.UUID) (total, completed int64, err error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *repository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64
	query := r.db.WithContext(ctx).Model(&Task{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch filter.Status {
	case TaskStatusToday:
		query = query.Where("due_date BETWEEN ? AND ?", dayStart, dayEnd)
	case TaskStatusPending:
		query = query.Where("completed = ?", false)
	case TaskStatusCompleted:
		query = query.Where("completed = ?", true)
	case TaskStatusOverdue:
		query = query.Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, now)
	}

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}
	// page numbers are 1-based
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}

	err = query.Order("due_date ASC NULLS LAST, created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *repository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	result := r.db.WithContext(ctx).Model(&Task{}).
		Where("id = ?", id).
		Update("google_calendar_event_id", eventID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var total, completed int64

	if err := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	err := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completed).Error
	return total, completed, err
}
