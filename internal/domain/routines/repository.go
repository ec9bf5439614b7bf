package routines

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// RoutineFilter defines the filtering options for routines
type RoutineFilter struct {
	UserID   *uuid.UUID
	Weekday  *int
	IsActive *bool
	Page     int
	PageSize int
}

// Repository defines the interface for routine persistence operations
type Repository interface {
	Create(ctx context.Context, routine *Routine) error
	FindByID(ctx context.Context, id uuid.UUID) (*Routine, error)
	FindAll(ctx context.Context, filter RoutineFilter) ([]Routine, int64, error)
	Update(ctx context.Context, routine *Routine) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, routine *Routine) error {
	return r.db.WithContext(ctx).Create(routine).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Routine, error) {
	var routine Routine
	result := r.db.WithContext(ctx).First(&routine, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, result.Error
	}
	return &routine, nil
}

func (r *repository) FindAll(ctx context.Context, filter RoutineFilter) ([]Routine, int64, error) {
	var routines []Routine
	var total int64
	query := r.db.WithContext(ctx).Model(&Routine{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Weekday != nil {
		query = query.Where("? = ANY(days_of_week)", *filter.Weekday)
	}

	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
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

	err = query.Order("start_time ASC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&routines).Error
	if err != nil {
		return nil, 0, err
	}

	return routines, total, nil
}

func (r *repository) Update(ctx context.Context, routine *Routine) error {
	result := r.db.WithContext(ctx).Save(routine)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Routine{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *repository) UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	result := r.db.WithContext(ctx).Model(&Routine{}).
		Where("id = ?", id).
		Update("google_calendar_event_id", eventID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}
