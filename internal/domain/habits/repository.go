package habits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samuelmonteirotf/habitus-app/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// HabitFilter defines the filtering options for habits
type HabitFilter struct {
	UserID   *uuid.UUID
	Title    *string
	IsActive *bool
	Page     int
	PageSize int
}

// Repository defines the interface for habit persistence operations
type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	FindAll(ctx context.Context, filter HabitFilter) ([]Habit, int64, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error

	// Completion log operations
	CreateLog(ctx context.Context, log *HabitLog) error
	FindLogTimes(ctx context.Context, habitID uuid.UUID) ([]time.Time, error)
	DeleteLogsBetween(ctx context.Context, habitID, userID uuid.UUID, from, to time.Time) (int64, error)
	DeleteLogsByHabit(ctx context.Context, habitID uuid.UUID) error
	CountLogsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	GetHeatmapData(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (map[string]int, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var habit Habit
	result := r.db.WithContext(ctx).First(&habit, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

func (r *repository) FindAll(ctx context.Context, filter HabitFilter) ([]Habit, int64, error) {
	var habits []Habit
	var total int64
	query := r.db.WithContext(ctx).Model(&Habit{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Title != nil {
		query = query.Where("title LIKE ?", "%"+*filter.Title+"%")
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

	err = query.Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&habits).Error
	if err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	result := r.db.WithContext(ctx).Save(habit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Habit{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	result := r.db.WithContext(ctx).Model(&Habit{}).
		Where("id = ?", id).
		Update("google_calendar_event_id", eventID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) CreateLog(ctx context.Context, log *HabitLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindLogTimes returns every completion instant recorded for a habit
func (r *repository) FindLogTimes(ctx context.Context, habitID uuid.UUID) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&HabitLog{}).
		Where("habit_id = ?", habitID).
		Order("completed_at ASC").
		Pluck("completed_at", &times).Error
	return times, err
}

func (r *repository) DeleteLogsBetween(ctx context.Context, habitID, userID uuid.UUID, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("habit_id = ? AND user_id = ? AND completed_at BETWEEN ? AND ?",
			habitID, userID, from, to).
		Delete(&HabitLog{})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteLogsByHabit(ctx context.Context, habitID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Delete(&HabitLog{}).Error
}

func (r *repository) CountLogsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&HabitLog{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *repository) GetHeatmapData(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (map[string]int, error) {
	var results []struct {
		Date           string
		CompletedCount int
	}

	query := `
		SELECT
			TO_CHAR(completed_at, 'YYYY-MM-DD') AS date,
			COUNT(*) AS completed_count
		FROM
			habit_logs
		WHERE
			user_id = ?
			AND completed_at BETWEEN ? AND ?
		GROUP BY
			TO_CHAR(completed_at, 'YYYY-MM-DD')
		ORDER BY
			date;
	`

	err := r.db.WithContext(ctx).Raw(query, userID, startDate, endDate).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	heatmapData := make(map[string]int)
	for _, result := range results {
		heatmapData[result.Date] = result.CompletedCount
	}

	return heatmapData, nil
}
