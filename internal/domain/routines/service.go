package routines

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrNoWeekdays      = errors.New("at least one weekday is required")
	ErrInvalidWeekday  = errors.New("weekdays must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidTime     = errors.New("times must be in HH:MM format")
	ErrInvalidInterval = errors.New("start time must be before end time")
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// CalendarSyncer mirrors the calendar adapter surface the routine
// service needs
type CalendarSyncer interface {
	SyncRoutine(ctx context.Context, userID uuid.UUID, title, description, startTime, endTime string, daysOfWeek []int) string
	RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool
}

type Service interface {
	CreateRoutine(ctx context.Context, input CreateRoutineInput) (*Routine, error)
	GetRoutine(ctx context.Context, id uuid.UUID) (*Routine, error)
	ListRoutines(ctx context.Context, filter RoutineFilter) ([]Routine, int64, error)
	UpdateRoutine(ctx context.Context, id, userID uuid.UUID, input UpdateRoutineInput) (*Routine, error)
	DeleteRoutine(ctx context.Context, id, userID uuid.UUID) error
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

// validateWeekdays rejects empty or out-of-range day sets before any
// persistence call
func validateWeekdays(days []int) error {
	if len(days) == 0 {
		return ErrNoWeekdays
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}

// validateInterval accepts empty time bounds; a routine without a time
// slot is valid. Ordering is only checked when both bounds are set.
func validateInterval(startTime, endTime string) error {
	for _, v := range []string{startTime, endTime} {
		if v != "" && !timeOfDayPattern.MatchString(v) {
			return ErrInvalidTime
		}
	}
	if startTime == "" || endTime == "" {
		return nil
	}
	if startTime >= endTime {
		return ErrInvalidInterval
	}
	return nil
}

func toInt32Array(days []int) pq.Int32Array {
	arr := make(pq.Int32Array, len(days))
	for i, d := range days {
		arr[i] = int32(d)
	}
	return arr
}

func (s *service) CreateRoutine(ctx context.Context, input CreateRoutineInput) (*Routine, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := validateWeekdays(input.DaysOfWeek); err != nil {
		return nil, err
	}
	if err := validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	routine := &Routine{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		DaysOfWeek:  toInt32Array(input.DaysOfWeek),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, routine); err != nil {
		return nil, err
	}

	// Only routines with a time slot can be anchored on the calendar
	if s.calendar != nil && routine.HasTimeSlot() {
		if eventID := s.calendar.SyncRoutine(ctx, routine.UserID, routine.Title, routine.Description,
			routine.StartTime, routine.EndTime, routine.Weekdays()); eventID != "" {
			if err := s.repo.UpdateEventID(ctx, routine.ID, eventID); err != nil {
				s.logger.Error("Failed to persist calendar event id",
					zap.String("routine_id", routine.ID.String()),
					zap.Error(err))
			} else {
				routine.GoogleCalendarEventID = eventID
			}
		}
	}

	return routine, nil
}

func (s *service) GetRoutine(ctx context.Context, id uuid.UUID) (*Routine, error) {
	routine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	return routine, nil
}

func (s *service) ListRoutines(ctx context.Context, filter RoutineFilter) ([]Routine, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateRoutine(ctx context.Context, id, userID uuid.UUID, input UpdateRoutineInput) (*Routine, error) {
	routine, err := s.GetRoutine(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine.UserID != userID {
		return nil, ErrRoutineNotFound
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		routine.Title = *input.Title
	}
	if input.Description != nil {
		routine.Description = *input.Description
	}
	if input.StartTime != nil {
		routine.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		routine.EndTime = *input.EndTime
	}
	if input.DaysOfWeek != nil {
		if err := validateWeekdays(input.DaysOfWeek); err != nil {
			return nil, err
		}
		routine.DaysOfWeek = toInt32Array(input.DaysOfWeek)
	}

	if err := validateInterval(routine.StartTime, routine.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// DeleteRoutine removes the routine and, best effort, its remote
// calendar event
func (s *service) DeleteRoutine(ctx context.Context, id, userID uuid.UUID) error {
	routine, err := s.GetRoutine(ctx, id)
	if err != nil {
		return err
	}
	if routine.UserID != userID {
		return ErrRoutineNotFound
	}

	if s.calendar != nil && routine.GoogleCalendarEventID != "" {
		if ok := s.calendar.RemoveEvent(ctx, userID, routine.GoogleCalendarEventID); !ok {
			s.logger.Warn("Failed to remove calendar event, continuing with local delete",
				zap.String("routine_id", routine.ID.String()),
				zap.String("event_id", routine.GoogleCalendarEventID))
		}
	}

	return s.repo.Delete(ctx, routine.ID)
}
