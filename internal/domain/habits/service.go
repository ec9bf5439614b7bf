package habits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidFrequency = errors.New("frequency must be daily, weekly or monthly")
)

// validFrequency reports whether the value is one of the accepted
// habit frequencies
func validFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// CalendarSyncer mirrors the calendar adapter surface the habit service
// needs. Failures are reduced to zero values by the implementation, so
// sync never blocks a local write.
type CalendarSyncer interface {
	SyncHabit(ctx context.Context, userID uuid.UUID, title, description, timeOfDay string) string
	RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool
}

type Service interface {
	CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error)
	GetHabitStats(ctx context.Context, id, userID uuid.UUID) (*HabitStats, error)
	ListHabits(ctx context.Context, filter HabitFilter) ([]Habit, int64, error)
	ListHabitsWithStats(ctx context.Context, userID uuid.UUID) ([]HabitWithStats, error)
	UpdateHabit(ctx context.Context, id, userID uuid.UUID, input UpdateHabitInput) (*Habit, error)
	DeactivateHabit(ctx context.Context, id, userID uuid.UUID) (*Habit, error)
	DeleteHabit(ctx context.Context, id, userID uuid.UUID) error
	ToggleCompletion(ctx context.Context, id, userID uuid.UUID, note string) (*HabitStats, error)
	GetHeatmapData(ctx context.Context, userID uuid.UUID, period string) (map[string]int, error)
	CountCompletionsThisWeek(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo     Repository
	calendar CalendarSyncer
	logger   *zap.Logger
	loc      *time.Location
}

func NewService(repo Repository, calendar CalendarSyncer, logger *zap.Logger, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:     repo,
		calendar: calendar,
		logger:   logger,
		loc:      loc,
	}
}

func (s *service) CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	targetCount := input.TargetCount
	if targetCount <= 0 {
		targetCount = 1
	}
	timeOfDay := input.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = "09:00"
	}
	color := input.Color
	if color == "" {
		color = DefaultColor
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = FrequencyDaily
	}
	if !validFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	habit := &Habit{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		TargetCount: targetCount,
		TimeOfDay:   timeOfDay,
		Color:       color,
		Frequency:   frequency,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	// Best-effort calendar sync; a failed sync leaves the event
	// reference empty and the habit usable
	if s.calendar != nil {
		if eventID := s.calendar.SyncHabit(ctx, habit.UserID, habit.Title, habit.Description, habit.TimeOfDay); eventID != "" {
			if err := s.repo.UpdateEventID(ctx, habit.ID, eventID); err != nil {
				s.logger.Error("Failed to persist calendar event id",
					zap.String("habit_id", habit.ID.String()),
					zap.Error(err))
			} else {
				habit.GoogleCalendarEventID = eventID
			}
		}
	}

	return habit, nil
}

func (s *service) GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrHabitNotFound
	}
	return habit, nil
}

func (s *service) GetHabitStats(ctx context.Context, id, userID uuid.UUID) (*HabitStats, error) {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}

	times, err := s.repo.FindLogTimes(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(times, time.Now(), s.loc)
	return &stats, nil
}

func (s *service) ListHabits(ctx context.Context, filter HabitFilter) ([]Habit, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

// ListHabitsWithStats returns the user's active habits with their
// stats. The per-habit log reads are independent, so they run
// concurrently.
func (s *service) ListHabitsWithStats(ctx context.Context, userID uuid.UUID) ([]HabitWithStats, error) {
	active := true
	habits, _, err := s.repo.FindAll(ctx, HabitFilter{UserID: &userID, IsActive: &active})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]HabitWithStats, len(habits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, habit := range habits {
		i, habit := i, habit
		g.Go(func() error {
			times, err := s.repo.FindLogTimes(gctx, habit.ID)
			if err != nil {
				return err
			}
			result[i] = HabitWithStats{
				Habit: habit,
				Stats: ComputeStats(times, now, s.loc),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) UpdateHabit(ctx context.Context, id, userID uuid.UUID, input UpdateHabitInput) (*Habit, error) {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		habit.Title = *input.Title
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.TargetCount != nil && *input.TargetCount > 0 {
		habit.TargetCount = *input.TargetCount
	}
	if input.TimeOfDay != nil {
		habit.TimeOfDay = *input.TimeOfDay
	}
	if input.Color != nil && *input.Color != "" {
		habit.Color = *input.Color
	}
	if input.Frequency != nil {
		if !validFrequency(*input.Frequency) {
			return nil, ErrInvalidFrequency
		}
		habit.Frequency = *input.Frequency
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeactivateHabit flags the habit inactive, keeping its logs. The
// remote calendar event is removed so it stops recurring.
func (s *service) DeactivateHabit(ctx context.Context, id, userID uuid.UUID) (*Habit, error) {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}
	if !habit.IsActive {
		return habit, nil
	}

	if s.calendar != nil && habit.GoogleCalendarEventID != "" {
		if ok := s.calendar.RemoveEvent(ctx, userID, habit.GoogleCalendarEventID); !ok {
			s.logger.Warn("Failed to remove calendar event, deactivating anyway",
				zap.String("habit_id", habit.ID.String()),
				zap.String("event_id", habit.GoogleCalendarEventID))
		}
		habit.GoogleCalendarEventID = ""
	}

	habit.IsActive = false
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteHabit removes the habit, its completion logs and, best effort,
// its remote calendar event. The remote delete runs first so a remote
// failure never blocks the local delete.
func (s *service) DeleteHabit(ctx context.Context, id, userID uuid.UUID) error {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return ErrHabitNotFound
	}

	if s.calendar != nil && habit.GoogleCalendarEventID != "" {
		if ok := s.calendar.RemoveEvent(ctx, userID, habit.GoogleCalendarEventID); !ok {
			s.logger.Warn("Failed to remove calendar event, continuing with local delete",
				zap.String("habit_id", habit.ID.String()),
				zap.String("event_id", habit.GoogleCalendarEventID))
		}
	}

	if err := s.repo.DeleteLogsByHabit(ctx, habit.ID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, habit.ID)
}

// ToggleCompletion flips today's completion state: if any completion
// exists inside today's local window it is removed, otherwise a new
// completion is logged at the current instant, carrying the optional
// note. Returns the refreshed stats.
func (s *service) ToggleCompletion(ctx context.Context, id, userID uuid.UUID, note string) (*HabitStats, error) {
	habit, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}

	now := time.Now().In(s.loc)
	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	removed, err := s.repo.DeleteLogsBetween(ctx, habit.ID, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if removed == 0 {
		log := &HabitLog{
			ID:          uuid.New(),
			HabitID:     habit.ID,
			UserID:      userID,
			CompletedAt: now,
			Notes:       note,
			CreatedAt:   time.Now(),
		}
		if err := s.repo.CreateLog(ctx, log); err != nil {
			return nil, err
		}
	}

	times, err := s.repo.FindLogTimes(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(times, now, s.loc)
	return &stats, nil
}

func (s *service) GetHeatmapData(ctx context.Context, userID uuid.UUID, period string) (map[string]int, error) {
	now := time.Now().In(s.loc)
	var startDate time.Time

	switch period {
	case "week":
		startDate = startOfWeek(now)
	case "month":
		startDate = startOfMonth(now)
	case "year":
		startDate = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, s.loc)
	default:
		startDate = now.AddDate(0, 0, -365)
	}

	return s.repo.GetHeatmapData(ctx, userID, startDate, now)
}

// CountCompletionsThisWeek counts logs across all habits since the last
// Sunday midnight
func (s *service) CountCompletionsThisWeek(ctx context.Context, userID uuid.UUID) (int64, error) {
	now := time.Now().In(s.loc)
	return s.repo.CountLogsSince(ctx, userID, startOfWeek(now))
}
