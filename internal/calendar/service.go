package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// TokenResolver fetches the stored calendar access token for a user
type TokenResolver interface {
	CalendarAccessToken(ctx context.Context, id uuid.UUID) (string, error)
}

// Service is the sync adapter between local entities and the external
// calendar. Every operation reduces failure to a zero value plus a
// logged diagnostic so callers never block a local write on a remote
// error.
type Service struct {
	client  *Client
	builder *EventBuilder
	tokens  TokenResolver
}

func NewService(client *Client, builder *EventBuilder, tokens TokenResolver) *Service {
	return &Service{
		client:  client,
		builder: builder,
		tokens:  tokens,
	}
}

// resolveToken returns the user's access token, or "" when the
// calendar is not connected
func (s *Service) resolveToken(ctx context.Context, userID uuid.UUID) string {
	token, err := s.tokens.CalendarAccessToken(ctx, userID)
	if err != nil {
		log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Debug("No calendar token available")
		return ""
	}
	return token
}

func (s *Service) createEvent(ctx context.Context, userID uuid.UUID, event Event) string {
	token := s.resolveToken(ctx, userID)
	if token == "" {
		return ""
	}

	eventID, err := s.client.CreateEvent(ctx, token, event)
	if err != nil {
		log.WithFields(logrus.Fields{
			"user_id": userID,
			"summary": event.Summary,
			"error":   err,
		}).Error("Failed to create calendar event")
		return ""
	}

	log.WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": eventID,
	}).Info("Calendar event created")
	return eventID
}

// SyncHabit creates a daily-recurring event for a habit and returns
// the remote event id, or "" on any failure
func (s *Service) SyncHabit(ctx context.Context, userID uuid.UUID, title, description, timeOfDay string) string {
	event := s.builder.HabitEvent(title, description, timeOfDay, time.Now())
	eventID := s.createEvent(ctx, userID, event)
	observeSync("habit", eventID != "")
	return eventID
}

// SyncRoutine creates a weekly-recurring event for a routine and
// returns the remote event id, or "" on any failure
func (s *Service) SyncRoutine(ctx context.Context, userID uuid.UUID, title, description, startTime, endTime string, daysOfWeek []int) string {
	event := s.builder.RoutineEvent(title, description, startTime, endTime, daysOfWeek, time.Now())
	eventID := s.createEvent(ctx, userID, event)
	observeSync("routine", eventID != "")
	return eventID
}

// SyncTask creates a single event anchored at the task's due instant
// and returns the remote event id, or "" on any failure
func (s *Service) SyncTask(ctx context.Context, userID uuid.UUID, title, description string, due time.Time) string {
	event := s.builder.TaskEvent(title, description, due)
	eventID := s.createEvent(ctx, userID, event)
	observeSync("task", eventID != "")
	return eventID
}

// RemoveEvent deletes the remote event and reports whether it
// succeeded
func (s *Service) RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool {
	if eventID == "" {
		return false
	}

	token := s.resolveToken(ctx, userID)
	if token == "" {
		return false
	}

	if err := s.client.DeleteEvent(ctx, token, eventID); err != nil {
		log.WithFields(logrus.Fields{
			"user_id":  userID,
			"event_id": eventID,
			"error":    err,
		}).Error("Failed to delete calendar event")
		observeSync("delete", false)
		return false
	}
	observeSync("delete", true)

	log.WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": eventID,
	}).Info("Calendar event deleted")
	return true
}
