package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// EventFooter is stamped onto every synced event description
	EventFooter = "Criado pelo Hábitus"

	habitGlyph   = "🎯"
	routineGlyph = "📅"
	taskGlyph    = "✅"

	defaultHabitTime = "09:00"
	eventDuration    = 30 * time.Minute
)

// weekdayCodes maps weekday numbers (0 = Sunday) to the two-letter
// RRULE codes
var weekdayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// EventTime carries an instant with its explicit zone identifier so
// the remote service never has to infer the caller's zone
type EventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Event is the calendar wire schema
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Recurrence  []string  `json:"recurrence,omitempty"`
}

// EventBuilder produces calendar events in a fixed time zone
type EventBuilder struct {
	loc       *time.Location
	tzName    string
	habitTime string
}

// NewEventBuilder loads tzName and uses habitTime as the start for
// habit events that carry no time of day ("" falls back to 09:00)
func NewEventBuilder(tzName, habitTime string) (*EventBuilder, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", tzName, err)
	}
	if habitTime == "" {
		habitTime = defaultHabitTime
	}
	return &EventBuilder{loc: loc, tzName: tzName, habitTime: habitTime}, nil
}

// Location returns the builder's time zone
func (b *EventBuilder) Location() *time.Location {
	return b.loc
}

// HabitEvent builds a daily-recurring 30-minute event starting today
// at timeOfDay
func (b *EventBuilder) HabitEvent(title, description, timeOfDay string, now time.Time) Event {
	if timeOfDay == "" {
		timeOfDay = b.habitTime
	}
	start := b.atTimeOfDay(now.In(b.loc), timeOfDay)
	end := start.Add(eventDuration)

	return Event{
		Summary:     habitGlyph + " " + title,
		Description: "Hábito: " + description + "\n\n" + EventFooter,
		Start:       b.eventTime(start),
		End:         b.eventTime(end),
		Recurrence:  []string{"RRULE:FREQ=DAILY"},
	}
}

// RoutineEvent builds a weekly-recurring event anchored on the nearest
// date, today included, whose weekday is in daysOfWeek
func (b *EventBuilder) RoutineEvent(title, description, startTime, endTime string, daysOfWeek []int, now time.Time) Event {
	day := nextMatchingDay(now.In(b.loc), daysOfWeek)
	start := b.atTimeOfDay(day, startTime)
	end := b.atTimeOfDay(day, endTime)

	codes := make([]string, 0, len(daysOfWeek))
	for _, d := range daysOfWeek {
		if d >= 0 && d <= 6 {
			codes = append(codes, weekdayCodes[d])
		}
	}

	return Event{
		Summary:     routineGlyph + " " + title,
		Description: "Rotina: " + description + "\n\n" + EventFooter,
		Start:       b.eventTime(start),
		End:         b.eventTime(end),
		Recurrence:  []string{"RRULE:FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",")},
	}
}

// TaskEvent builds a single 30-minute event anchored at the due
// instant
func (b *EventBuilder) TaskEvent(title, description string, due time.Time) Event {
	start := due.In(b.loc)
	end := start.Add(eventDuration)

	return Event{
		Summary:     taskGlyph + " " + title,
		Description: "Tarefa: " + description + "\n\n" + EventFooter,
		Start:       b.eventTime(start),
		End:         b.eventTime(end),
	}
}

func (b *EventBuilder) eventTime(t time.Time) EventTime {
	return EventTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: b.tzName,
	}
}

// atTimeOfDay anchors an HH:MM clock reading onto the given day
func (b *EventBuilder) atTimeOfDay(day time.Time, clock string) time.Time {
	hours, minutes := parseClock(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, b.loc)
}

func parseClock(clock string) (int, int) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours, minutes
}

// nextMatchingDay walks forward from today, today included, to the
// first date whose weekday is in daysOfWeek. With an empty or invalid
// set it falls back to today.
func nextMatchingDay(now time.Time, daysOfWeek []int) time.Time {
	want := make(map[int]struct{}, len(daysOfWeek))
	for _, d := range daysOfWeek {
		want[d] = struct{}{}
	}
	if len(want) == 0 {
		return now
	}

	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		if _, ok := want[int(day.Weekday())]; ok {
			return day
		}
	}
	return now
}
