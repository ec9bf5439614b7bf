package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUTCBuilder(t *testing.T) *EventBuilder {
	t.Helper()
	b, err := NewEventBuilder("UTC", "")
	require.NoError(t, err)
	return b
}

func TestHabitEvent(t *testing.T) {
	b := newUTCBuilder(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	event := b.HabitEvent("Beber água", "2 litros por dia", "09:00", now)

	assert.Equal(t, "🎯 Beber água", event.Summary)
	assert.Equal(t, "Hábito: 2 litros por dia\n\nCriado pelo Hábitus", event.Description)
	assert.Equal(t, "2025-06-15T09:00:00Z", event.Start.DateTime)
	assert.Equal(t, "2025-06-15T09:30:00Z", event.End.DateTime)
	assert.Equal(t, "UTC", event.Start.TimeZone)
	assert.Equal(t, []string{"RRULE:FREQ=DAILY"}, event.Recurrence)
}

func TestHabitEventDefaultsToNineAM(t *testing.T) {
	b := newUTCBuilder(t)
	now := time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)

	event := b.HabitEvent("Meditar", "", "", now)

	assert.Equal(t, "2025-06-15T09:00:00Z", event.Start.DateTime)
}

func TestRoutineEvent(t *testing.T) {
	b := newUTCBuilder(t)

	tests := []struct {
		name          string
		now           time.Time
		daysOfWeek    []int
		expectedStart string
		expectedRule  string
	}{
		{
			name:          "Sunday advances to Monday for a Mon Wed Fri routine",
			now:           time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC), // Sunday
			daysOfWeek:    []int{1, 3, 5},
			expectedStart: "2025-06-16T07:00:00Z",
			expectedRule:  "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		},
		{
			name:          "Today counts when its weekday matches",
			now:           time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC), // Monday
			daysOfWeek:    []int{1, 3, 5},
			expectedStart: "2025-06-16T07:00:00Z",
			expectedRule:  "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		},
		{
			name:          "Saturday wraps to next Tuesday",
			now:           time.Date(2025, 6, 21, 8, 0, 0, 0, time.UTC), // Saturday
			daysOfWeek:    []int{2},
			expectedStart: "2025-06-24T07:00:00Z",
			expectedRule:  "RRULE:FREQ=WEEKLY;BYDAY=TU",
		},
		{
			name:          "Weekend routine",
			now:           time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC), // Wednesday
			daysOfWeek:    []int{0, 6},
			expectedStart: "2025-06-21T07:00:00Z",
			expectedRule:  "RRULE:FREQ=WEEKLY;BYDAY=SU,SA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := b.RoutineEvent("Treino", "Academia", "07:00", "08:00", tt.daysOfWeek, tt.now)

			assert.Equal(t, "📅 Treino", event.Summary)
			assert.Equal(t, "Rotina: Academia\n\nCriado pelo Hábitus", event.Description)
			assert.Equal(t, tt.expectedStart, event.Start.DateTime)
			assert.Equal(t, []string{tt.expectedRule}, event.Recurrence)
		})
	}
}

func TestRoutineEventEndTimeSameDay(t *testing.T) {
	b := newUTCBuilder(t)
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)

	event := b.RoutineEvent("Treino", "", "07:00", "08:30", []int{1}, now)

	assert.Equal(t, "2025-06-16T07:00:00Z", event.Start.DateTime)
	assert.Equal(t, "2025-06-16T08:30:00Z", event.End.DateTime)
}

func TestTaskEvent(t *testing.T) {
	b := newUTCBuilder(t)
	due := time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC)

	event := b.TaskEvent("Pagar contas", "Luz e internet", due)

	assert.Equal(t, "✅ Pagar contas", event.Summary)
	assert.Equal(t, "Tarefa: Luz e internet\n\nCriado pelo Hábitus", event.Description)
	assert.Equal(t, "2025-06-20T14:00:00Z", event.Start.DateTime)
	assert.Equal(t, "2025-06-20T14:30:00Z", event.End.DateTime)
	assert.Empty(t, event.Recurrence)
}

func TestNextMatchingDayFallsBackToToday(t *testing.T) {
	now := time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, now, nextMatchingDay(now, nil))
	assert.Equal(t, now, nextMatchingDay(now, []int{}))
}
