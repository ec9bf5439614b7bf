package habits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday afternoon; the week started on Sunday June 15
var statsNow = time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return statsNow.AddDate(0, 0, -n)
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name        string
		completions []time.Time
		expected    HabitStats
	}{
		{
			name:        "No completions returns all zeros",
			completions: []time.Time{},
			expected:    HabitStats{},
		},
		{
			name: "Gap two days back ends the streak at three",
			completions: []time.Time{
				daysAgo(0),
				daysAgo(1),
				daysAgo(2),
				daysAgo(4),
			},
			expected: HabitStats{
				TodayCompleted:   true,
				Streak:           3,
				WeekProgress:     43, // daysAgo(4) lands before Sunday; 300/7 rounds up
				MonthProgress:    13, // 400/30
				TotalCompletions: 4,
			},
		},
		{
			name: "Missing today resets the streak to zero",
			completions: []time.Time{
				daysAgo(1),
				daysAgo(2),
				daysAgo(3),
			},
			expected: HabitStats{
				TodayCompleted:   false,
				Streak:           0,
				WeekProgress:     43, // 3 completions this week
				MonthProgress:    10,
				TotalCompletions: 3,
			},
		},
		{
			name: "Week progress clamps at one hundred",
			completions: []time.Time{
				daysAgo(0), daysAgo(0), daysAgo(0),
				daysAgo(1), daysAgo(1), daysAgo(1),
				daysAgo(2), daysAgo(2), daysAgo(2),
				daysAgo(2),
			},
			expected: HabitStats{
				TodayCompleted:   true,
				Streak:           3,
				WeekProgress:     100, // 10 completions, clamped
				MonthProgress:    33,
				TotalCompletions: 10,
			},
		},
		{
			name: "Duplicate completions on one day count once in the streak",
			completions: []time.Time{
				daysAgo(0),
				statsNow.Add(-2 * time.Hour),
				statsNow.Add(-4 * time.Hour),
			},
			expected: HabitStats{
				TodayCompleted:   true,
				Streak:           1,
				WeekProgress:     43,
				MonthProgress:    10,
				TotalCompletions: 3,
			},
		},
		{
			name: "Completion just before midnight stays on yesterday",
			completions: []time.Time{
				time.Date(2025, 6, 17, 23, 59, 0, 0, time.UTC),
			},
			expected: HabitStats{
				TodayCompleted:   false,
				Streak:           0,
				WeekProgress:     14,
				MonthProgress:    3,
				TotalCompletions: 1,
			},
		},
		{
			name: "Completions before the week start only count for the month",
			completions: []time.Time{
				time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC),
			},
			expected: HabitStats{
				TodayCompleted:   false,
				Streak:           0,
				WeekProgress:     0,
				MonthProgress:    7, // 200/30 rounds up
				TotalCompletions: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.completions, statsNow, time.UTC)
			assert.Equal(t, tt.expected, stats)
		})
	}
}

func TestComputeStatsLongStreak(t *testing.T) {
	var completions []time.Time
	for i := 0; i < 40; i++ {
		completions = append(completions, daysAgo(i))
	}

	stats := ComputeStats(completions, statsNow, time.UTC)

	assert.Equal(t, 40, stats.Streak)
	assert.True(t, stats.TodayCompleted)
	assert.Equal(t, 57, stats.WeekProgress)  // 4 completions since Sunday
	assert.Equal(t, 60, stats.MonthProgress) // 18 completions since June 1
	assert.Equal(t, 40, stats.TotalCompletions)
}

func TestStartOfWeekIsSundayMidnight(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected time.Time
	}{
		{
			name:     "Midweek",
			instant:  time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday maps to itself",
			instant:  time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Saturday is six days in",
			instant:  time.Date(2025, 6, 21, 23, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, startOfWeek(tt.instant))
		})
	}
}
