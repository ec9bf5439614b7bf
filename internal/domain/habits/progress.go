package habits

import (
	"math"
	"time"
)

// ComputeStats derives the progress figures for a habit from its raw
// completion instants, evaluated against "now" in the given location.
//
// Week and month percentages count every completion row, including
// duplicates on the same day. Only the streak is deduplicated by
// calendar day. target_count is intentionally not factored into the
// week percentage.
func ComputeStats(completions []time.Time, now time.Time, loc *time.Location) HabitStats {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	stats := HabitStats{
		TotalCompletions: len(completions),
	}
	if len(completions) == 0 {
		return stats
	}

	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)

	var weekCount, monthCount int
	dayKeys := make(map[string]struct{}, len(completions))

	for _, c := range completions {
		local := c.In(loc)
		if !local.Before(dayStart) && !local.After(dayEnd) {
			stats.TodayCompleted = true
		}
		if !local.Before(weekStart) {
			weekCount++
		}
		if !local.Before(monthStart) {
			monthCount++
		}
		dayKeys[local.Format("2006-01-02")] = struct{}{}
	}

	stats.WeekProgress = clampPercent(roundPercent(weekCount, 7))
	stats.MonthProgress = clampPercent(roundPercent(monthCount, 30))

	// Walk backward from today; the first day without a completion,
	// today included, ends the streak.
	for i := 0; ; i++ {
		day := dayStart.AddDate(0, 0, -i)
		if _, ok := dayKeys[day.Format("2006-01-02")]; !ok {
			break
		}
		stats.Streak++
	}

	return stats
}

// startOfDay returns local midnight of the instant's calendar day
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns local midnight of the most recent Sunday
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// startOfMonth returns local midnight of the 1st of the current month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// roundPercent rounds count/total to the nearest whole percent, so
// 3 of 7 days reads 43 rather than a truncated 42
func roundPercent(count, total int) int {
	return int(math.Round(float64(count) * 100 / float64(total)))
}

func clampPercent(v int) int {
	if v > 100 {
		return 100
	}
	return v
}
