package dto

// DashboardResponse aggregates the day's numbers across all areas
type DashboardResponse struct {
	HabitsTotal          int64             `json:"habits_total"`
	HabitsCompletedToday int               `json:"habits_completed_today"`
	BestStreak           int               `json:"best_streak"`
	WeekProgressAvg      int               `json:"week_progress_avg"`
	CompletionsThisWeek  int64             `json:"completions_this_week"`
	TasksTotal           int64             `json:"tasks_total"`
	TasksCompleted       int64             `json:"tasks_completed"`
	TasksPending         int64             `json:"tasks_pending"`
	RoutinesToday        []RoutineResponse `json:"routines_today"`
	TasksToday           []TaskResponse    `json:"tasks_today"`
}
