package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/habits"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/routines"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/tasks"
)

// DashboardHandler aggregates the day's summary across habits, routines
// and tasks
type DashboardHandler struct {
	habits   habits.Service
	routines routines.Service
	tasks    tasks.Service
	loc      *time.Location
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(habitsSvc habits.Service, routinesSvc routines.Service, tasksSvc tasks.Service, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{
		habits:   habitsSvc,
		routines: routinesSvc,
		tasks:    tasksSvc,
		loc:      loc,
	}
}

// GetDashboard godoc
// @Summary Get the daily dashboard
// @Description Returns today's habit progress, task counts and the routines scheduled for today
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ctx := c.Request.Context()

	habitList, err := h.habits.ListHabitsWithStats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	completedToday, bestStreak, weekSum := 0, 0, 0
	for _, hw := range habitList {
		if hw.Stats.TodayCompleted {
			completedToday++
		}
		if hw.Stats.Streak > bestStreak {
			bestStreak = hw.Stats.Streak
		}
		weekSum += hw.Stats.WeekProgress
	}
	weekAvg := 0
	if len(habitList) > 0 {
		weekAvg = weekSum / len(habitList)
	}

	weekCompletions, err := h.habits.CountCompletionsThisWeek(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	tasksTotal, tasksCompleted, err := h.tasks.CountTasks(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	now := time.Now().In(h.loc)
	weekday := int(now.Weekday())
	todayRoutines, _, err := h.routines.ListRoutines(ctx, routines.RoutineFilter{
		UserID:  &userID,
		Weekday: &weekday,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	routineItems := make([]dto.RoutineResponse, len(todayRoutines))
	for i := range todayRoutines {
		routineItems[i] = toRoutineResponse(&todayRoutines[i])
	}

	todayTasks, _, err := h.tasks.ListTasks(ctx, tasks.TaskFilter{
		UserID: &userID,
		Status: tasks.TaskStatusToday,
		Now:    now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	taskItems := make([]dto.TaskResponse, len(todayTasks))
	for i := range todayTasks {
		taskItems[i] = toTaskResponse(&todayTasks[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.DashboardResponse{
		HabitsTotal:          int64(len(habitList)),
		HabitsCompletedToday: completedToday,
		BestStreak:           bestStreak,
		WeekProgressAvg:      weekAvg,
		CompletionsThisWeek:  weekCompletions,
		TasksTotal:           tasksTotal,
		TasksCompleted:       tasksCompleted,
		TasksPending:         tasksTotal - tasksCompleted,
		RoutinesToday:        routineItems,
		TasksToday:           taskItems,
	}})
}
