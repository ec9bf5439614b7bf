package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/habits"
)

// HabitsHandler handles HTTP requests for habit operations
type HabitsHandler struct {
	service habits.Service
}

// NewHabitsHandler creates a new habits handler
func NewHabitsHandler(service habits.Service) *HabitsHandler {
	return &HabitsHandler{service: service}
}

// CreateHabit godoc
// @Summary Create a new habit
// @Description Creates a habit for the authenticated user and schedules a daily calendar event when a calendar is linked
// @Tags habits
// @Accept json
// @Produce json
// @Param habit body dto.CreateHabitRequest true "Habit data"
// @Success 201 {object} dto.HabitResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /habits [post]
func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.service.CreateHabit(c.Request.Context(), habits.CreateHabitInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetCount: req.TargetCount,
		TimeOfDay:   req.TimeOfDay,
		Color:       req.Color,
		Frequency:   req.Frequency,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrInvalidInput) || errors.Is(err, habits.ErrTitleRequired) ||
			errors.Is(err, habits.ErrInvalidFrequency) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toHabitResponse(habit)})
}

// ListHabits godoc
// @Summary List habits
// @Description Returns all habits of the authenticated user with computed progress stats
// @Tags habits
// @Produce json
// @Success 200 {object} dto.HabitListResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /habits [get]
func (h *HabitsHandler) ListHabits(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	result, err := h.service.ListHabitsWithStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list habits"})
		return
	}

	items := make([]dto.HabitWithStatsResponse, len(result))
	for i, hw := range result {
		items[i] = dto.HabitWithStatsResponse{
			HabitResponse: toHabitResponse(&hw.Habit),
			Stats:         toHabitStatsResponse(hw.Stats),
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.HabitListResponse{
		Habits:     items,
		TotalCount: int64(len(items)),
	}})
}

// GetHabit godoc
// @Summary Get a habit
// @Description Returns a single habit by ID
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} dto.HabitResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [get]
func (h *HabitsHandler) GetHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	habit, err := h.service.GetHabit(c.Request.Context(), habitID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrHabitNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}
	if habit.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": habits.ErrHabitNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toHabitResponse(habit)})
}

// UpdateHabit godoc
// @Summary Update a habit
// @Description Updates habit fields; the linked calendar event is not re-synced
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param habit body dto.UpdateHabitRequest true "Fields to update"
// @Success 200 {object} dto.HabitResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [put]
func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.service.UpdateHabit(c.Request.Context(), habitID, userID, habits.UpdateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		TargetCount: req.TargetCount,
		TimeOfDay:   req.TimeOfDay,
		Color:       req.Color,
		Frequency:   req.Frequency,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, habits.ErrHabitNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, habits.ErrInvalidInput), errors.Is(err, habits.ErrTitleRequired),
			errors.Is(err, habits.ErrInvalidFrequency):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toHabitResponse(habit)})
}

// DeactivateHabit godoc
// @Summary Deactivate a habit
// @Description Flags the habit inactive so it drops out of listings; completion logs are kept
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} dto.HabitResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/deactivate [post]
func (h *HabitsHandler) DeactivateHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	habit, err := h.service.DeactivateHabit(c.Request.Context(), habitID, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrHabitNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toHabitResponse(habit)})
}

// DeleteHabit godoc
// @Summary Delete a habit
// @Description Removes the habit, its completion logs, and the linked calendar event
// @Tags habits
// @Param id path string true "Habit ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id} [delete]
func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), habitID, userID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrHabitNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleCompletion godoc
// @Summary Toggle today's completion
// @Description Marks the habit done for today, or undoes it when already done, and returns refreshed stats
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param body body dto.ToggleCompletionRequest false "Optional completion note"
// @Success 200 {object} dto.HabitStatsResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/toggle [post]
func (h *HabitsHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	var req dto.ToggleCompletionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	stats, err := h.service.ToggleCompletion(c.Request.Context(), habitID, userID, req.Note)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrHabitNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toHabitStatsResponse(*stats)})
}

// GetHabitStats godoc
// @Summary Get habit stats
// @Description Returns streak and progress figures for a single habit
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} dto.HabitStatsResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/stats [get]
func (h *HabitsHandler) GetHabitStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	stats, err := h.service.GetHabitStats(c.Request.Context(), habitID, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, habits.ErrHabitNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toHabitStatsResponse(*stats)})
}

// GetHeatmap godoc
// @Summary Get completion heatmap
// @Description Returns per-day completion counts across all habits for the given period
// @Tags habits
// @Produce json
// @Param period query string false "Period: week, month or year" default(year)
// @Success 200 {object} dto.HeatmapResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /habits/heatmap [get]
func (h *HabitsHandler) GetHeatmap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	period := c.DefaultQuery("period", "year")

	data, err := h.service.GetHeatmapData(c.Request.Context(), userID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load heatmap"})
		return
	}

	minValue, maxValue := 0, 0
	for _, v := range data {
		if v > maxValue {
			maxValue = v
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.HeatmapResponse{
		Data:     data,
		Period:   period,
		MinValue: minValue,
		MaxValue: maxValue,
	}})
}

func toHabitResponse(h *habits.Habit) dto.HabitResponse {
	return dto.HabitResponse{
		ID:                    h.ID,
		UserID:                h.UserID,
		Title:                 h.Title,
		Description:           h.Description,
		TargetCount:           h.TargetCount,
		TimeOfDay:             h.TimeOfDay,
		Color:                 h.Color,
		Frequency:             h.Frequency,
		IsActive:              h.IsActive,
		GoogleCalendarEventID: h.GoogleCalendarEventID,
		CreatedAt:             h.CreatedAt,
		UpdatedAt:             h.UpdatedAt,
	}
}

func toHabitStatsResponse(s habits.HabitStats) dto.HabitStatsResponse {
	return dto.HabitStatsResponse{
		TodayCompleted:   s.TodayCompleted,
		Streak:           s.Streak,
		WeekProgress:     s.WeekProgress,
		MonthProgress:    s.MonthProgress,
		TotalCompletions: s.TotalCompletions,
	}
}
