package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/routines"
)

// RoutinesHandler handles HTTP requests for routine operations
type RoutinesHandler struct {
	service routines.Service
}

// NewRoutinesHandler creates a new routines handler
func NewRoutinesHandler(service routines.Service) *RoutinesHandler {
	return &RoutinesHandler{service: service}
}

func routineStatusCode(err error) int {
	switch {
	case errors.Is(err, routines.ErrRoutineNotFound):
		return http.StatusNotFound
	case errors.Is(err, routines.ErrTitleRequired),
		errors.Is(err, routines.ErrNoWeekdays),
		errors.Is(err, routines.ErrInvalidWeekday),
		errors.Is(err, routines.ErrInvalidTime),
		errors.Is(err, routines.ErrInvalidInterval),
		errors.Is(err, routines.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateRoutine godoc
// @Summary Create a new routine
// @Description Creates a weekly routine and schedules a recurring calendar event when a calendar is linked
// @Tags routines
// @Accept json
// @Produce json
// @Param routine body dto.CreateRoutineRequest true "Routine data"
// @Success 201 {object} dto.RoutineResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /routines [post]
func (h *RoutinesHandler) CreateRoutine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine, err := h.service.CreateRoutine(c.Request.Context(), routines.CreateRoutineInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DaysOfWeek:  req.DaysOfWeek,
	})
	if err != nil {
		c.JSON(routineStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toRoutineResponse(routine)})
}

// ListRoutines godoc
// @Summary List routines
// @Description Returns all routines of the authenticated user, optionally filtered to a weekday
// @Tags routines
// @Produce json
// @Param weekday query int false "Weekday filter, 0 (Sunday) to 6 (Saturday)"
// @Success 200 {object} dto.RoutineListResponse
// @Security BearerAuth
// @Router /routines [get]
func (h *RoutinesHandler) ListRoutines(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	filter := routines.RoutineFilter{UserID: &userID}
	if raw, exists := c.GetQuery("weekday"); exists {
		weekday, err := strconv.Atoi(raw)
		if err != nil || weekday < 0 || weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be between 0 and 6"})
			return
		}
		filter.Weekday = &weekday
	}

	list, total, err := h.service.ListRoutines(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list routines"})
		return
	}

	items := make([]dto.RoutineResponse, len(list))
	for i := range list {
		items[i] = toRoutineResponse(&list[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.RoutineListResponse{
		Routines:   items,
		TotalCount: total,
	}})
}

// GetRoutine godoc
// @Summary Get a routine
// @Tags routines
// @Produce json
// @Param id path string true "Routine ID"
// @Success 200 {object} dto.RoutineResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /routines/{id} [get]
func (h *RoutinesHandler) GetRoutine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	routineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid routine ID"})
		return
	}

	routine, err := h.service.GetRoutine(c.Request.Context(), routineID)
	if err != nil {
		c.JSON(routineStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	if routine.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": routines.ErrRoutineNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRoutineResponse(routine)})
}

// UpdateRoutine godoc
// @Summary Update a routine
// @Description Updates routine fields; the linked calendar event is not re-synced
// @Tags routines
// @Accept json
// @Produce json
// @Param id path string true "Routine ID"
// @Param routine body dto.UpdateRoutineRequest true "Fields to update"
// @Success 200 {object} dto.RoutineResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /routines/{id} [put]
func (h *RoutinesHandler) UpdateRoutine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	routineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid routine ID"})
		return
	}

	var req dto.UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine, err := h.service.UpdateRoutine(c.Request.Context(), routineID, userID, routines.UpdateRoutineInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DaysOfWeek:  req.DaysOfWeek,
	})
	if err != nil {
		c.JSON(routineStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRoutineResponse(routine)})
}

// DeleteRoutine godoc
// @Summary Delete a routine
// @Description Removes the routine and the linked calendar event
// @Tags routines
// @Param id path string true "Routine ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /routines/{id} [delete]
func (h *RoutinesHandler) DeleteRoutine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	routineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid routine ID"})
		return
	}

	if err := h.service.DeleteRoutine(c.Request.Context(), routineID, userID); err != nil {
		c.JSON(routineStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toRoutineResponse(r *routines.Routine) dto.RoutineResponse {
	return dto.RoutineResponse{
		ID:                    r.ID,
		UserID:                r.UserID,
		Title:                 r.Title,
		Description:           r.Description,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		DaysOfWeek:            r.Weekdays(),
		GoogleCalendarEventID: r.GoogleCalendarEventID,
		IsActive:              r.IsActive,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
