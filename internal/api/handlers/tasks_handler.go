package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelmonteirotf/habitus-app/internal/api/dto"
	"github.com/samuelmonteirotf/habitus-app/internal/api/middleware"
	"github.com/samuelmonteirotf/habitus-app/internal/domain/tasks"
)

// TasksHandler handles HTTP requests for task operations
type TasksHandler struct {
	service tasks.Service
}

// NewTasksHandler creates a new tasks handler
func NewTasksHandler(service tasks.Service) *TasksHandler {
	return &TasksHandler{service: service}
}

func taskStatusCode(err error) int {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, tasks.ErrTitleRequired), errors.Is(err, tasks.ErrInvalidPriority),
		errors.Is(err, tasks.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Creates a task; tasks with a due date get a calendar event when a calendar is linked
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task data"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tasks [post]
func (h *TasksHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), tasks.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		RoutineID:   req.RoutineID,
	})
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toTaskResponse(task)})
}

// ListTasks godoc
// @Summary List tasks
// @Description Returns tasks of the authenticated user filtered by status
// @Tags tasks
// @Produce json
// @Param status query string false "Status filter: all, today, pending, completed, overdue" default(all)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.TaskListResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TasksHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	status := tasks.TaskStatus(c.DefaultQuery("status", string(tasks.TaskStatusAll)))
	switch status {
	case tasks.TaskStatusAll, tasks.TaskStatusToday, tasks.TaskStatusPending, tasks.TaskStatusCompleted, tasks.TaskStatusOverdue:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	list, total, err := h.service.ListTasks(c.Request.Context(), tasks.TaskFilter{
		UserID:   &userID,
		Status:   status,
		Now:      time.Now(),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	items := make([]dto.TaskResponse, len(list))
	for i := range list {
		items[i] = toTaskResponse(&list[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TaskListResponse{
		Tasks:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}})
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TasksHandler) GetTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	if task.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": tasks.ErrTaskNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTaskResponse(task)})
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TasksHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), taskID, userID, tasks.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		RoutineID:   req.RoutineID,
		Completed:   req.Completed,
	})
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTaskResponse(task)})
}

// ToggleTask godoc
// @Summary Toggle task completion
// @Description Flips the completed flag of a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tasks/{id}/toggle [post]
func (h *TasksHandler) ToggleTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	task, err := h.service.ToggleCompleted(c.Request.Context(), taskID, userID)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTaskResponse(task)})
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Removes the task and the linked calendar event
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TasksHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toTaskResponse(t *tasks.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:                    t.ID,
		UserID:                t.UserID,
		Title:                 t.Title,
		Description:           t.Description,
		DueDate:               t.DueDate,
		Priority:              t.Priority,
		RoutineID:             t.RoutineID,
		Completed:             t.Completed,
		GoogleCalendarEventID: t.GoogleCalendarEventID,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}
