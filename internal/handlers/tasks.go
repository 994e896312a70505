package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/pagination"
	"taskhub/backend/internal/repositories"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	callerID := middleware.CallerID(c)
	if callerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var input models.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input, callerID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListTasks reads an optional positive limit and an opaque resume token from
// the query string. Both nextToken and cursor are accepted for the token.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = parsed
	}

	token := c.Query("nextToken")
	if token == "" {
		token = c.Query("cursor")
	}

	page, err := h.taskService.List(c.Request.Context(), limit, token, middleware.CallerID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	if page.Tasks == nil {
		page.Tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, page)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var update models.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), update, middleware.CallerID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	err := h.taskService.Remove(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleTaskError is the single conversion point from service errors to
// responses. Anything unrecognized is logged with detail and surfaced as the
// generic 500.
func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, pagination.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pagination token"})
	default:
		log.Printf("task request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
