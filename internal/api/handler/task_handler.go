package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// TaskHandler handles the owner-scoped task CRUD routes. All routes require
// authentication; the owner is always the request identity.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List returns one page of the caller's tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Param        search  query     string  false  "Case-insensitive title filter"
// @Success      200     {object}  listTasksResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), identity.ID, ports.TaskQuery{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Tasks:      result.Tasks,
		TotalTasks: result.TotalTasks,
		TotalPages: result.TotalPages,
		Page:       result.Page,
	})
}

// Get returns a single owned task.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Create adds a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(c.Request().Context(), identity.ID, ports.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		DueDate:         req.DueDate,
		CalendarEventID: req.CalendarEventID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// Update patches an owned task.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.User != nil || req.CreatedAt != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot modify user or creation date")
	}

	task, err := h.service.Update(c.Request().Context(), identity.ID, c.Param("id"), ports.TaskPatch{
		Title:           req.Title,
		Description:     req.Description,
		DueDate:         req.DueDate,
		Completed:       req.Completed,
		CalendarEventID: req.CalendarEventID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Delete removes an owned task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  deleteTaskResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteTaskResponse{
		Message: "Task deleted successfully",
		TaskID:  deleted.ID,
	})
}
