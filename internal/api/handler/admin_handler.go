package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// AdminHandler handles user management and cross-user task views. All routes
// sit behind Auth and AdminOnly middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers returns all accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates an account with an explicit role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser patches name, email or role of an account.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userMessageResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// Promote grants the admin role.
//
// @Summary      Promote a user to admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userMessageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/promote [put]
func (h *AdminHandler) Promote(c echo.Context) error {
	user, err := h.service.Promote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "User promoted to admin successfully",
		User:    user,
	})
}

// Demote revokes the admin role. Demoting your own account is rejected.
//
// @Summary      Demote an admin to user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userMessageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/demote [put]
func (h *AdminHandler) Demote(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Demote(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "User demoted to regular user successfully",
		User:    user,
	})
}

// DeleteUser removes an account. Deleting your own account is rejected.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteUserResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if err := h.service.DeleteUser(c.Request().Context(), identity.ID, targetID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteUserResponse{
		Message: "User deleted successfully",
		UserID:  targetID,
	})
}

// ListAllTasks returns every task with its owner attached, newest first.
//
// @Summary      List all tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminTaskResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/tasks [get]
func (h *AdminHandler) ListAllTasks(c echo.Context) error {
	tasks, err := h.service.ListAllTasks(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]adminTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toAdminTask(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListUserTasks returns one user's tasks, newest first.
//
// @Summary      List a user's tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks [get]
func (h *AdminHandler) ListUserTasks(c echo.Context) error {
	tasks, err := h.service.ListUserTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
