package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

type stubAdminService struct {
	users     []domain.User
	user      *domain.User
	tasks     []domain.TaskWithOwner
	userTasks []domain.Task
	err       error
	lastActor string
	lastID    string
	lastInput ports.CreateUserInput
}

func (s *stubAdminService) ListUsers(_ context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubAdminService) CreateUser(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastInput = in
	return s.user, nil
}

func (s *stubAdminService) UpdateUser(_ context.Context, id string, _ ports.UserPatch) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastID = id
	return s.user, nil
}

func (s *stubAdminService) Promote(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastID = id
	return s.user, nil
}

func (s *stubAdminService) Demote(_ context.Context, actorID, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastActor = actorID
	s.lastID = id
	return s.user, nil
}

func (s *stubAdminService) DeleteUser(_ context.Context, actorID, id string) error {
	s.lastActor = actorID
	s.lastID = id
	return s.err
}

func (s *stubAdminService) ListAllTasks(_ context.Context) ([]domain.TaskWithOwner, error) {
	return s.tasks, s.err
}

func (s *stubAdminService) ListUserTasks(_ context.Context, id string) ([]domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastID = id
	return s.userTasks, nil
}

func newAdminTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newAuthTestContext(method, target, body)
	c.Set(middleware.IdentityKey, domain.Identity{ID: "admin-1", Role: domain.RoleAdmin})
	return c, rec
}

func TestAdminHandler_CreateUser(t *testing.T) {
	svc := &stubAdminService{user: &domain.User{ID: "user-9", Name: "Ana", Role: domain.RoleAdmin}}
	h := NewAdminHandler(svc)

	c, rec := newAdminTestContext(http.MethodPost, "/api/admin/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret123","role":"admin"}`)
	if err := h.CreateUser(c); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastInput.Role != domain.RoleAdmin {
		t.Fatalf("role not forwarded: %+v", svc.lastInput)
	}
}

func TestAdminHandler_CreateUser_RejectsUnknownRole(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{})

	c, _ := newAdminTestContext(http.MethodPost, "/api/admin/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret123","role":"root"}`)
	err := h.CreateUser(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestAdminHandler_Promote(t *testing.T) {
	svc := &stubAdminService{user: &domain.User{ID: "user-2", Role: domain.RoleAdmin}}
	h := NewAdminHandler(svc)

	c, rec := newAdminTestContext(http.MethodPut, "/api/admin/users/user-2/promote", "")
	c.SetParamNames("id")
	c.SetParamValues("user-2")

	if err := h.Promote(c); err != nil {
		t.Fatalf("Promote returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User promoted to admin successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if svc.lastID != "user-2" {
		t.Fatalf("target id not forwarded: %q", svc.lastID)
	}
}

func TestAdminHandler_Demote_ForwardsActor(t *testing.T) {
	svc := &stubAdminService{user: &domain.User{ID: "user-2", Role: domain.RoleUser}}
	h := NewAdminHandler(svc)

	c, rec := newAdminTestContext(http.MethodPut, "/api/admin/users/user-2/demote", "")
	c.SetParamNames("id")
	c.SetParamValues("user-2")

	if err := h.Demote(c); err != nil {
		t.Fatalf("Demote returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastActor != "admin-1" || svc.lastID != "user-2" {
		t.Fatalf("actor/target not forwarded: actor=%q id=%q", svc.lastActor, svc.lastID)
	}
	if !strings.Contains(rec.Body.String(), "User demoted to regular user successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminHandler_Demote_SelfPassesThrough(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{err: domain.ErrSelfDemotion})

	c, _ := newAdminTestContext(http.MethodPut, "/api/admin/users/admin-1/demote", "")
	c.SetParamNames("id")
	c.SetParamValues("admin-1")

	if err := h.Demote(c); !errors.Is(err, domain.ErrSelfDemotion) {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminHandler(svc)

	c, rec := newAdminTestContext(http.MethodDelete, "/api/admin/users/user-2", "")
	c.SetParamNames("id")
	c.SetParamValues("user-2")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if resp.UserID != "user-2" {
		t.Fatalf("expected userId in response, got %+v", resp)
	}
	if svc.lastActor != "admin-1" {
		t.Fatalf("actor not forwarded: %q", svc.lastActor)
	}
}

func TestAdminHandler_ListAllTasks_OwnerShape(t *testing.T) {
	due := time.Now().Add(24 * time.Hour).UTC()
	svc := &stubAdminService{tasks: []domain.TaskWithOwner{
		{
			Task:  domain.Task{ID: "task-1", Title: "t1", DueDate: due, OwnerID: "user-1"},
			Owner: domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com"},
		},
	}}
	h := NewAdminHandler(svc)

	c, rec := newAdminTestContext(http.MethodGet, "/api/admin/tasks", "")
	if err := h.ListAllTasks(c); err != nil {
		t.Fatalf("ListAllTasks returned error: %v", err)
	}

	var resp []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		User  struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 task, got %d", len(resp))
	}
	if resp[0].User.Name != "Ana" || resp[0].User.Email != "ana@example.com" {
		t.Fatalf("owner summary missing: %+v", resp[0])
	}
}

func TestAdminHandler_ListUserTasks_UnknownUserPassesThrough(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{err: domain.ErrUserNotFound})

	c, _ := newAdminTestContext(http.MethodGet, "/api/admin/users/user-404/tasks", "")
	c.SetParamNames("id")
	c.SetParamValues("user-404")

	if err := h.ListUserTasks(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
