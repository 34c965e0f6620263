package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// AdminService implements user management and cross-user task views. The
// self-action guards live here rather than in middleware because the target
// of the action is a route parameter, not known before the handler runs.
type AdminService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser creates an account with an explicit role, defaulting to user.
func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.NewValidationError("Name, email, and password are required")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created by admin")
	return created, nil
}

// UpdateUser patches name, email and role of an account.
func (s *AdminService) UpdateUser(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, domain.NewValidationError("invalid role")
	}
	return s.users.Update(ctx, id, patch)
}

// Promote grants the admin role. Promoting yourself (or an existing admin)
// is a no-op-safe write and carries no guard.
func (s *AdminService) Promote(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.SetRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	metrics.RoleChangesTotal.WithLabelValues("promote").Inc()
	s.logger.Info().Str("user_id", id).Msg("user promoted to admin")
	return user, nil
}

// Demote revokes the admin role. An admin may not demote itself; this keeps
// the last admin from locking the cluster of admins out.
func (s *AdminService) Demote(ctx context.Context, actorID, id string) (*domain.User, error) {
	if actorID == id {
		return nil, domain.ErrSelfDemotion
	}

	user, err := s.users.SetRole(ctx, id, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	metrics.RoleChangesTotal.WithLabelValues("demote").Inc()
	s.logger.Info().Str("user_id", id).Str("actor_id", actorID).Msg("user demoted")
	return user, nil
}

// DeleteUser removes an account. An admin may not delete its own account
// through this endpoint.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfDeletion
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", actorID).Msg("user deleted")
	return nil
}

// ListAllTasks returns every task with its owner resolved, newest first.
func (s *AdminService) ListAllTasks(ctx context.Context) ([]domain.TaskWithOwner, error) {
	return s.tasks.ListAll(ctx)
}

// ListUserTasks returns one user's tasks, newest first. The user must exist.
func (s *AdminService) ListUserTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, userID)
}
