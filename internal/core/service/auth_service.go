package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenService
	revoked ports.RevocationList
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, revoked ports.RevocationList, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoked: revoked, logger: logger}
}

// Register creates an account with the default user role and returns it with
// a freshly issued session token. Email uniqueness is enforced by the store's
// unique index; there is no racy pre-check.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", domain.NewValidationError("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// CurrentUser resolves an account by id.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Logout revokes the given token until its natural expiry. It is best-effort
// and never fails: a missing, malformed or already-expired token is simply
// ignored, and a revocation-store outage is logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil || claims.TokenID == "" {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		s.logger.Warn().Err(err).Str("user_id", claims.UserID).Msg("token revocation failed")
		return nil
	}

	metrics.TokensRevokedTotal.Inc()
	s.logger.Info().Str("user_id", claims.UserID).Msg("token revoked")
	return nil
}
