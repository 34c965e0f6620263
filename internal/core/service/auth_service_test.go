package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *cloneUser(u))
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRevocationList struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocationList() *stubRevocationList {
	return &stubRevocationList{revoked: make(map[string]time.Time)}
}

func (l *stubRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if l.err != nil {
		return l.err
	}
	l.revoked[tokenID] = until
	return nil
}

func (l *stubRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	_, ok := l.revoked[tokenID]
	return ok, nil
}

func newTestAuthService(repo *stubUserRepo, revoked *stubRevocationList) *AuthService {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, revoked, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubRevocationList())

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw123456")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.PasswordHash == "pw123456" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject %q does not match user id %q", claims.UserID, user.ID)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevocationList())

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@example.com", "pw"},
		{"A", "", "pw"},
		{"A", "a@example.com", ""},
	} {
		_, _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubRevocationList())

	if _, _, err := svc.Register(context.Background(), "A", "a@example.com", "pw123456"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "B", "a@example.com", "other"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubRevocationList())

	registered, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubRevocationList())

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")

	// Wrong password and unknown email must be indistinguishable.
	_, _, errWrongPassword := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, errUnknownEmail := svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if errWrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPassword)
	}
	if errUnknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", errWrongPassword, errUnknownEmail)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	revoked := newStubRevocationList()
	svc := newTestAuthService(repo, revoked)

	_, token, err := svc.Register(context.Background(), "Erin", "erin@example.com", "pw123456")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(revoked.revoked) != 1 {
		t.Fatalf("expected one revoked token, got %d", len(revoked.revoked))
	}
}

func TestAuthService_Logout_ToleratesBadToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubRevocationList())

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token failed: %v", err)
	}
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with malformed token failed: %v", err)
	}
}
