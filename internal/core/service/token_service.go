package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// sessionClaims is the wire shape of a session token. The subject identifier
// is always emitted as the registered "sub" claim; "userId" is accepted on
// read only, as a compatibility shim for tokens minted before the claim
// shape was normalized.
type sessionClaims struct {
	Role     string `json:"role"`
	LegacyID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. The signing key is
// loaded once at startup and never mutated afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token embedding the subject id, the role at issue time, the
// issue and expiry timestamps and a random token id used for revocation.
func (s *TokenService) Issue(userID, role string) (string, error) {
	if userID == "" {
		return "", domain.NewValidationError("user id is required")
	}
	if !domain.ValidRole(role) {
		return "", domain.NewValidationError("invalid role")
	}

	now := s.now().UTC()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        newTokenID(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify decodes and validates a token string. Any failure (bad signature,
// malformed payload, missing subject, expiry) collapses into
// domain.ErrInvalidToken; callers never learn which check failed.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.LegacyID
	}
	if subject == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		UserID:    subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// newTokenID returns a random 128-bit hex identifier.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
