package service

import (
	"context"
	"fmt"
	"time"

	"gantabya/internal/auth"
	"gantabya/internal/redis"
)

// SessionService verifies and revokes access tokens.
type SessionService struct {
	tokens   *auth.Manager
	denylist redis.TokenDenylistInterface
	now      func() time.Time
}

// NewSessionService creates a new SessionService. denylist may be nil,
// in which case logout cannot revoke tokens before they expire.
func NewSessionService(tokens *auth.Manager, denylist redis.TokenDenylistInterface) *SessionService {
	return &SessionService{
		tokens:   tokens,
		denylist: denylist,
		now:      time.Now,
	}
}

// Authenticate parses the token and rejects revoked ones.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *SessionService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.denylist == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}
