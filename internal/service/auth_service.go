package service

import (
	"fmt"
	"time"

	appErr "github.com/documind/documind/internal/pkg/errors"
	"github.com/documind/documind/internal/pkg/jwt"
	"github.com/documind/documind/internal/pkg/password"
)

// AuthService issues workspace tokens. A workspace is an anonymous
// scope: every document, analysis and chat session created with the
// token stays private to it. When the instance is configured with an
// access password hash, opening a workspace requires that password.
type AuthService struct {
	secret       []byte
	ttl          time.Duration
	passwordHash string
}

func NewAuthService(secret []byte, ttl time.Duration, passwordHash string) *AuthService {
	return &AuthService{secret: secret, ttl: ttl, passwordHash: passwordHash}
}

func (s *AuthService) OpenWorkspace(accessPassword string) (string, error) {
	if s.passwordHash != "" {
		if err := password.Verify(s.passwordHash, accessPassword); err != nil {
			return "", appErr.ErrUnauthorized
		}
	}
	token, err := jwt.GenerateToken(newID(), s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
