package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims binds an API token to one workspace. Every uploaded document,
// analysis record and chat session is scoped to the workspace id.
type Claims struct {
	WorkspaceID string `json:"workspace_id"`
	jwtlib.RegisteredClaims
}

func GenerateToken(workspaceID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		WorkspaceID: workspaceID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtlib.Token) (interface{}, error) {
		if token.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.WorkspaceID == "" {
		return nil, errors.New("missing workspace")
	}
	return claims, nil
}
