// Package auth provides JWT bearer-token verification guarding the
// search API, generalized from the teacher's internal/web/auth.AuthService
// (token issuance is out of scope here — this domain's callers are
// provisioned a token out of band, so only validation is needed).
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Service validates bearer tokens presented to the search API.
type Service struct {
	secret []byte
}

// NewService creates a Service that verifies HS256 tokens signed with
// secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// ValidateToken parses and verifies tokenString, returning its claims.
// Only HS256 is accepted, guarding against algorithm-confusion attacks
// the same way the teacher's ValidateToken does.
func (s *Service) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != "HS256" {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
