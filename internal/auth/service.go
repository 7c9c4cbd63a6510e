package auth

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned when username/password don't match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the single configured operator for API access.
type Service struct {
	operator     string
	passwordHash string
	jwtConfig    *JWTConfig
}

// NewService creates an authentication service for the operator account.
func NewService(operator, passwordHash string, jwtConfig *JWTConfig) *Service {
	return &Service{
		operator:     operator,
		passwordHash: passwordHash,
		jwtConfig:    jwtConfig,
	}
}

// Login validates operator credentials and returns a JWT token.
func (s *Service) Login(username, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(username), s.operator) {
		return "", ErrInvalidCredentials
	}
	if s.passwordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := ComparePassword(s.passwordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(s.jwtConfig, s.operator)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}
