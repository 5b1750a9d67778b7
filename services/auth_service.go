package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin     = "admin"
	tokenLifetime = 24 * time.Hour
)

type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
}

type authService struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

// NewAuthService checks logins against a single bcrypt hash of the
// organizer's password and signs HS256 tokens with jwtSecret.
func NewAuthService(passwordHash, jwtSecret string) AuthService {
	return &authService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"role": RoleAdmin,
		"exp":  now.Add(tokenLifetime).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
