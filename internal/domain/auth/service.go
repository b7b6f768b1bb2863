package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/pkg/logger"
)

// Credentials is the login request.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is the login response.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Service authenticates the operator account configured for the mill.
type Service struct {
	jwt          *JWTService
	username     string
	passwordHash []byte
}

// NewService creates a new auth service.
func NewService(jwt *JWTService, username, passwordHash string) *Service {
	return &Service{
		jwt:          jwt,
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(creds.Password))
	if !userOK || passErr != nil {
		logger.Warn(ctx, "login rejected", "username", creds.Username)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(s.username)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "operator signed in", "username", s.username)
	return &Token{AccessToken: token, ExpiresAt: expiresAt, TokenType: "Bearer"}, nil
}

// JWT returns the token service, used by the auth middleware.
func (s *Service) JWT() *JWTService {
	return s.jwt
}

// HashPassword returns a bcrypt hash for the operator password setting.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
