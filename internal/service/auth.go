package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and authenticates them into JWT tokens.
type AuthService struct {
	users     UserRepository
	log       *logrus.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService initializes a new auth service.
func NewAuthService(users UserRepository, log *logrus.Logger, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, log: log, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new active USER with a hashed password. Username and
// email collisions surface as models.ErrInvalidArgument.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserDto, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", models.ErrInvalidArgument)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		Status:       models.UserActive,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	dto := user.ToDto()
	return &dto, nil
}

// Login authenticates a user and returns a signed JWT carrying the username
// and role. Blocked and expired users cannot log in; the error does not say
// why.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", models.ErrInvalidArgument)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", models.ErrInvalidArgument)
	}
	if user.Status != models.UserActive {
		return "", fmt.Errorf("%w: invalid credentials", models.ErrInvalidArgument)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"exp":  jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return tokenString, nil
}
