package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/config"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uint) (*billing.User, error)
	ParseAccessToken(token string) (*Actor, error)
}

// AuthResult is a freshly issued token pair
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	User         billing.User
}

type accessClaims struct {
	Email       string       `json:"email"`
	Role        billing.Role `json:"role"`
	HouseholdID *uint        `json:"hid,omitempty"`
	jwt.RegisteredClaims
}

// authService implements AuthService
type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       config.JWTConfig
	logger    *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg config.JWTConfig, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// HashPassword hashes a password with bcrypt's default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks the credentials and issues an access token and a refresh token
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithField("email", email).Warn("Login attempt for unknown account")
			return nil, newError(ErrInvalidCredentials, "invalid email or password")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("user_id", account.ID).Warn("Login attempt with wrong password")
		return nil, newError(ErrInvalidCredentials, "invalid email or password")
	}

	result, err := s.issue(ctx, toUser(account))
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", account.ID).Info("User logged in")
	return result, nil
}

// Refresh rotates a refresh token; the presented token cannot be used again
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, newError(ErrInvalidCredentials, "refresh token is missing")
	}

	userID, err := s.tokenRepo.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, newError(ErrInvalidCredentials, "refresh token is invalid or expired")
		}
		return nil, err
	}

	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrInvalidCredentials, "account no longer exists")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return s.issue(ctx, toUser(account))
}

// Logout revokes a refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.Delete(ctx, refreshToken)
}

// Me returns the current user
func (s *authService) Me(ctx context.Context, userID uint) (*billing.User, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "user %d not found", userID)
		}
		return nil, err
	}

	user := toUser(account)
	return &user, nil
}

// ParseAccessToken validates an access token and returns its actor
func (s *authService) ParseAccessToken(token string) (*Actor, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid access token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, newError(ErrInvalidCredentials, "invalid access token subject")
	}

	return &Actor{
		UserID:      uint(id),
		Email:       claims.Email,
		Role:        claims.Role,
		ApartmentID: claims.HouseholdID,
	}, nil
}

func (s *authService) issue(ctx context.Context, user billing.User) (*AuthResult, error) {
	now := s.now()
	claims := accessClaims{
		Email:       user.Email,
		Role:        user.Role,
		HouseholdID: user.HouseholdID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
			ID:        uuid.NewString(),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := uuid.NewString()
	if err := s.tokenRepo.Save(ctx, refresh, user.ID, s.cfg.RefreshTTL); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.cfg.AccessTTL,
		User:         user,
	}, nil
}
