package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edugate/internal/adapters/persistence/models"
	"edugate/internal/adapters/persistence/repositories"
	"edugate/internal/core/domain"
	"edugate/internal/pkg/jwt"
	"edugate/internal/pkg/password"
	"edugate/internal/pkg/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo  repositories.UserRepository
	hasher    *password.Hasher
	validator *validation.Validator
	secret    string
	tokenTTL  time.Duration
	log       *logrus.Logger
}

// NewAuthService creates a new auth service. secret signs every issued token.
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher *password.Hasher,
	secret string,
	tokenTTL time.Duration,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validation.New(),
		secret:    secret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

const maxPasswordBytes = 72

// SignupInput represents signup input
type SignupInput struct {
	FullName string  `json:"full_name" validate:"required,max=150"`
	Email    string  `json:"email" validate:"required,email,max=150"`
	Password string  `json:"password" validate:"required,max=72"`
	Role     string  `json:"role" validate:"required,oneof=student distributor"`
	Photo    *string `json:"photo"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginResult is the token plus the summary of the user it was issued to
type LoginResult struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// Signup registers a new user
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.UserResponse, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if err := s.validator.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	// bcrypt rejects inputs longer than 72 bytes
	if len(input.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         input.Role,
	}
	if input.Photo != nil && *input.Photo != "" {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")

	return user.ToResponse(), nil
}

// Login authenticates a user for the requested role and issues a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if err := s.validator.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmailAndRole(ctx, input.Email, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.FullName, user.Email, user.Role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user logged in")

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Verify checks a bearer token and returns the caller it identifies
func (s *AuthService) Verify(token string) (*domain.Caller, error) {
	claims, err := jwt.ValidateAccessToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if claims.UserID == "" || !role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Caller{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

// GetUserByID gets the summary of a single user
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}
