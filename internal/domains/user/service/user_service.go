package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"beetlevault-backend/internal/domains/user"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
}

// NewUserService creates the service instance
func NewUserService(repo user.Repository) user.Service {
	return &userService{repo: repo}
}

// Signup creates a new account
func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.PublicUser, error) {
	// DTO validation is called at the handler layer; double-check here so
	// the service is safe to call directly.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         stringPtr(req.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	pub := newUser.ToPublic()
	return &pub, nil
}

// Login verifies credentials
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, user.ErrInvalidCredentials
	}

	// Constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	pub := u.ToPublic()
	return &pub, nil
}

// GetPublicUser resolves a user id to its public projection
func (s *userService) GetPublicUser(ctx context.Context, id uuid.UUID) (*user.PublicUser, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pub := u.ToPublic()
	return &pub, nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
