package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the user business logic contract.
type Service interface {
	// Signup validates, hashes the password and persists a new user.
	// Returns ErrEmailAlreadyExists on duplicate email.
	Signup(ctx context.Context, req SignupRequest) (*PublicUser, error)

	// Login verifies credentials. Unknown email and wrong password both
	// return ErrInvalidCredentials.
	Login(ctx context.Context, req LoginRequest) (*PublicUser, error)

	// GetPublicUser resolves a user id to its public projection.
	GetPublicUser(ctx context.Context, id uuid.UUID) (*PublicUser, error)
}
