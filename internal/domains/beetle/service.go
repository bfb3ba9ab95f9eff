package beetle

import (
	"context"

	"github.com/google/uuid"
)

// Service is the beetle business logic contract.
type Service interface {
	// Create persists a new record owned by the caller; client-supplied
	// owner fields are ignored.
	Create(ctx context.Context, ownerID uuid.UUID, input Input) (*WithOwner, error)

	// GetOwned fetches a record for its owner. Returns ErrBeetleNotFound
	// for absent ids and ErrNotOwner when the caller is not the owner;
	// existence is checked first.
	GetOwned(ctx context.Context, callerID, id uuid.UUID) (*WithOwner, error)

	// ListOwned pages through the caller's records, newest first.
	ListOwned(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]WithOwner, int, error)

	// Update applies a partial update after the same not-found/ownership
	// guards as GetOwned, re-validating the merged record.
	Update(ctx context.Context, callerID, id uuid.UUID, req UpdateRequest) (*WithOwner, error)

	// Delete removes a record after the same guards.
	Delete(ctx context.Context, callerID, id uuid.UUID) error

	// PublicList runs the public catalog query.
	PublicList(ctx context.Context, query PublicListQuery) ([]WithOwner, int, error)

	// PublicGet fetches one published record; unpublished records are
	// reported as not found.
	PublicGet(ctx context.Context, id uuid.UUID) (*WithOwner, error)
}
