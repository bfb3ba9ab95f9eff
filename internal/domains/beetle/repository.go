package beetle

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the beetle data access contract.
type Repository interface {
	Create(ctx context.Context, b *Beetle) error

	// FindByID fetches a record regardless of publication state.
	// Used by owner paths; the service enforces ownership.
	FindByID(ctx context.Context, id uuid.UUID) (*WithOwner, error)

	// FindPublishedByID applies the mandatory isPublished predicate, so an
	// unpublished record is indistinguishable from an absent one.
	FindPublishedByID(ctx context.Context, id uuid.UUID) (*WithOwner, error)

	// ListByOwner returns one page of the owner's records,
	// newest-created-first, plus the total count.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]WithOwner, int, error)

	// ListPublic runs the catalog query and returns the page plus the total
	// count of the unpaginated filtered set.
	ListPublic(ctx context.Context, query PublicListQuery) ([]WithOwner, int, error)

	Update(ctx context.Context, b *Beetle) error
	Delete(ctx context.Context, id uuid.UUID) error
}
