package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"beetlevault-backend/internal/domains/beetle"
)

type beetleService struct {
	repo beetle.Repository
}

// NewBeetleService creates the service instance
func NewBeetleService(repo beetle.Repository) beetle.Service {
	return &beetleService{repo: repo}
}

func (s *beetleService) Create(ctx context.Context, ownerID uuid.UUID, input beetle.Input) (*beetle.WithOwner, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, err := input.ToBeetle(ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create beetle: %w", err)
	}

	// Re-read to attach the owner projection
	return s.repo.FindByID(ctx, b.ID)
}

// guardOwned fetches a record and enforces the guard order: existence
// first, then ownership.
func (s *beetleService) guardOwned(ctx context.Context, callerID, id uuid.UUID) (*beetle.WithOwner, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err // ErrBeetleNotFound or database error
	}

	if b.OwnerID != callerID {
		return nil, beetle.ErrNotOwner
	}

	return b, nil
}

func (s *beetleService) GetOwned(ctx context.Context, callerID, id uuid.UUID) (*beetle.WithOwner, error) {
	return s.guardOwned(ctx, callerID, id)
}

func (s *beetleService) ListOwned(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]beetle.WithOwner, int, error) {
	if page < 1 {
		page = beetle.DefaultPage
	}
	if pageSize < 1 || pageSize > beetle.MaxPageSize {
		pageSize = beetle.DefaultPageSize
	}

	return s.repo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *beetleService) Update(ctx context.Context, callerID, id uuid.UUID, req beetle.UpdateRequest) (*beetle.WithOwner, error) {
	existing, err := s.guardOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	merged := existing.Beetle
	if err := req.ApplyTo(&merged); err != nil {
		return nil, err
	}

	// The merged record must satisfy the full schema, cross-field rules
	// included
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, fmt.Errorf("update beetle: %w", err)
	}

	return s.repo.FindByID(ctx, id)
}

func (s *beetleService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.guardOwned(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete beetle: %w", err)
	}
	return nil
}

func (s *beetleService) PublicList(ctx context.Context, query beetle.PublicListQuery) ([]beetle.WithOwner, int, error) {
	return s.repo.ListPublic(ctx, query)
}

func (s *beetleService) PublicGet(ctx context.Context, id uuid.UUID) (*beetle.WithOwner, error) {
	return s.repo.FindPublishedByID(ctx, id)
}
