package profilemock

import (
	"context"

	domain "lendpool-backend/internal/domain/profile"
)

// Repo is a function-backed mock that satisfies profile.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, p *domain.UserProfile) error
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveFn        func(ctx context.Context, p *domain.UserProfile) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.UserProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.UserProfile) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
