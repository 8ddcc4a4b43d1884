package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)
	Save(ctx context.Context, p *UserProfile) error
}
