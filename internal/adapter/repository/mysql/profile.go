package mysql

import (
	"context"

	profileDomain "lendpool-backend/internal/domain/profile"

	"gorm.io/gorm"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profileDomain.UserProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) Save(ctx context.Context, p *profileDomain.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profileDomain.UserProfile, error) {
	var out profileDomain.UserProfile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}
