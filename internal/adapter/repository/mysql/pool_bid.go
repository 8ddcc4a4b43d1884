package mysql

import (
	"context"

	poolDomain "lendpool-backend/internal/domain/pool"

	"gorm.io/gorm"
)

type PoolBidRepository struct{ db *gorm.DB }

func NewPoolBidRepository(db *gorm.DB) *PoolBidRepository { return &PoolBidRepository{db: db} }

func (r *PoolBidRepository) Create(ctx context.Context, b *poolDomain.PoolBid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PoolBidRepository) GetByBidID(ctx context.Context, bidID string) (*poolDomain.PoolBid, error) {
	var out poolDomain.PoolBid
	res := r.db.WithContext(ctx).Where("bid_id = ?", bidID).First(&out)
	return &out, res.Error
}

func (r *PoolBidRepository) ListByPoolID(ctx context.Context, poolID uint64) ([]poolDomain.PoolBid, error) {
	var out []poolDomain.PoolBid
	res := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
