package mysql

import (
	"context"
	"time"

	poolDomain "lendpool-backend/internal/domain/pool"

	"gorm.io/gorm"
)

type PoolRepository struct{ db *gorm.DB }

func NewPoolRepository(db *gorm.DB) *PoolRepository { return &PoolRepository{db: db} }

func (r *PoolRepository) Create(ctx context.Context, p *poolDomain.LoanPool) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PoolRepository) Save(ctx context.Context, p *poolDomain.LoanPool) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PoolRepository) GetByPoolID(ctx context.Context, poolID string) (*poolDomain.LoanPool, error) {
	var out poolDomain.LoanPool
	res := r.db.WithContext(ctx).Where("pool_id = ?", poolID).First(&out)
	return &out, res.Error
}

func (r *PoolRepository) GetByPoolIDForUpdate(ctx context.Context, poolID string) (*poolDomain.LoanPool, error) {
	var out poolDomain.LoanPool
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("pool_id = ?", poolID).
		First(&out)
	return &out, res.Error
}

func (r *PoolRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*poolDomain.LoanPool, error) {
	var out poolDomain.LoanPool
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

// FirstOpenWithCapacity picks the join target for a new pooled loan. The
// ascending-id order keeps assignment deterministic.
func (r *PoolRepository) FirstOpenWithCapacity(ctx context.Context, capacity int) (*poolDomain.LoanPool, error) {
	var out poolDomain.LoanPool
	res := r.db.WithContext(ctx).
		Where("status = ?", poolDomain.StatusOpen).
		Where("(SELECT COUNT(*) FROM loan_requests lr WHERE lr.pool_id = loan_pools.id) < ?", capacity).
		Order("id ASC").
		First(&out)
	return &out, res.Error
}

func (r *PoolRepository) ListOpen(ctx context.Context) ([]poolDomain.LoanPool, error) {
	var out []poolDomain.LoanPool
	res := r.db.WithContext(ctx).
		Where("status = ?", poolDomain.StatusOpen).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PoolRepository) ListExpired(ctx context.Context, now time.Time) ([]poolDomain.LoanPool, error) {
	var out []poolDomain.LoanPool
	res := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", poolDomain.StatusOpen, now).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
