package mysql

import (
	"context"

	loanDomain "lendpool-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanBidRepository struct{ db *gorm.DB }

func NewLoanBidRepository(db *gorm.DB) *LoanBidRepository { return &LoanBidRepository{db: db} }

func (r *LoanBidRepository) Create(ctx context.Context, b *loanDomain.LoanBid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *LoanBidRepository) GetByBidID(ctx context.Context, bidID string) (*loanDomain.LoanBid, error) {
	var out loanDomain.LoanBid
	res := r.db.WithContext(ctx).Where("bid_id = ?", bidID).First(&out)
	return &out, res.Error
}

func (r *LoanBidRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]loanDomain.LoanBid, error) {
	var out []loanDomain.LoanBid
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
