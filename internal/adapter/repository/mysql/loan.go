package mysql

import (
	"context"

	loanDomain "lendpool-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate acquires a row lock; only meaningful inside a tx.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListPending(ctx context.Context) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("status = ?", loanDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByPoolID(ctx context.Context, poolID uint64) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByPoolID(ctx context.Context, poolID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.LoanRequest{}).
		Where("pool_id = ?", poolID).
		Count(&n)
	return n, res.Error
}
