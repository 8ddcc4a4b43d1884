package profile

import (
	"context"
	"errors"
	"time"

	"lendpool-backend/internal/domain/market"
	domain "lendpool-backend/internal/domain/profile"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

// UpsertInput carries the borrower data plus the credit score the external
// scoring collaborator computed. The core stores the score, it never
// derives one.
type UpsertInput struct {
	Score          *int    `json:"score"`
	ScoreCategory  string  `json:"score_category"`
	MonthlyIncome  float64 `json:"monthly_income"`
	WorkSituation  string  `json:"work_situation"`
	EducationLevel string  `json:"education_level"`
}

type ProfileDTO struct {
	UserID         string    `json:"user_id"`
	Score          *int      `json:"score,omitempty"`
	ScoreCategory  string    `json:"score_category,omitempty"`
	MonthlyIncome  float64   `json:"monthly_income,omitempty"`
	WorkSituation  string    `json:"work_situation,omitempty"`
	EducationLevel string    `json:"education_level,omitempty"`
	Complete       bool      `json:"complete"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toDTO(p *domain.UserProfile) *ProfileDTO {
	return &ProfileDTO{
		UserID:         p.UserID,
		Score:          p.Score,
		ScoreCategory:  p.ScoreCategory,
		MonthlyIncome:  p.MonthlyIncome,
		WorkSituation:  p.WorkSituation,
		EducationLevel: p.EducationLevel,
		Complete:       p.Complete(),
		UpdatedAt:      p.UpdatedAt,
	}
}

func (u *Usecase) Upsert(ctx context.Context, userID string, in UpsertInput) (*ProfileDTO, error) {
	if userID == "" {
		return nil, errors.New("invalid input")
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 1000) {
		return nil, errors.New("score out of range")
	}

	p, err := u.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		p.Score = in.Score
		p.ScoreCategory = in.ScoreCategory
		p.MonthlyIncome = in.MonthlyIncome
		p.WorkSituation = in.WorkSituation
		p.EducationLevel = in.EducationLevel
		if err := u.repo.Save(ctx, p); err != nil {
			return nil, market.Storage(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = &domain.UserProfile{
			UserID:         userID,
			Score:          in.Score,
			ScoreCategory:  in.ScoreCategory,
			MonthlyIncome:  in.MonthlyIncome,
			WorkSituation:  in.WorkSituation,
			EducationLevel: in.EducationLevel,
		}
		if err := u.repo.Create(ctx, p); err != nil {
			return nil, market.Storage(err)
		}
	default:
		return nil, market.Storage(err)
	}
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*ProfileDTO, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, market.Storage(err)
	}
	return toDTO(p), nil
}
