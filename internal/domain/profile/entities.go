package profile

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

// UserProfile stores the borrower data the scoring collaborator produced.
// Score is the credit score snapshot source for new loan requests; a
// profile without a score counts as incomplete.
type UserProfile struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID         string    `gorm:"size:32;uniqueIndex:ux_user_profiles_user_id" json:"user_id"`
	Score          *int      `gorm:"column:score" json:"score,omitempty"`
	ScoreCategory  string    `gorm:"size:32" json:"score_category,omitempty"`
	MonthlyIncome  float64   `gorm:"type:decimal(18,2)" json:"monthly_income,omitempty"`
	WorkSituation  string    `gorm:"size:64" json:"work_situation,omitempty"`
	EducationLevel string    `gorm:"size:64" json:"education_level,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Complete reports whether the profile carries a credit score.
func (p *UserProfile) Complete() bool { return p != nil && p.Score != nil }
