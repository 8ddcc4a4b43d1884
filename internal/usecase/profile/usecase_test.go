package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "lendpool-backend/internal/domain/profile"
	"lendpool-backend/internal/testutil/profilemock"

	"gorm.io/gorm"
)

var testUserID = strings.Repeat("a", 32)

func score(n int) *int { return &n }

func TestUpsert_CreatesWhenMissing(t *testing.T) {
	var created *domain.UserProfile
	repo := &profilemock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, p *domain.UserProfile) error {
			created = p
			return nil
		},
	}
	uc := NewUsecase(repo)

	dto, err := uc.Upsert(context.Background(), testUserID, UpsertInput{
		Score:         score(640),
		ScoreCategory: "near-prime",
		MonthlyIncome: 7_500_000,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created == nil || created.UserID != testUserID {
		t.Fatalf("profile not created: %+v", created)
	}
	if !dto.Complete || dto.Score == nil || *dto.Score != 640 {
		t.Fatalf("dto: %+v", dto)
	}
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	var savedScore *int
	repo := &profilemock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
			return &domain.UserProfile{UserID: userID, Score: score(500)}, nil
		},
		SaveFn: func(ctx context.Context, p *domain.UserProfile) error {
			savedScore = p.Score
			return nil
		},
	}
	uc := NewUsecase(repo)

	dto, err := uc.Upsert(context.Background(), testUserID, UpsertInput{Score: score(720)})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if savedScore == nil || *savedScore != 720 {
		t.Fatalf("saved score = %v, want 720", savedScore)
	}
	if *dto.Score != 720 {
		t.Fatalf("dto score = %v", *dto.Score)
	}
}

func TestUpsert_ScoreRange(t *testing.T) {
	uc := NewUsecase(&profilemock.Repo{})

	for _, bad := range []int{-1, 1001} {
		if _, err := uc.Upsert(context.Background(), testUserID, UpsertInput{Score: score(bad)}); err == nil {
			t.Errorf("score %d accepted", bad)
		}
	}
}

func TestGet(t *testing.T) {
	repo := &profilemock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo)

	if _, err := uc.Get(context.Background(), testUserID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	repo.GetByUserIDFn = func(ctx context.Context, userID string) (*domain.UserProfile, error) {
		return &domain.UserProfile{UserID: userID}, nil
	}
	dto, err := uc.Get(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dto.Complete {
		t.Fatal("unscored profile reported complete")
	}
}
