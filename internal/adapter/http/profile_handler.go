package http

import (
	"net/http"

	"lendpool-backend/internal/usecase/profile"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct{ uc *profile.Usecase }

func NewProfileHandler(uc *profile.Usecase) *ProfileHandler { return &ProfileHandler{uc: uc} }

type upsertProfileReq struct {
	Score          *int    `json:"score" validate:"omitempty,gte=0,lte=1000"`
	ScoreCategory  string  `json:"score_category"`
	MonthlyIncome  float64 `json:"monthly_income" validate:"omitempty,gte=0"`
	WorkSituation  string  `json:"work_situation"`
	EducationLevel string  `json:"education_level"`
}

func (h *ProfileHandler) Upsert(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req upsertProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Upsert(c.Request().Context(), user.ID, profile.UpsertInput{
		Score:          req.Score,
		ScoreCategory:  req.ScoreCategory,
		MonthlyIncome:  req.MonthlyIncome,
		WorkSituation:  req.WorkSituation,
		EducationLevel: req.EducationLevel,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
