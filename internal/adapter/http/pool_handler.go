package http

import (
	"net/http"

	"lendpool-backend/internal/usecase/auction"

	"github.com/labstack/echo/v4"
)

type PoolHandler struct{ uc *auction.Usecase }

func NewPoolHandler(uc *auction.Usecase) *PoolHandler { return &PoolHandler{uc: uc} }

func (h *PoolHandler) GetOpenPools(c echo.Context) error {
	out, err := h.uc.GetOpenPools(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PoolHandler) GetPoolDetail(c echo.Context) error {
	dto, err := h.uc.GetPoolDetail(c.Request().Context(), c.Param("pool_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type placePoolBidReq struct {
	InterestRate float64 `json:"interest_rate" validate:"required,rate"`
}

func (h *PoolHandler) PlacePoolBid(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req placePoolBidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.PlacePoolBid(c.Request().Context(), c.Param("pool_id"), user.ID, req.InterestRate)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PoolHandler) InvestInPool(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.InvestInPool(c.Request().Context(), c.Param("pool_id"), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
