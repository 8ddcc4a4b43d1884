package http

import (
	"net/http"
	"time"

	"lendpool-backend/internal/usecase/auction"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	uc *auction.Usecase
	// poolBidWindow is applied when a pooled request opens a new pool;
	// zero leaves the pool without an expiry.
	poolBidWindow time.Duration
}

func NewLoanHandler(uc *auction.Usecase, poolBidWindow time.Duration) *LoanHandler {
	return &LoanHandler{uc: uc, poolBidWindow: poolBidWindow}
}

type createLoanReq struct {
	Amount     float64 `json:"amount" validate:"required,gt=0,dec2"`
	TermMonths int     `json:"term_months" validate:"required,gt=0,lte=360"`
	Purpose    string  `json:"purpose"`
	WantsPool  bool    `json:"wants_pool"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	in := auction.CreateLoanInput{
		BorrowerID: user.ID,
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
		WantsPool:  req.WantsPool,
	}
	if req.WantsPool && h.poolBidWindow > 0 {
		exp := time.Now().UTC().Add(h.poolBidWindow)
		in.PoolExpiresAt = &exp
	}

	dto, err := h.uc.CreateLoanRequest(c.Request().Context(), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetOpenLoans(c echo.Context) error {
	out, err := h.uc.GetOpenLoans(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) GetMyLoans(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetMyLoans(c.Request().Context(), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) GetLoanDetail(c echo.Context) error {
	dto, err := h.uc.GetLoanDetail(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type placeBidReq struct {
	InterestRate float64 `json:"interest_rate" validate:"required,rate"`
}

func (h *LoanHandler) PlaceBid(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req placeBidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.PlaceBid(c.Request().Context(), c.Param("loan_id"), user.ID, req.InterestRate)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) AcceptBid(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.AcceptBid(c.Request().Context(), c.Param("loan_id"), c.Param("bid_id"), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CloseLoan(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.CloseLoanRequest(c.Request().Context(), c.Param("loan_id"), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) InvestDirect(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.InvestDirect(c.Request().Context(), c.Param("loan_id"), user.ID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
