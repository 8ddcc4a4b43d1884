package http

import (
	"errors"
	"net/http"

	"lendpool-backend/internal/domain/identity"
	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/market"
	"lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/profile"
	mw "lendpool-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

// writeDomainErr maps the marketplace error kinds onto HTTP statuses.
func writeDomainErr(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, loan.ErrBidNotFound),
		errors.Is(err, pool.ErrNotFound),
		errors.Is(err, pool.ErrBidNotFound),
		errors.Is(err, profile.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, market.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, market.ErrConflictRetry):
		code = http.StatusConflict
	case errors.Is(err, market.ErrStorageFailure):
		code = http.StatusInternalServerError
	default:
		// precondition-shaped failures: ProfileIncomplete, SelfBid,
		// NotAcceptingBids, BidNotImproving, PoolFull, bad input
		code = http.StatusBadRequest
	}
	return c.JSON(code, map[string]string{"error": err.Error()})
}

// requireUser pulls the identity attached by the Identity middleware.
func requireUser(c echo.Context) (identity.User, error) {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return identity.User{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return u, nil
}
