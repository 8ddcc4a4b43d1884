package http

import (
	"net/http"

	"lendpool-backend/internal/usecase/sweeper"

	"github.com/labstack/echo/v4"
)

// SweepHandler exposes the expiry sweep on demand, alongside the timer.
type SweepHandler struct{ sw *sweeper.Sweeper }

func NewSweepHandler(sw *sweeper.Sweeper) *SweepHandler { return &SweepHandler{sw: sw} }

func (h *SweepHandler) RunSweep(c echo.Context) error {
	rep, err := h.sw.RunExpirySweep(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
