package middleware

import (
	"net/http"
	"strings"

	"lendpool-backend/internal/domain/identity"

	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// Identity trusts the external identity provider's headers and attaches a
// fixed-field user value object to the request context. The core never
// sees credentials, only the opaque verified id.
//
//	X-User-Id:       32-char lowercase hex (required)
//	X-User-Email:    optional display email
//	X-User-Verified: "true" when the provider verified the account
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing X-User-Id"})
			}
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid X-User-Id"})
			}

			c.Set(userContextKey, identity.User{
				ID:       userID,
				Email:    strings.TrimSpace(c.Request().Header.Get("X-User-Email")),
				Verified: c.Request().Header.Get("X-User-Verified") == "true",
			})
			return next(c)
		}
	}
}

// CurrentUser returns the identity the Identity middleware attached.
func CurrentUser(c echo.Context) (identity.User, bool) {
	u, ok := c.Get(userContextKey).(identity.User)
	return u, ok
}
