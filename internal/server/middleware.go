package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// requireAdminKey protects the admin routes with a shared API key. The key
// travels in the X-Admin-Key header. An empty configured key leaves the
// routes open, which matches local development; production sets ADMIN_API_KEY.
func (h *Handler) requireAdminKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.adminKey == "" {
			return next(c)
		}

		got := c.Request().Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.adminKey)) != 1 {
			h.log.Warn("admin request rejected", "path", c.Path())
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "clave de administrador inválida"})
		}
		return next(c)
	}
}
