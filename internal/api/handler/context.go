package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/api/middleware"
	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails with 401 when it is absent; presence proves the middleware ran.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.Identity(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
