package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// WatchlistHandler handles watchlist management for members.
type WatchlistHandler struct {
	service ports.WatchlistService
}

func NewWatchlistHandler(service ports.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

type addWatchlistRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
	ContentID string `json:"content_id" validate:"required"`
}

// List handles GET /v1/me/watchlist.
//
// @Summary      List my watchlist
// @Tags         watchlist
// @Produce      json
// @Security     BearerAuth
// @Param        profile_id  query     string  false  "Scope to one profile"
// @Success      200         {array}   domain.WatchlistItem
// @Failure      401         {object}  map[string]string
// @Router       /v1/me/watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListMine(c.Request().Context(), identity.UserID, c.QueryParam("profile_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add handles POST /v1/me/watchlist.
//
// @Summary      Bookmark a content
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addWatchlistRequest  true  "Bookmark details"
// @Success      201   {object}  domain.WatchlistItem
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/me/watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.AddMine(c.Request().Context(), identity.UserID, req.ProfileID, req.ContentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Remove handles DELETE /v1/me/watchlist/:id.
//
// @Summary      Remove a bookmark
// @Tags         watchlist
// @Security     BearerAuth
// @Param        id  path  string  true  "Watchlist item ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/watchlist/{id} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveMine(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
