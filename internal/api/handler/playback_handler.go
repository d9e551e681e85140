package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// PlaybackHandler handles viewing session tracking for members.
type PlaybackHandler struct {
	service ports.PlaybackService
}

func NewPlaybackHandler(service ports.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{service: service}
}

type startPlaybackRequest struct {
	ProfileID       string `json:"profile_id" validate:"required"`
	ContentID       string `json:"content_id" validate:"required"`
	EpisodeID       string `json:"episode_id,omitempty"`
	Device          string `json:"device,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,gt=0"`
}

type progressRequest struct {
	ProgressSeconds int `json:"progress_seconds" validate:"gte=0"`
}

// Start handles POST /v1/me/playbacks — opens or resumes a session.
//
// @Summary      Start or resume a playback
// @Tags         playbacks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startPlaybackRequest  true  "Playback details"
// @Success      201   {object}  domain.Playback
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/me/playbacks [post]
func (h *PlaybackHandler) Start(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req startPlaybackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	playback, err := h.service.StartMine(c.Request().Context(), identity.UserID, ports.StartPlaybackInput{
		ProfileID:       req.ProfileID,
		ContentID:       req.ContentID,
		EpisodeID:       req.EpisodeID,
		Device:          req.Device,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, playback)
}

// List handles GET /v1/me/playbacks.
//
// @Summary      List my playbacks
// @Tags         playbacks
// @Produce      json
// @Security     BearerAuth
// @Param        profile_id  query     string  false  "Scope to one profile"
// @Param        completed   query     bool    false  "Filter by completion"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listResponse
// @Failure      401         {object}  map[string]string
// @Router       /v1/me/playbacks [get]
func (h *PlaybackHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	filter := ports.ListPlaybacksFilter{
		ProfileID: c.QueryParam("profile_id"),
		Completed: queryBool(c, "completed"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
	}
	playbacks, total, err := h.service.ListMine(c.Request().Context(), identity.UserID, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: playbacks, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// Get handles GET /v1/me/playbacks/:id.
//
// @Summary      Get one of my playbacks
// @Tags         playbacks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Playback ID"
// @Success      200  {object}  domain.Playback
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/playbacks/{id} [get]
func (h *PlaybackHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	playback, err := h.service.GetMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playback)
}

// Progress handles PUT /v1/me/playbacks/:id/progress.
//
// @Summary      Report playback progress
// @Tags         playbacks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Playback ID"
// @Param        body  body      progressRequest  true  "Progress"
// @Success      200   {object}  domain.Playback
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/me/playbacks/{id}/progress [put]
func (h *PlaybackHandler) Progress(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	playback, err := h.service.ProgressMine(c.Request().Context(), identity.UserID, c.Param("id"), req.ProgressSeconds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playback)
}

// Complete handles POST /v1/me/playbacks/:id/complete.
//
// @Summary      Mark a playback finished
// @Tags         playbacks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Playback ID"
// @Success      200  {object}  domain.Playback
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/playbacks/{id}/complete [post]
func (h *PlaybackHandler) Complete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	playback, err := h.service.CompleteMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playback)
}

// Delete handles DELETE /v1/me/playbacks/:id.
//
// @Summary      Delete a playback record
// @Tags         playbacks
// @Security     BearerAuth
// @Param        id  path  string  true  "Playback ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/playbacks/{id} [delete]
func (h *PlaybackHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteMine(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
