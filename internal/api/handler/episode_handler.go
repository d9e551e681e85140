package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// EpisodeHandler handles episode reads for members and CRUD for admins.
type EpisodeHandler struct {
	service ports.EpisodeService
}

func NewEpisodeHandler(service ports.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{service: service}
}

type episodeRequest struct {
	SeasonNumber    int        `json:"season_number"   validate:"required,gt=0"`
	EpisodeNumber   int        `json:"episode_number"  validate:"required,gt=0"`
	Title           string     `json:"title"           validate:"required,min=1"`
	DurationMinutes int        `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	VideoURL        string     `json:"video_url,omitempty"`
}

func (r episodeRequest) toInput() ports.EpisodeInput {
	return ports.EpisodeInput{
		SeasonNumber:    r.SeasonNumber,
		EpisodeNumber:   r.EpisodeNumber,
		Title:           r.Title,
		DurationMinutes: r.DurationMinutes,
		ReleaseDate:     r.ReleaseDate,
		VideoURL:        r.VideoURL,
	}
}

// ListByContent handles GET /v1/contents/:id/episodes.
//
// @Summary      List episodes of a series
// @Tags         episodes
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Content ID"
// @Param        season  query     int     false  "Filter by season"
// @Success      200     {array}   domain.Episode
// @Failure      404     {object}  map[string]string
// @Router       /v1/contents/{id}/episodes [get]
func (h *EpisodeHandler) ListByContent(c echo.Context) error {
	episodes, err := h.service.ListByContent(c.Request().Context(), c.Param("id"), queryInt(c, "season", 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, episodes)
}

// Get handles GET /v1/episodes/:id.
//
// @Summary      Get an episode
// @Tags         episodes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Episode ID"
// @Success      200  {object}  domain.Episode
// @Failure      404  {object}  map[string]string
// @Router       /v1/episodes/{id} [get]
func (h *EpisodeHandler) Get(c echo.Context) error {
	episode, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, episode)
}

// Create handles POST /v1/admin/contents/:id/episodes.
//
// @Summary      Create an episode
// @Tags         admin-episodes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Content ID"
// @Param        body  body      episodeRequest  true  "Episode details"
// @Success      201   {object}  domain.Episode
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/contents/{id}/episodes [post]
func (h *EpisodeHandler) Create(c echo.Context) error {
	var req episodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	episode, err := h.service.Create(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, episode)
}

// Update handles PUT /v1/admin/episodes/:id.
//
// @Summary      Update an episode
// @Tags         admin-episodes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Episode ID"
// @Param        body  body      episodeRequest  true  "Episode details"
// @Success      200   {object}  domain.Episode
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/episodes/{id} [put]
func (h *EpisodeHandler) Update(c echo.Context) error {
	var req episodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	episode, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, episode)
}

// Delete handles DELETE /v1/admin/episodes/:id.
//
// @Summary      Delete an episode
// @Tags         admin-episodes
// @Security     BearerAuth
// @Param        id  path  string  true  "Episode ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/episodes/{id} [delete]
func (h *EpisodeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
