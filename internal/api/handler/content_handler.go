package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// ContentHandler handles catalog reads for members, teaser browsing for the
// public, and CRUD for admins.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

type contentRequest struct {
	Title           string `json:"title"            validate:"required,min=1"`
	Type            string `json:"type"             validate:"required,oneof=MOVIE SERIES VIDEOS"`
	Description     string `json:"description,omitempty"`
	ReleaseYear     int    `json:"release_year,omitempty"     validate:"omitempty,gte=1888"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,gt=0"`
	AgeRating       string `json:"age_rating,omitempty"`
	Genres          string `json:"genres,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty"`
}

func (r contentRequest) toInput() ports.ContentInput {
	return ports.ContentInput{
		Title:           r.Title,
		Type:            domain.ContentType(r.Type),
		Description:     r.Description,
		ReleaseYear:     r.ReleaseYear,
		DurationSeconds: r.DurationSeconds,
		AgeRating:       r.AgeRating,
		Genres:          r.Genres,
		VideoURL:        r.VideoURL,
		Thumbnail:       r.Thumbnail,
	}
}

func contentFilter(c echo.Context) ports.ListContentsFilter {
	return ports.ListContentsFilter{
		Search:      c.QueryParam("search"),
		Type:        c.QueryParam("type"),
		Genre:       c.QueryParam("genre"),
		ReleaseYear: queryInt(c, "release_year", 0),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 20),
	}
}

// List handles GET /v1/contents.
//
// @Summary      Browse the catalog
// @Tags         contents
// @Produce      json
// @Security     BearerAuth
// @Param        search        query     string  false  "Partial match on title"
// @Param        type          query     string  false  "MOVIE, SERIES or VIDEOS"
// @Param        genre         query     string  false  "Partial match on genres"
// @Param        release_year  query     int     false  "Exact release year"
// @Param        page          query     int     false  "Page (1-based)"
// @Param        limit         query     int     false  "Page size"
// @Success      200           {object}  listResponse
// @Failure      401           {object}  map[string]string
// @Router       /v1/contents [get]
func (h *ContentHandler) List(c echo.Context) error {
	filter := contentFilter(c)
	contents, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: contents, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// PublicList handles GET /public/contents — no auth, video URLs stripped.
//
// @Summary      Browse the public teaser catalog
// @Tags         contents
// @Produce      json
// @Param        search        query     string  false  "Partial match on title"
// @Param        type          query     string  false  "MOVIE, SERIES or VIDEOS"
// @Param        genre         query     string  false  "Partial match on genres"
// @Param        release_year  query     int     false  "Exact release year"
// @Param        page          query     int     false  "Page (1-based)"
// @Param        limit         query     int     false  "Page size"
// @Success      200           {object}  listResponse
// @Router       /public/contents [get]
func (h *ContentHandler) PublicList(c echo.Context) error {
	filter := contentFilter(c)
	contents, total, err := h.service.PublicList(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: contents, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// Get handles GET /v1/contents/:id.
//
// @Summary      Get a catalog entry
// @Tags         contents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Content ID"
// @Success      200  {object}  domain.Content
// @Failure      404  {object}  map[string]string
// @Router       /v1/contents/{id} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	content, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// Create handles POST /v1/admin/contents.
//
// @Summary      Create a catalog entry
// @Tags         admin-contents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contentRequest  true  "Content details"
// @Success      201   {object}  domain.Content
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/contents [post]
func (h *ContentHandler) Create(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	content, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, content)
}

// Update handles PUT /v1/admin/contents/:id.
//
// @Summary      Update a catalog entry
// @Tags         admin-contents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Content ID"
// @Param        body  body      contentRequest  true  "Content details"
// @Success      200   {object}  domain.Content
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/contents/{id} [put]
func (h *ContentHandler) Update(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	content, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// Delete handles DELETE /v1/admin/contents/:id — cascades to episodes.
//
// @Summary      Delete a catalog entry
// @Tags         admin-contents
// @Security     BearerAuth
// @Param        id  path  string  true  "Content ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/contents/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
