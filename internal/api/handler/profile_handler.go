package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// ProfileHandler handles self-service profile management.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type profileRequest struct {
	Name           string `json:"name"            validate:"required,min=1,max=50"`
	Avatar         string `json:"avatar,omitempty"`
	MaturityRating string `json:"maturity_rating,omitempty"`
}

// List handles GET /v1/me/profiles.
//
// @Summary      List my profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Profile
// @Failure      401  {object}  map[string]string
// @Router       /v1/me/profiles [get]
func (h *ProfileHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	profiles, err := h.service.ListMine(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// Create handles POST /v1/me/profiles.
//
// @Summary      Create a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      201   {object}  domain.Profile
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/me/profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.service.CreateMine(c.Request().Context(), identity.UserID, ports.ProfileInput{
		Name:           req.Name,
		Avatar:         req.Avatar,
		MaturityRating: req.MaturityRating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profile)
}

// Update handles PUT /v1/me/profiles/:id.
//
// @Summary      Update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Profile ID"
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      200   {object}  domain.Profile
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/me/profiles/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.service.UpdateMine(c.Request().Context(), identity.UserID, c.Param("id"), ports.ProfileInput{
		Name:           req.Name,
		Avatar:         req.Avatar,
		MaturityRating: req.MaturityRating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /v1/me/profiles/:id.
//
// @Summary      Delete a profile
// @Tags         profiles
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/profiles/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteMine(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
