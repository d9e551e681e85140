package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// UserHandler handles admin account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=2"`
	Email  *string `json:"email,omitempty"  validate:"omitempty,email"`
	Active *bool   `json:"active,omitempty"`
	Role   *string `json:"role,omitempty"   validate:"omitempty,oneof=admin member"`
}

type setPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// List handles GET /v1/admin/users.
//
// @Summary      List accounts
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        search           query     string  false  "Partial match on name or email"
// @Param        active           query     bool    false  "Filter by active flag"
// @Param        include_deleted  query     bool    false  "Include soft-deleted accounts"
// @Param        page             query     int     false  "Page (1-based)"
// @Param        limit            query     int     false  "Page size"
// @Success      200              {object}  listResponse
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.ListUsersFilter{
		Search: c.QueryParam("search"),
		Active: queryBool(c, "active"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if b := queryBool(c, "include_deleted"); b != nil {
		filter.IncludeDeleted = *b
	}

	users, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: users, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// Get handles GET /v1/admin/users/:id.
//
// @Summary      Get an account
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/admin/users/:id.
//
// @Summary      Update an account
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
		Role:   req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate handles DELETE /v1/admin/users/:id — soft delete.
//
// @Summary      Deactivate an account
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore handles POST /v1/admin/users/:id/restore.
//
// @Summary      Restore a deactivated account
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/restore [post]
func (h *UserHandler) Restore(c echo.Context) error {
	user, err := h.service.Restore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetPassword handles PUT /v1/admin/users/:id/password.
//
// @Summary      Set an account password
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User ID"
// @Param        body  body      setPasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id}/password [put]
func (h *UserHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.SetPassword(c.Request().Context(), c.Param("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
