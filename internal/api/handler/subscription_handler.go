package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// SubscriptionHandler handles member subscription lifecycle and admin listing.
type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type createSubscriptionRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type switchPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type setSubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE CANCELED PAST_DUE"`
}

// List handles GET /v1/me/subscriptions.
//
// @Summary      List my subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Subscription
// @Failure      401  {object}  map[string]string
// @Router       /v1/me/subscriptions [get]
func (h *SubscriptionHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	subs, err := h.service.ListMine(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// Current handles GET /v1/me/subscriptions/current.
//
// @Summary      Get my active subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Subscription
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/subscriptions/current [get]
func (h *SubscriptionHandler) Current(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	sub, err := h.service.Current(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// Get handles GET /v1/me/subscriptions/:id.
//
// @Summary      Get one of my subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {object}  domain.Subscription
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	sub, err := h.service.GetMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// Create handles POST /v1/me/subscriptions.
//
// @Summary      Subscribe to a plan
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubscriptionRequest  true  "Plan to subscribe to"
// @Success      201   {object}  domain.Subscription
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/me/subscriptions [post]
func (h *SubscriptionHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.service.CreateMine(c.Request().Context(), identity.UserID, req.PlanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// Cancel handles POST /v1/me/subscriptions/:id/cancel.
//
// @Summary      Cancel a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {object}  domain.Subscription
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/me/subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	sub, err := h.service.CancelMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// Reactivate handles POST /v1/me/subscriptions/:id/reactivate.
//
// @Summary      Reactivate a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {object}  domain.Subscription
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/me/subscriptions/{id}/reactivate [post]
func (h *SubscriptionHandler) Reactivate(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	sub, err := h.service.ReactivateMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// SwitchPlan handles POST /v1/me/subscriptions/:id/switch-plan.
//
// @Summary      Switch plan on an active subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Subscription ID"
// @Param        body  body      switchPlanRequest  true  "Target plan"
// @Success      200   {object}  domain.Subscription
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/me/subscriptions/{id}/switch-plan [post]
func (h *SubscriptionHandler) SwitchPlan(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req switchPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.service.SwitchPlanMine(c.Request().Context(), identity.UserID, c.Param("id"), req.PlanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// AdminList handles GET /v1/admin/subscriptions.
//
// @Summary      List subscriptions
// @Tags         admin-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Scope to one user"
// @Param        status   query     string  false  "Filter by status"
// @Param        page     query     int     false  "Page (1-based)"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  listResponse
// @Failure      403      {object}  map[string]string
// @Router       /v1/admin/subscriptions [get]
func (h *SubscriptionHandler) AdminList(c echo.Context) error {
	filter := ports.ListSubscriptionsFilter{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	subs, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: subs, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// AdminSetStatus handles PUT /v1/admin/subscriptions/:id/status.
//
// @Summary      Override a subscription status
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Subscription ID"
// @Param        body  body      setSubscriptionStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Subscription
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/subscriptions/{id}/status [put]
func (h *SubscriptionHandler) AdminSetStatus(c echo.Context) error {
	var req setSubscriptionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), domain.SubscriptionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}
