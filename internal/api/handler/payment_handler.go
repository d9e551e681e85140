package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// PaymentHandler handles member payment reads and admin payment CRUD.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	UserID         string  `json:"user_id"         validate:"required"`
	SubscriptionID string  `json:"subscription_id" validate:"required"`
	Amount         float64 `json:"amount"          validate:"gt=0"`
	Currency       string  `json:"currency"        validate:"required,len=3"`
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
	Provider       string  `json:"provider,omitempty"`
	ExternalID     string  `json:"external_id,omitempty"`
}

type updatePaymentRequest struct {
	Amount     *float64 `json:"amount,omitempty"      validate:"omitempty,gt=0"`
	Currency   *string  `json:"currency,omitempty"    validate:"omitempty,len=3"`
	Status     *string  `json:"status,omitempty"      validate:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
	Provider   *string  `json:"provider,omitempty"`
	ExternalID *string  `json:"external_id,omitempty"`
}

// ListMine handles GET /v1/me/payments.
//
// @Summary      List my payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/me/payments [get]
func (h *PaymentHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	filter := ports.ListPaymentsFilter{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	payments, total, err := h.service.ListMine(c.Request().Context(), identity.UserID, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: payments, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// GetMine handles GET /v1/me/payments/:id.
//
// @Summary      Get one of my payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/payments/{id} [get]
func (h *PaymentHandler) GetMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	payment, err := h.service.GetMine(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// ListForSubscription handles GET /v1/me/subscriptions/:id/payments.
//
// @Summary      List payments of a subscription
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {array}   domain.Payment
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/subscriptions/{id}/payments [get]
func (h *PaymentHandler) ListForSubscription(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	payments, err := h.service.ListForSubscription(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// AdminList handles GET /v1/admin/payments.
//
// @Summary      List payments
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        user_id          query     string  false  "Scope to one user"
// @Param        subscription_id  query     string  false  "Scope to one subscription"
// @Param        status           query     string  false  "Filter by status"
// @Param        page             query     int     false  "Page (1-based)"
// @Param        limit            query     int     false  "Page size"
// @Success      200              {object}  listResponse
// @Failure      403              {object}  map[string]string
// @Router       /v1/admin/payments [get]
func (h *PaymentHandler) AdminList(c echo.Context) error {
	filter := ports.ListPaymentsFilter{
		UserID:         c.QueryParam("user_id"),
		SubscriptionID: c.QueryParam("subscription_id"),
		Status:         c.QueryParam("status"),
		Page:           queryInt(c, "page", 1),
		Limit:          queryInt(c, "limit", 20),
	}
	payments, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: payments, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// AdminGet handles GET /v1/admin/payments/:id.
//
// @Summary      Get a payment
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/payments/{id} [get]
func (h *PaymentHandler) AdminGet(c echo.Context) error {
	payment, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// AdminCreate handles POST /v1/admin/payments.
//
// @Summary      Record a payment
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/payments [post]
func (h *PaymentHandler) AdminCreate(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.service.Create(c.Request().Context(), ports.CreatePaymentInput{
		UserID:         req.UserID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         domain.PaymentStatus(req.Status),
		Provider:       req.Provider,
		ExternalID:     req.ExternalID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// AdminUpdate handles PATCH /v1/admin/payments/:id.
//
// @Summary      Update a payment
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payment ID"
// @Param        body  body      updatePaymentRequest  true  "Fields to update"
// @Success      200   {object}  domain.Payment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/payments/{id} [patch]
func (h *PaymentHandler) AdminUpdate(c echo.Context) error {
	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.UpdatePaymentInput{
		Amount:     req.Amount,
		Currency:   req.Currency,
		Provider:   req.Provider,
		ExternalID: req.ExternalID,
	}
	if req.Status != nil {
		status := domain.PaymentStatus(*req.Status)
		in.Status = &status
	}

	payment, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// AdminDelete handles DELETE /v1/admin/payments/:id.
//
// @Summary      Delete a payment
// @Tags         admin-payments
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/payments/{id} [delete]
func (h *PaymentHandler) AdminDelete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
