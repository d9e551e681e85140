package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// PlanHandler handles plan reads for members and CRUD for admins.
type PlanHandler struct {
	service ports.PlanService
}

func NewPlanHandler(service ports.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

type planRequest struct {
	Name         string  `json:"name"          validate:"required,min=2"`
	Price        float64 `json:"price"         validate:"gte=0"`
	MaxProfiles  int     `json:"max_profiles"  validate:"required,gt=0"`
	MaxDevices   int     `json:"max_devices"   validate:"required,gt=0"`
	VideoQuality string  `json:"video_quality" validate:"required,oneof=SD HD FHD UHD"`
}

// List handles GET /v1/plans.
//
// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Plan
// @Failure      401  {object}  map[string]string
// @Router       /v1/plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Get handles GET /v1/plans/:id.
//
// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  domain.Plan
// @Failure      404  {object}  map[string]string
// @Router       /v1/plans/{id} [get]
func (h *PlanHandler) Get(c echo.Context) error {
	plan, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Create handles POST /v1/admin/plans.
//
// @Summary      Create a plan
// @Tags         admin-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      planRequest  true  "Plan details"
// @Success      201   {object}  domain.Plan
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.service.Create(c.Request().Context(), ports.PlanInput{
		Name:         req.Name,
		Price:        req.Price,
		MaxProfiles:  req.MaxProfiles,
		MaxDevices:   req.MaxDevices,
		VideoQuality: req.VideoQuality,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// Update handles PUT /v1/admin/plans/:id.
//
// @Summary      Update a plan
// @Tags         admin-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Plan ID"
// @Param        body  body      planRequest  true  "Plan details"
// @Success      200   {object}  domain.Plan
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.PlanInput{
		Name:         req.Name,
		Price:        req.Price,
		MaxProfiles:  req.MaxProfiles,
		MaxDevices:   req.MaxDevices,
		VideoQuality: req.VideoQuality,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete handles DELETE /v1/admin/plans/:id.
//
// @Summary      Delete a plan
// @Tags         admin-plans
// @Security     BearerAuth
// @Param        id  path  string  true  "Plan ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
