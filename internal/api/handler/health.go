package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// probeTimeout bounds the readiness dependency checks so a hung backend
// cannot stall the probe itself.
const probeTimeout = 3 * time.Second

// HealthHandler serves the liveness probe. It answers 200 as long as the
// process can serve HTTP at all.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness responds without touching any dependency.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler serves the readiness probe. Both MongoDB and
// Redis are hard dependencies: token verification consults the Redis
// denylist and fails closed when it is unreachable.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness reports per-dependency health and 503 when anything is down.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"mongodb": h.checkMongo(ctx),
		"redis":   h.checkRedis(ctx),
	}

	status, code := "ok", http.StatusOK
	for _, dep := range deps {
		if dep.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

func (h *HealthDependenciesHandler) checkMongo(ctx context.Context) dependencyStatus {
	if err := h.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *HealthDependenciesHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
