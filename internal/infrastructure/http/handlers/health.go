package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves GET /health. It answers immediately: a response at
// all means the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "garage-api",
	})
}

// HealthDependenciesHandler serves GET /health/ready. The service is ready
// only when both backing stores answer a ping.
type HealthDependenciesHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{mongo: db, redis: rdb}
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]checkResult `json:"checks"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := map[string]checkResult{
		"mongodb": pingMongo(ctx, h.mongo),
		"redis":   pingRedis(ctx, h.redis),
	}

	status, code := "ok", http.StatusOK
	for _, chk := range checks {
		if chk.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Checks: checks})
}

func pingMongo(ctx context.Context, db *mongo.Database) checkResult {
	if err := db.Client().Ping(ctx, nil); err != nil {
		return checkResult{Status: "unhealthy", Error: err.Error()}
	}
	return checkResult{Status: "ok"}
}

func pingRedis(ctx context.Context, rdb *redis.Client) checkResult {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return checkResult{Status: "unhealthy", Error: err.Error()}
	}
	return checkResult{Status: "ok"}
}
