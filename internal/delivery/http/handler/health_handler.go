package handler

import (
	"context"
	"net/http"
	"time"

	"doctor-directory/pkg/response"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler reports on the database and, when configured, Redis.
// A nil redis client is reported as disabled.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok", "cache": "disabled"}
	code := http.StatusOK

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	// The site keeps working without Redis, so it never fails the check
	if h.redis != nil {
		status["cache"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "unavailable"
		}
	}

	response.JSON(w, code, status)
}
