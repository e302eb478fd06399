package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// DBPinger es satisfecho por *pgxpool.Pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger es satisfecho por *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler reporta el estado de Postgres y Redis.
type HealthHandler struct {
	env       string
	db        DBPinger
	redis     RedisPinger
	startedAt time.Time
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// NewHealthHandler crea el handler; rdb puede ser nil cuando no está configurado.
func NewHealthHandler(env string, db DBPinger, rdb RedisPinger) *HealthHandler {
	return &HealthHandler{env: env, db: db, redis: rdb, startedAt: time.Now()}
}

// Check maneja GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := h.checkDB(ctx)
	redisStatus := h.checkRedis(ctx)

	status := "ok"
	code := http.StatusOK
	if !dbStatus.OK || !redisStatus.OK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"env":        h.env,
		"uptime_sec": int(time.Since(h.startedAt).Seconds()),
		"dependencies": gin.H{
			"postgres": dbStatus,
			"redis":    redisStatus,
		},
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) dependencyStatus {
	if h.db == nil {
		return dependencyStatus{OK: false, Message: "not configured"}
	}
	if err := h.db.Ping(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if h.redis == nil {
		return dependencyStatus{OK: true, Message: "disabled"}
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}
