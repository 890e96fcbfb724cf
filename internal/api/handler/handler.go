// Package handler provides HTTP handlers for all API endpoints.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hoopsight/hoopsight/internal/api/respond"
	"github.com/hoopsight/hoopsight/internal/cache"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/db"
	"github.com/hoopsight/hoopsight/internal/directory"
	"github.com/hoopsight/hoopsight/internal/stats"
	"github.com/hoopsight/hoopsight/internal/usagelog"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	cfg       *config.Config
	profiles  *stats.Service
	directory *directory.Service
	usage     *usagelog.Store
	cache     *cache.Store
	pool      *db.Pool // nil when usage tracking is not configured
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(cfg *config.Config, profiles *stats.Service, dir *directory.Service, usage *usagelog.Store, store *cache.Store, pool *db.Pool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		profiles:  profiles,
		directory: dir,
		usage:     usage,
		cache:     store,
		pool:      pool,
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Hoopsight API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies usage-log database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns memo store statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
