package handler

import (
	"net/http"
	"time"

	"github.com/bizpulse/backend/internal/infrastructure/persistence"
	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DatabaseChecker is the part of the database the health check needs
type DatabaseChecker interface {
	Ping() error
	Stats() (*persistence.ConnectionStats, error)
	Dialect() string
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	BaseHandler
	db      DatabaseChecker
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabaseChecker, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, started: time.Now()}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string                       `json:"status"`
	Version  string                       `json:"version,omitempty"`
	Uptime   string                       `json:"uptime"`
	Database string                       `json:"database"`
	Dialect  string                       `json:"dialect,omitempty"`
	Pool     *persistence.ConnectionStats `json:"pool,omitempty"`
}

// Health handles GET /health. An unreachable database answers 503.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Uptime:   time.Since(h.started).Truncate(time.Second).String(),
		Database: "up",
	}
	if h.db == nil {
		resp.Database = "unconfigured"
		h.Success(c, resp)
		return
	}

	resp.Dialect = h.db.Dialect()
	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = stats
	}
	h.Success(c, resp)
}
