package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Reports whether the NL-to-SQL backend answers and how many sessions are held in memory
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"backend":  "unreachable",
		"sessions": h.sessions.Count(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if h.backend != nil && h.backend.Ping(ctx) == nil {
		status["backend"] = "reachable"
	}

	c.JSON(http.StatusOK, status)
}
