package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Root answers the plain liveness message of the original service.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API funcionando!")
}

// Health reports whether the database is reachable.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		h.Log.WithError(err).Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "indisponivel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
