package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the configured storage backend is reachable.
func (a *API) HealthCheck(c *gin.Context) {
	if err := a.store.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "ERROR",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "database": "connected"})
}
