package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dentodent/content-api/internal/store"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, key string) (int64, error) {
	raw := c.Param(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// respondServiceError maps anything a service can return that is not a
// domain sentinel: an unreachable backend becomes a 502 so callers can tell
// an outage from a bug, everything else stays a 500. Raw backend errors are
// never echoed to the caller.
func respondServiceError(c *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrUnavailable) {
		respondError(c, http.StatusBadGateway, "storage backend unavailable")
		return
	}
	respondError(c, http.StatusInternalServerError, message)
}
