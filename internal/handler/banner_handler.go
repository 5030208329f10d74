package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/service"
)

// ListBanners returns active, in-window banners sorted by display order.
// An authenticated admin can request the unfiltered list with ?all=true,
// which is what the management panel renders.
func (a *API) ListBanners(c *gin.Context) {
	var banners []content.Record
	var err error
	if c.Query("all") == "true" && isAdmin(c) {
		banners, err = a.banners.ListAll()
	} else {
		banners, err = a.banners.ListActive(time.Now().UTC())
	}
	if err != nil {
		respondServiceError(c, err, "failed to fetch banners")
		return
	}
	c.JSON(http.StatusOK, banners)
}

// GetBanner returns one banner regardless of its active state.
func (a *API) GetBanner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid banner ID")
		return
	}

	banner, err := a.banners.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			respondError(c, http.StatusNotFound, "banner not found")
		default:
			respondServiceError(c, err, "failed to fetch banner")
		}
		return
	}
	c.JSON(http.StatusOK, banner)
}

// CreateBanner persists a new banner.
func (a *API) CreateBanner(c *gin.Context) {
	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	banner, err := a.banners.Create(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerImageMissing):
			respondError(c, http.StatusBadRequest, "banner image is required")
		default:
			respondServiceError(c, err, "failed to create banner")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Banner created successfully", "banner": banner})
}

// UpdateBanner patches a banner.
func (a *API) UpdateBanner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid banner ID")
		return
	}

	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	banner, err := a.banners.Update(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			respondError(c, http.StatusNotFound, "banner not found")
		default:
			respondServiceError(c, err, "failed to update banner")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully", "banner": banner})
}

// DeleteBanner removes a banner.
func (a *API) DeleteBanner(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid banner ID")
		return
	}

	banner, err := a.banners.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			respondError(c, http.StatusNotFound, "banner not found")
		default:
			respondServiceError(c, err, "failed to delete banner")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully", "banner": banner})
}
