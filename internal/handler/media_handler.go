package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/service"
)

// ListMedia returns media records, optionally filtered by ?category=.
func (a *API) ListMedia(c *gin.Context) {
	items, err := a.media.List(c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "failed to load media items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMedia returns one media record.
func (a *API) GetMedia(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid media ID")
		return
	}

	item, err := a.media.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaNotFound):
			respondError(c, http.StatusNotFound, "media item not found")
		default:
			respondServiceError(c, err, "failed to load media item")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMedia persists a new media record.
func (a *API) CreateMedia(c *gin.Context) {
	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.media.Create(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaURLMissing):
			respondError(c, http.StatusBadRequest, "media url is required")
		default:
			respondServiceError(c, err, "failed to create media item")
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMedia patches a media record's metadata.
func (a *API) UpdateMedia(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid media ID")
		return
	}

	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.media.Update(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaNotFound):
			respondError(c, http.StatusNotFound, "media item not found")
		default:
			respondServiceError(c, err, "failed to update media item")
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMedia removes a media record and, when the backend owns files, the
// stored file behind it.
func (a *API) DeleteMedia(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid media ID")
		return
	}

	item, err := a.media.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaNotFound):
			respondError(c, http.StatusNotFound, "media item not found")
		default:
			respondServiceError(c, err, "failed to delete media item")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media item deleted successfully", "media": item})
}

// ListImages returns legacy image records, optionally filtered by
// ?category=.
func (a *API) ListImages(c *gin.Context) {
	images, err := a.media.ListImages(c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "failed to load images")
		return
	}
	c.JSON(http.StatusOK, images)
}

// CreateImage persists a legacy image record.
func (a *API) CreateImage(c *gin.Context) {
	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	image, err := a.media.CreateImage(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageFieldsMissing):
			respondError(c, http.StatusBadRequest, "URL and alt text required")
		default:
			respondServiceError(c, err, "failed to create image")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Image uploaded successfully", "image": image})
}

// DeleteImage removes a legacy image record.
func (a *API) DeleteImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image ID")
		return
	}

	image, err := a.media.DeleteImage(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			respondError(c, http.StatusNotFound, "image not found")
		default:
			respondServiceError(c, err, "failed to delete image")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully", "image": image})
}
