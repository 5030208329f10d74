package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/service"
)

// GetContent returns every section keyed by section id.
func (a *API) GetContent(c *gin.Context) {
	sections, err := a.contents.GetAll()
	if err != nil {
		respondServiceError(c, err, "failed to load content")
		return
	}
	c.JSON(http.StatusOK, sections)
}

// GetContentSection returns a single section.
func (a *API) GetContentSection(c *gin.Context) {
	section, err := a.contents.Get(c.Param("section"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			respondError(c, http.StatusNotFound, "content section not found")
		default:
			respondServiceError(c, err, "failed to load content section")
		}
		return
	}
	c.JSON(http.StatusOK, section)
}

// UpdateContentSection upserts a section payload.
func (a *API) UpdateContentSection(c *gin.Context) {
	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	section, err := a.contents.Upsert(c.Param("section"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionIDMissing):
			respondError(c, http.StatusBadRequest, "section id is required")
		default:
			respondServiceError(c, err, "failed to update content")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content updated successfully", "data": section})
}

// CreateContentSection creates a section and refuses to touch an existing
// one.
func (a *API) CreateContentSection(c *gin.Context) {
	var payload content.Record
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	section, err := a.contents.Create(c.Param("section"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionExists):
			respondError(c, http.StatusConflict, "content section already exists")
		case errors.Is(err, service.ErrSectionIDMissing):
			respondError(c, http.StatusBadRequest, "section id is required")
		default:
			respondServiceError(c, err, "failed to create content")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Content created successfully", "data": section})
}

// DeleteContentSection removes a section.
func (a *API) DeleteContentSection(c *gin.Context) {
	if err := a.contents.Delete(c.Param("section")); err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			respondError(c, http.StatusNotFound, "content section not found")
		default:
			respondServiceError(c, err, "failed to delete content")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}
