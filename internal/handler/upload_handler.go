package handler

import (
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	// Decoders for dimension sniffing on uploads. The original admin accepts
	// webp alongside the stdlib formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/service"
)

// UploadMedia stores a multipart file under the upload directory and
// persists the resulting media record.
func (a *API) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		respondError(c, http.StatusBadRequest, "Unsupported file type. Only images and videos are allowed.")
		return
	}

	fileURL, filePath, err := a.saveUpload(c, file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	rec := content.Record{
		"title":         c.PostForm("title"),
		"caption":       c.PostForm("caption"),
		"alt_text":      c.PostForm("alt_text"),
		"url":           fileURL,
		"file_path":     fileURL,
		"category":      c.PostForm("category"),
		"file_type":     contentType,
		"file_size":     file.Size,
		"original_name": file.Filename,
	}
	if rec["title"] == "" {
		rec["title"] = file.Filename
	}
	if strings.HasPrefix(contentType, "image/") {
		if width, height, ok := imageBounds(filePath); ok {
			rec["width"] = width
			rec["height"] = height
		}
	}

	item, err := a.media.Create(rec)
	if err != nil {
		os.Remove(filePath)
		respondServiceError(c, err, "failed to upload media file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "File uploaded successfully", "media": item})
}

// UploadImage stores a multipart image and persists a legacy image record.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	fileURL, filePath, err := a.saveUpload(c, file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	alt := c.PostForm("alt")
	if alt == "" {
		alt = file.Filename
	}

	img, err := a.media.CreateImage(content.Record{
		"url":      fileURL,
		"alt":      alt,
		"category": c.PostForm("category"),
	})
	if err != nil {
		os.Remove(filePath)
		switch {
		case errors.Is(err, service.ErrImageFieldsMissing):
			respondError(c, http.StatusBadRequest, "URL and alt text required")
		default:
			respondServiceError(c, err, "failed to upload image")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Image uploaded successfully", "image": img})
}

func (a *API) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, string, error) {
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		return "", "", err
	}

	return a.uploadURL + "/" + newFilename, filePath, nil
}

func imageBounds(path string) (int, int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
