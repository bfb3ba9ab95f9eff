package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/infrastructure/storage"
	"beetlevault-backend/internal/shared/response"
)

// UploadHandler accepts beetle images and stores the original plus a
// thumbnail variant.
type UploadHandler struct {
	store     storage.ObjectStore
	processor *storage.ImageProcessor
}

func NewUploadHandler(store storage.ObjectStore, processor *storage.ImageProcessor) *UploadHandler {
	return &UploadHandler{store: store, processor: processor}
}

// Upload reads a multipart "file" part, validates it and uploads both
// variants under a fresh uuid key.
// POST /api/v1/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ValidationError(c, "file is required")
		return
	}

	if fileHeader.Size > h.processor.MaxSize {
		response.ValidationError(c, fmt.Sprintf("image exceeds %dMB", h.processor.MaxSize/(1024*1024)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		response.InternalError(c)
		return
	}
	defer file.Close()

	// LimitReader guards against a lying Content-Length
	data, err := io.ReadAll(io.LimitReader(file, h.processor.MaxSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		response.InternalError(c)
		return
	}
	if int64(len(data)) > h.processor.MaxSize {
		response.ValidationError(c, fmt.Sprintf("image exceeds %dMB", h.processor.MaxSize/(1024*1024)))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.processor.ValidateImage(data, contentType); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	thumbnail, err := h.processor.Thumbnail(data)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	key := uuid.New().String()
	ext := extensionFor(contentType, fileHeader.Filename)

	imageURL, err := h.store.Upload(c.Request.Context(), fmt.Sprintf("beetles/%s/original%s", key, ext), data, contentType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload original image")
		response.InternalError(c)
		return
	}

	thumbnailURL, err := h.store.Upload(c.Request.Context(), fmt.Sprintf("beetles/%s/thumb.jpg", key), thumbnail, "image/jpeg")
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload thumbnail")
		response.InternalError(c)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"imageUrl":     imageURL,
		"thumbnailUrl": thumbnailURL,
	})
}

// extensionFor prefers the declared content type; the filename extension is
// only a fallback.
func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	return ".bin"
}
