package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"curriculum-service/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 50 << 20 // 50 MB

// MediaHandler uploads resource media (videos, documents, avatars) to blob
// storage and returns the public URL to embed in curriculum content.
type MediaHandler struct {
	Blobs *storage.BlobStore
}

func NewMediaHandler(blobs *storage.BlobStore) *MediaHandler {
	return &MediaHandler{Blobs: blobs}
}

func (h *MediaHandler) UploadMedia(c *gin.Context) {
	if h.Blobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file field is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 50MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	userID := c.GetHeader("X-User-ID")
	path := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.Blobs.PutObject(c.Request.Context(), path, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
