package handlers

import (
	"errors"
	"io"
	"net/http"

	"curriculum-service/internal/curriculum"
	"curriculum-service/internal/repository"
	"curriculum-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CurriculumHandler struct {
	Service *service.CurriculumService
}

func NewCurriculumHandler(s *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{Service: s}
}

// ImportCurriculum accepts a raw curriculum document and imports it. Format
// errors come back as 400 with the offending field named.
func (h *CurriculumHandler) ImportCurriculum(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	userID := c.GetHeader("X-User-ID")
	cur, err := h.Service.Import(c.Request.Context(), userID, raw)
	if err != nil {
		var formatErr *curriculum.FormatError
		if errors.As(err, &formatErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid curriculum format",
				"field": formatErr.Field,
				"details": formatErr.Detail,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import curriculum"})
		return
	}
	c.JSON(http.StatusCreated, cur)
}

func (h *CurriculumHandler) ListCurricula(c *gin.Context) {
	recs, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list curricula"})
		return
	}
	summaries := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, gin.H{
			"id":          rec.ID,
			"name":        rec.Name,
			"description": rec.Description,
			"importedAt":  rec.ImportedAt,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *CurriculumHandler) GetCurriculum(c *gin.Context) {
	cur, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCurriculumNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load curriculum"})
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (h *CurriculumHandler) DeleteCurriculum(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCurriculumNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Curriculum not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete curriculum"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Curriculum deleted"})
}
