package handlers

import (
	"errors"
	"net/http"

	"curriculum-service/internal/repository"
	"curriculum-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// CompleteResource marks a resource done for the authenticated user.
// Re-completing a resource is a no-op, not an error.
func (h *ProgressHandler) CompleteResource(c *gin.Context) {
	var req struct {
		CurriculumID string `json:"curriculumId" binding:"required"`
		ResourceID   string `json:"resourceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	rec, err := h.Service.CompleteResource(c.Request.Context(), c.GetHeader("X-User-ID"), req.CurriculumID, c.Param("moduleId"), req.ResourceID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) CompleteAssignment(c *gin.Context) {
	var req struct {
		CurriculumID string `json:"curriculumId" binding:"required"`
		AssignmentID string `json:"assignmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	rec, err := h.Service.CompleteAssignment(c.Request.Context(), c.GetHeader("X-User-ID"), req.CurriculumID, c.Param("moduleId"), req.AssignmentID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	rec, err := h.Service.GetProgress(c.Request.Context(), c.GetHeader("X-User-ID"), c.Param("moduleId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) ResetProgress(c *gin.Context) {
	rec, err := h.Service.ResetProgress(c.Request.Context(), c.GetHeader("X-User-ID"), c.Param("moduleId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound), errors.Is(err, repository.ErrCurriculumNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
	}
}
