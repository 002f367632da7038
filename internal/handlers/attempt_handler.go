package handlers

import (
	"errors"
	"net/http"

	"curriculum-service/internal/attempt"
	"curriculum-service/internal/repository"
	"curriculum-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// StartAttempt opens a new quiz attempt for the authenticated user.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req struct {
		CurriculumID string `json:"curriculumId" binding:"required"`
		QuizID       string `json:"quizId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	a, err := h.Service.Start(c.Request.Context(), c.GetHeader("X-User-ID"), req.CurriculumID, req.QuizID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	a, err := h.Service.Get(c.Request.Context(), c.GetHeader("X-User-ID"), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// SubmitAnswer stores an answer for a question. The answer value keeps
// whatever JSON shape the question expects; validation happens on advance.
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		Answer     any    `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	a, err := h.Service.SubmitAnswer(c.Request.Context(), c.GetHeader("X-User-ID"), c.Param("id"), req.QuestionID, req.Answer)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Advance validates the current answer and moves the attempt forward,
// completing it on the last question.
func (h *AttemptHandler) Advance(c *gin.Context) {
	outcome, err := h.Service.Advance(c.Request.Context(), c.GetHeader("X-User-ID"), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *AttemptHandler) renderError(c *gin.Context, err error) {
	var validationErr *attempt.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Missing or invalid answer",
			"questionId": validationErr.QuestionID,
			"details":    validationErr.Reason,
		})
	case errors.Is(err, attempt.ErrAdvanceInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Advance already in progress"})
	case errors.Is(err, attempt.ErrSubmissionTimeout):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Submission timed out, please retry"})
	case errors.Is(err, attempt.ErrAttemptComplete):
		c.JSON(http.StatusConflict, gin.H{"error": "Attempt already complete"})
	case errors.Is(err, repository.ErrAttemptNotFound), errors.Is(err, service.ErrAttemptAccess):
		c.JSON(http.StatusNotFound, gin.H{"error": "Attempt not found"})
	case errors.Is(err, repository.ErrCurriculumNotFound), errors.Is(err, service.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, service.ErrEmptyQuiz):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz has no questions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
	}
}
