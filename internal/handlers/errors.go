package handlers

import (
	"errors"
	"net/http"

	"quiz-session-service/internal/engine"

	"github.com/gin-gonic/gin"
)

// respondError maps engine errors to HTTP statuses. Anything unmapped is an
// internal error and the detail stays server-side.
func respondError(c *gin.Context, err error) {
	var insufficient *engine.InsufficientQuestionsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "Not enough questions available",
			"required": insufficient.Required,
			"found":    insufficient.Found,
		})
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, engine.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, engine.ErrSessionNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Session is not active"})
	case errors.Is(err, engine.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"error": "Question already answered"})
	case errors.Is(err, engine.ErrStaleSession):
		c.JSON(http.StatusConflict, gin.H{"error": "Session was modified concurrently, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireUserID reads the user id set by the gateway's auth middleware.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return "", false
	}
	return userID, true
}
