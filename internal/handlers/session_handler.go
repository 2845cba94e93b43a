package handlers

import (
	"net/http"

	"quiz-session-service/internal/models"
	"quiz-session-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// Start creates a session for the requested mode, or returns the caller's
// active one for modes that resume.
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req service.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	req.UserID = userID

	result, err := h.Service.StartSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Resumed {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Get returns a session snapshot with the current question hydrated.
func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.Service.GetSession(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetActive returns the caller's active session for subject+mode.
func (h *SessionHandler) GetActive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subject := c.Query("subject")
	mode := models.Mode(c.Query("mode"))
	view, err := h.Service.GetActiveSession(c.Request.Context(), userID, subject,
		c.Query("syllabus"), c.Query("standard"), mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit scores one answer against the addressed entry.
func (h *SessionHandler) Submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	req.UserID = userID

	result, err := h.Service.Submit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Report returns the post-session analysis breakdown.
func (h *SessionHandler) Report(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.Service.Report(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Missed returns the incorrectly answered questions, revealed for review.
func (h *SessionHandler) Missed(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	missed, err := h.Service.MissedQuestions(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": missed})
}

// Topics lists distinct topics for a subject.
func (h *SessionHandler) Topics(c *gin.Context) {
	topics, err := h.Service.Topics(c.Request.Context(), c.Query("subject"), c.Query("syllabus"), c.Query("standard"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// Years lists exam years with previous-year papers for a subject.
func (h *SessionHandler) Years(c *gin.Context) {
	years, err := h.Service.Years(c.Request.Context(), c.Query("subject"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
