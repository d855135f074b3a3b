package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/nutrition"
)

// askAssistant answers a chat message about today's intake.
// POST /api/assistant.
func (h *Handler) askAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}

	// The assistant reads a snapshot; a missing profile gets the setup prompt.
	var (
		profile *nutrition.UserProfile
		day     *nutrition.DayStats
	)
	p, ok, err := h.tracker.Profile(c)
	if err != nil {
		trackerError(c, "askAssistant", err, "failed to fetch profile")
		return
	}
	if ok {
		d, err := h.tracker.Today(c)
		if err != nil {
			trackerError(c, "askAssistant", err, "failed to fetch day")
			return
		}
		profile, day = &p, &d
	}

	c.JSON(http.StatusOK, assistantResponse{Reply: h.responder.Reply(req.Message, profile, day)})
}
