package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lg/fittrack-go-api/internal/assistant"
	"lg/fittrack-go-api/internal/kvstore"
	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/tracker"
)

// Handler holds shared dependencies (tracker, parser, assistant) for all route handlers.
type Handler struct {
	tracker   *tracker.Tracker
	parser    nutrition.Parser
	responder *assistant.Responder
}

// newHandler wires a Handler around t. A nil parser or responder gets the default.
func newHandler(t *tracker.Tracker, parser nutrition.Parser, responder *assistant.Responder) *Handler {
	if parser == nil {
		parser = nutrition.NewTableParser(nil)
	}
	if responder == nil {
		responder = assistant.New(nil)
	}
	return &Handler{tracker: t, parser: parser, responder: responder}
}

/* ─── Error helpers ───────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// trackerError maps a domain or storage error to a status. Client errors
// echo the error text; anything else is logged and reported as fallback.
func trackerError(c *gin.Context, fn string, err error, fallback string) {
	switch {
	case errors.Is(err, tracker.ErrMealNotFound):
		apiError(c, http.StatusNotFound, "meal not found")
	case errors.Is(err, tracker.ErrDuplicateMeal):
		apiError(c, http.StatusConflict, err.Error())
	case errors.Is(err, tracker.ErrNotOnboarded):
		apiError(c, http.StatusNotFound, "profile not found")
	case errors.Is(err, nutrition.ErrInvalidInput), errors.Is(err, nutrition.ErrInvalidTargets):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, kvstore.ErrNotFound):
		apiError(c, http.StatusNotFound, "not found")
	default:
		log.Printf("[%s] %v", fn, err)
		apiError(c, http.StatusInternalServerError, fallback)
	}
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.DELETE("/profile", h.deleteProfile)
	api.POST("/profile/preview", h.previewProfile)
	api.GET("/day", h.getDay)
	api.POST("/meals", h.createMeal)
	api.PUT("/meals/:id", h.updateMeal)
	api.DELETE("/meals/:id", h.deleteMeal)
	api.POST("/foods/parse", h.parseFoods)
	api.POST("/assistant", h.askAssistant)
}
