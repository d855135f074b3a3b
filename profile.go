package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/nutrition"
)

// getProfile returns the stored profile and the energy breakdown behind its
// calorie target.
// GET /api/profile. 404 before onboarding.
func (h *Handler) getProfile(c *gin.Context) {
	p, ok, err := h.tracker.Profile(c)
	if err != nil {
		trackerError(c, "getProfile", err, "failed to fetch profile")
		return
	}
	if !ok {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	h.writeProfile(c, http.StatusOK, p)
}

// putProfile runs onboarding (or redoes it): targets are always derived
// from the submitted measurements, never accepted from the client.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	var in nutrition.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.tracker.SetProfile(c, in)
	if err != nil {
		trackerError(c, "putProfile", err, "failed to save profile")
		return
	}
	log.Printf("[putProfile] profile %s saved: %d kcal", p.ID, p.TargetCalories)
	h.writeProfile(c, http.StatusOK, p)
}

// previewProfile computes targets for the submitted measurements without
// storing anything.
// POST /api/profile/preview.
func (h *Handler) previewProfile(c *gin.Context) {
	var in nutrition.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.tracker.PreviewTargets(in)
	if err != nil {
		trackerError(c, "previewProfile", err, "failed to compute targets")
		return
	}
	h.writeProfile(c, http.StatusOK, p)
}

// deleteProfile clears the profile, the onboarding flag and today's log.
// DELETE /api/profile.
func (h *Handler) deleteProfile(c *gin.Context) {
	if err := h.tracker.Reset(c); err != nil {
		trackerError(c, "deleteProfile", err, "failed to reset profile")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeProfile(c *gin.Context, status int, p nutrition.UserProfile) {
	energy, err := nutrition.ComputeEnergy(p)
	if err != nil {
		trackerError(c, "writeProfile", err, "failed to compute energy")
		return
	}
	c.JSON(status, profileResponse{Profile: p, Energy: energy})
}
