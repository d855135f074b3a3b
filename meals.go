package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/observability"
	"lg/fittrack-go-api/internal/tracker"
)

// getDay returns today's meals and totals, with progress against the
// profile's targets once onboarding is done.
// GET /api/day.
func (h *Handler) getDay(c *gin.Context) {
	day, err := h.tracker.Today(c)
	if err != nil {
		trackerError(c, "getDay", err, "failed to fetch day")
		return
	}

	resp := dayResponse{Day: day}
	profile, ok, err := h.tracker.Profile(c)
	if err != nil {
		trackerError(c, "getDay", err, "failed to fetch profile")
		return
	}
	if ok {
		progress := tracker.ComputeProgress(profile, day)
		resp.Progress = &progress
	}
	c.JSON(http.StatusOK, resp)
}

// createMeal logs a meal for today and returns the updated day.
// POST /api/meals. Body is {type, text} or {type, foods}; text that yields
// no known foods is rejected with 422.
func (h *Handler) createMeal(c *gin.Context) {
	meal, ok := h.bindMeal(c)
	if !ok {
		return
	}

	day, err := h.tracker.AddMeal(c, meal)
	if err != nil {
		trackerError(c, "createMeal", err, "failed to create meal")
		return
	}
	c.JSON(http.StatusCreated, day)
}

// updateMeal replaces a meal logged today. The meal keeps its id.
// PUT /api/meals/:id.
func (h *Handler) updateMeal(c *gin.Context) {
	meal, ok := h.bindMeal(c)
	if !ok {
		return
	}

	day, err := h.tracker.UpdateMeal(c, c.Param("id"), meal)
	if err != nil {
		trackerError(c, "updateMeal", err, "failed to update meal")
		return
	}
	c.JSON(http.StatusOK, day)
}

// deleteMeal removes a meal logged today.
// DELETE /api/meals/:id.
func (h *Handler) deleteMeal(c *gin.Context) {
	day, err := h.tracker.DeleteMeal(c, c.Param("id"))
	if err != nil {
		trackerError(c, "deleteMeal", err, "failed to delete meal")
		return
	}
	c.JSON(http.StatusOK, day)
}

// bindMeal decodes a mealRequest and builds the Meal, writing the error
// response itself when it cannot.
func (h *Handler) bindMeal(c *gin.Context) (nutrition.Meal, bool) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return nutrition.Meal{}, false
	}
	if !req.Type.Valid() {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack")
		return nutrition.Meal{}, false
	}

	foods := req.Foods
	if strings.TrimSpace(req.Text) != "" {
		foods = h.parser.Parse(req.Text)
		observability.RecordFoodParse(len(foods) > 0)
		if len(foods) == 0 {
			apiError(c, http.StatusUnprocessableEntity, "Couldn't parse your input")
			return nutrition.Meal{}, false
		}
	}
	if len(foods) == 0 {
		apiError(c, http.StatusBadRequest, "no foods to add")
		return nutrition.Meal{}, false
	}
	for i := range foods {
		if foods[i].ID == "" {
			foods[i].ID = uuid.NewString()
		}
		foods[i].Name = strings.ToLower(strings.TrimSpace(foods[i].Name))
	}

	meal, err := nutrition.NewMeal(req.Type, foods, h.tracker.Now())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return nutrition.Meal{}, false
	}
	// The tracker dates the meal under its lock, so a request that straddles
	// midnight lands on the new day instead of being rejected.
	meal.Date = nutrition.DateOnly{}
	return meal, true
}
