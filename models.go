package main

import (
	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/tracker"
)

/* ─── Responses ──────────────────────────────────────────────────────── */

// profileResponse is the shape of GET/PUT /api/profile and the preview.
// Energy is the breakdown behind the calorie target.
type profileResponse struct {
	Profile nutrition.UserProfile `json:"profile"`
	Energy  nutrition.Energy      `json:"energy"`
}

// dayResponse is the response shape for GET /api/day and meal mutations.
// Progress is null until a profile exists.
type dayResponse struct {
	Day      nutrition.DayStats `json:"day"`
	Progress *tracker.Progress  `json:"progress"`
}

// parseResponse is returned when at least one food was recognised.
type parseResponse struct {
	Items []nutrition.FoodItem `json:"items"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// mealRequest is the body for POST /api/meals and PUT /api/meals/:id.
// Text is parsed with the food table; otherwise Foods is used as given
// (typically items returned by POST /api/foods/parse).
type mealRequest struct {
	Type  nutrition.MealType   `json:"type"`
	Text  string               `json:"text"`
	Foods []nutrition.FoodItem `json:"foods"`
}

// parseRequest is the body for POST /api/foods/parse.
type parseRequest struct {
	Description string `json:"description"`
}

type assistantRequest struct {
	Message string `json:"message"`
}
