package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/observability"
)

// parseFoods turns a free-text description such as "200g rice, 1 apple"
// into food items using the nutrition table. Nothing is logged; the client
// reviews the items and posts them to /api/meals.
// POST /api/foods/parse. Returns {"error": "unrecognized"} with 200 when no
// food in the table was found.
func (h *Handler) parseFoods(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}

	items := h.parser.Parse(req.Description)
	observability.RecordFoodParse(len(items) > 0)
	if len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	c.JSON(http.StatusOK, parseResponse{Items: items})
}
