// Package observability holds the Prometheus collectors for the tracker.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	mealMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "day",
		Name:      "meal_mutations_total",
		Help:      "Meal add/update/delete operations by outcome.",
	}, []string{"operation", "outcome"})
	dayTotals = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "day",
		Name:      "totals",
		Help:      "Running totals for the current day (calories in kcal, macros in grams).",
	}, []string{"nutrient"})
	dayMeals = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "day",
		Name:      "meals",
		Help:      "Number of meals logged for the current day.",
	})
	profileTargets = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "profile",
		Name:      "targets",
		Help:      "Daily targets derived from the stored profile.",
	}, []string{"nutrient"})
	foodParses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "parser",
		Name:      "parses_total",
		Help:      "Free-text food parses by whether anything was recognised.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(mealMutations, dayTotals, dayMeals, profileTargets, foodParses)
}

// RecordMealMutation counts a meal operation; outcome is "ok", "not_found",
// "invalid" or "error".
func RecordMealMutation(operation, outcome string) {
	mealMutations.WithLabelValues(operation, outcome).Inc()
}

// RecordDayTotals publishes the current day's totals.
func RecordDayTotals(calories int, protein, carbs, fats float64, meals int) {
	dayTotals.WithLabelValues("calories").Set(float64(calories))
	dayTotals.WithLabelValues("protein").Set(protein)
	dayTotals.WithLabelValues("carbs").Set(carbs)
	dayTotals.WithLabelValues("fats").Set(fats)
	dayMeals.Set(float64(meals))
}

// RecordProfileTargets publishes the stored profile's targets. All zeros
// clears them after a reset.
func RecordProfileTargets(calories, protein, carbs, fats int) {
	profileTargets.WithLabelValues("calories").Set(float64(calories))
	profileTargets.WithLabelValues("protein").Set(float64(protein))
	profileTargets.WithLabelValues("carbs").Set(float64(carbs))
	profileTargets.WithLabelValues("fats").Set(float64(fats))
}

// RecordFoodParse counts a parse; recognised is false when nothing matched.
func RecordFoodParse(recognised bool) {
	result := "recognised"
	if !recognised {
		result = "empty"
	}
	foodParses.WithLabelValues(result).Inc()
}
