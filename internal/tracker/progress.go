package tracker

import (
	"math"

	"lg/fittrack-go-api/internal/nutrition"
)

// CalorieProgress compares consumed calories to the target. Percent is
// capped at 100 for display; RawPercent is not.
type CalorieProgress struct {
	Consumed   int  `json:"consumed"`
	Target     int  `json:"target"`
	Remaining  int  `json:"remaining"`
	Percent    int  `json:"percent"`
	RawPercent int  `json:"rawPercent"`
	OverTarget bool `json:"overTarget"`
}

// MacroProgress compares a consumed macro, rounded to whole grams, to its
// target.
type MacroProgress struct {
	Consumed  int `json:"consumed"`
	Target    int `json:"target"`
	Remaining int `json:"remaining"`
	Percent   int `json:"percent"`
}

// Progress is the dashboard view of a day against a profile.
type Progress struct {
	Calories CalorieProgress `json:"calories"`
	Protein  MacroProgress   `json:"protein"`
	Carbs    MacroProgress   `json:"carbs"`
	Fats     MacroProgress   `json:"fats"`
	Meals    int             `json:"meals"`
}

// ComputeProgress derives the progress view. It reads only p's targets and
// day's totals.
func ComputeProgress(p nutrition.UserProfile, day nutrition.DayStats) Progress {
	raw := percent(float64(day.TotalCalories), p.TargetCalories)
	return Progress{
		Calories: CalorieProgress{
			Consumed:   day.TotalCalories,
			Target:     p.TargetCalories,
			Remaining:  p.TargetCalories - day.TotalCalories,
			Percent:    min(raw, 100),
			RawPercent: raw,
			OverTarget: day.TotalCalories > p.TargetCalories,
		},
		Protein: macroProgress(day.TotalProtein, p.TargetProtein),
		Carbs:   macroProgress(day.TotalCarbs, p.TargetCarbs),
		Fats:    macroProgress(day.TotalFats, p.TargetFats),
		Meals:   len(day.Meals),
	}
}

func macroProgress(consumed float64, target int) MacroProgress {
	grams := int(math.Round(consumed))
	return MacroProgress{
		Consumed:  grams,
		Target:    target,
		Remaining: target - grams,
		Percent:   percent(consumed, target),
	}
}

func percent(consumed float64, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(consumed / float64(target) * 100))
}
