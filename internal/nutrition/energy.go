package nutrition

import (
	"fmt"
	"math"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// This is the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// goalAdjustments is the daily calorie shift applied for each goal.
var goalAdjustments = map[Goal]float64{
	Lose:     -500,
	Maintain: 0,
	Gain:     300,
}

// ActivityLevels lists the valid activity levels in ascending order.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{Sedentary, Light, Moderate, Active, VeryActive}
}

// Energy is the breakdown behind a calorie target.
type Energy struct {
	BodyFatPercent float64 `json:"bodyFatPercent"`
	LeanBodyMass   float64 `json:"leanBodyMass"`
	BMR            float64 `json:"bmr"`
	Maintenance    float64 `json:"maintenance"`
	TargetCalories int     `json:"targetCalories"`
}

// ComputeEnergy runs the body-fat estimate, Katch-McArdle BMR
// (370 + 21.6 × lean mass), activity scaling and goal adjustment.
// The target is rounded to the nearest integer; no lower bound is applied.
func ComputeEnergy(p UserProfile) (Energy, error) {
	mult, found := activityMultipliers[p.ActivityLevel]
	if !found {
		return Energy{}, fmt.Errorf("%w: activity level must be one of: sedentary, light, moderate, active, very-active", ErrInvalidInput)
	}
	adjust, found := goalAdjustments[p.Goal]
	if !found {
		return Energy{}, fmt.Errorf("%w: goal must be one of: lose, maintain, gain", ErrInvalidInput)
	}

	bf, err := EstimateBodyFat(MeasurementsOf(p))
	if err != nil {
		return Energy{}, err
	}

	lean := p.Weight * (1 - bf/100)
	bmr := 370 + 21.6*lean
	maintenance := bmr * mult

	return Energy{
		BodyFatPercent: bf,
		LeanBodyMass:   lean,
		BMR:            bmr,
		Maintenance:    maintenance,
		TargetCalories: int(math.Round(maintenance + adjust)),
	}, nil
}

// MaintenanceCalories returns the goal-adjusted daily calorie target for p.
func MaintenanceCalories(p UserProfile) (int, error) {
	e, err := ComputeEnergy(p)
	if err != nil {
		return 0, err
	}
	return e.TargetCalories, nil
}
