package nutrition

import "math"

// Caloric split and densities for the daily macro targets.
const (
	proteinShare = 0.30
	carbsShare   = 0.40
	fatsShare    = 0.30

	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatsKcalPerGram    = 9
)

// Macros are daily gram targets.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// Calories converts the gram targets back to kcal. Because each macro is
// rounded on its own, this need not equal the calories they came from.
func (m Macros) Calories() int {
	return m.Protein*proteinKcalPerGram + m.Carbs*carbsKcalPerGram + m.Fats*fatsKcalPerGram
}

// AllocateMacros splits a calorie target 30/40/30 across protein, carbs and
// fats and converts each share to grams.
func AllocateMacros(calories int) Macros {
	kcal := float64(calories)
	return Macros{
		Protein: int(math.Round(kcal * proteinShare / proteinKcalPerGram)),
		Carbs:   int(math.Round(kcal * carbsShare / carbsKcalPerGram)),
		Fats:    int(math.Round(kcal * fatsShare / fatsKcalPerGram)),
	}
}
