package nutrition

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// MealTimeFormat is the clock layout stored on meals.
const MealTimeFormat = "15:04"

// NewMeal builds a meal of type t from foods, logged at now. Totals are the
// sum over foods and are not recomputed afterwards.
func NewMeal(t MealType, foods []FoodItem, now time.Time) (Meal, error) {
	if !t.Valid() {
		return Meal{}, fmt.Errorf("%w: meal type must be one of: breakfast, lunch, dinner, snack", ErrInvalidInput)
	}
	if len(foods) == 0 {
		return Meal{}, fmt.Errorf("%w: a meal needs at least one food", ErrInvalidInput)
	}
	for _, f := range foods {
		if err := f.Validate(); err != nil {
			return Meal{}, err
		}
	}

	m := Meal{
		ID:    uuid.NewString(),
		Type:  t,
		Time:  now.Format(MealTimeFormat),
		Date:  NewDateOnly(now),
		Foods: append([]FoodItem(nil), foods...),
	}
	for _, f := range foods {
		m.TotalCalories += f.Calories
		m.TotalProtein += f.Protein
		m.TotalCarbs += f.Carbs
		m.TotalFats += f.Fats
	}
	return m, nil
}

// Validate rejects food items with a blank name, non-positive quantity or
// negative nutrition.
func (f FoodItem) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if !(f.Quantity > 0) || math.IsInf(f.Quantity, 0) {
		return fmt.Errorf("%w: food %q quantity must be positive", ErrInvalidInput, f.Name)
	}
	if f.Calories < 0 || !nonNegative(f.Protein) || !nonNegative(f.Carbs) || !nonNegative(f.Fats) {
		return fmt.Errorf("%w: food %q nutrition must not be negative", ErrInvalidInput, f.Name)
	}
	return nil
}

// Validate checks a meal before it is added to a day. Totals must match
// the sum over Foods.
func (m Meal) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: meal id is required", ErrInvalidInput)
	}
	if !m.Type.Valid() {
		return fmt.Errorf("%w: meal type must be one of: breakfast, lunch, dinner, snack", ErrInvalidInput)
	}
	if m.TotalCalories < 0 || !nonNegative(m.TotalProtein) || !nonNegative(m.TotalCarbs) || !nonNegative(m.TotalFats) {
		return fmt.Errorf("%w: meal totals must not be negative", ErrInvalidInput)
	}
	var calories int
	var protein, carbs, fats float64
	for _, f := range m.Foods {
		if err := f.Validate(); err != nil {
			return err
		}
		calories += f.Calories
		protein += f.Protein
		carbs += f.Carbs
		fats += f.Fats
	}
	if m.TotalCalories != calories || !sameAmount(m.TotalProtein, protein) ||
		!sameAmount(m.TotalCarbs, carbs) || !sameAmount(m.TotalFats, fats) {
		return fmt.Errorf("%w: meal totals must equal the sum of its foods", ErrInvalidInput)
	}
	return nil
}

// sameAmount compares gram sums that may differ only by summation order.
func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
