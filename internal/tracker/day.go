package tracker

import (
	"fmt"

	"lg/fittrack-go-api/internal/nutrition"
)

// Keys names the stored records. Prefix namespaces them in a shared store.
type Keys struct {
	Prefix string
}

// Profile is the key of the serialized UserProfile.
func (k Keys) Profile() string { return k.Prefix + "profile" }

// Onboarded is the key of the "true" flag written after onboarding.
func (k Keys) Onboarded() string { return k.Prefix + "onboarded" }

// Day is the key of the DayStats for date.
func (k Keys) Day(date nutrition.DateOnly) string {
	return k.Prefix + "meals-" + date.String()
}

// NewDay returns an empty day for date.
func NewDay(date nutrition.DateOnly) nutrition.DayStats {
	return nutrition.DayStats{Date: date, Meals: []nutrition.Meal{}}
}

// Totals folds the totals of every meal. It is the only way day totals are
// produced; they are never adjusted incrementally.
func Totals(meals []nutrition.Meal) (calories int, protein, carbs, fats float64) {
	for _, m := range meals {
		calories += m.TotalCalories
		protein += m.TotalProtein
		carbs += m.TotalCarbs
		fats += m.TotalFats
	}
	return calories, protein, carbs, fats
}

// withMeals returns a day for date holding meals with freshly folded totals.
func withMeals(date nutrition.DateOnly, meals []nutrition.Meal) nutrition.DayStats {
	day := NewDay(date)
	day.Meals = append(day.Meals, meals...)
	day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFats = Totals(day.Meals)
	return day
}

func indexOf(meals []nutrition.Meal, id string) int {
	for i, m := range meals {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// addMeal returns day with meal appended. day itself is not modified.
func addMeal(day nutrition.DayStats, meal nutrition.Meal) (nutrition.DayStats, error) {
	if indexOf(day.Meals, meal.ID) >= 0 {
		return day, fmt.Errorf("%w: %s", ErrDuplicateMeal, meal.ID)
	}
	meals := make([]nutrition.Meal, 0, len(day.Meals)+1)
	meals = append(meals, day.Meals...)
	meals = append(meals, meal)
	return withMeals(day.Date, meals), nil
}

// replaceMeal returns day with the meal identified by id swapped for meal.
// The replacement keeps id.
func replaceMeal(day nutrition.DayStats, id string, meal nutrition.Meal) (nutrition.DayStats, error) {
	i := indexOf(day.Meals, id)
	if i < 0 {
		return day, fmt.Errorf("%w: %s", ErrMealNotFound, id)
	}
	meal.ID = id
	meals := append([]nutrition.Meal(nil), day.Meals...)
	meals[i] = meal
	return withMeals(day.Date, meals), nil
}

// removeMeal returns day without the meal identified by id.
func removeMeal(day nutrition.DayStats, id string) (nutrition.DayStats, error) {
	i := indexOf(day.Meals, id)
	if i < 0 {
		return day, fmt.Errorf("%w: %s", ErrMealNotFound, id)
	}
	meals := make([]nutrition.Meal, 0, len(day.Meals)-1)
	meals = append(meals, day.Meals[:i]...)
	meals = append(meals, day.Meals[i+1:]...)
	return withMeals(day.Date, meals), nil
}
