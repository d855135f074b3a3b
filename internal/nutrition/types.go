// Package nutrition holds the domain types and the pure calculations behind
// daily targets: body-fat estimation, energy requirement, macro split and
// the food table used to turn free text into FoodItems.
package nutrition

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned for measurements or enum values the
	// formulas cannot accept.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTargets is returned when a profile would be stored with a
	// zero or negative target.
	ErrInvalidTargets = errors.New("invalid targets")
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

// DateFormat is the ISO calendar date layout used for meal and day dates.
const DateFormat = "2006-01-02"

// NewDateOnly truncates t to its calendar date in t's location.
func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a YYYY-MM-DD string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{t}, nil
}

func (d DateOnly) String() string {
	return d.Time.Format(DateFormat)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(DateFormat) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	t, err := time.Parse(`"`+DateFormat+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Enumerations ───────────────────────────────────────────────────── */

// Gender selects the body-fat formula.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether g is one of the supported genders.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// ActivityLevel is the self-reported activity level used to scale BMR.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very-active"
)

// Valid reports whether a has an activity multiplier.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Goal shifts maintenance calories into a daily target.
type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
)

// Valid reports whether g has a calorie adjustment.
func (g Goal) Valid() bool {
	_, ok := goalAdjustments[g]
	return ok
}

// MealType is the slot a meal is logged under.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// validMealTypes is the set of allowed meal slots.
var validMealTypes = map[MealType]bool{
	Breakfast: true,
	Lunch:     true,
	Dinner:    true,
	Snack:     true,
}

// Valid reports whether t is a known meal slot.
func (t MealType) Valid() bool {
	return validMealTypes[t]
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// UserProfile is the onboarding record plus the targets derived from it.
// Targets are only ever written by BuildProfile.
type UserProfile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Weight        float64       `json:"weight"` // kg
	Height        float64       `json:"height"` // cm
	Waist         float64       `json:"waist"`  // cm
	Hip           float64       `json:"hip"`    // cm
	Neck          float64       `json:"neck"`   // cm
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`

	TargetCalories int `json:"targetCalories"`
	TargetProtein  int `json:"targetProtein"`
	TargetCarbs    int `json:"targetCarbs"`
	TargetFats     int `json:"targetFats"`
}

// FoodItem is one food inside a meal, with nutrition already scaled to its
// quantity.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Meal is a logged eating event. Totals are fixed when the meal is built.
type Meal struct {
	ID            string     `json:"id"`
	Type          MealType   `json:"type"`
	Time          string     `json:"time"`
	Date          DateOnly   `json:"date"`
	Foods         []FoodItem `json:"foods"`
	TotalCalories int        `json:"totalCalories"`
	TotalProtein  float64    `json:"totalProtein"`
	TotalCarbs    float64    `json:"totalCarbs"`
	TotalFats     float64    `json:"totalFats"`
}

// DayStats aggregates every meal logged on one calendar date.
type DayStats struct {
	Date          DateOnly `json:"date"`
	TotalCalories int      `json:"totalCalories"`
	TotalProtein  float64  `json:"totalProtein"`
	TotalCarbs    float64  `json:"totalCarbs"`
	TotalFats     float64  `json:"totalFats"`
	Meals         []Meal   `json:"meals"`
}
