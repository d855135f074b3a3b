package nutrition

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// defaultName is used when onboarding leaves the name blank.
const defaultName = "User"

// ProfileInput is an onboarding submission. Targets are never accepted from
// callers; BuildProfile derives them.
type ProfileInput struct {
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Weight        float64       `json:"weight"`
	Height        float64       `json:"height"`
	Waist         float64       `json:"waist"`
	Hip           float64       `json:"hip"`
	Neck          float64       `json:"neck"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Validate checks the fields the calculations depend on.
func (in ProfileInput) Validate() error {
	if in.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if !in.ActivityLevel.Valid() {
		return fmt.Errorf("%w: activity level must be one of: sedentary, light, moderate, active, very-active", ErrInvalidInput)
	}
	if !in.Goal.Valid() {
		return fmt.Errorf("%w: goal must be one of: lose, maintain, gain", ErrInvalidInput)
	}
	return Measurements{
		Gender: in.Gender,
		Weight: in.Weight,
		Height: in.Height,
		Waist:  in.Waist,
		Hip:    in.Hip,
		Neck:   in.Neck,
	}.Validate()
}

// BuildProfile validates in, assigns a fresh ID and fills in the derived
// calorie and macro targets. A profile whose targets would be zero or
// negative is rejected with ErrInvalidTargets so it never reaches storage.
func BuildProfile(in ProfileInput) (UserProfile, error) {
	if err := in.Validate(); err != nil {
		return UserProfile{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = defaultName
	}

	p := UserProfile{
		ID:            uuid.NewString(),
		Name:          name,
		Age:           in.Age,
		Weight:        in.Weight,
		Height:        in.Height,
		Waist:         in.Waist,
		Hip:           in.Hip,
		Neck:          in.Neck,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	}

	calories, err := MaintenanceCalories(p)
	if err != nil {
		return UserProfile{}, err
	}
	macros := AllocateMacros(calories)
	if calories <= 0 || macros.Protein <= 0 || macros.Carbs <= 0 || macros.Fats <= 0 {
		return UserProfile{}, fmt.Errorf("%w: computed %d kcal (protein %dg, carbs %dg, fats %dg)",
			ErrInvalidTargets, calories, macros.Protein, macros.Carbs, macros.Fats)
	}

	p.TargetCalories = calories
	p.TargetProtein = macros.Protein
	p.TargetCarbs = macros.Carbs
	p.TargetFats = macros.Fats
	return p, nil
}

// Recompute re-derives the targets of a stored profile from its inputs.
// Used when loading so a hand-edited record cannot carry stale targets.
func Recompute(p UserProfile) (UserProfile, error) {
	rebuilt, err := BuildProfile(ProfileInput{
		Name:          p.Name,
		Age:           p.Age,
		Weight:        p.Weight,
		Height:        p.Height,
		Waist:         p.Waist,
		Hip:           p.Hip,
		Neck:          p.Neck,
		Gender:        p.Gender,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
	})
	if err != nil {
		return UserProfile{}, err
	}
	rebuilt.ID = p.ID
	return rebuilt, nil
}
