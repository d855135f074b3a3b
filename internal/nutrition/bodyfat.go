package nutrition

import (
	"fmt"
	"math"
)

// Body-fat clamps per gender. The Navy formula blows up as the log argument
// approaches zero, so results are held inside a plausible range.
const (
	maleBodyFatMin   = 8.0
	maleBodyFatMax   = 35.0
	femaleBodyFatMin = 12.0
	femaleBodyFatMax = 45.0
)

// Measurements are the anthropometric inputs to the body-fat estimate,
// all in centimetres except Weight (kg).
type Measurements struct {
	Gender Gender
	Weight float64
	Height float64
	Waist  float64
	Hip    float64
	Neck   float64
}

// MeasurementsOf extracts the estimator inputs from a profile.
func MeasurementsOf(p UserProfile) Measurements {
	return Measurements{
		Gender: p.Gender,
		Weight: p.Weight,
		Height: p.Height,
		Waist:  p.Waist,
		Hip:    p.Hip,
		Neck:   p.Neck,
	}
}

// Validate rejects non-positive or non-finite measurements and unknown genders.
func (m Measurements) Validate() error {
	if !m.Gender.Valid() {
		return fmt.Errorf("%w: gender must be one of: male, female", ErrInvalidInput)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"weight", m.Weight},
		{"height", m.Height},
		{"waist", m.Waist},
		{"hip", m.Hip},
		{"neck", m.Neck},
	}
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, f.name)
		}
	}
	return nil
}

// EstimateBodyFat returns the estimated body-fat percentage using the U.S.
// Navy circumference method:
//
//	male:   495 / (1.0324 - 0.19077*log10(waist-neck) + 0.15456*log10(height)) - 450
//	female: 495 / (1.29579 - 0.35004*log10(waist+hip-neck) + 0.22100*log10(height)) - 450
//
// A non-positive log argument is an ErrInvalidInput; the result is clamped to
// [8, 35] for males and [12, 45] for females.
func EstimateBodyFat(m Measurements) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	var bf, lo, hi float64
	switch m.Gender {
	case Male:
		span := m.Waist - m.Neck
		if span <= 0 {
			return 0, fmt.Errorf("%w: waist must exceed neck", ErrInvalidInput)
		}
		bf = 495/(1.0324-0.19077*math.Log10(span)+0.15456*math.Log10(m.Height)) - 450
		lo, hi = maleBodyFatMin, maleBodyFatMax
	default:
		span := m.Waist + m.Hip - m.Neck
		if span <= 0 {
			return 0, fmt.Errorf("%w: waist plus hip must exceed neck", ErrInvalidInput)
		}
		bf = 495/(1.29579-0.35004*math.Log10(span)+0.22100*math.Log10(m.Height)) - 450
		lo, hi = femaleBodyFatMin, femaleBodyFatMax
	}

	// A denominator crossing zero flips the sign; anything past the bounds
	// (including ±Inf) lands on the nearest clamp.
	return math.Max(lo, math.Min(hi, bf)), nil
}
