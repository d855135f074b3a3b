package nutrition

import (
	"errors"
	"math"
	"testing"
)

// makeProfile constructs a fully-populated male profile for energy tests.
// Individual tests override fields to exercise specific branches.
func makeProfile(activity ActivityLevel, goal Goal) UserProfile {
	return UserProfile{
		Name:          "Test",
		Age:           30,
		Weight:        80,
		Height:        180,
		Waist:         85,
		Hip:           95,
		Neck:          38,
		Gender:        Male,
		ActivityLevel: activity,
		Goal:          goal,
	}
}

/* ─── Body-fat estimator tests ───────────────────────────────────────── */

// TestEstimateBodyFat_Male verifies the male Navy formula.
//
// Inputs: 180cm, waist 85, neck 38.
// log10(47)=1.6721, log10(180)=2.2553 → 495/1.06199 - 450 ≈ 16.107
func TestEstimateBodyFat_Male(t *testing.T) {
	bf, err := EstimateBodyFat(MeasurementsOf(makeProfile(Moderate, Maintain)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(bf-16.107) >= 0.05 {
		t.Errorf("male body fat = %.3f, want ~16.107", bf)
	}
}

// TestEstimateBodyFat_Female verifies the female Navy formula.
//
// Inputs: 165cm, waist 75, hip 100, neck 33.
// log10(142)=2.1523, log10(165)=2.2175 → 495/1.03247 - 450 ≈ 29.435
func TestEstimateBodyFat_Female(t *testing.T) {
	m := Measurements{Gender: Female, Weight: 65, Height: 165, Waist: 75, Hip: 100, Neck: 33}
	bf, err := EstimateBodyFat(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(bf-29.435) >= 0.05 {
		t.Errorf("female body fat = %.3f, want ~29.435", bf)
	}
}

// TestEstimateBodyFat_Clamped verifies results outside the plausible range
// are held at the per-gender bounds.
func TestEstimateBodyFat_Clamped(t *testing.T) {
	cases := []struct {
		name string
		m    Measurements
		want float64
	}{
		{"male floor", Measurements{Gender: Male, Weight: 70, Height: 200, Waist: 60, Hip: 80, Neck: 40}, 8},
		{"male ceiling", Measurements{Gender: Male, Weight: 120, Height: 160, Waist: 150, Hip: 130, Neck: 35}, 35},
		{"female floor", Measurements{Gender: Female, Weight: 55, Height: 190, Waist: 60, Hip: 80, Neck: 40}, 12},
		{"female ceiling", Measurements{Gender: Female, Weight: 110, Height: 150, Waist: 130, Hip: 140, Neck: 30}, 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bf, err := EstimateBodyFat(tc.m)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bf != tc.want {
				t.Errorf("body fat = %f, want %f", bf, tc.want)
			}
		})
	}
}

// TestEstimateBodyFat_InvalidInput verifies that non-positive measurements
// and non-positive log arguments are rejected instead of producing NaN.
func TestEstimateBodyFat_InvalidInput(t *testing.T) {
	valid := Measurements{Gender: Male, Weight: 80, Height: 180, Waist: 85, Hip: 95, Neck: 38}
	cases := []struct {
		name  string
		mutFn func(m *Measurements)
	}{
		{"zero weight", func(m *Measurements) { m.Weight = 0 }},
		{"negative height", func(m *Measurements) { m.Height = -170 }},
		{"zero waist", func(m *Measurements) { m.Waist = 0 }},
		{"zero hip", func(m *Measurements) { m.Hip = 0 }},
		{"zero neck", func(m *Measurements) { m.Neck = 0 }},
		{"NaN weight", func(m *Measurements) { m.Weight = math.NaN() }},
		{"unknown gender", func(m *Measurements) { m.Gender = "other" }},
		{"male waist equals neck", func(m *Measurements) { m.Waist = 38 }},
		{"male waist below neck", func(m *Measurements) { m.Waist = 30 }},
		{"female waist plus hip below neck", func(m *Measurements) {
			m.Gender = Female
			m.Waist, m.Hip, m.Neck = 10, 10, 25
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := valid
			tc.mutFn(&m)
			bf, err := EstimateBodyFat(m)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got bf=%f err=%v", bf, err)
			}
		})
	}
}

/* ─── Energy calculator tests ────────────────────────────────────────── */

// TestMaintenanceCalories_Scenario walks the male 80kg/180cm example through
// every step: lean mass, Katch-McArdle BMR, moderate multiplier, rounding.
func TestMaintenanceCalories_Scenario(t *testing.T) {
	p := makeProfile(Moderate, Maintain)
	e, err := ComputeEnergy(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lean := 80 * (1 - e.BodyFatPercent/100)
	bmr := 370 + 21.6*lean
	want := int(math.Round(bmr * 1.55))

	if math.Abs(e.LeanBodyMass-lean) > 1e-9 {
		t.Errorf("lean mass = %f, want %f", e.LeanBodyMass, lean)
	}
	if math.Abs(e.BMR-bmr) > 1e-9 {
		t.Errorf("BMR = %f, want %f", e.BMR, bmr)
	}
	if e.TargetCalories != want {
		t.Errorf("target = %d, want %d", e.TargetCalories, want)
	}
	// ≈ 2820 for a 16.1% body-fat estimate.
	if e.TargetCalories < 2815 || e.TargetCalories > 2825 {
		t.Errorf("target = %d, want ~2820", e.TargetCalories)
	}

	got, err := MaintenanceCalories(p)
	if err != nil || got != e.TargetCalories {
		t.Errorf("MaintenanceCalories = %d, %v; want %d", got, err, e.TargetCalories)
	}
}

// TestComputeEnergy_ActivityMultipliers verifies each level scales BMR by
// its fixed multiplier.
func TestComputeEnergy_ActivityMultipliers(t *testing.T) {
	want := map[ActivityLevel]float64{
		Sedentary:  1.2,
		Light:      1.375,
		Moderate:   1.55,
		Active:     1.725,
		VeryActive: 1.9,
	}
	for _, level := range ActivityLevels() {
		t.Run(string(level), func(t *testing.T) {
			e, err := ComputeEnergy(makeProfile(level, Maintain))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(e.Maintenance-e.BMR*want[level]) > 1e-9 {
				t.Errorf("maintenance = %f, want BMR×%v = %f", e.Maintenance, want[level], e.BMR*want[level])
			}
		})
	}
}

// TestComputeEnergy_GoalAdjustment verifies lose subtracts 500 and gain adds
// 300 to the rounded maintenance value.
func TestComputeEnergy_GoalAdjustment(t *testing.T) {
	base, err := MaintenanceCalories(makeProfile(Light, Maintain))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lose, _ := MaintenanceCalories(makeProfile(Light, Lose))
	gain, _ := MaintenanceCalories(makeProfile(Light, Gain))

	if lose != base-500 {
		t.Errorf("lose = %d, want %d", lose, base-500)
	}
	if gain != base+300 {
		t.Errorf("gain = %d, want %d", gain, base+300)
	}
}

// TestComputeEnergy_UnknownEnums verifies an unrecognised activity level or
// goal is rejected rather than multiplied through as zero.
func TestComputeEnergy_UnknownEnums(t *testing.T) {
	if _, err := ComputeEnergy(makeProfile("very_active", Maintain)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown activity level, got %v", err)
	}
	if _, err := ComputeEnergy(makeProfile(Moderate, "bulk")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown goal, got %v", err)
	}
}

/* ─── Macro allocator tests ──────────────────────────────────────────── */

func TestAllocateMacros_2000(t *testing.T) {
	m := AllocateMacros(2000)
	if m.Protein != 150 || m.Carbs != 200 || m.Fats != 67 {
		t.Errorf("AllocateMacros(2000) = %+v, want {150 200 67}", m)
	}
}

// TestAllocateMacros_Scenario checks the split against the scenario target
// using the per-macro rounding rule.
func TestAllocateMacros_Scenario(t *testing.T) {
	target, err := MaintenanceCalories(makeProfile(Moderate, Maintain))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := AllocateMacros(target)
	kcal := float64(target)
	if want := int(math.Round(0.30 * kcal / 4)); m.Protein != want {
		t.Errorf("protein = %d, want %d", m.Protein, want)
	}
	if want := int(math.Round(0.40 * kcal / 4)); m.Carbs != want {
		t.Errorf("carbs = %d, want %d", m.Carbs, want)
	}
	if want := int(math.Round(0.30 * kcal / 9)); m.Fats != want {
		t.Errorf("fats = %d, want %d", m.Fats, want)
	}
}

// TestAllocateMacros_RoundingDrift verifies grams converted back to kcal stay
// within 1% of the target across realistic targets.
func TestAllocateMacros_RoundingDrift(t *testing.T) {
	for target := 1000; target <= 5000; target += 7 {
		got := AllocateMacros(target).Calories()
		if math.Abs(float64(got-target)) > 0.01*float64(target) {
			t.Fatalf("target %d: macros sum to %d kcal, drift exceeds 1%%", target, got)
		}
	}
}

/* ─── Profile builder tests ──────────────────────────────────────────── */

func TestBuildProfile_DerivesTargets(t *testing.T) {
	p, err := BuildProfile(ProfileInput{
		Age: 30, Weight: 80, Height: 180, Waist: 85, Hip: 95, Neck: 38,
		Gender: Male, ActivityLevel: Moderate, Goal: Maintain,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if p.Name != "User" {
		t.Errorf("blank name should default to User, got %q", p.Name)
	}
	want, _ := MaintenanceCalories(p)
	if p.TargetCalories != want {
		t.Errorf("targetCalories = %d, want %d", p.TargetCalories, want)
	}
	if m := AllocateMacros(want); p.TargetProtein != m.Protein || p.TargetCarbs != m.Carbs || p.TargetFats != m.Fats {
		t.Errorf("macro targets = %d/%d/%d, want %+v", p.TargetProtein, p.TargetCarbs, p.TargetFats, m)
	}
}

// TestBuildProfile_RejectsNonPositiveTargets verifies a profile whose target
// falls to zero or below is never produced.
func TestBuildProfile_RejectsNonPositiveTargets(t *testing.T) {
	_, err := BuildProfile(ProfileInput{
		Age: 30, Weight: 1, Height: 50, Waist: 40, Hip: 40, Neck: 20,
		Gender: Male, ActivityLevel: Sedentary, Goal: Lose,
	})
	if !errors.Is(err, ErrInvalidTargets) {
		t.Fatalf("expected ErrInvalidTargets, got %v", err)
	}
}

func TestBuildProfile_InvalidInput(t *testing.T) {
	valid := ProfileInput{
		Age: 30, Weight: 80, Height: 180, Waist: 85, Hip: 95, Neck: 38,
		Gender: Male, ActivityLevel: Moderate, Goal: Maintain,
	}
	cases := []struct {
		name  string
		mutFn func(in *ProfileInput)
	}{
		{"negative age", func(in *ProfileInput) { in.Age = -1 }},
		{"missing neck", func(in *ProfileInput) { in.Neck = 0 }},
		{"unknown activity", func(in *ProfileInput) { in.ActivityLevel = "" }},
		{"unknown goal", func(in *ProfileInput) { in.Goal = "" }},
		{"missing gender", func(in *ProfileInput) { in.Gender = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutFn(&in)
			if _, err := BuildProfile(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRecompute_KeepsIDAndFixesTargets(t *testing.T) {
	p := makeProfile(Active, Gain)
	p.ID = "abc"
	p.TargetCalories = 1
	got, err := Recompute(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "abc" {
		t.Errorf("ID = %q, want abc", got.ID)
	}
	want, _ := MaintenanceCalories(p)
	if got.TargetCalories != want {
		t.Errorf("targetCalories = %d, want %d", got.TargetCalories, want)
	}
}
