package nutrition

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestTableParser_QuickAddExample parses the placeholder text shown in the
// quick-add form. "1 apple" has no unit and scales by 0.01.
func TestTableParser_QuickAddExample(t *testing.T) {
	items := NewTableParser(nil).Parse("200g rice, 100g chicken, 1 apple")
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %+v", len(items), items)
	}

	cases := []struct {
		name     string
		qty      float64
		calories int
		protein  float64
		carbs    float64
		fats     float64
	}{
		{"rice", 200, 260, 5.4, 56, 0.6},
		{"chicken", 100, 165, 31, 0, 3.6},
		{"apple", 1, 1, 0, 0.1, 0},
	}
	for i, tc := range cases {
		got := items[i]
		if got.Name != tc.name || got.Quantity != tc.qty || got.Unit != "g" {
			t.Errorf("item %d = %s %v%s, want %s %v g", i, got.Name, got.Quantity, got.Unit, tc.name, tc.qty)
		}
		if got.Calories != tc.calories {
			t.Errorf("%s calories = %d, want %d", tc.name, got.Calories, tc.calories)
		}
		if !almostEqual(got.Protein, tc.protein) || !almostEqual(got.Carbs, tc.carbs) || !almostEqual(got.Fats, tc.fats) {
			t.Errorf("%s macros = %v/%v/%v, want %v/%v/%v",
				tc.name, got.Protein, got.Carbs, got.Fats, tc.protein, tc.carbs, tc.fats)
		}
		if got.ID == "" {
			t.Errorf("%s: expected an ID", tc.name)
		}
	}
}

func TestTableParser_UnitsAndCase(t *testing.T) {
	cases := []struct {
		input string
		name  string
		qty   float64
	}{
		{"2 slices toast", "toast", 2},
		{"150 grams DAL", "dal", 150},
		{"3 pieces egg", "egg", 3},
		{"1 cup salad", "salad", 1},
		{"120G Banana", "banana", 120},
	}
	p := NewTableParser(nil)
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			items := p.Parse(tc.input)
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %+v", items)
			}
			if items[0].Name != tc.name || items[0].Quantity != tc.qty {
				t.Errorf("got %s %v, want %s %v", items[0].Name, items[0].Quantity, tc.name, tc.qty)
			}
		})
	}
}

// TestTableParser_Unrecognised verifies unknown foods are dropped and that
// nothing recognised yields an empty, non-nil slice.
func TestTableParser_Unrecognised(t *testing.T) {
	p := NewTableParser(nil)

	items := p.Parse("100g pizza, 200g rice")
	if len(items) != 1 || items[0].Name != "rice" {
		t.Errorf("expected only rice, got %+v", items)
	}

	for _, input := range []string{"", "pizza", "some rice", "100g pizza"} {
		got := p.Parse(input)
		if got == nil || len(got) != 0 {
			t.Errorf("Parse(%q) = %#v, want empty slice", input, got)
		}
	}
}

func TestLoadFoodTable(t *testing.T) {
	table, err := LoadFoodTable([]byte("Oats: {calories: 389, protein: 17, carbs: 66, fats: 6.9}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := table.Item("oats", 50)
	if !ok {
		t.Fatal("expected oats to be found")
	}
	if item.Calories != 195 || !almostEqual(item.Protein, 8.5) {
		t.Errorf("50g oats = %d kcal %vg protein, want 195 kcal 8.5g", item.Calories, item.Protein)
	}

	if _, err := LoadFoodTable([]byte("bad: {calories: -1}\n")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative calories, got %v", err)
	}
	if _, err := LoadFoodTable([]byte("[not a map")); err == nil {
		t.Error("expected a decode error")
	}
}

func TestDefaultFoodTable_HasEightFoods(t *testing.T) {
	want := []string{"rice", "dal", "egg", "chicken", "toast", "banana", "apple", "salad"}
	table := DefaultFoodTable()
	if len(table) != len(want) {
		t.Errorf("table has %d foods, want %d", len(table), len(want))
	}
	for _, name := range want {
		if _, ok := table[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
}

/* ─── Meal construction tests ────────────────────────────────────────── */

func TestNewMeal_SumsFoods(t *testing.T) {
	foods := NewTableParser(nil).Parse("200g rice, 100g chicken")
	now := time.Date(2026, time.March, 4, 12, 30, 0, 0, time.UTC)

	m, err := NewMeal(Lunch, foods, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TotalCalories != 425 {
		t.Errorf("totalCalories = %d, want 425", m.TotalCalories)
	}
	if !almostEqual(m.TotalProtein, 5.4+31) || !almostEqual(m.TotalCarbs, 56) || !almostEqual(m.TotalFats, 0.6+3.6) {
		t.Errorf("macro totals = %v/%v/%v", m.TotalProtein, m.TotalCarbs, m.TotalFats)
	}
	if m.Time != "12:30" || m.Date.String() != "2026-03-04" {
		t.Errorf("time/date = %s %s, want 12:30 2026-03-04", m.Time, m.Date)
	}
	if m.ID == "" || m.Type != Lunch {
		t.Errorf("unexpected meal header: %+v", m)
	}
}

func TestNewMeal_Invalid(t *testing.T) {
	foods := NewTableParser(nil).Parse("1 apple")
	now := time.Now()

	if _, err := NewMeal("brunch", foods, now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown meal type, got %v", err)
	}
	if _, err := NewMeal(Snack, nil, now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty foods, got %v", err)
	}
	bad := []FoodItem{{Name: "rice", Quantity: 0}}
	if _, err := NewMeal(Snack, bad, now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero quantity, got %v", err)
	}
}

func TestMealValidate_TotalsMatchFoods(t *testing.T) {
	foods := NewTableParser(nil).Parse("200g rice, 100g chicken")
	m, err := NewMeal(Lunch, foods, time.Date(2026, time.March, 4, 12, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("built meal should validate, got %v", err)
	}

	tests := []struct {
		name  string
		mutFn func(m *Meal)
	}{
		{"calories", func(m *Meal) { m.TotalCalories += 100 }},
		{"protein", func(m *Meal) { m.TotalProtein = 0 }},
		{"carbs", func(m *Meal) { m.TotalCarbs += 0.5 }},
		{"fats", func(m *Meal) { m.TotalFats = 99 }},
		{"dropped food", func(m *Meal) { m.Foods = m.Foods[:1] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := m
			candidate.Foods = append([]FoodItem(nil), m.Foods...)
			tt.mutFn(&candidate)
			if err := candidate.Validate(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDateOnly_JSON(t *testing.T) {
	d, err := ParseDateOnly("2026-10-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := d.MarshalJSON()
	if string(b) != `"2026-10-16"` {
		t.Errorf("MarshalJSON = %s", b)
	}
	var back DateOnly
	if err := back.UnmarshalJSON([]byte(`"2026-10-17"`)); err != nil || back.String() != "2026-10-17" {
		t.Errorf("UnmarshalJSON = %v, %v", back, err)
	}
	if err := back.UnmarshalJSON([]byte(`"17/10/2026"`)); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestNewFoodItem(t *testing.T) {
	item, err := NewFoodItem("Banana", 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 89 * 1.2 = 106.8
	if item.Name != "banana" || item.Calories != 107 || item.Unit != "g" {
		t.Errorf("NewFoodItem = %+v", item)
	}

	if _, err := NewFoodItem("pizza", 100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown food, got %v", err)
	}
	if _, err := NewFoodItem("rice", 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero quantity, got %v", err)
	}
}
