package nutrition

import (
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed foods.yaml
var foodsYAML []byte

// Per100 is the nutrition of 100 units of a food.
type Per100 struct {
	Calories float64 `yaml:"calories" json:"calories"`
	Protein  float64 `yaml:"protein" json:"protein"`
	Carbs    float64 `yaml:"carbs" json:"carbs"`
	Fats     float64 `yaml:"fats" json:"fats"`
}

// FoodTable maps lower-case food names to their per-100-unit nutrition.
type FoodTable map[string]Per100

// LoadFoodTable decodes a YAML food table, lower-casing names and rejecting
// negative values.
func LoadFoodTable(data []byte) (FoodTable, error) {
	var raw map[string]Per100
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode food table: %w", err)
	}
	table := make(FoodTable, len(raw))
	for name, n := range raw {
		if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fats < 0 {
			return nil, fmt.Errorf("food %q: %w: negative nutrition", name, ErrInvalidInput)
		}
		table[strings.ToLower(name)] = n
	}
	return table, nil
}

var defaultFoodTable = func() FoodTable {
	t, err := LoadFoodTable(foodsYAML)
	if err != nil {
		panic(err)
	}
	return t
}()

// DefaultFoodTable returns the built-in food table.
func DefaultFoodTable() FoodTable {
	return defaultFoodTable
}

// Item scales the table entry for name by quantity/100. ok is false when the
// food is not in the table.
func (t FoodTable) Item(name string, quantity float64) (item FoodItem, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	base, ok := t[name]
	if !ok {
		return FoodItem{}, false
	}
	factor := quantity / 100
	return FoodItem{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
		Unit:     "g",
		Calories: int(math.Round(base.Calories * factor)),
		Protein:  roundTenth(base.Protein * factor),
		Carbs:    roundTenth(base.Carbs * factor),
		Fats:     roundTenth(base.Fats * factor),
	}, true
}

// NewFoodItem builds a FoodItem from the default table for direct entry.
func NewFoodItem(name string, quantity float64) (FoodItem, error) {
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return FoodItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	item, ok := defaultFoodTable.Item(name, quantity)
	if !ok {
		return FoodItem{}, fmt.Errorf("%w: unknown food %q", ErrInvalidInput, name)
	}
	return item, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

/* ─── Parsing ────────────────────────────────────────────────────────── */

// Parser turns free text into FoodItems. An empty result means nothing was
// recognised; parsers never fail.
type Parser interface {
	Parse(input string) []FoodItem
}

// quantityFoodPattern matches "<digits>[unit] <word>", e.g. "200g rice",
// "2 slices toast" or "1 apple".
var quantityFoodPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:g|grams?|pieces?|cups?|slices?)?\s+([a-zA-Z]+)`)

// TableParser is the regex + lookup-table Parser.
type TableParser struct {
	table FoodTable
}

// NewTableParser builds a TableParser over table; nil means the default table.
func NewTableParser(table FoodTable) *TableParser {
	if table == nil {
		table = DefaultFoodTable()
	}
	return &TableParser{table: table}
}

// Parse returns one FoodItem per recognised quantity/food pair, in input
// order. Unknown foods are dropped.
func (p *TableParser) Parse(input string) []FoodItem {
	items := []FoodItem{}
	for _, m := range quantityFoodPattern.FindAllStringSubmatch(input, -1) {
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if item, ok := p.table.Item(m[2], float64(qty)); ok {
			items = append(items, item)
		}
	}
	return items
}
