package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// IncomeAmount is a credit that is either a fixed value or a random
// inclusive range rolled at collection time. A fixed amount has
// Min == Max and never consumes randomness.
type IncomeAmount struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FixedAmount returns an amount that always credits n.
func FixedAmount(n int) IncomeAmount {
	return IncomeAmount{Min: n, Max: n}
}

// RandomAmount returns an amount rolled uniformly in [min, max].
func RandomAmount(min, max int) IncomeAmount {
	return IncomeAmount{Min: min, Max: max}
}

// IsRandom reports whether the amount needs a roll.
func (a IncomeAmount) IsRandom() bool {
	return a.Max > a.Min
}

// Roll resolves the amount, drawing from rng only for random ranges.
func (a IncomeAmount) Roll(rng *rand.Rand) int {
	if !a.IsRandom() {
		return a.Min
	}
	return a.Min + rng.Intn(a.Max-a.Min+1)
}

// ParseIncomeAmount parses an amount from definition data: either a
// plain integer or the "random:min:max" range form. Parsing happens
// once at load time so the turn pipeline never touches strings.
func ParseIncomeAmount(s string) (IncomeAmount, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "random:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) != 2 {
			return IncomeAmount{}, fmt.Errorf("malformed random amount %q", s)
		}
		min, err := strconv.Atoi(parts[0])
		if err != nil {
			return IncomeAmount{}, fmt.Errorf("malformed random amount %q", s)
		}
		max, err := strconv.Atoi(parts[1])
		if err != nil {
			return IncomeAmount{}, fmt.Errorf("malformed random amount %q", s)
		}
		if min > max {
			return IncomeAmount{}, fmt.Errorf("random amount %q has min > max", s)
		}
		return RandomAmount(min, max), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return IncomeAmount{}, fmt.Errorf("malformed amount %q", s)
	}
	return FixedAmount(n), nil
}

// ParseResourceType parses a resource name from definition data.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold":
		return ResourceGold, nil
	case "materials":
		return ResourceMaterials, nil
	case "food":
		return ResourceFood, nil
	case "population":
		return ResourcePopulation, nil
	default:
		return 0, fmt.Errorf("unknown resource %q", s)
	}
}

// IncomeEntry is one passive credit produced by a building or a rare
// resource node.
type IncomeEntry struct {
	Resource ResourceType
	Amount   IncomeAmount
}

// BuildingDefinition is the static data for a building type.
type BuildingDefinition struct {
	ID                 string
	Name               string
	Width              int
	Height             int
	Population         int // housed population, summed into the settlement total
	Cost               Cost
	PassiveIncome      []IncomeEntry
	RequiredTechnology string // empty means always buildable
}

// ResearchDefinition is the static data for one research node.
// Prerequisites are assumed to form a DAG; the definition loader
// rejects cycles before a ResearchManager ever sees them.
type ResearchDefinition struct {
	ID                 string
	Name               string
	Tree               string
	Turns              float64
	RequiredResearches []string
}

// RareResourceDefinition describes a map deposit that boosts a
// specific building type built over it.
type RareResourceDefinition struct {
	ID              string
	Name            string
	BonusBuildingID string
	Bonus           IncomeEntry
}

// Definitions bundles the static data tables a session plays against.
type Definitions struct {
	Buildings     map[string]*BuildingDefinition
	Research      map[string]*ResearchDefinition
	RareResources map[string]*RareResourceDefinition
}
