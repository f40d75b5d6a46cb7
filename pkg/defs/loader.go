package defs

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"emberhold/internal/game"
)

//go:embed data/*.yaml
var defFiles embed.FS

// Load parses and validates all embedded definition files.
func Load() (*game.Definitions, error) {
	entries, err := defFiles.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to read definition directory: %w", err)
	}

	var raw RawFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := defFiles.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var file RawFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		raw.Buildings = append(raw.Buildings, file.Buildings...)
		raw.Research = append(raw.Research, file.Research...)
		raw.RareResources = append(raw.RareResources, file.RareResources...)
	}

	return Process(&raw)
}

// Process converts raw definitions into runtime types, validating as
// it goes. Malformed data is a load-time error, never a runtime one.
func Process(raw *RawFile) (*game.Definitions, error) {
	defs := &game.Definitions{
		Buildings:     make(map[string]*game.BuildingDefinition),
		Research:      make(map[string]*game.ResearchDefinition),
		RareResources: make(map[string]*game.RareResourceDefinition),
	}

	for _, rb := range raw.Buildings {
		if rb.ID == "" {
			return nil, fmt.Errorf("building with empty id")
		}
		if _, dup := defs.Buildings[rb.ID]; dup {
			return nil, fmt.Errorf("duplicate building %q", rb.ID)
		}
		b := &game.BuildingDefinition{
			ID:                 rb.ID,
			Name:               rb.Name,
			Width:              max(1, rb.Width),
			Height:             max(1, rb.Height),
			Population:         rb.Population,
			Cost:               make(game.Cost),
			RequiredTechnology: rb.RequiredTechnology,
		}
		for res, amount := range rb.Cost {
			rt, err := game.ParseResourceType(res)
			if err != nil {
				return nil, fmt.Errorf("building %q cost: %w", rb.ID, err)
			}
			b.Cost[rt] = amount
		}
		entries, err := parseIncome(rb.PassiveIncome)
		if err != nil {
			return nil, fmt.Errorf("building %q income: %w", rb.ID, err)
		}
		b.PassiveIncome = entries
		defs.Buildings[rb.ID] = b
	}

	for _, rr := range raw.Research {
		if rr.ID == "" {
			return nil, fmt.Errorf("research with empty id")
		}
		if _, dup := defs.Research[rr.ID]; dup {
			return nil, fmt.Errorf("duplicate research %q", rr.ID)
		}
		defs.Research[rr.ID] = &game.ResearchDefinition{
			ID:                 rr.ID,
			Name:               rr.Name,
			Tree:               rr.Tree,
			Turns:              rr.Turns,
			RequiredResearches: rr.RequiredResearches,
		}
	}

	for _, rn := range raw.RareResources {
		if rn.ID == "" {
			return nil, fmt.Errorf("rare resource with empty id")
		}
		if _, dup := defs.RareResources[rn.ID]; dup {
			return nil, fmt.Errorf("duplicate rare resource %q", rn.ID)
		}
		rt, err := game.ParseResourceType(rn.Resource)
		if err != nil {
			return nil, fmt.Errorf("rare resource %q: %w", rn.ID, err)
		}
		amount, err := game.ParseIncomeAmount(rn.Amount)
		if err != nil {
			return nil, fmt.Errorf("rare resource %q: %w", rn.ID, err)
		}
		defs.RareResources[rn.ID] = &game.RareResourceDefinition{
			ID:              rn.ID,
			Name:            rn.Name,
			BonusBuildingID: rn.BonusBuilding,
			Bonus:           game.IncomeEntry{Resource: rt, Amount: amount},
		}
	}

	if err := validate(defs); err != nil {
		return nil, fmt.Errorf("invalid definitions: %w", err)
	}
	return defs, nil
}

func parseIncome(raw map[string]string) ([]game.IncomeEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	// Sorted for a stable entry order, so income rolls are
	// reproducible run to run.
	resources := make([]string, 0, len(raw))
	for res := range raw {
		resources = append(resources, res)
	}
	sort.Strings(resources)

	entries := make([]game.IncomeEntry, 0, len(raw))
	for _, res := range resources {
		rt, err := game.ParseResourceType(res)
		if err != nil {
			return nil, err
		}
		amount, err := game.ParseIncomeAmount(raw[res])
		if err != nil {
			return nil, err
		}
		entries = append(entries, game.IncomeEntry{Resource: rt, Amount: amount})
	}
	return entries, nil
}

// validate rejects dangling references and cyclic research
// prerequisites, so the runtime managers can assume a clean DAG.
func validate(defs *game.Definitions) error {
	for id, def := range defs.Research {
		for _, req := range def.RequiredResearches {
			if _, ok := defs.Research[req]; !ok {
				return fmt.Errorf("research %q requires unknown research %q", id, req)
			}
		}
	}
	if err := checkCycles(defs.Research); err != nil {
		return err
	}
	for id, def := range defs.RareResources {
		if _, ok := defs.Buildings[def.BonusBuildingID]; !ok {
			return fmt.Errorf("rare resource %q targets unknown building %q", id, def.BonusBuildingID)
		}
	}
	return nil
}

// checkCycles runs a three-color DFS over the prerequisite graph.
func checkCycles(research map[string]*game.ResearchDefinition) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(research))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("research %q is part of a prerequisite cycle", id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, req := range research[id].RequiredResearches {
			if err := visit(req); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for id := range research {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
