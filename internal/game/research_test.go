package game

import (
	"errors"
	"testing"
)

// Helper to build a research manager over a small definition table.
func createTestResearch(unlocked []string, defs ...*ResearchDefinition) *ResearchManager {
	table := make(map[string]*ResearchDefinition)
	for _, def := range defs {
		table[def.ID] = def
	}
	return NewResearchManager(table, NewTechnologyRegistry(unlocked))
}

func TestCanStart_PrerequisiteGating(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 2},
		&ResearchDefinition{ID: "b", Name: "Beta", Tree: "economy", Turns: 3, RequiredResearches: []string{"a"}},
	)

	if err := rm.CanStart("b"); !errors.Is(err, ErrResearchLocked) {
		t.Fatalf("Expected ErrResearchLocked before prerequisite completes, got %v", err)
	}

	if !rm.Start("a", 1) {
		t.Fatal("Expected research a to start")
	}
	rm.AdvanceTurn(2)
	done := rm.AdvanceTurn(3)
	if done == nil || done.ID != "a" {
		t.Fatalf("Expected a to complete after 2 advances, got %+v", done)
	}

	if err := rm.CanStart("b"); err != nil {
		t.Fatalf("Expected b startable after a completed, got %v", err)
	}
	if !rm.Start("b", 3) {
		t.Error("Expected research b to start")
	}
}

func TestStart_SingleSlotInvariant(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 5},
		&ResearchDefinition{ID: "c", Name: "Cedar", Tree: "economy", Turns: 5},
	)

	if !rm.Start("a", 1) {
		t.Fatal("Expected research a to start")
	}
	if err := rm.CanStart("c"); !errors.Is(err, ErrResearchInProgress) {
		t.Errorf("Expected ErrResearchInProgress, got %v", err)
	}
	if rm.Start("c", 1) {
		t.Error("Expected second concurrent start to fail")
	}
	if rm.HasAnyStartable() {
		t.Error("Expected no startable research while one is active")
	}
}

func TestCanStart_UnknownAndCompleted(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 1},
	)

	if err := rm.CanStart("nope"); !errors.Is(err, ErrResearchUnknown) {
		t.Errorf("Expected ErrResearchUnknown, got %v", err)
	}

	rm.Start("a", 1)
	rm.AdvanceTurn(2)
	if err := rm.CanStart("a"); !errors.Is(err, ErrResearchCompleted) {
		t.Errorf("Expected ErrResearchCompleted, got %v", err)
	}
}

func TestAdvanceTurn_IdleIsNoOp(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 1},
	)

	if done := rm.AdvanceTurn(2); done != nil {
		t.Errorf("Expected nil completion with nothing active, got %+v", done)
	}
}

func TestStart_FractionalTurnsFloorToAtLeastOne(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "quick", Name: "Quick", Tree: "economy", Turns: 0.5},
	)

	if !rm.Start("quick", 1) {
		t.Fatal("Expected start to succeed")
	}
	active := rm.Active()
	if active.TotalTurns != 1 || active.RemainingTurns != 1 {
		t.Errorf("Expected totalTurns floored to 1, got %+v", active)
	}

	// Completion still takes one advance, never zero.
	done := rm.AdvanceTurn(2)
	if done == nil || done.ID != "quick" {
		t.Errorf("Expected completion on first advance, got %+v", done)
	}
}

func TestAdvanceTurn_CompletionUnlocksTechnologyAndRecordsLatest(t *testing.T) {
	techs := NewTechnologyRegistry(nil)
	table := map[string]*ResearchDefinition{
		"currency": {ID: "currency", Name: "Currency", Tree: "economy", Turns: 1},
	}
	rm := NewResearchManager(table, techs)

	rm.Start("currency", 4)
	done := rm.AdvanceTurn(5)
	if done == nil {
		t.Fatal("Expected completion")
	}
	if !techs.IsUnlocked("currency") {
		t.Error("Expected completion to unlock the technology")
	}
	latest := rm.Latest()
	if latest == nil || latest.ID != "currency" || latest.CompletedOnTurn != 5 {
		t.Errorf("Expected latest completion recorded on turn 5, got %+v", latest)
	}
	if rm.Active() != nil {
		t.Error("Expected active slot cleared after completion")
	}
	if !rm.IsCompleted("currency") {
		t.Error("Expected currency marked completed")
	}
}

func TestNewResearchManager_BootstrapsFromUnlockedTechnologies(t *testing.T) {
	rm := createTestResearch([]string{"masonry", "not-a-research"},
		&ResearchDefinition{ID: "masonry", Name: "Masonry", Tree: "construction", Turns: 4},
		&ResearchDefinition{ID: "engineering", Name: "Engineering", Tree: "construction", Turns: 7, RequiredResearches: []string{"masonry"}},
	)

	if !rm.IsCompleted("masonry") {
		t.Error("Expected pre-unlocked technology folded into completed set")
	}
	if rm.CompletedCount() != 1 {
		t.Errorf("Expected 1 completed, got %d", rm.CompletedCount())
	}
	if err := rm.CanStart("engineering"); err != nil {
		t.Errorf("Expected engineering startable via bootstrapped prerequisite, got %v", err)
	}
}

func TestTreeDefinitions_DepthSortWithNameTiebreak(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "b", Name: "Beta", Tree: "economy", Turns: 1, RequiredResearches: []string{"a"}},
		&ResearchDefinition{ID: "c", Name: "Cedar", Tree: "economy", Turns: 1},
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 1},
		&ResearchDefinition{ID: "x", Name: "Other", Tree: "construction", Turns: 1},
	)

	got := rm.TreeDefinitions("economy")
	if len(got) != 3 {
		t.Fatalf("Expected 3 economy definitions, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" || got[2].ID != "b" {
		t.Errorf("Expected order a, c, b; got %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestTreeDefinitions_DepthIgnoresCrossTreePrerequisites(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "root", Name: "Root", Tree: "construction", Turns: 1},
		&ResearchDefinition{ID: "hybrid", Name: "Hybrid", Tree: "economy", Turns: 1, RequiredResearches: []string{"root"}},
		&ResearchDefinition{ID: "plain", Name: "Plain", Tree: "economy", Turns: 1},
	)

	got := rm.TreeDefinitions("economy")
	// Cross-tree prerequisite contributes no depth, so both sit at
	// depth 0 and sort by name.
	if got[0].ID != "hybrid" || got[1].ID != "plain" {
		t.Errorf("Expected hybrid before plain at equal depth, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestHasAnyStartable(t *testing.T) {
	rm := createTestResearch(nil,
		&ResearchDefinition{ID: "a", Name: "Alpha", Tree: "economy", Turns: 1},
		&ResearchDefinition{ID: "b", Name: "Beta", Tree: "economy", Turns: 1, RequiredResearches: []string{"a"}},
	)

	if !rm.HasAnyStartable() {
		t.Fatal("Expected a startable research")
	}

	rm.Start("a", 1)
	rm.AdvanceTurn(2)
	if !rm.HasAnyStartable() {
		t.Fatal("Expected b startable after a completed")
	}

	rm.Start("b", 2)
	rm.AdvanceTurn(3)
	if rm.HasAnyStartable() {
		t.Error("Expected nothing startable once everything is completed")
	}
}
