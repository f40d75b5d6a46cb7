package database

import (
	"errors"
	"path/filepath"
	"testing"

	"emberhold/internal/game"
)

func createTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestSnapshot(turn int) *game.Snapshot {
	return &game.Snapshot{
		Ledger: game.Ledger{Gold: 120, Materials: 40, Food: 80, Population: 12},
		Turn: game.TurnData{
			Turn:  turn,
			Focus: game.FocusBudget{Current: 6, Max: 10},
		},
		Seed: 42,
		ActiveResearch: &game.ActiveResearch{
			ID: "currency", StartedOnTurn: turn - 1, TotalTurns: 3, RemainingTurns: 2,
		},
		CompletedResearch:    []string{"masonry"},
		UnlockedTechnologies: []string{"masonry"},
		Ruler:                game.Ruler{Name: "Aldric", Age: 31},
		MapWidth:             32,
		MapHeight:            32,
	}
}

func TestPutSave_RoundTrip(t *testing.T) {
	db := createTestDB(t)

	save, err := db.PutSave("campaign", createTestSnapshot(5))
	if err != nil {
		t.Fatalf("PutSave failed: %v", err)
	}
	if save.ID == "" || save.Turn != 5 {
		t.Errorf("Unexpected save info %+v", save.SaveInfo)
	}

	got, err := db.GetSaveByName("campaign")
	if err != nil {
		t.Fatalf("GetSaveByName failed: %v", err)
	}
	snap := got.Snapshot
	if snap.Ledger != (game.Ledger{Gold: 120, Materials: 40, Food: 80, Population: 12}) {
		t.Errorf("Ledger mismatch: %+v", snap.Ledger)
	}
	if snap.Turn.Turn != 5 || snap.Turn.Focus.Current != 6 {
		t.Errorf("Turn data mismatch: %+v", snap.Turn)
	}
	if snap.ActiveResearch == nil || snap.ActiveResearch.RemainingTurns != 2 {
		t.Errorf("Active research mismatch: %+v", snap.ActiveResearch)
	}
	if snap.Seed != 42 {
		t.Errorf("Seed mismatch: %d", snap.Seed)
	}
}

func TestPutSave_OverwritesExistingSlot(t *testing.T) {
	db := createTestDB(t)

	first, err := db.PutSave("campaign", createTestSnapshot(5))
	if err != nil {
		t.Fatalf("PutSave failed: %v", err)
	}
	second, err := db.PutSave("campaign", createTestSnapshot(9))
	if err != nil {
		t.Fatalf("Second PutSave failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("Expected overwrite to keep the slot ID")
	}

	got, err := db.GetSave(first.ID)
	if err != nil {
		t.Fatalf("GetSave failed: %v", err)
	}
	if got.Snapshot.Turn.Turn != 9 {
		t.Errorf("Expected turn 9 after overwrite, got %d", got.Snapshot.Turn.Turn)
	}

	infos, err := db.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves failed: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("Expected a single slot, got %d", len(infos))
	}
}

func TestGetSave_NotFound(t *testing.T) {
	db := createTestDB(t)

	if _, err := db.GetSaveByName("missing"); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound, got %v", err)
	}
}

func TestDeleteSave(t *testing.T) {
	db := createTestDB(t)

	save, err := db.PutSave("doomed", createTestSnapshot(2))
	if err != nil {
		t.Fatalf("PutSave failed: %v", err)
	}
	if err := db.DeleteSave(save.ID); err != nil {
		t.Fatalf("DeleteSave failed: %v", err)
	}
	if err := db.DeleteSave(save.ID); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound on second delete, got %v", err)
	}
	if _, err := db.GetSaveByName("doomed"); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("Expected slot gone, got %v", err)
	}
}

func TestSaveRestoresPlayableSession(t *testing.T) {
	db := createTestDB(t)

	defs := &game.Definitions{
		Buildings:     map[string]*game.BuildingDefinition{},
		Research:      map[string]*game.ResearchDefinition{"currency": {ID: "currency", Name: "Currency", Tree: "economy", Turns: 3}},
		RareResources: map[string]*game.RareResourceDefinition{},
	}
	session := game.NewSession(game.DefaultConfig(), defs, game.SessionOptions{
		Initial:   game.Ledger{Gold: 100, Food: 100},
		MapWidth:  8,
		MapHeight: 8,
		Seed:      1,
	})
	session.Research.Start("currency", 1)
	session.Turns.EndTurn()

	if _, err := db.PutSave("slot", session.Snapshot()); err != nil {
		t.Fatalf("PutSave failed: %v", err)
	}
	loaded, err := db.GetSaveByName("slot")
	if err != nil {
		t.Fatalf("GetSaveByName failed: %v", err)
	}

	restored := game.RestoreSession(game.DefaultConfig(), defs, loaded.Snapshot)
	result := restored.Turns.EndTurn()
	if restored.Turns.TurnData().Turn != 3 {
		t.Errorf("Expected restored session at turn 3, got %d", restored.Turns.TurnData().Turn)
	}
	if result.CompletedResearch != nil {
		t.Errorf("Expected currency still in progress, got %+v", result.CompletedResearch)
	}
}
