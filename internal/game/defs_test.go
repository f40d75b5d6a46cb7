package game

import (
	"math/rand"
	"testing"
)

func TestParseIncomeAmount_FixedAndRandom(t *testing.T) {
	fixed, err := ParseIncomeAmount("3")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fixed.IsRandom() || fixed.Min != 3 {
		t.Errorf("Expected fixed 3, got %+v", fixed)
	}

	random, err := ParseIncomeAmount("random:1:5")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !random.IsRandom() || random.Min != 1 || random.Max != 5 {
		t.Errorf("Expected random [1,5], got %+v", random)
	}
}

func TestParseIncomeAmount_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "abc", "random:1", "random:1:2:3", "random:a:b", "random:5:1"} {
		if _, err := ParseIncomeAmount(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestIncomeAmount_RollStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	amount := RandomAmount(2, 6)
	for i := 0; i < 100; i++ {
		got := amount.Roll(rng)
		if got < 2 || got > 6 {
			t.Fatalf("Roll %d outside [2,6]", got)
		}
	}

	// Fixed amounts never consume randomness.
	a := rand.New(rand.NewSource(9))
	FixedAmount(4).Roll(a)
	b := rand.New(rand.NewSource(9))
	if a.Int63() != b.Int63() {
		t.Error("Expected fixed roll to leave the RNG untouched")
	}
}

func TestParseResourceType(t *testing.T) {
	if rt, err := ParseResourceType("Gold"); err != nil || rt != ResourceGold {
		t.Errorf("Expected gold, got %v (%v)", rt, err)
	}
	if _, err := ParseResourceType("mana"); err == nil {
		t.Error("Expected error for unknown resource")
	}
}
