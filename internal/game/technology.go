package game

import "sort"

// TechnologyRegistry is the session-wide set of unlocked technologies.
// ResearchManager pushes completions into it; gameplay checks read it.
type TechnologyRegistry struct {
	unlocked map[string]bool
}

// NewTechnologyRegistry creates a registry, optionally pre-unlocked
// from a save.
func NewTechnologyRegistry(unlocked []string) *TechnologyRegistry {
	tr := &TechnologyRegistry{unlocked: make(map[string]bool)}
	for _, id := range unlocked {
		tr.unlocked[id] = true
	}
	return tr
}

// Unlock marks a technology as permanently unlocked.
func (tr *TechnologyRegistry) Unlock(id string) {
	tr.unlocked[id] = true
}

// IsUnlocked reports whether a technology is unlocked.
func (tr *TechnologyRegistry) IsUnlocked(id string) bool {
	return tr.unlocked[id]
}

// Unlocked returns a sorted snapshot of all unlocked technology IDs.
func (tr *TechnologyRegistry) Unlocked() []string {
	ids := make([]string, 0, len(tr.unlocked))
	for id := range tr.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
