package game

import (
	"math"
	"sort"
)

// ActiveResearch is the single in-progress research slot.
type ActiveResearch struct {
	ID             string `json:"id"`
	StartedOnTurn  int    `json:"startedOnTurn"`
	TotalTurns     int    `json:"totalTurns"`
	RemainingTurns int    `json:"remainingTurns"`
}

// CompletedResearch summarizes a finished research.
type CompletedResearch struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CompletedOnTurn int    `json:"completedOnTurn"`
}

// ResearchManager drives the technology research state machine: one
// active slot, a monotonically growing completed set, prerequisite
// gating, and unlock propagation into the technology registry.
type ResearchManager struct {
	defs  map[string]*ResearchDefinition
	techs *TechnologyRegistry

	active    *ActiveResearch
	completed map[string]bool
	latest    *CompletedResearch
	depths    map[string]int
	version   uint64
}

// NewResearchManager creates a research manager. Technologies already
// unlocked in the registry that are valid research IDs are folded into
// the completed set, reconciling saves where techs were unlocked
// outside the research flow.
func NewResearchManager(defs map[string]*ResearchDefinition, techs *TechnologyRegistry) *ResearchManager {
	rm := &ResearchManager{
		defs:      defs,
		techs:     techs,
		completed: make(map[string]bool),
		depths:    make(map[string]int),
	}
	for _, id := range techs.Unlocked() {
		if _, ok := defs[id]; ok {
			rm.completed[id] = true
		}
	}
	return rm
}

// Definition returns the definition for a research ID, or nil.
func (rm *ResearchManager) Definition(id string) *ResearchDefinition {
	return rm.defs[id]
}

// CanStart reports whether a research can be started now. A non-nil
// error carries the reason for UI display.
func (rm *ResearchManager) CanStart(id string) error {
	def := rm.defs[id]
	if def == nil {
		return ErrResearchUnknown
	}
	if rm.completed[id] {
		return ErrResearchCompleted
	}
	if rm.active != nil {
		return ErrResearchInProgress
	}
	for _, req := range def.RequiredResearches {
		if _, ok := rm.defs[req]; !ok {
			return ErrResearchLocked
		}
		if !rm.completed[req] {
			return ErrResearchLocked
		}
	}
	return nil
}

// Start begins researching id. Returns false without mutation if
// validation fails.
func (rm *ResearchManager) Start(id string, currentTurn int) bool {
	if rm.CanStart(id) != nil {
		return false
	}
	def := rm.defs[id]
	total := max(1, int(math.Floor(def.Turns)))
	rm.active = &ActiveResearch{
		ID:             id,
		StartedOnTurn:  currentTurn,
		TotalTurns:     total,
		RemainingTurns: total,
	}
	rm.version++
	return true
}

// AdvanceTurn counts the active research down by one turn. If it
// finishes, the completion is recorded, the technology registry is
// notified, the slot clears, and the summary is returned. At most one
// research completes per call.
func (rm *ResearchManager) AdvanceTurn(currentTurn int) *CompletedResearch {
	if rm.active == nil {
		return nil
	}
	rm.active.RemainingTurns = max(0, rm.active.RemainingTurns-1)
	rm.version++
	if rm.active.RemainingTurns > 0 {
		return nil
	}
	name := rm.active.ID
	if def := rm.defs[rm.active.ID]; def != nil {
		name = def.Name
	}
	done := &CompletedResearch{
		ID:              rm.active.ID,
		Name:            name,
		CompletedOnTurn: currentTurn,
	}
	rm.completed[done.ID] = true
	rm.techs.Unlock(done.ID)
	rm.latest = done
	rm.active = nil
	return done
}

// HasAnyStartable reports whether at least one research could be
// started right now.
func (rm *ResearchManager) HasAnyStartable() bool {
	if rm.active != nil {
		return false
	}
	for id := range rm.defs {
		if rm.CanStart(id) == nil {
			return true
		}
	}
	return false
}

// TreeDefinitions returns a tree's definitions in topological-by-depth
// order: a node's depth is 1 + the max depth of its same-tree
// prerequisites, or 0 with none. Ties break by name, ascending.
func (rm *ResearchManager) TreeDefinitions(tree string) []*ResearchDefinition {
	var out []*ResearchDefinition
	for _, def := range rm.defs {
		if def.Tree == tree {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := rm.depth(out[i].ID), rm.depth(out[j].ID)
		if di != dj {
			return di < dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// depth computes the memoized prerequisite depth of a research node.
// Definitions are validated as a DAG at load time, so the recursion
// terminates.
func (rm *ResearchManager) depth(id string) int {
	if d, ok := rm.depths[id]; ok {
		return d
	}
	def := rm.defs[id]
	d := 0
	for _, req := range def.RequiredResearches {
		reqDef := rm.defs[req]
		if reqDef == nil || reqDef.Tree != def.Tree {
			continue
		}
		d = max(d, rm.depth(req)+1)
	}
	rm.depths[id] = d
	return d
}

// Active returns a copy of the active research, or nil when idle.
func (rm *ResearchManager) Active() *ActiveResearch {
	if rm.active == nil {
		return nil
	}
	a := *rm.active
	return &a
}

// Latest returns the most recent completion summary, or nil.
func (rm *ResearchManager) Latest() *CompletedResearch {
	if rm.latest == nil {
		return nil
	}
	l := *rm.latest
	return &l
}

// IsCompleted reports whether a research is done.
func (rm *ResearchManager) IsCompleted(id string) bool {
	return rm.completed[id]
}

// IsActive reports whether id is the research in progress.
func (rm *ResearchManager) IsActive(id string) bool {
	return rm.active != nil && rm.active.ID == id
}

// CompletedCount returns how many researches are done.
func (rm *ResearchManager) CompletedCount() int {
	return len(rm.completed)
}

// TotalCount returns how many researches exist.
func (rm *ResearchManager) TotalCount() int {
	return len(rm.defs)
}

// CompletedIDs returns a sorted snapshot of completed research IDs.
func (rm *ResearchManager) CompletedIDs() []string {
	ids := make([]string, 0, len(rm.completed))
	for id := range rm.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Version returns the monotonic mutation counter.
func (rm *ResearchManager) Version() uint64 {
	return rm.version
}

func (rm *ResearchManager) restore(active *ActiveResearch, completed []string, latest *CompletedResearch, version uint64) {
	if active != nil {
		a := *active
		a.TotalTurns = max(1, a.TotalTurns)
		a.RemainingTurns = min(max(0, a.RemainingTurns), a.TotalTurns)
		rm.active = &a
	} else {
		rm.active = nil
	}
	rm.completed = make(map[string]bool, len(completed))
	for _, id := range completed {
		rm.completed[id] = true
	}
	if latest != nil {
		l := *latest
		rm.latest = &l
	} else {
		rm.latest = nil
	}
	rm.version = version
}
