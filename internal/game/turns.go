package game

// FocusBudget is the per-turn action point pool.
type FocusBudget struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// TurnData is the current turn number and focus budget.
type TurnData struct {
	Turn  int         `json:"turn"`
	Focus FocusBudget `json:"focus"`
}

// EndTurnResult reports everything that happened while closing a turn.
type EndTurnResult struct {
	Income            Cost
	Pulses            []IncomePulse
	CompletedResearch *CompletedResearch
	UpkeepPaid        bool
}

// UpkeepBreakdown itemizes the end-of-turn cost for display.
type UpkeepBreakdown struct {
	BaseFood       int
	BaseGold       int
	PopulationFood int
	Population     int
}

// TurnManager owns the turn lifecycle, the focus budget, and the
// randomness used for income rolls. Research, map, and ruler are
// optional attachments; without them the matching pipeline steps are
// no-ops.
type TurnManager struct {
	cfg  Config
	seed int64

	data    TurnData
	version uint64

	resources *ResourceManager
	buildings *BuildingManager
	research  *ResearchManager
	mapm      *MapManager
	rareDefs  map[string]*RareResourceDefinition
	ruler     *RulerManager
}

// NewTurnManager creates a turn manager starting at turn 1 with a
// full focus budget. The seed fixes every income roll: replaying the
// same turns with the same seed and layout credits the same amounts.
func NewTurnManager(cfg Config, resources *ResourceManager, buildings *BuildingManager, seed int64) *TurnManager {
	maxFocus := max(1, cfg.MaxFocus)
	return &TurnManager{
		cfg:       cfg,
		seed:      seed,
		resources: resources,
		buildings: buildings,
		data: TurnData{
			Turn:  1,
			Focus: FocusBudget{Current: maxFocus, Max: maxFocus},
		},
	}
}

// AttachResearch wires the optional research manager.
func (tm *TurnManager) AttachResearch(rm *ResearchManager) {
	tm.research = rm
}

// AttachMap wires the optional map and the rare resource definitions
// its deposits refer to.
func (tm *TurnManager) AttachMap(mm *MapManager, rareDefs map[string]*RareResourceDefinition) {
	tm.mapm = mm
	tm.rareDefs = rareDefs
}

// AttachRuler wires the optional ruler manager.
func (tm *TurnManager) AttachRuler(rm *RulerManager) {
	tm.ruler = rm
}

// EndTurn runs the end-of-turn pipeline in its fixed order: passive
// income, turn increment, focus refill (with building action flags
// reset), ruler aging, research advance, then upkeep. Income lands
// before upkeep so the closing turn's production can pay for it. An
// upkeep shortfall deducts nothing and is surfaced for the caller to
// judge; the manager never forces game over.
func (tm *TurnManager) EndTurn() EndTurnResult {
	income, pulses := tm.collectPassiveIncome()

	tm.data.Turn++
	tm.data.Focus.Current = tm.data.Focus.Max
	tm.buildings.ResetActionUsage()
	tm.version++

	if tm.ruler != nil {
		tm.ruler.IncrementAge()
	}

	var completed *CompletedResearch
	if tm.research != nil {
		completed = tm.research.AdvanceTurn(tm.data.Turn)
	}

	paid := tm.resources.SpendAll(tm.UpkeepCost())

	return EndTurnResult{
		Income:            income,
		Pulses:            pulses,
		CompletedResearch: completed,
		UpkeepPaid:        paid,
	}
}

// SpendFocus deducts focus. Returns false and leaves the budget
// untouched if there is not enough.
func (tm *TurnManager) SpendFocus(amount int) bool {
	if tm.data.Focus.Current < amount {
		return false
	}
	tm.data.Focus.Current -= amount
	tm.version++
	return true
}

// UpkeepCost returns the end-of-turn cost at the current population.
// Pure; safe to call every frame.
func (tm *TurnManager) UpkeepCost() Cost {
	b := tm.UpkeepBreakdown()
	return Cost{
		ResourceFood: b.BaseFood + b.PopulationFood,
		ResourceGold: b.BaseGold,
	}
}

// UpkeepBreakdown itemizes the upkeep formula: the configured base
// plus one extra food per two population, rounded up.
func (tm *TurnManager) UpkeepBreakdown() UpkeepBreakdown {
	pop := tm.buildings.TotalPopulation()
	return UpkeepBreakdown{
		BaseFood:       tm.cfg.Upkeep.Food,
		BaseGold:       tm.cfg.Upkeep.Gold,
		PopulationFood: (pop + 1) / 2,
		Population:     pop,
	}
}

// TurnData returns a snapshot copy of the turn state.
func (tm *TurnManager) TurnData() TurnData {
	return tm.data
}

// TurnDataRef returns the live turn state for per-frame polling.
// Callers treat it as read-only.
func (tm *TurnManager) TurnDataRef() *TurnData {
	return &tm.data
}

// TurnVersion returns the monotonic mutation counter.
func (tm *TurnManager) TurnVersion() uint64 {
	return tm.version
}

// Seed returns the session's income roll seed.
func (tm *TurnManager) Seed() int64 {
	return tm.seed
}

// restore replaces the turn state from a save. Restored values are
// clamped: max focus at least 1, current within [0, max], turn at
// least 1.
func (tm *TurnManager) restore(data TurnData, version uint64, seed int64) {
	data.Turn = max(1, data.Turn)
	data.Focus.Max = max(1, data.Focus.Max)
	data.Focus.Current = min(max(0, data.Focus.Current), data.Focus.Max)
	tm.data = data
	tm.version = version
	tm.seed = seed
}
