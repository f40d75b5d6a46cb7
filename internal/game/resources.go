package game

// ResourceType represents a type of resource.
type ResourceType int

const (
	ResourceGold ResourceType = iota
	ResourceMaterials
	ResourceFood
	ResourcePopulation
	resourceCount
)

// String returns the resource name.
func (r ResourceType) String() string {
	switch r {
	case ResourceGold:
		return "Gold"
	case ResourceMaterials:
		return "Materials"
	case ResourceFood:
		return "Food"
	case ResourcePopulation:
		return "Population"
	default:
		return "Unknown"
	}
}

// ResourceTypes lists all resource types in display order.
func ResourceTypes() []ResourceType {
	return []ResourceType{ResourceGold, ResourceMaterials, ResourceFood, ResourcePopulation}
}

func (r ResourceType) valid() bool {
	return r >= 0 && r < resourceCount
}

// Cost maps resource types to amounts. Entries are partial: a cost
// that never mentions food costs no food.
type Cost map[ResourceType]int

// Ledger is a snapshot of all four resource counters.
type Ledger struct {
	Gold       int `json:"gold"`
	Materials  int `json:"materials"`
	Food       int `json:"food"`
	Population int `json:"population"`
}

// ResourceManager owns the mutable resource ledger for a game session.
// Counters never go below zero; every mutation clamps at zero and
// bumps the version counter so polling callers can detect change.
type ResourceManager struct {
	counters [resourceCount]int
	version  uint64
}

// NewResourceManager creates a ledger with the given initial allocation.
func NewResourceManager(initial Ledger) *ResourceManager {
	rm := &ResourceManager{}
	rm.counters[ResourceGold] = max(0, initial.Gold)
	rm.counters[ResourceMaterials] = max(0, initial.Materials)
	rm.counters[ResourceFood] = max(0, initial.Food)
	rm.counters[ResourcePopulation] = max(0, initial.Population)
	return rm
}

// Get returns the current value of one counter.
func (rm *ResourceManager) Get(r ResourceType) int {
	if !r.valid() {
		return 0
	}
	return rm.counters[r]
}

// All returns a snapshot copy of the ledger.
func (rm *ResourceManager) All() Ledger {
	return Ledger{
		Gold:       rm.counters[ResourceGold],
		Materials:  rm.counters[ResourceMaterials],
		Food:       rm.counters[ResourceFood],
		Population: rm.counters[ResourcePopulation],
	}
}

// Set sets a counter to max(0, amount).
func (rm *ResourceManager) Set(r ResourceType, amount int) {
	if !r.valid() {
		return
	}
	rm.counters[r] = max(0, amount)
	rm.version++
}

// Add adds to a counter, clamping at zero. A negative amount
// subtracts.
func (rm *ResourceManager) Add(r ResourceType, amount int) {
	if !r.valid() {
		return
	}
	rm.counters[r] = max(0, rm.counters[r]+amount)
	rm.version++
}

// Has reports whether at least amount of a resource is available.
func (rm *ResourceManager) Has(r ResourceType, amount int) bool {
	return rm.Get(r) >= amount
}

// Spend deducts amount from a counter. Returns false and leaves the
// counter untouched if there is not enough.
func (rm *ResourceManager) Spend(r ResourceType, amount int) bool {
	if !r.valid() || rm.counters[r] < amount {
		return false
	}
	rm.counters[r] -= amount
	rm.version++
	return true
}

// CanAfford reports whether every entry of the cost is individually
// affordable. Never mutates.
func (rm *ResourceManager) CanAfford(cost Cost) bool {
	for r, amount := range cost {
		if !rm.Has(r, amount) {
			return false
		}
	}
	return true
}

// SpendAll deducts an entire cost atomically. If any resource is
// insufficient, nothing is deducted and SpendAll returns false.
// Partial payment never occurs.
func (rm *ResourceManager) SpendAll(cost Cost) bool {
	if !rm.CanAfford(cost) {
		return false
	}
	for r, amount := range cost {
		rm.counters[r] -= amount
	}
	rm.version++
	return true
}

// AddAll credits every entry of the map, each clamped at zero.
func (rm *ResourceManager) AddAll(amounts Cost) {
	for r, amount := range amounts {
		if !r.valid() {
			continue
		}
		rm.counters[r] = max(0, rm.counters[r]+amount)
	}
	rm.version++
}

// Reset zeroes all four counters.
func (rm *ResourceManager) Reset() {
	rm.counters = [resourceCount]int{}
	rm.version++
}

// Version returns the monotonic mutation counter.
func (rm *ResourceManager) Version() uint64 {
	return rm.version
}

// restore replaces the ledger from a save snapshot.
func (rm *ResourceManager) restore(l Ledger, version uint64) {
	rm.counters[ResourceGold] = max(0, l.Gold)
	rm.counters[ResourceMaterials] = max(0, l.Materials)
	rm.counters[ResourceFood] = max(0, l.Food)
	rm.counters[ResourcePopulation] = max(0, l.Population)
	rm.version = version
}
