package game

// Ruler is the settlement's current ruler.
type Ruler struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// RulerManager owns the ruler and ages them as turns pass.
type RulerManager struct {
	ruler   Ruler
	version uint64
}

// NewRulerManager creates a ruler manager.
func NewRulerManager(name string, age int) *RulerManager {
	return &RulerManager{ruler: Ruler{Name: name, Age: max(0, age)}}
}

// IncrementAge ages the ruler by one turn.
func (rm *RulerManager) IncrementAge() {
	rm.ruler.Age++
	rm.version++
}

// Ruler returns a copy of the current ruler.
func (rm *RulerManager) Ruler() Ruler {
	return rm.ruler
}

// Version returns the monotonic mutation counter.
func (rm *RulerManager) Version() uint64 {
	return rm.version
}

func (rm *RulerManager) restore(r Ruler, version uint64) {
	rm.ruler = r
	rm.version = version
}
