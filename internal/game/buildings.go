package game

import "github.com/google/uuid"

// BuildingInstance is a building placed on the map.
type BuildingInstance struct {
	InstanceID string `json:"instanceId"`
	BuildingID string `json:"buildingId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// BuildingManager owns placed buildings and their per-turn action
// flags. Placement is atomic: a rejected placement spends nothing and
// adds nothing.
type BuildingManager struct {
	defs      map[string]*BuildingDefinition
	resources *ResourceManager
	techs     *TechnologyRegistry
	mapm      *MapManager

	instances  []*BuildingInstance
	actionUsed map[string]bool
	version    uint64
}

// NewBuildingManager creates a building manager over the given
// definition table.
func NewBuildingManager(defs map[string]*BuildingDefinition, resources *ResourceManager, techs *TechnologyRegistry) *BuildingManager {
	return &BuildingManager{
		defs:       defs,
		resources:  resources,
		techs:      techs,
		actionUsed: make(map[string]bool),
	}
}

// AttachMap wires the map used for bounds checking. Without a map,
// placements are unbounded.
func (bm *BuildingManager) AttachMap(mm *MapManager) {
	bm.mapm = mm
}

// Definition returns the definition for a building type, or nil.
func (bm *BuildingManager) Definition(id string) *BuildingDefinition {
	return bm.defs[id]
}

// CanPlace validates a placement without mutating anything.
func (bm *BuildingManager) CanPlace(buildingID string, x, y int) error {
	def := bm.defs[buildingID]
	if def == nil {
		return ErrBuildingUnknown
	}
	if def.RequiredTechnology != "" && !bm.techs.IsUnlocked(def.RequiredTechnology) {
		return ErrTechnologyLocked
	}
	if bm.mapm != nil && !bm.mapm.InBounds(x, y, def.Width, def.Height) {
		return ErrOutOfBounds
	}
	if bm.overlaps(x, y, def.Width, def.Height) {
		return ErrTileOccupied
	}
	if !bm.resources.CanAfford(def.Cost) {
		return ErrInsufficientResources
	}
	return nil
}

// Place validates and constructs a building, spending its cost
// atomically.
func (bm *BuildingManager) Place(buildingID string, x, y int) (*BuildingInstance, error) {
	if err := bm.CanPlace(buildingID, x, y); err != nil {
		return nil, err
	}
	def := bm.defs[buildingID]
	if !bm.resources.SpendAll(def.Cost) {
		return nil, ErrInsufficientResources
	}
	inst := &BuildingInstance{
		InstanceID: uuid.New().String(),
		BuildingID: buildingID,
		X:          x,
		Y:          y,
		Width:      def.Width,
		Height:     def.Height,
	}
	bm.instances = append(bm.instances, inst)
	bm.version++
	return inst, nil
}

// Remove demolishes a building instance. Returns false if unknown.
func (bm *BuildingManager) Remove(instanceID string) bool {
	for i, inst := range bm.instances {
		if inst.InstanceID == instanceID {
			bm.instances = append(bm.instances[:i], bm.instances[i+1:]...)
			delete(bm.actionUsed, instanceID)
			bm.version++
			return true
		}
	}
	return false
}

// InstancesRef returns the live instance list. Callers treat it as
// read-only; it is reused across frames to avoid allocation.
func (bm *BuildingManager) InstancesRef() []*BuildingInstance {
	return bm.instances
}

// TotalPopulation sums the housed population over all instances.
func (bm *BuildingManager) TotalPopulation() int {
	total := 0
	for _, inst := range bm.instances {
		if def := bm.defs[inst.BuildingID]; def != nil {
			total += def.Population
		}
	}
	return total
}

// IsTechnologyUnlocked reports whether a technology is unlocked.
func (bm *BuildingManager) IsTechnologyUnlocked(id string) bool {
	return bm.techs.IsUnlocked(id)
}

// UseAction marks a building's once-per-turn action as spent. Returns
// false if the instance is unknown or the action was already used.
func (bm *BuildingManager) UseAction(instanceID string) bool {
	if !bm.hasInstance(instanceID) || bm.actionUsed[instanceID] {
		return false
	}
	bm.actionUsed[instanceID] = true
	bm.version++
	return true
}

// HasUsedAction reports whether an instance's action was used this
// turn.
func (bm *BuildingManager) HasUsedAction(instanceID string) bool {
	return bm.actionUsed[instanceID]
}

// ResetActionUsage clears all per-turn action flags. Called by the
// turn pipeline when the focus budget refills.
func (bm *BuildingManager) ResetActionUsage() {
	if len(bm.actionUsed) == 0 {
		return
	}
	bm.actionUsed = make(map[string]bool)
	bm.version++
}

// Version returns the monotonic mutation counter.
func (bm *BuildingManager) Version() uint64 {
	return bm.version
}

func (bm *BuildingManager) hasInstance(instanceID string) bool {
	for _, inst := range bm.instances {
		if inst.InstanceID == instanceID {
			return true
		}
	}
	return false
}

func (bm *BuildingManager) overlaps(x, y, w, h int) bool {
	for _, inst := range bm.instances {
		if x < inst.X+inst.Width && inst.X < x+w &&
			y < inst.Y+inst.Height && inst.Y < y+h {
			return true
		}
	}
	return false
}

func (bm *BuildingManager) restore(instances []*BuildingInstance, usedActions []string, version uint64) {
	bm.instances = make([]*BuildingInstance, len(instances))
	for i, inst := range instances {
		c := *inst
		bm.instances[i] = &c
	}
	bm.actionUsed = make(map[string]bool, len(usedActions))
	for _, id := range usedActions {
		bm.actionUsed[id] = true
	}
	bm.version = version
}
