// Package game contains the turn and economy simulation core for
// Emberhold: the resource ledger, the turn lifecycle, research
// progression, and the building, map, and ruler state they read.
package game

// Session wires a complete game: config, static definitions, and all
// managers. Everything runs single-threaded; no manager takes locks.
type Session struct {
	Config       Config
	Defs         *Definitions
	Resources    *ResourceManager
	Buildings    *BuildingManager
	Research     *ResearchManager
	Map          *MapManager
	Ruler        *RulerManager
	Technologies *TechnologyRegistry
	Turns        *TurnManager
}

// SessionOptions configures a new game session.
type SessionOptions struct {
	Initial              Ledger
	MapWidth             int
	MapHeight            int
	Seed                 int64
	RulerName            string
	RulerAge             int
	UnlockedTechnologies []string
}

// NewSession creates and wires a fresh game session.
func NewSession(cfg Config, defs *Definitions, opts SessionOptions) *Session {
	techs := NewTechnologyRegistry(opts.UnlockedTechnologies)
	resources := NewResourceManager(opts.Initial)
	mapm := NewMapManager(opts.MapWidth, opts.MapHeight)
	buildings := NewBuildingManager(defs.Buildings, resources, techs)
	buildings.AttachMap(mapm)
	research := NewResearchManager(defs.Research, techs)
	ruler := NewRulerManager(opts.RulerName, opts.RulerAge)

	turns := NewTurnManager(cfg, resources, buildings, opts.Seed)
	turns.AttachResearch(research)
	turns.AttachMap(mapm, defs.RareResources)
	turns.AttachRuler(ruler)

	return &Session{
		Config:       cfg,
		Defs:         defs,
		Resources:    resources,
		Buildings:    buildings,
		Research:     research,
		Map:          mapm,
		Ruler:        ruler,
		Technologies: techs,
		Turns:        turns,
	}
}

// Snapshot is the JSON-serializable state of a session. Restoring a
// snapshot reproduces the ledger, turn state, research state, and all
// subsequent income rolls exactly.
type Snapshot struct {
	Ledger          Ledger `json:"ledger"`
	ResourceVersion uint64 `json:"resourceVersion"`

	Turn        TurnData `json:"turn"`
	TurnVersion uint64   `json:"turnVersion"`
	Seed        int64    `json:"seed"`

	ActiveResearch    *ActiveResearch    `json:"activeResearch,omitempty"`
	CompletedResearch []string           `json:"completedResearch,omitempty"`
	LatestCompletion  *CompletedResearch `json:"latestCompletion,omitempty"`
	ResearchVersion   uint64             `json:"researchVersion"`

	Buildings       []*BuildingInstance `json:"buildings,omitempty"`
	UsedActions     []string            `json:"usedActions,omitempty"`
	BuildingVersion uint64              `json:"buildingVersion"`

	Ruler        Ruler  `json:"ruler"`
	RulerVersion uint64 `json:"rulerVersion"`

	UnlockedTechnologies []string `json:"unlockedTechnologies,omitempty"`

	MapWidth      int                          `json:"mapWidth"`
	MapHeight     int                          `json:"mapHeight"`
	RareResources map[string]*RareResourceNode `json:"rareResources,omitempty"`
}

// Snapshot captures the session's full core state.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Ledger:          s.Resources.All(),
		ResourceVersion: s.Resources.Version(),

		Turn:        s.Turns.TurnData(),
		TurnVersion: s.Turns.TurnVersion(),
		Seed:        s.Turns.Seed(),

		ActiveResearch:    s.Research.Active(),
		CompletedResearch: s.Research.CompletedIDs(),
		LatestCompletion:  s.Research.Latest(),
		ResearchVersion:   s.Research.Version(),

		BuildingVersion: s.Buildings.Version(),

		Ruler:        s.Ruler.Ruler(),
		RulerVersion: s.Ruler.Version(),

		UnlockedTechnologies: s.Technologies.Unlocked(),

		MapWidth:  s.Map.MapRef().Width,
		MapHeight: s.Map.MapRef().Height,
	}
	for _, inst := range s.Buildings.InstancesRef() {
		c := *inst
		snap.Buildings = append(snap.Buildings, &c)
		if s.Buildings.HasUsedAction(inst.InstanceID) {
			snap.UsedActions = append(snap.UsedActions, inst.InstanceID)
		}
	}
	rare := s.Map.MapRef().RareResources
	if len(rare) > 0 {
		snap.RareResources = make(map[string]*RareResourceNode, len(rare))
		for k, n := range rare {
			c := *n
			snap.RareResources[k] = &c
		}
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(cfg Config, defs *Definitions, snap *Snapshot) *Session {
	s := NewSession(cfg, defs, SessionOptions{
		MapWidth:             snap.MapWidth,
		MapHeight:            snap.MapHeight,
		Seed:                 snap.Seed,
		RulerName:            snap.Ruler.Name,
		RulerAge:             snap.Ruler.Age,
		UnlockedTechnologies: snap.UnlockedTechnologies,
	})
	s.Resources.restore(snap.Ledger, snap.ResourceVersion)
	s.Turns.restore(snap.Turn, snap.TurnVersion, snap.Seed)
	s.Research.restore(snap.ActiveResearch, snap.CompletedResearch, snap.LatestCompletion, snap.ResearchVersion)
	s.Buildings.restore(snap.Buildings, snap.UsedActions, snap.BuildingVersion)
	s.Ruler.restore(snap.Ruler, snap.RulerVersion)
	if snap.RareResources != nil {
		s.Map.restore(snap.RareResources)
	}
	return s
}
