package game

import "math/rand"

// IncomePulse is one income credit anchored to a map tile, recorded
// for UI feedback. Only strictly positive credits produce pulses.
type IncomePulse struct {
	X        int          `json:"x"`
	Y        int          `json:"y"`
	Resource ResourceType `json:"resource"`
	Amount   int          `json:"amount"`
}

// collectPassiveIncome credits every building's production for the
// closing turn and returns the per-resource totals plus the pulse
// list. Rolls come from a stream derived from the session seed and
// the turn number, so the same seed replays the same amounts and a
// restored save continues the same sequence.
func (tm *TurnManager) collectPassiveIncome() (Cost, []IncomePulse) {
	income := Cost{}
	var pulses []IncomePulse

	rng := rand.New(rand.NewSource(tm.seed + int64(tm.data.Turn)))

	tax := tm.cfg.HouseTax
	taxed := tax.Gold > 0 && tax.TechnologyID != "" &&
		tm.buildings.IsTechnologyUnlocked(tax.TechnologyID)

	for _, inst := range tm.buildings.InstancesRef() {
		def := tm.buildings.Definition(inst.BuildingID)
		if def == nil {
			continue
		}

		cx := inst.X + inst.Width/2
		cy := inst.Y + inst.Height/2
		credit := func(res ResourceType, amount int) {
			if amount <= 0 {
				return
			}
			income[res] += amount
			pulses = append(pulses, IncomePulse{X: cx, Y: cy, Resource: res, Amount: amount})
		}

		for _, entry := range def.PassiveIncome {
			credit(entry.Resource, entry.Amount.Roll(rng))
		}

		if taxed && inst.BuildingID == tax.BuildingID {
			credit(ResourceGold, tax.Gold)
		}

		if tm.mapm != nil {
			for y := inst.Y; y < inst.Y+inst.Height; y++ {
				for x := inst.X; x < inst.X+inst.Width; x++ {
					node := tm.mapm.RareResourceAt(x, y)
					if node == nil {
						continue
					}
					rdef := tm.rareDefs[node.ResourceID]
					if rdef == nil || rdef.BonusBuildingID != inst.BuildingID {
						continue
					}
					credit(rdef.Bonus.Resource, rdef.Bonus.Amount.Roll(rng))
				}
			}
		}
	}

	if len(income) > 0 {
		tm.resources.AddAll(income)
	}
	return income, pulses
}
