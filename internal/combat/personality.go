package combat

// PartChooser decides which of its own parts an automated robot acts with.
type PartChooser interface {
	Choose(r *Robot) (Slot, bool)
}

type FirstAvailable struct{}

func (FirstAvailable) Choose(r *Robot) (Slot, bool) {
	slots := r.ActionSlotsAvailable()
	if len(slots) == 0 {
		return "", false
	}
	return slots[0], true
}

// HighestPower prefers the strongest part; ties keep slot order.
type HighestPower struct{}

func (HighestPower) Choose(r *Robot) (Slot, bool) {
	return pickBy(r, func(p, best *Part) bool { return p.Power > best.Power })
}

// FastestCharge prefers the part with the lowest charge threshold.
type FastestCharge struct{}

func (FastestCharge) Choose(r *Robot) (Slot, bool) {
	return pickBy(r, func(p, best *Part) bool { return p.Charge < best.Charge })
}

func pickBy(r *Robot, better func(p, best *Part) bool) (Slot, bool) {
	var best *Part
	for _, s := range r.ActionSlotsAvailable() {
		p := r.Part(s)
		if best == nil || better(p, best) {
			best = p
		}
	}
	if best == nil {
		return "", false
	}
	return best.Slot, true
}

var choosers = map[Personality]PartChooser{
	PersonalityHunter: HighestPower{},
	PersonalityJoker:  FastestCharge{},
}

// ChooserFor maps a medal personality to its part chooser.
func ChooserFor(p Personality) PartChooser {
	if c, ok := choosers[p]; ok {
		return c
	}
	return FirstAvailable{}
}
