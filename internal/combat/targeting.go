package combat

import "robattle/internal/util"

// Candidates returns the enemies of attacker that can still be hit, in roster order.
func Candidates(attacker *Robot, roster []*Robot) []*Robot {
	out := make([]*Robot, 0, len(roster))
	for _, r := range roster {
		if r == attacker || r.Team == attacker.Team || r.State == StateBroken {
			continue
		}
		if len(r.IntactSlots()) == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SelectTarget picks an enemy and the part to hit. It holds no state: melee
// goes for the closest enemy, ranged for the farthest (or a random enemy and
// part for the random-target personality), everything else for the enemy
// leader, falling back to the first candidate.
func SelectTarget(attacker *Robot, roster []*Robot, cat Category, pers Personality, prox Proximity, rng util.Rand) (Target, bool) {
	cands := Candidates(attacker, roster)
	if len(cands) == 0 {
		return Target{}, false
	}

	var enemy *Robot
	switch {
	case cat == CategoryMelee:
		enemy = extreme(attacker, cands, prox, func(d, best float64) bool { return d < best })
	case cat == CategoryRanged && pers == PersonalityRandomTarget:
		enemy = cands[util.Pick(rng, len(cands))]
	case cat == CategoryRanged:
		enemy = extreme(attacker, cands, prox, func(d, best float64) bool { return d > best })
	default:
		enemy = cands[0]
		for _, c := range cands {
			if c.Leader {
				enemy = c
				break
			}
		}
	}

	slot, ok := RandomIntactSlot(enemy, rng)
	if !ok {
		return Target{}, false
	}
	return Target{Robot: enemy, Slot: slot}, true
}

// extreme returns the candidate whose distance wins better against the
// current best; ties keep the earlier candidate.
func extreme(attacker *Robot, cands []*Robot, prox Proximity, better func(d, best float64) bool) *Robot {
	best := cands[0]
	bestD := prox.Distance(attacker, best)
	for _, c := range cands[1:] {
		if d := prox.Distance(attacker, c); better(d, bestD) {
			best, bestD = c, d
		}
	}
	return best
}

// RandomIntactSlot picks uniformly among the robot's non-broken parts.
func RandomIntactSlot(r *Robot, rng util.Rand) (Slot, bool) {
	slots := r.IntactSlots()
	i := util.Pick(rng, len(slots))
	if i < 0 {
		return "", false
	}
	return slots[i], true
}
