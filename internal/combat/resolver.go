package combat

// Attack is the damage one landed hit carries. Multiplier applies after the
// target's defense; 0 or 1 means a plain hit.
type Attack struct {
	Amount     int
	Multiplier float64
}

// Outcome describes one resolved hit.
type Outcome struct {
	Damage        int
	PartBroken    bool
	HeadDestroyed bool
	// GameOver is set when the destroyed head belonged to a leader; Winner is
	// then the attacker's team.
	GameOver bool
	Winner   TeamID
}

// Resolve applies the attack to the target's part and decides whether the
// hit ends the battle. It keeps no state.
func Resolve(attacker, target *Robot, slot Slot, atk Attack) Outcome {
	p := target.Part(slot)
	wasBroken := p == nil || p.Broken
	dmg, headDestroyed := target.TakeHit(atk.Amount, atk.Multiplier, slot)
	out := Outcome{
		Damage:        dmg,
		PartBroken:    !wasBroken && p.Broken,
		HeadDestroyed: headDestroyed,
	}
	if headDestroyed && target.Leader {
		out.GameOver = true
		out.Winner = attacker.Team
	}
	return out
}

// AttackPower is the damage a part deals: its power, or the balance base
// damage when the part has none.
func AttackPower(p *Part, bal Balance) int {
	if p != nil && p.Power > 0 {
		return p.Power
	}
	return bal.BaseDamage
}
