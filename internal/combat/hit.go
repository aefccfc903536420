package combat

import "robattle/internal/util"

// HitRoll is the outcome of the accuracy check for one attack.
type HitRoll struct {
	Chance   int
	Hit      bool
	Critical bool
}

// skillFor is the medal skill that backs a part category.
func skillFor(m Medal, cat Category) int {
	switch cat {
	case CategoryRanged:
		return m.Skills.Shoot
	case CategoryMelee:
		return m.Skills.Fight
	case CategoryScan:
		return m.Skills.Scan
	case CategorySupport:
		return m.Skills.Support
	}
	return 0
}

// HitChance is base chance + part accuracy + medal skill + trait bonus, minus
// the mobility of the target's legs unless they are broken or the target's
// own action disabled evasion.
func HitChance(attacker *Robot, p *Part, target *Robot, bal Balance) int {
	chance := bal.HitBaseChance + p.Accuracy + skillFor(attacker.Medal, p.Category) + bal.traitBonus(p.Trait)
	if legs := target.Part(SlotLegs); legs != nil && !legs.Broken && !target.EvasionDisabled() {
		chance -= legs.Mobility
	}
	return chance
}

// RollHit draws against chance in percent. Chances of 0 or less always miss
// and 100 always hits, neither consuming a draw. Above 100 a hit rolls again
// for a critical with the excess as its chance.
func RollHit(chance int, rng util.Rand) HitRoll {
	h := HitRoll{Chance: chance}
	switch {
	case chance <= 0:
	case chance >= 100:
		h.Hit = true
	default:
		h.Hit = rng.Intn(100) < chance
	}
	if h.Hit && chance > 100 {
		h.Critical = rng.Intn(100) < chance-100
	}
	return h
}

// AttackDamage is the raw amount a hit carries before the target's defense:
// AttackPower, plus the fight or shoot skill times the skill factor for
// melee and ranged parts, plus the attacker's leg propulsion for berserk parts.
func AttackDamage(attacker *Robot, p *Part, bal Balance) int {
	amount := AttackPower(p, bal)
	if p.Category == CategoryMelee || p.Category == CategoryRanged {
		amount += skillFor(attacker.Medal, p.Category) * bal.MedalSkillFactor
	}
	if p.Trait == TraitBerserk {
		if legs := attacker.Part(SlotLegs); legs != nil && !legs.Broken {
			amount += legs.Propulsion
		}
	}
	return amount
}
