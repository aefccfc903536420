package combat

import (
	"robattle/internal/config"
	"robattle/internal/logging"
)

// Catalog turns loaded part and medal definitions into fresh runtime values.
// Unknown references never fail: parts become inert substitutes and medals
// fall back to FallbackMedal.
type Catalog struct {
	parts  map[string]config.PartDef
	medals map[string]config.MedalDef
	hpBase int
	legsHP int
}

func NewCatalog(pc *config.PartsConfig, mc *config.MedalsConfig, bc config.BalanceConfig) *Catalog {
	c := &Catalog{
		parts:  map[string]config.PartDef{},
		medals: map[string]config.MedalDef{},
		hpBase: bc.PartHPBase,
		legsHP: bc.LegsHPBonus,
	}
	if c.hpBase <= 0 {
		c.hpBase = config.DefaultBalance().PartHPBase
	}
	if pc != nil {
		for _, p := range pc.Parts {
			c.parts[p.ID] = p
		}
	}
	if mc != nil {
		for _, m := range mc.Medals {
			c.medals[m.ID] = m
		}
	}
	return c
}

// Part instantiates the part id for slot. A missing id, an unknown id or a
// definition for another slot yields an inert part.
func (c *Catalog) Part(id string, slot Slot) *Part {
	def, ok := c.parts[id]
	if !ok || Slot(def.Slot) != slot {
		logging.Warn("part definition substituted", logging.Fields{"part": id, "slot": string(slot), "known": ok})
		return InertPart(slot)
	}
	hp := def.HP
	if hp <= 0 {
		hp = c.hpBase
		if slot == SlotLegs {
			hp += c.legsHP
		}
	}
	cat := Category(def.Category)
	if cat == "" || cat == "empty" {
		cat = CategoryNone
	}
	p := NewPart(def.ID, def.Name, slot, cat, hp, float64(def.Charge), float64(def.Cooldown))
	p.Power = def.Power
	p.Accuracy = def.Accuracy
	if def.Trait != "" {
		p.Trait = Trait(def.Trait)
	}
	if slot == SlotLegs {
		p.Propulsion = def.Propulsion
		p.Defense = def.Defense
		p.Mobility = def.Mobility
	}
	return p
}

// Medal returns the medal id or the fallback medal.
func (c *Catalog) Medal(id string) Medal {
	def, ok := c.medals[id]
	if !ok {
		logging.Warn("medal definition substituted", logging.Fields{"medal": id})
		return FallbackMedal()
	}
	pers := Personality(def.Personality)
	if pers == "" {
		pers = PersonalityLeader
	}
	return Medal{
		ID:          def.ID,
		Name:        def.Name,
		Personality: pers,
		Skills: Skills{
			Shoot:   def.Skills.Shoot,
			Fight:   def.Skills.Fight,
			Scan:    def.Skills.Scan,
			Support: def.Skills.Support,
		},
	}
}

// BalanceFrom converts the loaded balance rules.
func BalanceFrom(bc config.BalanceConfig) Balance {
	b := Balance{
		MaxGauge:         bc.MaxGauge,
		PropulsionFactor: bc.PropulsionFactor,
		MinDamage:        bc.MinDamage,
		BaseDamage:       bc.BaseDamage,

		HitBaseChance:      bc.HitBaseChance,
		AimBonus:           bc.TraitAimBonus,
		StrikeBonus:        bc.TraitStrikeBonus,
		BerserkBonus:       bc.TraitBerserkBonus,
		CriticalMultiplier: bc.CriticalMultiplier,
		MedalSkillFactor:   bc.MedalSkillFactor,
	}
	if b.MaxGauge <= 0 {
		return DefaultBalance()
	}
	return b
}
