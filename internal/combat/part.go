package combat

// Part is one of a robot's four components. HP only changes through
// Robot.ApplyDamage and Robot.FullReset.
type Part struct {
	ID       string
	Name     string
	Slot     Slot
	Category Category

	HP    int
	MaxHP int

	Charge   float64
	Cooldown float64
	Power    int
	Accuracy int
	Trait    Trait

	// legs modifiers
	Propulsion int
	Defense    int
	Mobility   int

	Broken bool
	// Inert marks a substitute for a missing definition; it stays broken across resets.
	Inert bool
}

// NewPart builds a part at full HP. maxHP below 1 is raised to 1.
func NewPart(id, name string, slot Slot, cat Category, maxHP int, charge, cooldown float64) *Part {
	if maxHP < 1 {
		maxHP = 1
	}
	if cat == "" {
		cat = CategoryNone
	}
	return &Part{
		ID: id, Name: name, Slot: slot, Category: cat, Trait: TraitNormal,
		HP: maxHP, MaxHP: maxHP,
		Charge: charge, Cooldown: cooldown,
	}
}

// InertPart is the substitute for a missing or invalid definition:
// already broken, HP 0 of 1, zero thresholds.
func InertPart(slot Slot) *Part {
	return &Part{
		ID: "placeholder", Name: "Missing", Slot: slot, Category: CategoryNone, Trait: TraitNormal,
		HP: 0, MaxHP: 1, Broken: true, Inert: true,
	}
}

// IsAttackCategory reports whether the part can be used as an action.
func (p *Part) IsAttackCategory() bool {
	switch p.Category {
	case CategoryMelee, CategoryRanged, CategoryScan, CategorySupport:
		return true
	}
	return false
}

// HPFraction returns HP/MaxHP in [0,1].
func (p *Part) HPFraction() float64 {
	if p.MaxHP <= 0 {
		return 0
	}
	return float64(p.HP) / float64(p.MaxHP)
}

// Usable reports whether the part can be selected as an action right now.
func (p *Part) Usable() bool {
	return p != nil && !p.Broken && p.Slot != SlotLegs && p.IsAttackCategory()
}

func (p *Part) restore() {
	if p.Inert {
		p.HP, p.Broken = 0, true
		return
	}
	p.HP, p.Broken = p.MaxHP, false
}
