package config

// BalanceConfig holds the numeric rules of a battle.
type BalanceConfig struct {
	MaxGauge         float64 `yaml:"max_gauge"`
	PropulsionFactor float64 `yaml:"propulsion_factor"`
	MinDamage        int     `yaml:"min_damage"`
	BaseDamage       int     `yaml:"base_damage"`
	TickIntervalMs   int     `yaml:"tick_interval_ms"`
	PartHPBase       int     `yaml:"part_hp_base"`
	LegsHPBonus      int     `yaml:"legs_hp_bonus"`

	HitBaseChance      int     `yaml:"hit_base_chance"`
	TraitAimBonus      int     `yaml:"trait_aim_bonus"`
	TraitStrikeBonus   int     `yaml:"trait_strike_bonus"`
	TraitBerserkBonus  int     `yaml:"trait_berserk_bonus"`
	CriticalMultiplier float64 `yaml:"critical_multiplier"`
	MedalSkillFactor   int     `yaml:"medal_skill_factor"`

	Note string `yaml:"note"`
}

// DefaultBalance mirrors the values the embedded balance.yaml ships with.
func DefaultBalance() BalanceConfig {
	return BalanceConfig{
		MaxGauge:         100,
		PropulsionFactor: 0.5,
		MinDamage:        1,
		BaseDamage:       20,
		TickIntervalMs:   50,
		PartHPBase:       50,
		LegsHPBonus:      10,

		HitBaseChance:      75,
		TraitAimBonus:      50,
		TraitStrikeBonus:   20,
		TraitBerserkBonus:  -10,
		CriticalMultiplier: 1.5,
		MedalSkillFactor:   2,
	}
}

// withDefaults fills zero fields from DefaultBalance.
func (b BalanceConfig) withDefaults() BalanceConfig {
	d := DefaultBalance()
	if b.MaxGauge <= 0 {
		b.MaxGauge = d.MaxGauge
	}
	if b.PropulsionFactor < 0 {
		b.PropulsionFactor = 0
	}
	if b.MinDamage <= 0 {
		b.MinDamage = d.MinDamage
	}
	if b.BaseDamage <= 0 {
		b.BaseDamage = d.BaseDamage
	}
	if b.TickIntervalMs <= 0 {
		b.TickIntervalMs = d.TickIntervalMs
	}
	if b.PartHPBase <= 0 {
		b.PartHPBase = d.PartHPBase
	}
	if b.LegsHPBonus < 0 {
		b.LegsHPBonus = 0
	}
	if b.HitBaseChance <= 0 {
		b.HitBaseChance = d.HitBaseChance
	}
	if b.CriticalMultiplier < 1 {
		b.CriticalMultiplier = d.CriticalMultiplier
	}
	if b.MedalSkillFactor < 0 {
		b.MedalSkillFactor = 0
	}
	return b
}
