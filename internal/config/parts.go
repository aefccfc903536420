package config

type PartsConfig struct {
	Parts []PartDef `yaml:"parts"`
}

// PartDef is one row of the part catalog. HP 0 falls back to the balance
// part_hp_base (plus legs_hp_bonus for legs).
type PartDef struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Slot       string `yaml:"slot"`
	Category   string `yaml:"category"`
	HP         int    `yaml:"hp"`
	Charge     int    `yaml:"charge"`
	Cooldown   int    `yaml:"cooldown"`
	Power      int    `yaml:"power"`
	Accuracy   int    `yaml:"accuracy"`
	Trait      string `yaml:"trait"`
	Propulsion int    `yaml:"propulsion"`
	Defense    int    `yaml:"defense"`
	Mobility   int    `yaml:"mobility"`
	Note       string `yaml:"note"`
}
