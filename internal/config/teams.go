package config

type TeamsConfig struct {
	Teams []TeamDef `yaml:"teams"`
}

type TeamDef struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	BaseSpeed   float64     `yaml:"base_speed"`
	SpeedJitter float64     `yaml:"speed_jitter"`
	Player      bool        `yaml:"player"`
	Members     []MemberDef `yaml:"members"`
}

// MemberDef is one robot's loadout: part ids per slot plus a medal id.
type MemberDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Leader   bool   `yaml:"leader"`
	Medal    string `yaml:"medal"`
	Head     string `yaml:"head"`
	RightArm string `yaml:"right_arm"`
	LeftArm  string `yaml:"left_arm"`
	Legs     string `yaml:"legs"`
}
