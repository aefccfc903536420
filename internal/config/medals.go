package config

type MedalsConfig struct {
	Medals []MedalDef `yaml:"medals"`
}

type MedalDef struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Personality string      `yaml:"personality"`
	Skills      MedalSkills `yaml:"skills"`
	Note        string      `yaml:"note"`
}

type MedalSkills struct {
	Shoot   int `yaml:"shoot"`
	Fight   int `yaml:"fight"`
	Scan    int `yaml:"scan"`
	Support int `yaml:"support"`
}
