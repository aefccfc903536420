package combat

type Personality string

const (
	PersonalityRandomTarget Personality = "random-target"
	PersonalityHunter       Personality = "hunter"
	PersonalityJoker        Personality = "joker"
	PersonalityLeader       Personality = "leader"
)

type Skills struct {
	Shoot, Fight, Scan, Support int
}

// Medal is the robot's core. Skills are informational.
type Medal struct {
	ID          string
	Name        string
	Personality Personality
	Skills      Skills
}

// FallbackMedal is equipped when a loadout references an unknown medal.
func FallbackMedal() Medal {
	return Medal{ID: "M_FALLBACK", Name: "Fallback", Personality: PersonalityLeader, Skills: Skills{Shoot: 5, Fight: 5}}
}
