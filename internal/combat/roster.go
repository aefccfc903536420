package combat

import (
	"robattle/internal/config"
	"robattle/internal/util"
)

// RosterOptions controls how teams.yaml becomes robots.
type RosterOptions struct {
	// AllAutomated ignores the player flag of every team.
	AllAutomated bool
	// PlayerTeam overrides which team is player controlled; empty keeps the file's flags.
	PlayerTeam string
}

// BuildRoster creates one robot per team member in file order. Speed is the
// team base speed plus a uniform draw in [0, speed_jitter).
func BuildRoster(cat *Catalog, tc *config.TeamsConfig, bal Balance, rng util.Rand, opts RosterOptions) []*Robot {
	if tc == nil {
		return nil
	}
	var robots []*Robot
	for _, t := range tc.Teams {
		player := t.Player
		if opts.PlayerTeam != "" {
			player = t.ID == opts.PlayerTeam
		}
		if opts.AllAutomated {
			player = false
		}
		for _, m := range t.Members {
			speed := t.BaseSpeed
			if t.SpeedJitter > 0 && rng != nil {
				speed += rng.Float64() * t.SpeedJitter
			}
			parts := map[Slot]*Part{
				SlotHead:     cat.Part(m.Head, SlotHead),
				SlotRightArm: cat.Part(m.RightArm, SlotRightArm),
				SlotLeftArm:  cat.Part(m.LeftArm, SlotLeftArm),
				SlotLegs:     cat.Part(m.Legs, SlotLegs),
			}
			name := m.Name
			if name == "" {
				name = m.ID
			}
			r := NewRobot(m.ID, name, TeamID(t.ID), m.Leader, speed, cat.Medal(m.Medal), parts, bal)
			r.Player = player
			robots = append(robots, r)
		}
	}
	return robots
}

// NewBattle builds a session straight from a loaded bundle.
func NewBattle(b *config.Bundle, seed int64, opts RosterOptions) *Session {
	rng := util.New(seed)
	bal := BalanceFrom(b.Balance)
	cat := NewCatalog(b.Parts, b.Medals, b.Balance)
	robots := BuildRoster(cat, b.Teams, bal, rng, opts)
	return NewSession(robots, SessionConfig{Balance: bal, Rng: rng})
}
