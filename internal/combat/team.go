package combat

// Team groups the robots of one side in roster order.
type Team struct {
	ID      TeamID
	Members []*Robot
}

// GroupTeams splits a roster into teams, ordered by first appearance.
func GroupTeams(robots []*Robot) []*Team {
	var teams []*Team
	byID := map[TeamID]*Team{}
	for _, r := range robots {
		t, ok := byID[r.Team]
		if !ok {
			t = &Team{ID: r.Team}
			byID[r.Team] = t
			teams = append(teams, t)
		}
		t.Members = append(t.Members, r)
	}
	return teams
}

// Leader returns the team's leader, or nil when none is flagged.
func (t *Team) Leader() *Robot {
	for _, r := range t.Members {
		if r.Leader {
			return r
		}
	}
	return nil
}

// Alive returns the members that are not broken.
func (t *Team) Alive() []*Robot {
	out := make([]*Robot, 0, len(t.Members))
	for _, r := range t.Members {
		if r.State != StateBroken {
			out = append(out, r)
		}
	}
	return out
}

// Defeated reports whether the leader is down.
func (t *Team) Defeated() bool {
	l := t.Leader()
	return l != nil && l.State == StateBroken
}
