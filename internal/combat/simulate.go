package combat

import (
	"encoding/json"
	"fmt"
)

type SimResult struct {
	Winner        TeamID             `json:"winner"`
	Finished      bool               `json:"finished"`
	Ticks         int                `json:"ticks"`
	Events        []Event            `json:"events,omitempty"`
	Actions       int                `json:"actions"`
	Misses        int                `json:"misses"`
	Criticals     int                `json:"criticals"`
	Failed        int                `json:"failed"`
	DamageByRobot map[string]float64 `json:"damage_by_robot,omitempty"`
	DamageByPart  map[string]float64 `json:"damage_by_part,omitempty"`
	Meta          SimMeta            `json:"meta"`
}

type SimMeta struct {
	Session string         `json:"session"`
	Robots  []SimRobotMeta `json:"robots"`
	Notes   []string       `json:"notes,omitempty"`
}

type SimRobotMeta struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Team        TeamID      `json:"team"`
	Leader      bool        `json:"leader,omitempty"`
	Medal       string      `json:"medal"`
	Personality Personality `json:"personality"`
	Speed       float64     `json:"speed"`
	Survived    bool        `json:"survived"`
}

// RunHeadless plays a session to the end with every decision made by the
// automated policy. maxTicks bounds battles that cannot finish; 0 means
// 100000.
func RunHeadless(s *Session, maxTicks int, record bool) SimResult {
	if maxTicks <= 0 {
		maxTicks = 100000
	}
	var events []Event
	damageByRobot := map[string]float64{}
	damageByPart := map[string]float64{}
	actions, misses, crits, failed := 0, 0, 0, 0

	s.Subscribe(ObserverFunc(func(snap Snapshot) {
		for _, ev := range snap.Events {
			switch ev.Type {
			case EvHit:
				actions++
				dmg, _ := ev.Payload["dmg"].(int)
				attacker, _ := ev.Payload["attacker"].(string)
				part, _ := ev.Payload["part"].(string)
				damageByRobot[attacker] += float64(dmg)
				damageByPart[part] += float64(dmg)
				if c, _ := ev.Payload["critical"].(bool); c {
					crits++
				}
			case EvMiss:
				actions++
				misses++
			case EvActionFailed:
				failed++
			}
			if record {
				events = append(events, ev)
			}
		}
	}))

	if s.Phase() == PhaseIdle {
		s.Start()
	}
	for s.Phase() != PhaseGameOver && s.Phase() != PhaseIdle && s.Ticks() < maxTicks {
		if s.Active() != nil || s.Phase() == PhaseBattleStartConfirm {
			if !s.AutoDecide() {
				break
			}
			continue
		}
		s.Tick()
	}

	meta := SimMeta{Session: s.ID}
	for _, r := range s.Robots() {
		meta.Robots = append(meta.Robots, SimRobotMeta{
			ID: r.ID, Name: r.Name, Team: r.Team, Leader: r.Leader,
			Medal: r.Medal.Name, Personality: r.Medal.Personality,
			Speed: r.Speed, Survived: r.State != StateBroken,
		})
	}
	finished := s.Phase() == PhaseGameOver
	if !finished {
		meta.Notes = append(meta.Notes, fmt.Sprintf("stopped after %d ticks without a winner", s.Ticks()))
	}

	res := SimResult{
		Winner:        s.Winner(),
		Finished:      finished,
		Ticks:         s.Ticks(),
		Actions:       actions,
		Misses:        misses,
		Criticals:     crits,
		Failed:        failed,
		DamageByRobot: damageByRobot,
		DamageByPart:  damageByPart,
		Meta:          meta,
	}
	if record {
		res.Events = events
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
