package combat

// testPart builds a full-HP part with explicit numbers.
func testPart(slot Slot, cat Category, hp int, charge, cooldown float64) *Part {
	return NewPart(string(slot)+"-"+string(cat), string(cat), slot, cat, hp, charge, cooldown)
}

// stdParts: scan head, ranged right arm, melee left arm, plain legs.
func stdParts() map[Slot]*Part {
	return map[Slot]*Part{
		SlotHead:     testPart(SlotHead, CategoryScan, 50, 10, 10),
		SlotRightArm: testPart(SlotRightArm, CategoryRanged, 50, 10, 10),
		SlotLeftArm:  testPart(SlotLeftArm, CategoryMelee, 50, 10, 10),
		SlotLegs:     testPart(SlotLegs, CategoryNone, 50, 0, 0),
	}
}

func testRobot(id string, team TeamID, leader bool, speed float64, pers Personality) *Robot {
	return NewRobot(id, id, team, leader, speed, Medal{ID: "m-" + id, Name: id, Personality: pers}, stdParts(), DefaultBalance())
}

// scriptedRand replays fixed Intn answers (mod n) and a fixed Float64.
type scriptedRand struct {
	ints []int
	next int
	f    float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.next%len(r.ints)]
	r.next++
	return v % n
}

func (r *scriptedRand) Float64() float64 { return r.f }

// fixedDistance reports a constant distance per enemy id.
func fixedDistance(d map[string]float64) Proximity {
	return ProximityFunc(func(_, e *Robot) float64 { return d[e.ID] })
}

type recorder struct {
	snaps []Snapshot
}

func (r *recorder) Observe(s Snapshot) { r.snaps = append(r.snaps, s) }

func (r *recorder) events(typ string) []Event {
	var out []Event
	for _, s := range r.snaps {
		for _, ev := range s.Events {
			if ev.Type == typ {
				out = append(out, ev)
			}
		}
	}
	return out
}

// sureHit lands every attack for its plain power: a hit chance of exactly
// 100 draws nothing from the rng and no skill bonus is added.
func sureHit() Balance {
	b := DefaultBalance()
	b.HitBaseChance = 100
	b.MedalSkillFactor = 0
	return b
}

// readyToExecute charges slot until the robot reaches ready_execute.
func readyToExecute(r *Robot, slot Slot) {
	r.enterReadySelect()
	r.SelectAction(slot)
	for r.State == StateActionCharging {
		r.Advance()
	}
}

// battleSession puts robots straight into BATTLE with a fixed proximity.
func battleSession(prox Proximity, rng *scriptedRand, robots ...*Robot) (*Session, *recorder) {
	if rng == nil {
		rng = &scriptedRand{}
	}
	s := NewSession(robots, SessionConfig{Balance: sureHit(), Proximity: prox, Rng: rng})
	s.phase = PhaseBattle
	rec := &recorder{}
	s.Subscribe(rec)
	return s, rec
}
