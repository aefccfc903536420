package combat

import "math"

type Vec2 struct{ X, Y float64 }

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }

// Midline is the x coordinate both teams advance toward.
const Midline = 0.5

// Proximity answers how far apart two robots are engaged. Only comparisons
// between the returned values matter.
type Proximity interface {
	Distance(attacker, enemy *Robot) float64
}

// ProximityFunc adapts a function to Proximity.
type ProximityFunc func(attacker, enemy *Robot) float64

func (f ProximityFunc) Distance(a, e *Robot) float64 { return f(a, e) }

// FieldProximity places robots on a unit-wide field from their state and
// progress and measures the horizontal gap. Team Home starts at x=0, every
// other team at x=1. Charging walks toward the midline, cooldown walks back.
type FieldProximity struct {
	Home TeamID
}

// Position returns the robot's field position; Y is left at 0 for callers
// that lay out lanes themselves.
func (fp FieldProximity) Position(r *Robot) Vec2 {
	home := 1.0
	dir := -1.0
	if r.Team == fp.Home {
		home, dir = 0, 1
	}
	progress := r.Progress()
	if progress > 1 {
		progress = 1
	}
	x := home
	switch r.State {
	case StateActionCharging:
		x = home + dir*progress*Midline
	case StateReadyExecute:
		x = Midline
	case StateActionCooldown:
		x = Midline - dir*progress*Midline
	}
	return Vec2{X: x}
}

func (fp FieldProximity) Distance(a, e *Robot) float64 {
	return fp.Position(a).Sub(fp.Position(e)).Len()
}
