package combat

import (
	"fmt"

	"robattle/internal/logging"
)

// Robot is one combatant: four parts, a medal and the gauge state machine.
// Robot is not safe for concurrent use; the owning Session serializes access.
type Robot struct {
	ID     string
	Name   string
	Team   TeamID
	Leader bool
	// Player marks robots whose decisions come from outside the engine.
	Player bool
	Speed  float64
	Medal  Medal

	parts [4]*Part

	Gauge float64
	State State

	Selected          Slot
	ChargeThreshold   float64
	CooldownThreshold float64

	// Pending is a tentative commitment awaiting confirmation; Committed is
	// the locked-in target used at execution.
	Pending   *Target
	Committed *Target

	balance Balance
}

// NewRobot builds a robot in idle_charging (or broken when the head is
// missing). Nil parts are replaced with inert substitutes.
func NewRobot(id, name string, team TeamID, leader bool, speed float64, medal Medal, parts map[Slot]*Part, bal Balance) *Robot {
	r := &Robot{ID: id, Name: name, Team: team, Leader: leader, Speed: speed, Medal: medal, balance: bal}
	for i, s := range AllSlots {
		p := parts[s]
		if p == nil {
			logging.Warn("missing part substituted", logging.Fields{"robot": id, "slot": string(s)})
			p = InertPart(s)
		}
		p.Slot = s
		r.parts[i] = p
	}
	r.FullReset()
	return r
}

func slotIndex(s Slot) int {
	for i, v := range AllSlots {
		if v == s {
			return i
		}
	}
	return -1
}

// Part returns the part in slot, or nil for an unknown slot.
func (r *Robot) Part(s Slot) *Part {
	i := slotIndex(s)
	if i < 0 {
		return nil
	}
	return r.parts[i]
}

// Parts returns the parts in slot order.
func (r *Robot) Parts() []*Part {
	out := make([]*Part, 0, len(r.parts))
	out = append(out, r.parts[:]...)
	return out
}

func (r *Robot) Broken() bool { return r.State == StateBroken }

// IntactSlots lists the slots whose parts are not broken, in slot order.
func (r *Robot) IntactSlots() []Slot {
	out := make([]Slot, 0, 4)
	for _, p := range r.parts {
		if !p.Broken {
			out = append(out, p.Slot)
		}
	}
	return out
}

// ActionSlotsAvailable lists the usable action parts in head, right arm, left arm order.
func (r *Robot) ActionSlotsAvailable() []Slot {
	out := make([]Slot, 0, 3)
	for _, s := range ActionSlots {
		if r.Part(s).Usable() {
			out = append(out, s)
		}
	}
	return out
}

// PropulsionBonus is legs.propulsion * propulsion factor; 0 for broken or missing legs.
func (r *Robot) PropulsionBonus() float64 {
	legs := r.Part(SlotLegs)
	if legs == nil || legs.Broken {
		return 0
	}
	return float64(legs.Propulsion) * r.balance.PropulsionFactor
}

// GainPerTick is the gauge increase applied by Advance in charging states.
func (r *Robot) GainPerTick() float64 {
	return r.Speed + r.PropulsionBonus()
}

// ActiveThreshold is the upper gauge bound for the current state.
func (r *Robot) ActiveThreshold() float64 {
	switch r.State {
	case StateIdleCharging, StateReadySelect:
		return r.balance.MaxGauge
	case StateActionCharging, StateReadyExecute:
		return r.ChargeThreshold
	case StateActionCooldown:
		return r.CooldownThreshold
	}
	return 0
}

// Progress is gauge/ActiveThreshold, 1 when the threshold is 0 and the robot is not broken.
func (r *Robot) Progress() float64 {
	if r.State == StateBroken {
		return 0
	}
	th := r.ActiveThreshold()
	if th <= 0 {
		return 1
	}
	return r.Gauge / th
}

// Step reports what an Advance call did.
type Step int

const (
	StepNone Step = iota
	StepReadySelect
	StepReadyExecute
	StepAborted
	StepKnockedOut
)

// Advance moves the robot forward by one tick.
func (r *Robot) Advance() Step {
	if r.State == StateBroken {
		return StepNone
	}
	if r.Part(SlotHead).Broken {
		r.knockOut()
		return StepKnockedOut
	}
	switch r.State {
	case StateIdleCharging:
		r.Gauge += r.GainPerTick()
		if r.Gauge >= r.balance.MaxGauge {
			r.enterReadySelect()
			return StepReadySelect
		}
	case StateActionCharging:
		r.Gauge += r.GainPerTick()
		if r.Gauge >= r.ChargeThreshold {
			r.Gauge = r.ChargeThreshold
			if !r.commitmentHolds() {
				r.StartCooldown()
				return StepAborted
			}
			r.State = StateReadyExecute
			return StepReadyExecute
		}
	case StateActionCooldown:
		r.Gauge += r.GainPerTick()
		if r.Gauge >= r.CooldownThreshold {
			r.enterReadySelect()
			return StepReadySelect
		}
	}
	return StepNone
}

// commitmentHolds re-validates the selected part and any committed target.
func (r *Robot) commitmentHolds() bool {
	if p := r.Part(r.Selected); p == nil || p.Broken {
		return false
	}
	if r.Committed != nil && !r.Committed.Valid() {
		return false
	}
	return true
}

func (r *Robot) enterReadySelect() {
	r.Gauge = r.balance.MaxGauge
	r.State = StateReadySelect
}

// SelectAction starts charging the part in slot. Selecting a part the robot
// cannot use is an internal fault: it is logged and the robot is routed to
// cooldown (or broken when the head is gone).
func (r *Robot) SelectAction(s Slot) bool {
	if r.State == StateBroken {
		return false
	}
	p := r.Part(s)
	if !p.Usable() {
		logging.Error("invalid action selection", fmt.Errorf("robot %s cannot act with slot %q", r.ID, s), logging.Fields{
			"robot": r.ID, "slot": string(s), "state": string(r.State),
		})
		if r.Part(SlotHead).Broken {
			r.knockOut()
			return false
		}
		r.Selected = ""
		r.ChargeThreshold, r.CooldownThreshold = 0, 0
		r.StartCooldown()
		return false
	}
	r.Selected = s
	r.ChargeThreshold = p.Charge
	r.CooldownThreshold = p.Cooldown
	r.Pending = nil
	r.Gauge = 0
	r.State = StateActionCharging
	return true
}

// ApplyDamage hits the part in slot. Leg defense reduces the amount down to
// the balance minimum. It returns the damage dealt and whether this hit
// destroyed the head.
func (r *Robot) ApplyDamage(amount int, s Slot) (int, bool) {
	return r.TakeHit(amount, 1, s)
}

// TakeHit is ApplyDamage with a critical multiplier applied after defense.
func (r *Robot) TakeHit(amount int, mult float64, s Slot) (int, bool) {
	p := r.Part(s)
	if p == nil || p.Broken {
		return 0, false
	}
	effective := amount
	if legs := r.Part(SlotLegs); legs != nil && !legs.Broken && legs.Defense > 0 && !r.DefenseDisabled() {
		effective = amount - legs.Defense
		if effective < r.balance.MinDamage {
			effective = r.balance.MinDamage
		}
	}
	if mult > 1 {
		effective = int(float64(effective) * mult)
	}
	if effective < 0 {
		effective = 0
	}
	p.HP -= effective
	if p.HP <= 0 {
		p.HP = 0
		p.Broken = true
		if s == SlotHead {
			r.knockOut()
			return effective, true
		}
	}
	return effective, false
}

// actionTrait is the trait of the part the robot has committed to, from
// selection until its cooldown ends.
func (r *Robot) actionTrait() Trait {
	switch r.State {
	case StateActionCharging, StateReadyExecute, StateActionCooldown:
		if p := r.Part(r.Selected); p != nil {
			return p.Trait
		}
	}
	return TraitNormal
}

// EvasionDisabled reports whether the robot's own aim or berserk action keeps
// its legs from dodging.
func (r *Robot) EvasionDisabled() bool {
	t := r.actionTrait()
	return t == TraitAim || t == TraitBerserk
}

// DefenseDisabled reports whether the robot's own strike or berserk action
// drops its leg defense.
func (r *Robot) DefenseDisabled() bool {
	t := r.actionTrait()
	return t == TraitStrike || t == TraitBerserk
}

// StartCooldown drops selection commitments and starts the cooldown of the
// selected part. Cached thresholds are kept.
func (r *Robot) StartCooldown() {
	if r.State == StateBroken {
		return
	}
	r.Pending = nil
	r.Committed = nil
	r.Gauge = 0
	r.State = StateActionCooldown
}

// ForceBroken takes the robot out of the battle for good.
func (r *Robot) ForceBroken() { r.knockOut() }

func (r *Robot) knockOut() {
	r.State = StateBroken
	r.Gauge = 0
	r.Pending = nil
	r.Committed = nil
}

// FullReset restores all parts and returns the robot to idle_charging.
func (r *Robot) FullReset() {
	for _, p := range r.parts {
		p.restore()
	}
	r.Gauge = 0
	r.Selected = ""
	r.ChargeThreshold, r.CooldownThreshold = 0, 0
	r.Pending, r.Committed = nil, nil
	r.State = StateIdleCharging
	if r.Part(SlotHead).Broken {
		r.State = StateBroken
	}
}
