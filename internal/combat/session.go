package combat

import (
	"github.com/google/uuid"

	"robattle/internal/logging"
	"robattle/internal/util"
)

// Observer receives a snapshot after every processed tick or resolved decision.
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

// SessionConfig carries the collaborators a session runs with. Zero fields
// fall back to DefaultBalance, FieldProximity and a seed-1 generator.
type SessionConfig struct {
	Balance   Balance
	Proximity Proximity
	Rng       util.Rand
}

// Session owns one battle: the roster in fixed order, the game phase and the
// active robot. It is not safe for concurrent use.
type Session struct {
	ID string

	robots []*Robot
	teams  []*Team

	phase  Phase
	active *Robot
	winner TeamID
	tick   int

	// pendingSlot is the part a player chose while its target awaits confirmation.
	pendingSlot Slot

	bal   Balance
	field FieldProximity
	prox  Proximity
	rng   util.Rand

	observers []Observer
	events    []Event
}

// NewSession wraps robots in an IDLE session.
func NewSession(robots []*Robot, cfg SessionConfig) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		robots: robots,
		teams:  GroupTeams(robots),
		phase:  PhaseIdle,
		bal:    cfg.Balance,
		prox:   cfg.Proximity,
		rng:    cfg.Rng,
	}
	if s.bal.MaxGauge <= 0 {
		s.bal = DefaultBalance()
	}
	if len(robots) > 0 {
		s.field = FieldProximity{Home: robots[0].Team}
	}
	if s.prox == nil {
		s.prox = s.field
	}
	if s.rng == nil {
		s.rng = util.New(1)
	}
	return s
}

func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) Winner() TeamID        { return s.winner }
func (s *Session) Active() *Robot        { return s.active }
func (s *Session) Ticks() int            { return s.tick }
func (s *Session) Robots() []*Robot      { return s.robots }
func (s *Session) Teams() []*Team        { return s.teams }
func (s *Session) Balance() Balance      { return s.bal }
func (s *Session) Field() FieldProximity { return s.field }

// Robot looks a robot up by id.
func (s *Session) Robot(id string) *Robot {
	for _, r := range s.robots {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Subscribe registers an observer for all following snapshots.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) emit(typ string, payload map[string]any) {
	s.events = append(s.events, Event{T: s.tick, Type: typ, Payload: payload})
}

func (s *Session) notify() {
	snap := s.Snapshot()
	s.events = nil
	for _, o := range s.observers {
		o.Observe(snap)
	}
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.emit(EvPhase, map[string]any{"phase": string(p)})
}

// Start moves an IDLE session into the initial selection round: every robot
// that can still fight is put in ready_select with a full gauge.
func (s *Session) Start() bool {
	if s.phase != PhaseIdle {
		return false
	}
	for _, r := range s.robots {
		if r.State == StateBroken {
			continue
		}
		r.enterReadySelect()
	}
	s.setPhase(PhaseInitialSelection)
	logging.Info("battle started", logging.Fields{"session": s.ID, "robots": len(s.robots)})
	s.notify()
	return true
}

// Tick runs one scheduler step. It does nothing while a decision is pending
// or outside INITIAL_SELECTION and BATTLE.
func (s *Session) Tick() {
	if s.active != nil {
		return
	}
	if s.phase != PhaseInitialSelection && s.phase != PhaseBattle {
		return
	}
	s.tick++

	if r := s.first(StateReadyExecute); r != nil {
		s.active = r
		s.execute(r)
		s.active = nil
		s.notify()
		return
	}

	if r := s.first(StateReadySelect); r != nil {
		s.active = r
		s.beginSelection(r)
		s.notify()
		return
	}

	if s.phase == PhaseInitialSelection {
		s.setPhase(PhaseBattleStartConfirm)
		s.notify()
		return
	}

	for _, r := range s.robots {
		s.advance(r)
		if s.phase == PhaseGameOver {
			break
		}
	}
	s.notify()
}

func (s *Session) first(st State) *Robot {
	for _, r := range s.robots {
		if r.State == st {
			return r
		}
	}
	return nil
}

func (s *Session) advance(r *Robot) {
	switch r.Advance() {
	case StepReadySelect:
		s.emit(EvReady, map[string]any{"robot": r.ID, "state": string(StateReadySelect)})
	case StepReadyExecute:
		s.emit(EvReady, map[string]any{"robot": r.ID, "state": string(StateReadyExecute)})
	case StepAborted:
		s.emit(EvActionFailed, map[string]any{"robot": r.ID, "slot": string(r.Selected), "reason": "commitment_lost"})
	case StepKnockedOut:
		s.emit(EvKnockout, map[string]any{"robot": r.ID, "reason": "head_destroyed"})
		s.checkLeader(r)
	}
}

// execute resolves a robot in ready_execute: reuse a committed target or ask
// the policy, hit, then cool down unless the hit ended the battle.
func (s *Session) execute(r *Robot) {
	part := r.Part(r.Selected)
	if !part.Usable() {
		s.fail(r, "part_unavailable")
		return
	}

	var tgt Target
	if r.Committed != nil {
		if !r.Committed.Valid() {
			s.fail(r, "commitment_lost")
			return
		}
		tgt = *r.Committed
	} else {
		t, ok := SelectTarget(r, s.robots, part.Category, r.Medal.Personality, s.prox, s.rng)
		if !ok {
			s.fail(r, "no_target")
			return
		}
		tgt = t
	}

	s.emit(EvExecute, map[string]any{
		"robot": r.ID, "slot": string(r.Selected), "part": part.ID, "category": string(part.Category),
		"target": tgt.Robot.ID, "target_slot": string(tgt.Slot),
	})
	roll := RollHit(HitChance(r, part, tgt.Robot, s.bal), s.rng)
	if !roll.Hit {
		s.emit(EvMiss, map[string]any{
			"attacker": r.ID, "part": part.ID, "target": tgt.Robot.ID, "slot": string(tgt.Slot), "chance": roll.Chance,
		})
		r.StartCooldown()
		return
	}
	atk := Attack{Amount: AttackDamage(r, part, s.bal)}
	if roll.Critical {
		atk.Multiplier = s.bal.CriticalMultiplier
	}
	out := Resolve(r, tgt.Robot, tgt.Slot, atk)
	hit := tgt.Robot.Part(tgt.Slot)
	s.emit(EvHit, map[string]any{
		"attacker": r.ID, "part": part.ID, "target": tgt.Robot.ID, "slot": string(tgt.Slot),
		"dmg": out.Damage, "hp": hit.HP, "critical": roll.Critical,
	})
	if out.PartBroken {
		s.emit(EvBreak, map[string]any{"robot": tgt.Robot.ID, "slot": string(tgt.Slot), "part": hit.ID})
	}
	if out.HeadDestroyed {
		s.emit(EvKnockout, map[string]any{"robot": tgt.Robot.ID, "reason": "head_destroyed", "by": r.ID})
	}
	if out.GameOver {
		s.finish(out.Winner)
		return
	}
	r.StartCooldown()
}

func (s *Session) fail(r *Robot, reason string) {
	s.emit(EvActionFailed, map[string]any{"robot": r.ID, "slot": string(r.Selected), "reason": reason})
	r.StartCooldown()
}

// beginSelection handles a robot that reached ready_select. Automated robots
// decide on the spot; player robots keep the session suspended.
func (s *Session) beginSelection(r *Robot) {
	if len(r.ActionSlotsAvailable()) == 0 {
		r.ForceBroken()
		s.emit(EvKnockout, map[string]any{"robot": r.ID, "reason": "no_usable_parts"})
		s.active = nil
		s.checkLeader(r)
		return
	}
	if r.Player {
		s.emit(EvSelect, map[string]any{"robot": r.ID, "awaiting": "part"})
		return
	}
	s.decideAutomatically(r)
}

func (s *Session) decideAutomatically(r *Robot) {
	slot, ok := ChooserFor(r.Medal.Personality).Choose(r)
	if !ok {
		s.active = nil
		return
	}
	s.choose(r, slot, true)
}

// choose applies a part choice for the active robot. A ranged choice by a
// random-target medal draws its target now; automated robots confirm it
// immediately, players have to confirm or cancel.
func (s *Session) choose(r *Robot, slot Slot, confirm bool) {
	p := r.Part(slot)
	if p.Category == CategoryRanged && r.Medal.Personality == PersonalityRandomTarget {
		t, ok := SelectTarget(r, s.robots, p.Category, r.Medal.Personality, s.prox, s.rng)
		if !ok {
			if r.SelectAction(slot) {
				s.emit(EvSelect, map[string]any{"robot": r.ID, "slot": string(slot), "part": p.ID})
			}
			s.fail(r, "no_target")
			s.active = nil
			return
		}
		r.Pending = &t
		s.pendingSlot = slot
		s.emit(EvPending, map[string]any{"robot": r.ID, "slot": string(slot), "target": t.Robot.ID, "target_slot": string(t.Slot)})
		if confirm {
			s.commitPending(r)
		}
		return
	}
	if r.SelectAction(slot) {
		s.emit(EvSelect, map[string]any{"robot": r.ID, "slot": string(slot), "part": p.ID, "category": string(p.Category)})
	}
	s.active = nil
}

func (s *Session) commitPending(r *Robot) {
	t := r.Pending
	slot := s.pendingSlot
	s.pendingSlot = ""
	if !r.SelectAction(slot) {
		s.active = nil
		return
	}
	r.Committed = t
	s.emit(EvSelect, map[string]any{"robot": r.ID, "slot": string(slot), "part": r.Part(slot).ID, "category": string(r.Part(slot).Category)})
	s.emit(EvCommit, map[string]any{"robot": r.ID, "target": t.Robot.ID, "target_slot": string(t.Slot)})
	s.active = nil
}

// checkLeader ends the battle when a knocked out robot was its team's leader.
func (s *Session) checkLeader(r *Robot) {
	if !r.Leader || s.phase == PhaseGameOver {
		return
	}
	for _, t := range s.teams {
		if t.ID != r.Team && !t.Defeated() {
			s.finish(t.ID)
			return
		}
	}
}

func (s *Session) finish(winner TeamID) {
	s.winner = winner
	s.active = nil
	s.pendingSlot = ""
	s.setPhase(PhaseGameOver)
	s.emit(EvGameOver, map[string]any{"winner": string(winner)})
	logging.Info("battle finished", logging.Fields{"session": s.ID, "winner": string(winner), "tick": s.tick})
}

// Reset returns every robot to full health and the session to IDLE.
// Calling it twice leaves the same state as calling it once.
func (s *Session) Reset() {
	for _, r := range s.robots {
		r.FullReset()
	}
	s.active = nil
	s.winner = ""
	s.pendingSlot = ""
	s.tick = 0
	s.setPhase(PhaseIdle)
	s.notify()
}
