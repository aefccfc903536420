package combat

import (
	"reflect"
	"testing"
)

func TestTick_ExecutionBeforeSelection(t *testing.T) {
	sel := testRobot("sel", "t1", true, 1, PersonalityLeader)
	exe := testRobot("exe", "t1", false, 1, PersonalityLeader)
	enemy := testRobot("enemy", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, sel, exe, enemy)

	sel.enterReadySelect()
	exe.enterReadySelect()
	exe.SelectAction(SlotLeftArm)
	for exe.State == StateActionCharging {
		exe.Advance()
	}

	s.Tick()
	execs := rec.events(EvExecute)
	if len(execs) != 1 || execs[0].Payload["robot"] != "exe" {
		t.Fatalf("expected exe to execute first, got %+v", execs)
	}
	if sel.State != StateReadySelect {
		t.Fatalf("selection resolved in the same tick: %s", sel.State)
	}
	if exe.State != StateActionCooldown {
		t.Fatalf("executor should cool down, got %s", exe.State)
	}
	s.Tick()
	if sel.State != StateActionCharging {
		t.Fatalf("selection should resolve on the next tick, got %s", sel.State)
	}
}

func TestTick_PlayerSuspendsScheduler(t *testing.T) {
	p := testRobot("p", "t1", true, 1, PersonalityLeader)
	p.Player = true
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, _ := battleSession(fixedDistance(nil), nil, p, e)
	p.enterReadySelect()

	s.Tick()
	if s.Active() != p || !s.AwaitingPart() {
		t.Fatalf("expected player to be active and awaiting a part")
	}
	ticks, gauge := s.Ticks(), e.Gauge
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.Ticks() != ticks || e.Gauge != gauge {
		t.Fatalf("ticks advanced while a decision was pending")
	}
	if s.SubmitActionChoice(SlotLegs) {
		t.Fatalf("legs accepted as an action")
	}
	if !s.SubmitActionChoice(SlotRightArm) {
		t.Fatalf("valid choice rejected")
	}
	if s.Active() != nil || p.State != StateActionCharging || p.Selected != SlotRightArm {
		t.Fatalf("choice not applied: active=%v state=%s", s.Active(), p.State)
	}
	if s.SubmitActionChoice(SlotHead) {
		t.Fatalf("choice accepted with nothing pending")
	}
}

func TestPendingTarget_ConfirmAndCancel(t *testing.T) {
	p := testRobot("p", "t1", true, 1, PersonalityRandomTarget)
	p.Player = true
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), &scriptedRand{ints: []int{2}}, p, e)
	p.enterReadySelect()
	s.Tick()

	if !s.SubmitActionChoice(SlotRightArm) {
		t.Fatalf("ranged choice rejected")
	}
	if !s.AwaitingConfirm() || p.Pending == nil || p.State != StateReadySelect {
		t.Fatalf("expected a pending target while still in ready_select")
	}
	if s.SubmitActionChoice(SlotLeftArm) {
		t.Fatalf("new choice accepted while a target is pending")
	}

	if !s.CancelPendingTarget() {
		t.Fatalf("cancel rejected")
	}
	if p.Pending != nil || s.Active() != p || p.Gauge != 100 || p.State != StateReadySelect {
		t.Fatalf("cancel should keep the robot awaiting a choice at full gauge")
	}
	if len(rec.events(EvCancel)) != 1 {
		t.Fatalf("expected one cancel event")
	}

	s.SubmitActionChoice(SlotRightArm)
	if !s.ConfirmPendingTarget() {
		t.Fatalf("confirm rejected")
	}
	if p.State != StateActionCharging || p.Committed == nil || p.Committed.Robot != e || s.Active() != nil {
		t.Fatalf("confirm should commit and start charging: %s %+v", p.State, p.Committed)
	}
	if p.Committed.Slot != SlotLeftArm {
		t.Fatalf("expected committed leftArm, got %s", p.Committed.Slot)
	}
	if s.ConfirmPendingTarget() || s.CancelPendingTarget() {
		t.Fatalf("confirm/cancel accepted with nothing pending")
	}
}

func TestScenario_LeaderHeadDestroyedEndsBattle(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	lead := testRobot("lead", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, a, lead)

	a.enterReadySelect()
	a.SelectAction(SlotLeftArm)
	a.Committed = &Target{Robot: lead, Slot: SlotHead}
	for a.State == StateActionCharging {
		a.Advance()
	}
	lead.ApplyDamage(40, SlotHead)

	s.Tick()
	if s.Phase() != PhaseGameOver || s.Winner() != "t1" {
		t.Fatalf("expected GAME_OVER won by t1, got %s %q", s.Phase(), s.Winner())
	}
	if s.Active() != nil {
		t.Fatalf("active should be cleared on game over")
	}
	if lead.State != StateBroken {
		t.Fatalf("leader should be broken")
	}
	if len(rec.events(EvGameOver)) != 1 {
		t.Fatalf("expected one GameOver event")
	}

	ticks := s.Ticks()
	gauges := []float64{a.Gauge, lead.Gauge}
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Ticks() != ticks || a.Gauge != gauges[0] {
		t.Fatalf("ticks processed after game over")
	}

	if !s.AcknowledgeGameOver() {
		t.Fatalf("acknowledge rejected")
	}
	if s.Phase() != PhaseIdle || s.Winner() != "" || lead.State != StateIdleCharging || lead.Part(SlotHead).HP != 50 {
		t.Fatalf("acknowledge should reset to IDLE")
	}
	if s.AcknowledgeGameOver() {
		t.Fatalf("acknowledge accepted outside GAME_OVER")
	}
}

func TestScenario_RandomTargetCommitmentLost(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityRandomTarget)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	// force the ranged right arm and target e's right arm
	a.Part(SlotHead).Category = CategoryNone
	a.Part(SlotLeftArm).Category = CategoryNone
	s, rec := battleSession(fixedDistance(nil), &scriptedRand{ints: []int{1}}, a, e)
	a.enterReadySelect()

	s.Tick()
	if a.Committed == nil || a.Committed.Robot != e || a.Committed.Slot != SlotRightArm {
		t.Fatalf("expected commitment to e/rightArm, got %+v", a.Committed)
	}
	if len(rec.events(EvCommit)) != 1 {
		t.Fatalf("expected a Commit event")
	}

	e.ApplyDamage(50, SlotRightArm)
	before := e.Parts()
	hp := []int{before[0].HP, before[2].HP, before[3].HP}

	for a.State == StateActionCharging {
		s.Tick()
	}
	if a.State != StateActionCooldown {
		t.Fatalf("expected cooldown, got %s", a.State)
	}
	if len(rec.events(EvHit)) != 0 {
		t.Fatalf("no damage should be dealt")
	}
	after := e.Parts()
	if after[0].HP != hp[0] || after[2].HP != hp[1] || after[3].HP != hp[2] {
		t.Fatalf("enemy parts changed after a cancelled action")
	}
	fails := rec.events(EvActionFailed)
	if len(fails) != 1 || fails[0].Payload["reason"] != "commitment_lost" {
		t.Fatalf("expected one commitment_lost failure, got %+v", fails)
	}
}

func TestSelection_NoUsablePartsForcesBroken(t *testing.T) {
	lead := testRobot("lead", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, _ := battleSession(fixedDistance(nil), nil, lead, e)
	lead.ApplyDamage(50, SlotRightArm)
	lead.ApplyDamage(50, SlotLeftArm)
	lead.Part(SlotHead).Category = CategoryNone
	lead.enterReadySelect()

	s.Tick()
	if lead.State != StateBroken {
		t.Fatalf("expected forced broken, got %s", lead.State)
	}
	if s.Phase() != PhaseGameOver || s.Winner() != "t2" {
		t.Fatalf("leader loss should end the battle for t2, got %s %q", s.Phase(), s.Winner())
	}
}

func TestStart_InitialSelectionFlow(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	b := testRobot("b", "t1", false, 1, PersonalityHunter)
	e := testRobot("e", "t2", true, 1, PersonalityJoker)
	s := NewSession([]*Robot{a, b, e}, SessionConfig{Rng: &scriptedRand{}})
	rec := &recorder{}
	s.Subscribe(rec)

	if s.ConfirmBattleStart() {
		t.Fatalf("battle start confirmed while IDLE")
	}
	if !s.Start() || s.Phase() != PhaseInitialSelection {
		t.Fatalf("start failed: %s", s.Phase())
	}
	if s.Start() {
		t.Fatalf("start accepted twice")
	}
	for _, r := range s.Robots() {
		if r.State != StateReadySelect || r.Gauge != 100 {
			t.Fatalf("%s not ready to select", r.ID)
		}
	}
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	for _, r := range s.Robots() {
		if r.State != StateActionCharging || r.Gauge != 0 {
			t.Fatalf("%s: expected action_charging at 0, got %s", r.ID, r.State)
		}
	}
	s.Tick()
	if s.Phase() != PhaseBattleStartConfirm {
		t.Fatalf("expected BATTLE_START_CONFIRM, got %s", s.Phase())
	}
	s.Tick()
	if a.Gauge != 0 {
		t.Fatalf("robots advanced before battle start was confirmed")
	}
	if !s.ConfirmBattleStart() || s.Phase() != PhaseBattle {
		t.Fatalf("confirm failed: %s", s.Phase())
	}
	for _, r := range s.Robots() {
		if r.Gauge != r.GainPerTick() {
			t.Fatalf("%s: expected one advance, gauge %.2f", r.ID, r.Gauge)
		}
	}
	if len(rec.events(EvPhase)) != 3 {
		t.Fatalf("expected three phase changes, got %d", len(rec.events(EvPhase)))
	}
}

func TestActiveDecisionFreezesOthers(t *testing.T) {
	p1 := testRobot("p1", "t1", true, 1, PersonalityLeader)
	p2 := testRobot("p2", "t1", false, 1, PersonalityRandomTarget)
	p1.Player, p2.Player = true, true
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s := NewSession([]*Robot{p1, p2, e}, SessionConfig{Balance: sureHit(), Rng: &scriptedRand{}})
	rec := &recorder{}
	s.Subscribe(rec)
	s.Start()

	type mark struct {
		state State
		gauge float64
	}
	frozen := func(active *Robot) {
		t.Helper()
		before := map[string]mark{}
		for _, r := range s.Robots() {
			if r != active {
				before[r.ID] = mark{r.State, r.Gauge}
			}
		}
		s.Tick()
		s.Tick()
		for _, r := range s.Robots() {
			if r == active {
				continue
			}
			if m := before[r.ID]; m.state != r.State || m.gauge != r.Gauge {
				t.Fatalf("tick %d: %s moved while %s was deciding", s.Ticks(), r.ID, active.ID)
			}
		}
	}

	decisions, pending := 0, 0
	for i := 0; i < 400 && s.Phase() != PhaseGameOver; i++ {
		if s.Phase() == PhaseBattleStartConfirm {
			s.ConfirmBattleStart()
			continue
		}
		s.Tick()
		r := s.Active()
		if r == nil {
			continue
		}
		decisions++
		frozen(r)
		if r == p2 && s.SubmitActionChoice(SlotRightArm) && s.AwaitingConfirm() {
			pending++
			frozen(r)
			s.ConfirmPendingTarget()
			continue
		}
		s.AutoDecide()
	}
	if decisions == 0 || pending == 0 {
		t.Fatalf("expected player decisions and pending targets, got %d/%d", decisions, pending)
	}

	for _, snap := range rec.snaps {
		open := 0
		for _, r := range snap.Robots {
			if r.ID == snap.Active || r.Pending != nil {
				open++
			}
			if r.ID == snap.Active && r.State != StateReadySelect {
				t.Fatalf("tick %d: active %s in %s", snap.Tick, r.ID, r.State)
			}
		}
		if open > 1 {
			t.Fatalf("tick %d: %d robots with an open decision", snap.Tick, open)
		}
		if snap.Active != "" && snap.Awaiting != AwaitPart && snap.Awaiting != AwaitTarget {
			t.Fatalf("tick %d: active %s without an open decision", snap.Tick, snap.Active)
		}
	}
}

// assertSilentCooldown checks an execution that failed without touching anyone.
func assertSilentCooldown(t *testing.T, r *Robot, rec *recorder, reason string) {
	t.Helper()
	if r.State != StateActionCooldown || r.Gauge != 0 {
		t.Fatalf("expected action_cooldown at 0, got %s %.2f", r.State, r.Gauge)
	}
	if r.CooldownThreshold != 10 {
		t.Fatalf("expected the part's cooldown threshold 10, got %.2f", r.CooldownThreshold)
	}
	fails := rec.events(EvActionFailed)
	if len(fails) != 1 || fails[0].Payload["reason"] != reason {
		t.Fatalf("expected one %s failure, got %+v", reason, fails)
	}
	if len(rec.events(EvHit)) != 0 || len(rec.events(EvMiss)) != 0 {
		t.Fatalf("failed execution must not attack")
	}
}

func TestExecute_NoTargetCoolsDown(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e1 := testRobot("e1", "t2", true, 1, PersonalityLeader)
	e2 := testRobot("e2", "t3", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, a, e1, e2)
	readyToExecute(a, SlotLeftArm)
	e1.ForceBroken()
	e2.ForceBroken()

	s.Tick()
	assertSilentCooldown(t, a, rec, "no_target")
	if s.Phase() != PhaseBattle || s.Active() != nil {
		t.Fatalf("expected the battle to go on, got %s", s.Phase())
	}
}

func TestExecute_BrokenPartCoolsDown(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, a, e)
	readyToExecute(a, SlotLeftArm)
	a.ApplyDamage(50, SlotLeftArm)

	s.Tick()
	assertSilentCooldown(t, a, rec, "part_unavailable")
	for _, p := range e.Parts() {
		if p.HP != p.MaxHP {
			t.Fatalf("enemy %s damaged by a failed execution", p.Slot)
		}
	}
}

func TestExecute_Miss(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, a, e)
	s.bal.HitBaseChance = 0
	readyToExecute(a, SlotLeftArm)
	a.Committed = &Target{Robot: e, Slot: SlotRightArm}

	s.Tick()
	misses := rec.events(EvMiss)
	if len(misses) != 1 || misses[0].Payload["target"] != "e" || misses[0].Payload["chance"] != 0 {
		t.Fatalf("expected one miss on e, got %+v", misses)
	}
	if len(rec.events(EvHit)) != 0 || e.Part(SlotRightArm).HP != 50 {
		t.Fatalf("a miss must not deal damage")
	}
	if a.State != StateActionCooldown || a.Committed != nil {
		t.Fatalf("expected cooldown without commitment, got %s", a.State)
	}
}

func TestExecute_Critical(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), &scriptedRand{ints: []int{10}}, a, e)
	s.bal.HitBaseChance = 150
	readyToExecute(a, SlotLeftArm)
	a.Committed = &Target{Robot: e, Slot: SlotRightArm}

	s.Tick()
	hits := rec.events(EvHit)
	if len(hits) != 1 || hits[0].Payload["critical"] != true || hits[0].Payload["dmg"] != 30 {
		t.Fatalf("expected one critical hit for 30, got %+v", hits)
	}
	if hp := e.Part(SlotRightArm).HP; hp != 20 {
		t.Fatalf("expected hp 20, got %d", hp)
	}
}

func TestExecute_AimTraitLandsSureHit(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	rng := &scriptedRand{ints: []int{99}}
	s, rec := battleSession(fixedDistance(nil), rng, a, e)
	s.bal.HitBaseChance = 50
	a.Part(SlotLeftArm).Trait = TraitAim
	readyToExecute(a, SlotLeftArm)
	a.Committed = &Target{Robot: e, Slot: SlotRightArm}

	s.Tick()
	if len(rec.events(EvHit)) != 1 || rng.next != 0 {
		t.Fatalf("aim bonus should reach 100 without a roll, hits=%d draws=%d", len(rec.events(EvHit)), rng.next)
	}
}

func TestTick_KnockoutEndsAdvanceLoop(t *testing.T) {
	lead := testRobot("lead", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s, rec := battleSession(fixedDistance(nil), nil, lead, e)
	head := lead.Part(SlotHead)
	head.HP, head.Broken = 0, true

	s.Tick()
	if s.Phase() != PhaseGameOver || s.Winner() != "t2" {
		t.Fatalf("expected GAME_OVER won by t2, got %s %q", s.Phase(), s.Winner())
	}
	if e.Gauge != 0 || e.State != StateIdleCharging {
		t.Fatalf("robots after the knockout advanced: %s %.2f", e.State, e.Gauge)
	}
	if len(rec.events(EvKnockout)) != 1 || len(rec.events(EvReady)) != 0 {
		t.Fatalf("unexpected events after game over")
	}
}

func TestReset_Idempotent(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s := NewSession([]*Robot{a, e}, SessionConfig{Rng: &scriptedRand{}})
	s.Start()
	for i := 0; i < 50; i++ {
		s.AutoDecide()
		s.Tick()
	}
	e.ApplyDamage(30, SlotLegs)

	s.Reset()
	once := s.Snapshot()
	s.Reset()
	twice := s.Snapshot()
	once.Events, twice.Events = nil, nil
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reset not idempotent")
	}
	if once.Phase != PhaseIdle || once.Tick != 0 {
		t.Fatalf("unexpected reset snapshot %s/%d", once.Phase, once.Tick)
	}
}

func TestSnapshot_CarriesEventsOnce(t *testing.T) {
	a := testRobot("a", "t1", true, 1, PersonalityLeader)
	e := testRobot("e", "t2", true, 1, PersonalityLeader)
	s := NewSession([]*Robot{a, e}, SessionConfig{Rng: &scriptedRand{}})
	rec := &recorder{}
	s.Subscribe(rec)
	s.Start()
	s.Tick()

	if len(rec.snaps) != 2 {
		t.Fatalf("expected two snapshots, got %d", len(rec.snaps))
	}
	if len(rec.events(EvPhase)) != 1 || len(rec.events(EvSelect)) != 1 {
		t.Fatalf("events duplicated or lost: %+v", rec.snaps)
	}
	if snap := s.Snapshot(); len(snap.Events) != 0 {
		t.Fatalf("delivered events still pending")
	}
	view := rec.snaps[1].Robots[0]
	if head, ok := view.Part(SlotHead); !ok || head.HP != 50 {
		t.Fatalf("unexpected head view %+v", head)
	}
}
