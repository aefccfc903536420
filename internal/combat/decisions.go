package combat

// AwaitingPart reports whether the active robot waits for a part choice.
func (s *Session) AwaitingPart() bool {
	return s.active != nil && s.active.Pending == nil
}

// AwaitingConfirm reports whether the active robot has a pending target.
func (s *Session) AwaitingConfirm() bool {
	return s.active != nil && s.active.Pending != nil
}

// SubmitActionChoice answers the active player robot's part choice. It is
// rejected when nothing waits for a part or the part cannot be used.
func (s *Session) SubmitActionChoice(slot Slot) bool {
	r := s.active
	if r == nil || r.Pending != nil || r.State != StateReadySelect {
		return false
	}
	if !r.Part(slot).Usable() {
		return false
	}
	s.choose(r, slot, !r.Player)
	s.notify()
	return true
}

// ConfirmPendingTarget locks in the pending target and starts charging.
func (s *Session) ConfirmPendingTarget() bool {
	r := s.active
	if r == nil || r.Pending == nil {
		return false
	}
	s.commitPending(r)
	s.notify()
	return true
}

// CancelPendingTarget drops the pending target. The robot keeps its full
// gauge and waits for a new part choice.
func (s *Session) CancelPendingTarget() bool {
	r := s.active
	if r == nil || r.Pending == nil {
		return false
	}
	s.emit(EvCancel, map[string]any{"robot": r.ID, "slot": string(s.pendingSlot)})
	r.Pending = nil
	s.pendingSlot = ""
	s.notify()
	return true
}

// ConfirmBattleStart leaves BATTLE_START_CONFIRM: every robot advances once
// and the battle proper begins.
func (s *Session) ConfirmBattleStart() bool {
	if s.phase != PhaseBattleStartConfirm {
		return false
	}
	s.setPhase(PhaseBattle)
	for _, r := range s.robots {
		s.advance(r)
		if s.phase == PhaseGameOver {
			break
		}
	}
	s.notify()
	return true
}

// AcknowledgeGameOver closes a finished battle and resets to IDLE.
func (s *Session) AcknowledgeGameOver() bool {
	if s.phase != PhaseGameOver {
		return false
	}
	s.Reset()
	return true
}

// AutoDecide resolves whatever the session waits on with the automated
// policy: a pending target is confirmed, a part choice is made by the
// medal's chooser, a battle start is confirmed.
func (s *Session) AutoDecide() bool {
	if s.phase == PhaseBattleStartConfirm {
		return s.ConfirmBattleStart()
	}
	r := s.active
	if r == nil {
		return false
	}
	if r.Pending != nil {
		return s.ConfirmPendingTarget()
	}
	slot, ok := ChooserFor(r.Medal.Personality).Choose(r)
	if !ok {
		return false
	}
	s.choose(r, slot, true)
	s.notify()
	return true
}
