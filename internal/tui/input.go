package tui

import (
	"github.com/gdamore/tcell/v2"

	"robattle/internal/combat"
)

type Action int

const (
	ActNone Action = iota
	ActQuit
	ActStart
	ActHead
	ActRightArm
	ActLeftArm
	ActConfirm
	ActCancel
	ActAuto
	ActReset
)

// MapKey translates a key press into a game action.
func MapKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActQuit
	case tcell.KeyEnter:
		return ActConfirm
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActCancel
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ActQuit
		case 's':
			return ActStart
		case '1':
			return ActHead
		case '2':
			return ActRightArm
		case '3':
			return ActLeftArm
		case 'c':
			return ActCancel
		case 'a':
			return ActAuto
		case 'r':
			return ActReset
		}
	}
	return ActNone
}

// Apply forwards an action to the session. Enter answers whichever
// confirmation is open. It reports whether the session accepted the input.
func Apply(s *combat.Session, a Action) bool {
	switch a {
	case ActStart:
		return s.Start()
	case ActHead:
		return s.SubmitActionChoice(combat.SlotHead)
	case ActRightArm:
		return s.SubmitActionChoice(combat.SlotRightArm)
	case ActLeftArm:
		return s.SubmitActionChoice(combat.SlotLeftArm)
	case ActConfirm:
		switch {
		case s.AwaitingConfirm():
			return s.ConfirmPendingTarget()
		case s.Phase() == combat.PhaseBattleStartConfirm:
			return s.ConfirmBattleStart()
		case s.Phase() == combat.PhaseGameOver:
			return s.AcknowledgeGameOver()
		}
	case ActCancel:
		return s.CancelPendingTarget()
	case ActAuto:
		return s.AutoDecide()
	case ActReset:
		s.Reset()
		return true
	}
	return false
}
