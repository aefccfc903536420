package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"robattle/internal/combat"
)

const (
	logLines  = 8
	gaugeCell = 20
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleTeamA   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleTeamB   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBroken  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive  = tcell.StyleDefault.Reverse(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLog     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Renderer keeps the latest snapshot plus a short event log and draws them.
// It implements combat.Observer.
type Renderer struct {
	screen Canvas
	snap   combat.Snapshot
	names  map[string]string
	log    []string
}

func NewRenderer(screen Canvas) *Renderer {
	return &Renderer{screen: screen, names: map[string]string{}}
}

func (r *Renderer) Observe(snap combat.Snapshot) {
	r.snap = snap
	for _, rv := range snap.Robots {
		r.names[rv.ID] = rv.Name
	}
	for _, ev := range snap.Events {
		if line := r.describe(ev); line != "" {
			r.log = append(r.log, line)
		}
	}
	if len(r.log) > logLines {
		r.log = r.log[len(r.log)-logLines:]
	}
}

// Log returns the visible event lines, oldest first.
func (r *Renderer) Log() []string { return r.log }

func (r *Renderer) name(id any) string {
	s, _ := id.(string)
	if n := r.names[s]; n != "" {
		return n
	}
	return s
}

func (r *Renderer) describe(ev combat.Event) string {
	p := ev.Payload
	switch ev.Type {
	case combat.EvPhase:
		return fmt.Sprintf("-- %v --", p["phase"])
	case combat.EvSelect:
		if p["awaiting"] != nil {
			return fmt.Sprintf("%s awaits orders", r.name(p["robot"]))
		}
		return fmt.Sprintf("%s readies %v", r.name(p["robot"]), p["slot"])
	case combat.EvPending:
		return fmt.Sprintf("%s aims at %s %v (enter/backspace)", r.name(p["robot"]), r.name(p["target"]), p["target_slot"])
	case combat.EvCommit:
		return fmt.Sprintf("%s locks on %s %v", r.name(p["robot"]), r.name(p["target"]), p["target_slot"])
	case combat.EvCancel:
		return fmt.Sprintf("%s cancels", r.name(p["robot"]))
	case combat.EvHit:
		if c, _ := p["critical"].(bool); c {
			return fmt.Sprintf("%s CRITICAL on %s %v for %v", r.name(p["attacker"]), r.name(p["target"]), p["slot"], p["dmg"])
		}
		return fmt.Sprintf("%s hits %s %v for %v", r.name(p["attacker"]), r.name(p["target"]), p["slot"], p["dmg"])
	case combat.EvMiss:
		return fmt.Sprintf("%s misses %s (%v%%)", r.name(p["attacker"]), r.name(p["target"]), p["chance"])
	case combat.EvBreak:
		return fmt.Sprintf("%s %v broken", r.name(p["robot"]), p["slot"])
	case combat.EvKnockout:
		return fmt.Sprintf("%s is out", r.name(p["robot"]))
	case combat.EvActionFailed:
		return fmt.Sprintf("%s action failed (%v)", r.name(p["robot"]), p["reason"])
	case combat.EvGameOver:
		return fmt.Sprintf("%v wins!", p["winner"])
	}
	return ""
}

// Prompt tells the player what input the session waits for.
func Prompt(snap combat.Snapshot) string {
	switch snap.Awaiting {
	case combat.AwaitPart:
		return "choose part: 1 head  2 right arm  3 left arm  a auto"
	case combat.AwaitTarget:
		return "enter confirm target  backspace cancel"
	case combat.AwaitBattleStart:
		return "enter start battle"
	case combat.AwaitAcknowledge:
		return "enter continue  q quit"
	}
	if snap.Phase == combat.PhaseIdle {
		return "s start  q quit"
	}
	return "q quit  r reset"
}

// Draw renders the latest snapshot.
func (r *Renderer) Draw() {
	r.screen.Clear()
	w, h := r.screen.Size()
	s := r.snap

	header := fmt.Sprintf("ROBATTLE  %s  tick %d", s.Phase, s.Tick)
	if s.Winner != "" {
		header += "  winner " + string(s.Winner)
	}
	r.text(0, 0, header, styleTitle)
	r.text(0, 1, Prompt(s), stylePrompt)

	y := 3
	var home combat.TeamID
	if len(s.Robots) > 0 {
		home = s.Robots[0].Team
	}
	for _, rv := range s.Robots {
		style := styleTeamA
		if rv.Team != home {
			style = styleTeamB
		}
		if rv.State == combat.StateBroken {
			style = styleBroken
		}
		if rv.ID == s.Active {
			style = style.Reverse(true)
		}
		r.text(0, y, robotLine(rv), style)
		y++
		r.text(2, y, partsLine(rv), style)
		y++
	}

	y++
	fieldW := w - 2
	if fieldW > 60 {
		fieldW = 60
	}
	if fieldW > 4 {
		r.text(0, y, "|"+strings.Repeat("-", fieldW)+"|", styleDefault)
		r.screen.SetContent(1+fieldW/2, y, '+', nil, styleDefault)
		y++
		for _, rv := range s.Robots {
			if rv.State == combat.StateBroken {
				continue
			}
			x := 1 + int(rv.X*float64(fieldW-1))
			mark := '?'
			if rv.Name != "" {
				mark = []rune(rv.Name)[0]
			}
			st := styleTeamA
			if rv.Team != home {
				st = styleTeamB
			}
			if rv.ID == s.Active {
				st = styleActive
			}
			r.screen.SetContent(x, y, mark, nil, st)
		}
		y += 2
	}

	for i, line := range r.log {
		if y+i >= h {
			break
		}
		r.text(0, y+i, line, styleLog)
	}
	r.screen.Show()
}

func robotLine(rv combat.RobotView) string {
	lead := " "
	if rv.Leader {
		lead = "*"
	}
	filled := int(rv.Progress * gaugeCell)
	if filled > gaugeCell {
		filled = gaugeCell
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", gaugeCell-filled)
	line := fmt.Sprintf("%s%-10s %-6s [%s] %-15s %s", lead, rv.Name, rv.Team, bar, rv.State, rv.Personality)
	if rv.Committed != nil {
		line += fmt.Sprintf(" -> %s/%s", rv.Committed.Robot, rv.Committed.Slot)
	} else if rv.Pending != nil {
		line += fmt.Sprintf(" ?> %s/%s", rv.Pending.Robot, rv.Pending.Slot)
	}
	return line
}

func partsLine(rv combat.RobotView) string {
	cells := make([]string, 0, len(rv.Parts))
	for _, p := range rv.Parts {
		if p.Broken {
			cells = append(cells, fmt.Sprintf("%s:XX", shortSlot(p.Slot)))
			continue
		}
		cells = append(cells, fmt.Sprintf("%s:%d/%d", shortSlot(p.Slot), p.HP, p.MaxHP))
	}
	return strings.Join(cells, "  ")
}

func shortSlot(s combat.Slot) string {
	switch s {
	case combat.SlotHead:
		return "H"
	case combat.SlotRightArm:
		return "R"
	case combat.SlotLeftArm:
		return "L"
	case combat.SlotLegs:
		return "F"
	}
	return "?"
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
