package combat

// Snapshot is an immutable view of a session for renderers and feeds.
type Snapshot struct {
	Session  string      `json:"session"`
	Tick     int         `json:"tick"`
	Phase    Phase       `json:"phase"`
	Winner   TeamID      `json:"winner,omitempty"`
	Active   string      `json:"active,omitempty"`
	Awaiting string      `json:"awaiting,omitempty"`
	Robots   []RobotView `json:"robots"`
	Events   []Event     `json:"events,omitempty"`
}

type RobotView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Team        TeamID      `json:"team"`
	Leader      bool        `json:"leader,omitempty"`
	Player      bool        `json:"player,omitempty"`
	Medal       string      `json:"medal"`
	Personality Personality `json:"personality"`
	State       State       `json:"state"`
	Gauge       float64     `json:"gauge"`
	Progress    float64     `json:"progress"`
	X           float64     `json:"x"`
	Selected    Slot        `json:"selected,omitempty"`
	Parts       []PartView  `json:"parts"`
	Pending     *TargetView `json:"pending,omitempty"`
	Committed   *TargetView `json:"committed,omitempty"`
}

type PartView struct {
	Slot     Slot     `json:"slot"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	Broken   bool     `json:"broken,omitempty"`
	Power    int      `json:"power,omitempty"`
}

type TargetView struct {
	Robot string `json:"robot"`
	Slot  Slot   `json:"slot"`
}

// Awaiting values.
const (
	AwaitPart        = "part"
	AwaitTarget      = "target"
	AwaitBattleStart = "battle_start"
	AwaitAcknowledge = "acknowledge"
)

// Snapshot copies the current state, including events not yet delivered to observers.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Session: s.ID,
		Tick:    s.tick,
		Phase:   s.phase,
		Winner:  s.winner,
		Robots:  make([]RobotView, 0, len(s.robots)),
	}
	if s.active != nil {
		snap.Active = s.active.ID
	}
	switch {
	case s.phase == PhaseGameOver:
		snap.Awaiting = AwaitAcknowledge
	case s.phase == PhaseBattleStartConfirm:
		snap.Awaiting = AwaitBattleStart
	case s.AwaitingConfirm():
		snap.Awaiting = AwaitTarget
	case s.AwaitingPart():
		snap.Awaiting = AwaitPart
	}
	for _, r := range s.robots {
		snap.Robots = append(snap.Robots, s.viewOf(r))
	}
	if len(s.events) > 0 {
		snap.Events = append([]Event(nil), s.events...)
	}
	return snap
}

func (s *Session) viewOf(r *Robot) RobotView {
	v := RobotView{
		ID: r.ID, Name: r.Name, Team: r.Team, Leader: r.Leader, Player: r.Player,
		Medal: r.Medal.Name, Personality: r.Medal.Personality,
		State: r.State, Gauge: r.Gauge, Progress: r.Progress(),
		X: s.field.Position(r).X, Selected: r.Selected,
		Parts:     make([]PartView, 0, len(AllSlots)),
		Pending:   targetView(r.Pending),
		Committed: targetView(r.Committed),
	}
	for _, p := range r.Parts() {
		v.Parts = append(v.Parts, PartView{
			Slot: p.Slot, ID: p.ID, Name: p.Name, Category: p.Category,
			HP: p.HP, MaxHP: p.MaxHP, Broken: p.Broken, Power: p.Power,
		})
	}
	return v
}

func targetView(t *Target) *TargetView {
	if t == nil || t.Robot == nil {
		return nil
	}
	return &TargetView{Robot: t.Robot.ID, Slot: t.Slot}
}

// Part returns the view of the part in slot.
func (v RobotView) Part(s Slot) (PartView, bool) {
	for _, p := range v.Parts {
		if p.Slot == s {
			return p, true
		}
	}
	return PartView{}, false
}
