package combat

// Event is one entry of the battle log. T is the session tick it happened on.
type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Event types.
const (
	EvPhase        = "Phase"
	EvReady        = "Ready"
	EvSelect       = "Select"
	EvPending      = "Pending"
	EvCommit       = "Commit"
	EvCancel       = "Cancel"
	EvExecute      = "Execute"
	EvHit          = "Hit"
	EvMiss         = "Miss"
	EvBreak        = "Break"
	EvKnockout     = "Knockout"
	EvActionFailed = "ActionFailed"
	EvGameOver     = "GameOver"
)

type Slot string

const (
	SlotHead     Slot = "head"
	SlotRightArm Slot = "rightArm"
	SlotLeftArm  Slot = "leftArm"
	SlotLegs     Slot = "legs"
)

// AllSlots is the fixed slot order used for iteration and random part picks.
var AllSlots = [4]Slot{SlotHead, SlotRightArm, SlotLeftArm, SlotLegs}

// ActionSlots are the slots a robot may act with.
var ActionSlots = [3]Slot{SlotHead, SlotRightArm, SlotLeftArm}

func (s Slot) Valid() bool {
	switch s {
	case SlotHead, SlotRightArm, SlotLeftArm, SlotLegs:
		return true
	}
	return false
}

type Category string

const (
	CategoryMelee   Category = "melee"
	CategoryRanged  Category = "ranged"
	CategoryScan    Category = "scan"
	CategorySupport Category = "support"
	CategoryNone    Category = "none"
)

// Trait modifies how an attack part rolls and what it costs the user:
// aim and berserk drop the user's evasion, strike and berserk its leg defense,
// until the action's cooldown ends.
type Trait string

const (
	TraitNormal  Trait = "normal"
	TraitAim     Trait = "aim"
	TraitStrike  Trait = "strike"
	TraitBerserk Trait = "berserk"
)

type State string

const (
	StateIdleCharging   State = "idle_charging"
	StateReadySelect    State = "ready_select"
	StateActionCharging State = "action_charging"
	StateReadyExecute   State = "ready_execute"
	StateActionCooldown State = "action_cooldown"
	StateBroken         State = "broken"
)

type Phase string

const (
	PhaseIdle               Phase = "IDLE"
	PhaseInitialSelection   Phase = "INITIAL_SELECTION"
	PhaseBattleStartConfirm Phase = "BATTLE_START_CONFIRM"
	PhaseBattle             Phase = "BATTLE"
	PhaseGameOver           Phase = "GAME_OVER"
)

// TeamID names a team, e.g. "team1".
type TeamID string

// Target is an enemy robot plus the part slot to hit.
type Target struct {
	Robot *Robot
	Slot  Slot
}

// Valid reports whether the target can still be hit.
func (t *Target) Valid() bool {
	if t == nil || t.Robot == nil || t.Robot.State == StateBroken {
		return false
	}
	p := t.Robot.Part(t.Slot)
	return p != nil && !p.Broken
}

// Balance holds the numeric rules the engine runs with.
type Balance struct {
	MaxGauge         float64
	PropulsionFactor float64
	MinDamage        int
	BaseDamage       int

	// HitBaseChance is the percent chance before accuracy, skill, trait and
	// evasion. A final chance of 100 always hits without a roll; above 100 the
	// excess is the critical chance.
	HitBaseChance      int
	AimBonus           int
	StrikeBonus        int
	BerserkBonus       int
	CriticalMultiplier float64
	MedalSkillFactor   int
}

// DefaultBalance returns MAX_GAUGE 100, propulsion factor 0.5, min damage 1,
// base damage 20 and the stock hit model (base chance 75, critical x1.5).
func DefaultBalance() Balance {
	return Balance{
		MaxGauge: 100, PropulsionFactor: 0.5, MinDamage: 1, BaseDamage: 20,
		HitBaseChance: 75, AimBonus: 50, StrikeBonus: 20, BerserkBonus: -10,
		CriticalMultiplier: 1.5, MedalSkillFactor: 2,
	}
}

func (b Balance) traitBonus(t Trait) int {
	switch t {
	case TraitAim:
		return b.AimBonus
	case TraitStrike:
		return b.StrikeBonus
	case TraitBerserk:
		return b.BerserkBonus
	}
	return 0
}
