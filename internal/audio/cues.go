package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"robattle/internal/combat"
)

// Cue is a short sound tied to a battle event.
type Cue int

const (
	CueNone Cue = iota
	CueHit
	CueBreak
	CueKnockout
	CueGameOver
)

// CueFor maps a battle event to the cue it should play.
func CueFor(ev combat.Event) Cue {
	switch ev.Type {
	case combat.EvHit:
		return CueHit
	case combat.EvBreak:
		return CueBreak
	case combat.EvKnockout:
		return CueKnockout
	case combat.EvGameOver:
		return CueGameOver
	}
	return CueNone
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueHit:      {{220, 60 * time.Millisecond}},
	CueBreak:    {{330, 60 * time.Millisecond}, {165, 120 * time.Millisecond}},
	CueKnockout: {{440, 80 * time.Millisecond}, {220, 80 * time.Millisecond}, {110, 200 * time.Millisecond}},
	CueGameOver: {{523.25, 150 * time.Millisecond}, {659.25, 150 * time.Millisecond}, {783.99, 400 * time.Millisecond}},
}

// Streamer builds a fresh streamer for the cue, or nil for CueNone.
func (c Cue) Streamer(sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, nil
	}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		seq = append(seq, beep.Take(sr.N(n.dur), tone))
	}
	return newVolume(beep.Seq(seq...), volume), nil
}

// math.Log2(0) is -Inf, so zero volume is mapped to Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
