package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"robattle/internal/combat"
	"robattle/internal/logging"
)

// SoundManager plays battle cues through the speaker. Every method is safe
// to call when the speaker could not be initialized.
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager(cfg Config) *SoundManager {
	return &SoundManager{cfg: cfg, mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. It is a no-op when audio is disabled or
// already running.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	sr := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues a cue on the mixer.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c == CueNone {
		return
	}
	s, err := c.Streamer(beep.SampleRate(sm.cfg.SampleRate), sm.cfg.Volume)
	if err != nil {
		logging.Error("audio cue", err, logging.Fields{"cue": int(c)})
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Observe plays one cue per snapshot, the loudest event winning, so a busy
// tick does not stack sounds.
func (sm *SoundManager) Observe(snap combat.Snapshot) {
	best := CueNone
	for _, ev := range snap.Events {
		if c := CueFor(ev); c > best {
			best = c
		}
	}
	sm.Play(best)
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
