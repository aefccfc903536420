package audio

import (
	"os"
	"strconv"
)

// Config controls the battle sound cues.
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0-1.0
	SampleRate int
}

func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: 44100}
}

// LoadConfig reads ROBATTLE_AUDIO (bool), ROBATTLE_VOLUME (0-100) and
// ROBATTLE_SAMPLE_RATE on top of DefaultConfig.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("ROBATTLE_AUDIO"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv("ROBATTLE_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = float64(val) / 100.0
			if cfg.Volume < 0 {
				cfg.Volume = 0
			}
			if cfg.Volume > 1 {
				cfg.Volume = 1
			}
		}
	}

	if sampleRate := os.Getenv("ROBATTLE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
