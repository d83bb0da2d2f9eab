package engine

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
)

const (
	defaultPollInterval  = 500 * time.Millisecond
	defaultFrameInterval = 33 * time.Millisecond
	defaultDwell         = 3
	defaultMaxRate       = 2.5
)

type Config struct {
	PollInterval  time.Duration
	FrameInterval time.Duration
	Thresholds    emotion.Thresholds
	Mode          emotion.Mode
	Dwell         int
	MaxRate       float64
}

func DefaultConfig() Config {
	return Config{
		PollInterval:  defaultPollInterval,
		FrameInterval: defaultFrameInterval,
		Thresholds:    emotion.DefaultThresholds(),
		Mode:          emotion.ModeEmotion,
		Dwell:         defaultDwell,
		MaxRate:       defaultMaxRate,
	}
}
