package animation

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
)

const defaultFPS = 24

// LoadSet reads the frame sequences for a skin from disk. The layout is
// <assetsDir>/<skin>/<state>/*.png with frames ordered by filename.
// Missing state directories are expected (the fallback chain covers
// them); a completely absent skin yields an empty set and a warning,
// never an error.
func LoadSet(assetsDir, skin string, fps int, log logger.Logger) *Set {
	if fps <= 0 {
		fps = defaultFPS
	}
	frameDuration := time.Second / time.Duration(fps)

	sequences := make(map[emotion.State][]Frame)
	skinDir := filepath.Join(assetsDir, skin)

	if _, err := os.Stat(skinDir); err != nil {
		log.Warn().
			Str("skin", skin).
			Str("path", skinDir).
			Msg("Skin directory not found, animations will use the placeholder")

		return NewSet(sequences)
	}

	for _, state := range emotion.States {
		frames := loadSequence(filepath.Join(skinDir, state.String()), state, frameDuration, log)
		if len(frames) > 0 {
			sequences[state] = frames
		}
	}

	log.Debug().
		Str("skin", skin).
		Int("states", len(sequences)).
		Int("fps", fps).
		Msg("Skin loaded")

	return NewSet(sequences)
}

func loadSequence(dir string, state emotion.State, frameDuration time.Duration, log logger.Logger) []Frame {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var frames []Frame
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".png") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().
				Str("path", path).
				Err(err).
				Msg("Skipping unreadable frame")
			continue
		}

		frames = append(frames, Frame{
			Name:     state.String() + "/" + entry.Name(),
			Image:    data,
			Duration: frameDuration,
		})
	}

	return frames
}
