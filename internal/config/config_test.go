package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/config"
	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tuxtray.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
poll_interval = "250ms"
animation_interval = "40ms"
dwell_cycles = 5
max_playback_rate = 3.0
fps = 12
mode = "cpu"
skin = "penguin"
monitor = true
log_level = "debug"
telemetry = true
telemetry_db = "/path/to/telemetry.db"

[thresholds.cpu]
max = 25.0
busy = 55.0
high = 65.0
critical = 85.0
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval, "Expected PollInterval 250ms")
	assert.Equal(t, 40*time.Millisecond, cfg.AnimationInterval, "Expected AnimationInterval 40ms")
	assert.Equal(t, 5, cfg.DwellCycles, "Expected DwellCycles 5")
	assert.Equal(t, 3.0, cfg.MaxPlaybackRate, "Expected MaxPlaybackRate 3.0")
	assert.Equal(t, 12, cfg.FPS, "Expected FPS 12")
	assert.Equal(t, "cpu", cfg.Mode, "Expected Mode cpu")
	assert.Equal(t, "penguin", cfg.Skin, "Expected Skin penguin")
	assert.True(t, cfg.Monitor, "Expected Monitor true")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/telemetry.db", cfg.TelemetryDB, "Expected TelemetryDB /path/to/telemetry.db")

	th := cfg.EmotionThresholds()
	assert.Equal(t, 25.0, th.CPU.Max, "Expected overridden cpu max")
	assert.Equal(t, 85.0, th.CPU.Critical, "Expected overridden cpu critical")
	assert.Equal(t, 30.0, th.RAM.Max, "RAM thresholds keep their defaults")
	assert.Equal(t, 2, th.MultipleResources)
	assert.Equal(t, emotion.ModeCPU, cfg.EmotionMode())
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("TUXTRAY_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval, "Expected default PollInterval 500ms")
	assert.Equal(t, 33*time.Millisecond, cfg.AnimationInterval, "Expected default AnimationInterval 33ms")
	assert.Equal(t, 3, cfg.DwellCycles, "Expected default DwellCycles 3")
	assert.Equal(t, 2.5, cfg.MaxPlaybackRate, "Expected default MaxPlaybackRate 2.5")
	assert.Equal(t, 24, cfg.FPS, "Expected default FPS 24")
	assert.Equal(t, "emotion", cfg.Mode, "Expected default Mode emotion")
	assert.Equal(t, "default", cfg.Skin, "Expected default Skin")
	assert.False(t, cfg.Monitor, "Expected default Monitor false")
	assert.False(t, cfg.Telemetry, "Expected default Telemetry false")
	assert.Equal(t, string(config.DefaultLogLevel), cfg.LogLevel, "Expected default LogLevel")

	require.NoError(t, cfg.EmotionThresholds().Validate())
	assert.Equal(t, emotion.DefaultThresholds(), cfg.EmotionThresholds(),
		"Defaults mirror the stock threshold set")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
log_level = "loud"
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, config.ErrInvalidLogLevel), "Expected invalid_log_level, got %v", err)
}

func TestInvalidMode(t *testing.T) {
	path := writeConfig(t, `
mode = "disk"
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, emotion.ErrUnknownMode), "Expected emotion_unknown_mode, got %v", err)
}

func TestInvalidThresholdOrdering(t *testing.T) {
	path := writeConfig(t, `
[thresholds.ram]
max = 80.0
busy = 60.0
high = 75.0
critical = 90.0
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, emotion.ErrInvalidThresholds), "Expected emotion_invalid_thresholds, got %v", err)
}

func TestInvalidInterval(t *testing.T) {
	path := writeConfig(t, `
poll_interval = "0s"
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, config.ErrInvalidInterval), "Expected invalid_interval, got %v", err)
}

func TestLogLevelFlag(t *testing.T) {
	// Save original args and restore after test
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	t.Setenv("TUXTRAY_CONFIG", "")
	os.Args = []string{"cmd", "--log-level", "debug"}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestFlagBeatsConfigFile(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	path := writeConfig(t, `
mode = "ram"
skin = "penguin"
`)
	t.Setenv("TUXTRAY_CONFIG", path)
	os.Args = []string{"cmd", "--mode", "network"}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "network", cfg.Mode, "Flag value must win over the file")
	assert.Equal(t, "penguin", cfg.Skin, "File values without a flag stay in effect")
}

func TestTelemetryRequiresDBPath(t *testing.T) {
	path := writeConfig(t, `
telemetry = true
telemetry_db = ""
`)
	t.Setenv("TUXTRAY_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, config.ErrInvalidConfig), "Expected invalid_configuration, got %v", err)
}
