package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration. Precedence: flags over the
// TUXTRAY_CONFIG file (or tuxtray.toml on the search path) over
// defaults.
type Config struct {
	PollInterval      time.Duration    `mapstructure:"poll_interval"`
	AnimationInterval time.Duration    `mapstructure:"animation_interval"`
	DwellCycles       int              `mapstructure:"dwell_cycles"`
	MaxPlaybackRate   float64          `mapstructure:"max_playback_rate"`
	FPS               int              `mapstructure:"fps"`
	Mode              string           `mapstructure:"mode"`
	Skin              string           `mapstructure:"skin"`
	Assets            string           `mapstructure:"assets"`
	Monitor           bool             `mapstructure:"monitor"`
	Debug             bool             `mapstructure:"debug"`
	Verbose           bool             `mapstructure:"verbose"`
	LogLevel          string           `mapstructure:"log_level"`
	Telemetry         bool             `mapstructure:"telemetry"`
	TelemetryDB       string           `mapstructure:"telemetry_db"`
	Thresholds        thresholdsConfig `mapstructure:"thresholds"`

	v *viper.Viper
}

type limitsConfig struct {
	Max      float64 `mapstructure:"max"`
	Busy     float64 `mapstructure:"busy"`
	High     float64 `mapstructure:"high"`
	Critical float64 `mapstructure:"critical"`
}

type thresholdsConfig struct {
	CPU               limitsConfig `mapstructure:"cpu"`
	RAM               limitsConfig `mapstructure:"ram"`
	Network           limitsConfig `mapstructure:"network"`
	MultipleResources int          `mapstructure:"multiple_resources"`
}

func Load() (*Config, error) {
	errFactory := errors.New()

	flags := pflag.NewFlagSet("tuxtray", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	configFlag := flags.String("config", "", "Path to configuration file")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.String("log-level", "", "Log level (debug, info, warning, error)")
	flags.Bool("monitor", false, "Print mood changes to the console instead of a tray icon")
	flags.String("mode", "", "Classification mode (emotion, cpu, ram, network)")
	flags.String("skin", "", "Skin name to load animations from")
	flags.String("assets", "", "Directory holding skin assets")
	flags.String("poll-interval", "", "Interval between metric samples")
	flags.Bool("telemetry", false, "Record mood snapshots to the telemetry database")
	flags.String("telemetry-db", "", "Path to the telemetry database")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		return nil, errFactory.Wrap(ErrBindFlags, err)
	}

	v := viper.New()
	setDefaults(v)

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("TUXTRAY_CONFIG")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("tuxtray")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/tuxtray")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tuxtray"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.WithMessage(ErrReadConfig,
				"Failed to read config file: "+err.Error())
		}
	}

	// Flags given on the command line beat everything else
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{v: v}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(ErrReadConfig, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("poll_interval", "500ms")
	v.SetDefault("animation_interval", "33ms")
	v.SetDefault("dwell_cycles", 3)
	v.SetDefault("max_playback_rate", 2.5)
	v.SetDefault("fps", 24)
	v.SetDefault("mode", "emotion")
	v.SetDefault("skin", "default")
	v.SetDefault("assets", "/usr/share/tuxtray/skins")
	v.SetDefault("monitor", false)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("telemetry", false)
	v.SetDefault("telemetry_db", "/var/lib/tuxtray/telemetry.db")

	d := emotion.DefaultThresholds()
	v.SetDefault("thresholds.cpu.max", d.CPU.Max)
	v.SetDefault("thresholds.cpu.busy", d.CPU.Busy)
	v.SetDefault("thresholds.cpu.high", d.CPU.High)
	v.SetDefault("thresholds.cpu.critical", d.CPU.Critical)
	v.SetDefault("thresholds.ram.max", d.RAM.Max)
	v.SetDefault("thresholds.ram.busy", d.RAM.Busy)
	v.SetDefault("thresholds.ram.high", d.RAM.High)
	v.SetDefault("thresholds.ram.critical", d.RAM.Critical)
	v.SetDefault("thresholds.network.max", d.Net.Max)
	v.SetDefault("thresholds.network.busy", d.Net.Busy)
	v.SetDefault("thresholds.network.high", d.Net.High)
	v.SetDefault("thresholds.network.critical", d.Net.Critical)
	v.SetDefault("thresholds.multiple_resources", d.MultipleResources)
}

func (c *Config) validate() error {
	errFactory := errors.New()

	if c.PollInterval <= 0 || c.AnimationInterval <= 0 {
		return errFactory.WithData(ErrInvalidInterval, struct {
			PollInterval      time.Duration
			AnimationInterval time.Duration
		}{
			PollInterval:      c.PollInterval,
			AnimationInterval: c.AnimationInterval,
		})
	}

	if c.DwellCycles < 1 {
		return errFactory.WithMessage(ErrInvalidConfig, "dwell_cycles must be at least 1")
	}

	if c.MaxPlaybackRate < 1 {
		return errFactory.WithMessage(ErrInvalidConfig, "max_playback_rate must be at least 1.0")
	}

	if c.FPS < 1 {
		return errFactory.WithMessage(ErrInvalidConfig, "fps must be at least 1")
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(ErrInvalidLogLevel, struct {
			LogLevel string
		}{
			LogLevel: c.LogLevel,
		})
	}

	if _, err := emotion.ParseMode(c.Mode); err != nil {
		return err
	}

	if err := c.EmotionThresholds().Validate(); err != nil {
		return err
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "telemetry_db is required when telemetry is enabled")
	}

	return nil
}

// EmotionThresholds converts the raw threshold tables into the domain
// type. Validation happens once in Load; callers receive a set that is
// already known good.
func (c *Config) EmotionThresholds() emotion.Thresholds {
	return emotion.Thresholds{
		CPU:               emotion.Limits(c.Thresholds.CPU),
		RAM:               emotion.Limits(c.Thresholds.RAM),
		Net:               emotion.Limits(c.Thresholds.Network),
		MultipleResources: c.Thresholds.MultipleResources,
	}
}

// EmotionMode returns the validated classification mode
func (c *Config) EmotionMode() emotion.Mode {
	mode, err := emotion.ParseMode(c.Mode)
	if err != nil {
		return emotion.ModeEmotion
	}

	return mode
}

// Watch re-reads and re-validates the configuration whenever the file
// on disk changes, invoking onChange with each valid new snapshot.
// Invalid edits are logged and dropped; the running config stays as it
// was. No-op when no config file was used.
func (c *Config) Watch(log logger.Logger, onChange func(*Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}

	c.v.OnConfigChange(func(_ fsnotify.Event) {
		next := &Config{v: c.v}
		if err := c.v.Unmarshal(next); err != nil {
			log.Error().Err(err).Msg("Ignoring config change: unreadable")
			return
		}
		if err := next.validate(); err != nil {
			log.Error().Err(err).Msg("Ignoring config change: validation failed")
			return
		}

		log.Info().
			Str("path", c.v.ConfigFileUsed()).
			Msg("Configuration reloaded")
		onChange(next)
	})
	c.v.WatchConfig()
}
