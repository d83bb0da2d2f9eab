package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/config"
	"codeberg.org/tuxtray/tuxtray/internal/engine"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
	"codeberg.org/tuxtray/tuxtray/internal/pid"
	"codeberg.org/tuxtray/tuxtray/internal/sysmon"
	"codeberg.org/tuxtray/tuxtray/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLogLevel(level)
		}
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("Fatal error")
		os.Exit(1)
	}
}

func run() error {
	if err := pid.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("Failed to remove PID file")
		}
	}()

	log := logger.NewLogger()

	source, err := sysmon.New(log)
	if err != nil {
		return err
	}

	set := animation.LoadSet(cfg.Assets, cfg.Skin, cfg.FPS, log)
	if set.Empty() {
		logger.Warn().
			Str("assets", cfg.Assets).
			Str("skin", cfg.Skin).
			Msg("No animation frames found, using placeholder")
	}

	telemetryCfg := telemetry.DefaultConfig()
	telemetryCfg.Enabled = cfg.Telemetry
	if cfg.TelemetryDB != "" {
		telemetryCfg.DBPath = cfg.TelemetryDB
	}

	collector, err := telemetry.NewService(telemetryCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close telemetry collector")
		}
	}()

	// Interactive runs get the console surface by default; a headless
	// service renders nowhere unless monitor mode asks for it.
	var renderer engine.Renderer
	switch {
	case cfg.Monitor:
		logger.Info().Msg("Monitor mode activated. Logging mood status...")
		renderer = engine.NewConsoleRenderer(os.Stdout)
	case !logger.IsService():
		renderer = engine.NewConsoleRenderer(os.Stdout)
	default:
		renderer = engine.NewNopRenderer()
	}

	eng, err := engine.New(engine.Config{
		PollInterval:  cfg.PollInterval,
		FrameInterval: cfg.AnimationInterval,
		Thresholds:    cfg.EmotionThresholds(),
		Mode:          cfg.EmotionMode(),
		Dwell:         cfg.DwellCycles,
		MaxRate:       cfg.MaxPlaybackRate,
	}, set, source, renderer, collector, log)
	if err != nil {
		return err
	}

	// Watch already filters out configs that fail validation
	cfg.Watch(log, func(updated *config.Config) {
		if err := eng.UpdateThresholds(updated.EmotionThresholds()); err != nil {
			logger.Warn().Err(err).Msg("Ignoring invalid threshold update")
		}
		if err := eng.SetMode(updated.EmotionMode()); err != nil {
			logger.Warn().Err(err).Msg("Ignoring invalid mode update")
		}
		eng.SetDwell(updated.DwellCycles)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := eng.Run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("Exiting...")

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
