package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
	"codeberg.org/tuxtray/tuxtray/internal/telemetry"
)

// Engine drives the poll/classify/animate cycle. The poll path samples
// metrics, classifies them and publishes the committed mood; the frame
// path advances the animation and renders. Both run on the Run goroutine,
// so everything except the mood cell and pending config is single-writer.
type Engine struct {
	cfg        Config
	source     MetricSource
	renderer   Renderer
	collector  telemetry.Collector
	log        logger.Logger
	classifier emotion.Classifier
	tracker    *emotion.Tracker
	normalizer *emotion.Normalizer
	smoother   *emotion.Smoother
	scheduler  *animation.Scheduler

	mu      sync.Mutex
	mood    moodCell
	pending *pendingConfig

	lastGen     uint64
	lastFrame   string
	lastTooltip string
}

// moodCell is the handoff between the poll and frame paths. The
// generation counter lets the frame path detect a new publication
// without comparing fields.
type moodCell struct {
	state  emotion.State
	stress float64
	gen    uint64
}

type pendingConfig struct {
	mode       *emotion.Mode
	thresholds *emotion.Thresholds
	dwell      *int
}

func New(
	cfg Config,
	set *animation.Set,
	source MetricSource,
	renderer Renderer,
	collector telemetry.Collector,
	log logger.Logger,
) (*Engine, error) {
	errFactory := errors.New()

	if source == nil || renderer == nil || collector == nil {
		return nil, errFactory.New(ErrMissingDependency)
	}
	if cfg.PollInterval <= 0 || cfg.FrameInterval <= 0 {
		return nil, errFactory.New(ErrInvalidInterval)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if _, err := emotion.ParseMode(cfg.Mode.String()); err != nil {
		return nil, err
	}
	if cfg.Dwell < 1 {
		cfg.Dwell = 1
	}

	return &Engine{
		cfg:        cfg,
		source:     source,
		renderer:   renderer,
		collector:  collector,
		log:        log,
		classifier: emotion.NewClassifier(cfg.Thresholds, cfg.Mode),
		tracker:    emotion.NewTracker(cfg.Dwell, log),
		normalizer: emotion.NewNormalizer(log),
		smoother:   emotion.NewSmoother(0),
		scheduler:  animation.NewScheduler(set, cfg.MaxRate, log),
	}, nil
}

// Run blocks until ctx is cancelled. Ticker channels drop ticks when the
// loop falls behind, so a slow renderer degrades to latest-wins instead
// of queueing work.
func (e *Engine) Run(ctx context.Context) error {
	pollTicker := time.NewTicker(e.cfg.PollInterval)
	defer pollTicker.Stop()

	frameTicker := time.NewTicker(e.cfg.FrameInterval)
	defer frameTicker.Stop()

	// Prime once so a mood and frame appear before the first tick
	now := time.Now()
	e.poll(ctx, now)
	e.advance(now)

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-pollTicker.C:
			e.poll(ctx, now)
		case now := <-frameTicker.C:
			e.advance(now)
		}
	}
}

// Mood returns the most recently published state and stress score.
func (e *Engine) Mood() (emotion.State, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mood.state, e.mood.stress
}

// SetMode queues a classification mode change. Applied on the next poll.
func (e *Engine) SetMode(mode emotion.Mode) error {
	if _, err := emotion.ParseMode(mode.String()); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		e.pending = &pendingConfig{}
	}
	e.pending.mode = &mode

	return nil
}

// UpdateThresholds queues a threshold change. Applied on the next poll.
func (e *Engine) UpdateThresholds(thresholds emotion.Thresholds) error {
	if err := thresholds.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		e.pending = &pendingConfig{}
	}
	e.pending.thresholds = &thresholds

	return nil
}

// SetDwell queues a dwell change. Applied on the next poll.
func (e *Engine) SetDwell(dwell int) {
	if dwell < 1 {
		dwell = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		e.pending = &pendingConfig{}
	}
	e.pending.dwell = &dwell
}

func (e *Engine) poll(ctx context.Context, now time.Time) {
	e.applyPending()

	sample := e.normalizer.Normalize(e.source.Sample())
	raw, stress := e.classifier.Classify(sample)
	smoothed := e.smoother.Add(stress, sample.Degraded)
	committed, _ := e.tracker.Observe(raw, now)

	e.mu.Lock()
	e.mood = moodCell{state: committed, stress: stress, gen: e.mood.gen + 1}
	e.mu.Unlock()

	e.log.Debug().
		Float64("cpu", sample.CPU).
		Float64("ram", sample.RAM).
		Float64("net", sample.Net).
		Bool("degraded", sample.Degraded).
		Str("raw_state", raw.String()).
		Str("state", committed.String()).
		Float64("stress", stress).
		Float64("stress_avg", smoothed).
		Msg("")

	snapshot := &telemetry.Snapshot{
		Timestamp: now,
		State:     committed.String(),
		Stress:    stress,
		StressAvg: smoothed,
		CPU:       sample.CPU,
		RAM:       sample.RAM,
		Net:       sample.Net,
		Degraded:  sample.Degraded,
	}
	if err := e.collector.Record(ctx, snapshot); err != nil {
		e.log.Debug().Err(err).Msg("Failed to record telemetry snapshot")
	}
}

// applyPending hands queued config changes to the poll path, which owns
// the classifier and tracker.
func (e *Engine) applyPending() {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	if pending == nil {
		return
	}

	if pending.thresholds != nil {
		e.classifier = e.classifier.WithThresholds(*pending.thresholds)
		e.log.Info().Msg("Thresholds updated")
	}
	if pending.mode != nil {
		e.classifier = e.classifier.WithMode(*pending.mode)
		e.log.Info().Str("mode", pending.mode.String()).Msg("Classification mode changed")
	}
	if pending.dwell != nil {
		e.tracker.SetDwell(*pending.dwell)
	}
}

func (e *Engine) advance(now time.Time) {
	e.mu.Lock()
	mood := e.mood
	e.mu.Unlock()

	if mood.gen != e.lastGen {
		e.scheduler.SetStress(mood.stress)
		if mood.state != e.scheduler.State() {
			e.scheduler.Transition(mood.state, now)
		}
		e.lastGen = mood.gen
	}

	frame := e.scheduler.Tick(now)
	tooltip := fmt.Sprintf("Mood: %s (%.1f%% stress)", mood.state.Label(), mood.stress)

	if frame.Name == e.lastFrame && tooltip == e.lastTooltip {
		return
	}

	if err := e.renderer.Render(frame, tooltip); err != nil {
		e.log.ErrorWithCode(errors.New().Wrap(ErrRenderFailed, err)).Msg("Failed to render frame")
	}

	e.lastFrame = frame.Name
	e.lastTooltip = tooltip
}
