// Package engine composes the profile, tab, rotation and user-agent
// components and owns the operations that span more than one of them.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/domain/events"
	"github.com/GriffinCanCode/profile-engine/internal/domain/profile"
	"github.com/GriffinCanCode/profile-engine/internal/domain/rotation"
	"github.com/GriffinCanCode/profile-engine/internal/domain/stats"
	"github.com/GriffinCanCode/profile-engine/internal/domain/tab"
	"github.com/GriffinCanCode/profile-engine/internal/domain/useragent"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// Gauges receives live object counts after every change
type Gauges interface {
	SetProfilesActive(count int)
	SetTabsOpen(count int)
	SetRotationsActive(count int)
}

// Options configures a new engine
type Options struct {
	BlankURL           string
	MaxUserAgentLength int
	EventBuffer        int
	// ClosedTabRetention bounds how many closed tabs stay retrievable; zero keeps the default
	ClosedTabRetention int

	// Builtins replaces the shipped preset catalogue when not nil
	Builtins []types.Preset
	// PresetsFile names an optional YAML or TOML file of extra custom presets
	PresetsFile string

	Logger *zap.Logger
	Sink   stats.Sink
	Gauges Gauges
}

// Engine is the profile / tab / user-agent engine
type Engine struct {
	codec     *useragent.Codec
	registry  *useragent.Registry
	profiles  *profile.Store
	tabs      *tab.Manager
	scheduler *rotation.Scheduler
	stats     *stats.Aggregator
	bus       *events.Bus

	eventBuffer int
	gauges      Gauges
	logger      *zap.Logger
}

// New builds an engine from opts
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	builtins := opts.Builtins
	if builtins == nil {
		var err error
		if builtins, err = useragent.Builtins(); err != nil {
			return nil, err
		}
	}

	codec := useragent.NewCodec(opts.MaxUserAgentLength)
	registry, err := useragent.NewRegistry(codec, builtins, logger.Named("presets"))
	if err != nil {
		return nil, fmt.Errorf("failed to build preset registry: %w", err)
	}

	if opts.PresetsFile != "" {
		extra, err := useragent.LoadPresetFile(opts.PresetsFile)
		if err != nil {
			return nil, err
		}
		added := registry.LoadCustom(extra)
		logger.Info("loaded preset file",
			zap.String("path", opts.PresetsFile),
			zap.Int("added", added),
			zap.Int("skipped", len(extra)-added))
	}

	agg := stats.NewAggregator()
	if opts.Sink != nil {
		agg.WithSink(opts.Sink)
	}
	bus := events.NewBus(logger.Named("events"))
	profiles := profile.NewStore(codec, agg, bus, logger.Named("profiles"))
	tabs := tab.NewManager(profiles, bus, logger.Named("tabs")).WithBlankURL(opts.BlankURL)
	if opts.ClosedTabRetention > 0 {
		tabs.WithClosedRetention(opts.ClosedTabRetention)
	}
	scheduler := rotation.NewScheduler(registry, codec, profiles, logger.Named("rotation")).
		WithRecorder(agg).
		WithPublisher(bus)

	e := &Engine{
		codec:       codec,
		registry:    registry,
		profiles:    profiles,
		tabs:        tabs,
		scheduler:   scheduler,
		stats:       agg,
		bus:         bus,
		eventBuffer: opts.EventBuffer,
		gauges:      opts.Gauges,
		logger:      logger,
	}
	e.refreshGauges()
	return e, nil
}

// Subscribe opens a notification subscription. A non-positive buffer uses
// the engine's configured event buffer.
func (e *Engine) Subscribe(buffer int) *events.Subscription {
	if buffer <= 0 {
		buffer = e.eventBuffer
	}
	return e.bus.Subscribe(buffer)
}

// Subscribers returns the number of open notification subscriptions
func (e *Engine) Subscribers() int {
	return e.bus.Subscribers()
}

// Statistics returns the current counters
func (e *Engine) Statistics() types.Statistics {
	return e.stats.Snapshot()
}

// Shutdown stops every rotation and closes every subscription. The engine
// stays usable for reads.
func (e *Engine) Shutdown() {
	e.scheduler.StopAll()
	e.bus.CloseAll()
	e.refreshGauges()
	e.logger.Info("engine shut down")
}

func (e *Engine) refreshGauges() {
	if e.gauges == nil {
		return
	}
	e.gauges.SetProfilesActive(e.profiles.Count())
	e.gauges.SetTabsOpen(e.tabs.OpenCount())
	e.gauges.SetRotationsActive(e.scheduler.Count())
}
