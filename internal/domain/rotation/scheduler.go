package rotation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// Registry selects presets for a tick
type Registry interface {
	PickRandom(category types.Category) (types.Preset, error)
}

// Validator confirms a preset is well-formed before it is applied
type Validator interface {
	Validate(value string) bool
}

// ProfileStore applies rotated values and tracks rotation state on profiles
type ProfileStore interface {
	RotateUserAgent(profileID, value string, generation uint64) (*types.Profile, error)
	SetRotation(profileID string, state *types.RotationState) error
}

// Recorder counts engine events
type Recorder interface {
	Record(event types.StatEvent)
}

// Publisher delivers notifications to the host
type Publisher interface {
	Publish(ev types.Event)
}

type handle struct {
	state    types.RotationState
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	ticks atomic.Uint64
}

func (h *handle) snapshot() types.RotationState {
	rs := h.state
	rs.Ticks = h.ticks.Load()
	return rs
}

// Scheduler owns every rotation timer
type Scheduler struct {
	registry  Registry
	validator Validator
	store     ProfileStore
	recorder  Recorder
	publisher Publisher
	logger    *zap.Logger

	mu         sync.Mutex
	handles    map[string]*handle
	generation atomic.Uint64
}

// NewScheduler creates a scheduler with no active rotations
func NewScheduler(registry Registry, validator Validator, store ProfileStore, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		registry:  registry,
		validator: validator,
		store:     store,
		logger:    logger,
		handles:   make(map[string]*handle),
	}
}

// WithRecorder counts rotation ticks in recorder
func (s *Scheduler) WithRecorder(recorder Recorder) *Scheduler {
	s.recorder = recorder
	return s
}

// WithPublisher sends tick warnings to publisher
func (s *Scheduler) WithPublisher(publisher Publisher) *Scheduler {
	s.publisher = publisher
	return s
}

// Start arms a rotation for profileID, replacing any existing one. The
// previous timer has exited by the time Start returns.
func (s *Scheduler) Start(profileID string, intervalMs int64, category types.Category) (*types.RotationState, error) {
	if intervalMs <= 0 {
		return nil, fmt.Errorf("%w: %dms", types.ErrInvalidInterval, intervalMs)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{
		state: types.RotationState{
			ProfileID:  profileID,
			IntervalMs: intervalMs,
			Category:   category,
			Active:     true,
			StartedAt:  time.Now(),
			Generation: s.generation.Add(1),
		},
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	h.interval = h.state.Interval()

	s.mu.Lock()
	if err := s.store.SetRotation(profileID, &h.state); err != nil {
		s.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("start rotation: %w", err)
	}
	prev := s.handles[profileID]
	s.handles[profileID] = h
	go s.run(h, prev)
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
		s.logger.Info("rotation replaced",
			zap.String("profile_id", profileID),
			zap.Int64("interval_ms", intervalMs),
			zap.Int64("previous_interval_ms", prev.state.IntervalMs))
	} else {
		s.logger.Info("rotation started",
			zap.String("profile_id", profileID),
			zap.Int64("interval_ms", intervalMs),
			zap.String("category", string(category)))
	}

	rs := h.snapshot()
	return &rs, nil
}

// Stop cancels the profile's rotation and waits for its timer to exit.
// Stopping a profile with no rotation is a no-op.
func (s *Scheduler) Stop(profileID string) {
	s.mu.Lock()
	h, ok := s.handles[profileID]
	if ok {
		delete(s.handles, profileID)
		if err := s.store.SetRotation(profileID, nil); err != nil && !errors.Is(err, types.ErrNotFound) {
			s.logger.Warn("failed to clear rotation state", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	h.cancel()
	<-h.done
	s.logger.Info("rotation stopped",
		zap.String("profile_id", profileID),
		zap.Uint64("ticks", h.ticks.Load()))
}

// StopAll cancels every rotation and waits for all timers to exit
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	handles := s.handles
	s.handles = make(map[string]*handle)
	for profileID := range handles {
		if err := s.store.SetRotation(profileID, nil); err != nil && !errors.Is(err, types.ErrNotFound) {
			s.logger.Warn("failed to clear rotation state", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.cancel()
	}
	for _, h := range handles {
		<-h.done
	}

	if len(handles) > 0 {
		s.logger.Info("all rotations stopped", zap.Int("count", len(handles)))
	}
}

// Status returns the profile's rotation state, if one is active
func (s *Scheduler) Status(profileID string) (types.RotationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[profileID]
	if !ok {
		return types.RotationState{}, false
	}
	return h.snapshot(), true
}

// Active returns every active rotation, oldest first
func (s *Scheduler) Active() []types.RotationState {
	s.mu.Lock()
	out := make([]types.RotationState, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, h.snapshot())
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b types.RotationState) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return out
}

// Count returns the number of active rotations
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *Scheduler) run(h *handle, prev *handle) {
	defer close(h.done)

	if prev != nil {
		select {
		case <-prev.done:
		case <-h.ctx.Done():
			return
		}
	}

	timer := time.NewTimer(h.interval)
	defer timer.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-timer.C:
		}

		// Cancellation may have raced the timer
		if h.ctx.Err() != nil {
			return
		}

		if !s.tick(h) {
			s.release(h)
			return
		}
		timer.Reset(h.interval)
	}
}

// tick applies one random preset. It returns false when the profile no
// longer exists.
func (s *Scheduler) tick(h *handle) bool {
	profileID := h.state.ProfileID

	preset, err := s.registry.PickRandom(h.state.Category)
	if err != nil {
		s.warn(profileID, "rotation tick skipped: "+err.Error())
		return true
	}

	if !s.validator.Validate(preset.Value) {
		s.record(types.StatValidationFailure)
		s.warn(profileID, fmt.Sprintf("rotation tick skipped: preset %s is not a valid user agent", preset.ID))
		return true
	}

	if _, err := s.store.RotateUserAgent(profileID, preset.Value, h.state.Generation); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.logger.Debug("rotation target gone", zap.String("profile_id", profileID))
			return false
		}
		s.warn(profileID, "rotation tick failed: "+err.Error())
		return true
	}

	h.ticks.Add(1)
	s.record(types.StatRotationTick)
	s.logger.Debug("rotation tick",
		zap.String("profile_id", profileID),
		zap.String("preset_id", preset.ID))
	return true
}

// release drops h from the map if it is still the profile's current handle
func (s *Scheduler) release(h *handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handles[h.state.ProfileID] == h {
		delete(s.handles, h.state.ProfileID)
	}
}

func (s *Scheduler) warn(profileID, message string) {
	s.logger.Warn(message, zap.String("profile_id", profileID))
	if s.publisher == nil {
		return
	}
	ev := types.NewEvent(types.EventRotationWarning)
	ev.ProfileID = profileID
	ev.Message = message
	s.publisher.Publish(ev)
}

func (s *Scheduler) record(event types.StatEvent) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}
