package profile

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/id"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// Validator checks User-Agent strings
type Validator interface {
	Validate(value string) bool
}

// Recorder counts engine events
type Recorder interface {
	Record(event types.StatEvent)
}

// Publisher delivers notifications to the host
type Publisher interface {
	Publish(ev types.Event)
}

type entry struct {
	mu      sync.Mutex
	profile types.Profile
	deleted bool // set once under mu; the entry is already out of the map
}

// Store owns every live profile
type Store struct {
	validator Validator
	recorder  Recorder
	publisher Publisher
	logger    *zap.Logger

	mu       sync.RWMutex
	entries  map[string]*entry
	order    []string
	activeID string
}

// NewStore creates an empty store
func NewStore(validator Validator, recorder Recorder, publisher Publisher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		validator: validator,
		recorder:  recorder,
		publisher: publisher,
		logger:    logger,
		entries:   make(map[string]*entry),
	}
}

// Create registers a new empty profile. Duplicate names are allowed.
func (s *Store) Create(name, icon string) *types.Profile {
	e := &entry{profile: types.Profile{
		ID:        string(id.NewProfileID()),
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		CreatedAt: time.Now(),
		Tabs:      []string{},
	}}

	// Lock the entry before it becomes visible so the creation event is
	// published ahead of any change another caller makes to it.
	e.mu.Lock()
	defer e.mu.Unlock()

	s.mu.Lock()
	s.entries[e.profile.ID] = e
	s.order = append(s.order, e.profile.ID)
	s.mu.Unlock()

	s.logger.Info("profile created",
		zap.String("profile_id", e.profile.ID),
		zap.String("name", e.profile.Name))
	return s.changed(&e.profile)
}

// Get returns a snapshot of one profile
func (s *Store) Get(profileID string) (*types.Profile, error) {
	var out *types.Profile
	err := s.withEntry(profileID, func(p *types.Profile) error {
		out = p.Clone()
		return nil
	})
	return out, err
}

// GetAll returns snapshots of every profile in creation order
func (s *Store) GetAll() []*types.Profile {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.order))
	for _, profileID := range s.order {
		entries = append(entries, s.entries[profileID])
	}
	s.mu.RUnlock()

	out := make([]*types.Profile, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.deleted {
			out = append(out, e.profile.Clone())
		}
		e.mu.Unlock()
	}
	return out
}

// Count returns the number of live profiles
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SwitchActive makes profileID the foreground profile
func (s *Store) SwitchActive(profileID string) (*types.Profile, error) {
	s.mu.Lock()
	e, ok := s.entries[profileID]
	if ok {
		s.activeID = profileID
	}
	s.mu.Unlock()

	if !ok {
		return nil, notFound(profileID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, notFound(profileID)
	}

	s.logger.Debug("active profile switched", zap.String("profile_id", profileID))
	return e.profile.Clone(), nil
}

// Active returns the foreground profile, or nil when none is set
func (s *Store) Active() *types.Profile {
	s.mu.RLock()
	activeID := s.activeID
	s.mu.RUnlock()

	if activeID == "" {
		return nil
	}
	p, err := s.Get(activeID)
	if err != nil {
		return nil
	}
	return p
}

// ApplyUserAgent validates value and makes it the profile's current User-Agent
func (s *Store) ApplyUserAgent(profileID, value string) (*types.Profile, error) {
	return s.apply(profileID, value, nil)
}

// RotateUserAgent is ApplyUserAgent for scheduled rotation. The tick is
// counted on the profile only while generation is still its current rotation.
func (s *Store) RotateUserAgent(profileID, value string, generation uint64) (*types.Profile, error) {
	return s.apply(profileID, value, &generation)
}

func (s *Store) apply(profileID, value string, generation *uint64) (*types.Profile, error) {
	var out *types.Profile
	err := s.withEntry(profileID, func(p *types.Profile) error {
		if !s.validator.Validate(value) {
			s.record(types.StatValidationFailure)
			return fmt.Errorf("%w: profile %s", types.ErrInvalidUserAgent, profileID)
		}

		ua := value
		p.CurrentUserAgent = &ua
		if generation != nil && p.Rotation != nil && p.Rotation.Generation == *generation {
			p.Rotation.Ticks++
		}
		s.record(types.StatApply)
		out = s.changed(p)
		return nil
	})
	return out, err
}

// SetRotation records the profile's rotation state; nil clears it
func (s *Store) SetRotation(profileID string, state *types.RotationState) error {
	return s.withEntry(profileID, func(p *types.Profile) error {
		if state == nil {
			if p.Rotation == nil {
				return nil
			}
			p.Rotation = nil
		} else {
			rs := *state
			p.Rotation = &rs
		}
		s.changed(p)
		return nil
	})
}

// AttachTab adds tabID to the profile's open tab set. openFn, when not nil,
// runs under the profile lock and can veto the attach for a tab that was
// closed before it was attached.
func (s *Store) AttachTab(profileID, tabID string, openFn func() bool) error {
	return s.withEntry(profileID, func(p *types.Profile) error {
		if openFn != nil && !openFn() {
			return nil
		}
		if !p.HasTab(tabID) {
			p.Tabs = append(p.Tabs, tabID)
		}
		s.changed(p)
		return nil
	})
}

// DetachTab runs closeFn under the profile lock and, when it reports a
// transition, removes tabID from the profile's open tab set.
func (s *Store) DetachTab(profileID, tabID string, closeFn func() bool) error {
	return s.withEntry(profileID, func(p *types.Profile) error {
		if !closeFn() {
			return nil
		}
		if i := slices.Index(p.Tabs, tabID); i >= 0 {
			p.Tabs = slices.Delete(p.Tabs, i, i+1)
			s.changed(p)
		}
		return nil
	})
}

// Remove takes the profile out of the store and returns the tabs it owned.
// Once Remove returns, every other operation on profileID fails with
// ErrNotFound. Cancelling rotation and closing the returned tabs is the
// caller's job.
func (s *Store) Remove(profileID string) ([]string, error) {
	s.mu.Lock()
	e, ok := s.entries[profileID]
	if ok {
		delete(s.entries, profileID)
		s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == profileID })
		if s.activeID == profileID {
			s.activeID = ""
		}
	}
	s.mu.Unlock()

	if !ok {
		return nil, notFound(profileID)
	}

	// Waits for any in-flight apply or tick on this profile
	e.mu.Lock()
	e.deleted = true
	tabs := e.profile.Tabs
	e.profile.Tabs = nil
	e.profile.Rotation = nil
	e.mu.Unlock()

	s.logger.Info("profile removed",
		zap.String("profile_id", profileID),
		zap.Int("tabs", len(tabs)))
	return tabs, nil
}

// withEntry runs fn with the profile locked
func (s *Store) withEntry(profileID string, fn func(p *types.Profile) error) error {
	s.mu.RLock()
	e, ok := s.entries[profileID]
	s.mu.RUnlock()
	if !ok {
		return notFound(profileID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return notFound(profileID)
	}
	return fn(&e.profile)
}

// changed publishes a snapshot of p and returns it. Caller holds p's lock.
func (s *Store) changed(p *types.Profile) *types.Profile {
	snap := p.Clone()
	if s.publisher != nil {
		ev := types.NewEvent(types.EventProfileChanged)
		ev.Profile = snap.Clone()
		ev.ProfileID = p.ID
		s.publisher.Publish(ev)
	}
	return snap
}

func (s *Store) record(event types.StatEvent) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}

func notFound(profileID string) error {
	return fmt.Errorf("%w: profile %s", types.ErrNotFound, profileID)
}
