// Package tab manages tabs and their Loading/Loaded/Closed lifecycle.
package tab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/id"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

const (
	// DefaultBlankURL is used when a tab is opened without a location
	DefaultBlankURL = "about:blank"
	// DefaultClosedRetention is how many closed tabs stay retrievable
	DefaultClosedRetention = 1024
)

// ProfileStore is the subset of the profile store that tracks tab ownership
type ProfileStore interface {
	AttachTab(profileID, tabID string, openFn func() bool) error
	DetachTab(profileID, tabID string, closeFn func() bool) error
}

// Publisher delivers notifications to the host
type Publisher interface {
	Publish(ev types.Event)
}

type entry struct {
	mu  sync.Mutex
	tab types.Tab // ID and ProfileID are immutable and may be read without mu
}

// Manager creates, navigates and closes tabs
type Manager struct {
	profiles  ProfileStore
	publisher Publisher
	logger    *zap.Logger
	blankURL  string
	retain    int

	mu     sync.RWMutex
	tabs   map[string]*entry
	order  []string // creation order
	closed []string // close order, oldest first
}

// NewManager creates a tab manager
func NewManager(profiles ProfileStore, publisher Publisher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
		blankURL:  DefaultBlankURL,
		retain:    DefaultClosedRetention,
		tabs:      make(map[string]*entry),
	}
}

// WithBlankURL overrides the location used for tabs opened without one
func (m *Manager) WithBlankURL(url string) *Manager {
	if url != "" {
		m.blankURL = url
	}
	return m
}

// WithClosedRetention bounds how many closed tabs are kept for Get. Once
// the bound is exceeded the oldest closed tab is forgotten. n must not be
// negative.
func (m *Manager) WithClosedRetention(n int) *Manager {
	if n >= 0 {
		m.retain = n
	}
	return m
}

// CreateTab opens a Loading tab owned by profileID
func (m *Manager) CreateTab(profileID, url string) (*types.Tab, error) {
	if url == "" {
		url = m.blankURL
	}

	now := time.Now()
	e := &entry{tab: types.Tab{
		ID:        string(id.NewTabID()),
		ProfileID: profileID,
		URL:       url,
		State:     types.TabLoading,
		CreatedAt: now,
		UpdatedAt: now,
	}}

	m.mu.Lock()
	m.tabs[e.tab.ID] = e
	m.order = append(m.order, e.tab.ID)
	m.mu.Unlock()

	err := m.profiles.AttachTab(profileID, e.tab.ID, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.tab.State != types.TabClosed
	})
	if err != nil {
		m.forget(e.tab.ID)
		return nil, fmt.Errorf("create tab: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	m.logger.Debug("tab created",
		zap.String("tab_id", e.tab.ID),
		zap.String("profile_id", profileID))
	return m.updated(&e.tab), nil
}

// Get returns a snapshot of a tab, including closed ones
func (m *Manager) Get(tabID string) (*types.Tab, error) {
	e, err := m.lookup(tabID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.tab
	return &t, nil
}

// Navigate points an open tab at url and puts it back in Loading
func (m *Manager) Navigate(tabID, url string) (*types.Tab, error) {
	if url == "" {
		url = m.blankURL
	}
	return m.transition(tabID, func(t *types.Tab) {
		t.URL = url
		t.State = types.TabLoading
	})
}

// ConfirmLoaded records the render layer's load confirmation. A non-empty
// title replaces the tab's title.
func (m *Manager) ConfirmLoaded(tabID, title string) (*types.Tab, error) {
	return m.transition(tabID, func(t *types.Tab) {
		t.State = types.TabLoaded
		if title != "" {
			t.Title = title
		}
	})
}

func (m *Manager) transition(tabID string, fn func(t *types.Tab)) (*types.Tab, error) {
	e, err := m.lookup(tabID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tab.State == types.TabClosed {
		return nil, fmt.Errorf("%w: tab %s is closed", types.ErrNotFound, tabID)
	}

	fn(&e.tab)
	e.tab.UpdatedAt = time.Now()
	return m.updated(&e.tab), nil
}

// CloseTab closes a tab and removes it from its profile. Closing a closed
// tab is a no-op.
func (m *Manager) CloseTab(tabID string) error {
	e, err := m.lookup(tabID)
	if err != nil {
		return err
	}

	closed := false
	closeFn := func() bool {
		closed = m.markClosed(e)
		return closed
	}
	err = m.profiles.DetachTab(e.tab.ProfileID, tabID, closeFn)
	if errors.Is(err, types.ErrNotFound) {
		// Profile already removed; its cascade owns the ownership set
		closeFn()
		err = nil
	}
	if closed {
		m.retire(tabID)
	}
	return err
}

// CloseOwned closes tabs whose profile has been removed. It returns the
// number of tabs that transitioned.
func (m *Manager) CloseOwned(tabIDs []string) int {
	closed := 0
	for _, tabID := range tabIDs {
		e, err := m.lookup(tabID)
		if err != nil {
			continue
		}
		if m.markClosed(e) {
			m.retire(tabID)
			closed++
		}
	}
	return closed
}

func (m *Manager) markClosed(e *entry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tab.State == types.TabClosed {
		return false
	}

	e.tab.State = types.TabClosed
	e.tab.UpdatedAt = time.Now()
	m.updated(&e.tab)
	m.logger.Debug("tab closed",
		zap.String("tab_id", e.tab.ID),
		zap.String("profile_id", e.tab.ProfileID))
	return true
}

// TabsForProfile returns the profile's open tabs in creation order
func (m *Manager) TabsForProfile(profileID string) []*types.Tab {
	m.mu.RLock()
	entries := make([]*entry, 0)
	for _, tabID := range m.order {
		if e := m.tabs[tabID]; e.tab.ProfileID == profileID {
			entries = append(entries, e)
		}
	}
	m.mu.RUnlock()

	out := make([]*types.Tab, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.tab.State != types.TabClosed {
			t := e.tab
			out = append(out, &t)
		}
		e.mu.Unlock()
	}
	return out
}

// OpenCount returns the number of tabs not yet closed
func (m *Manager) OpenCount() int {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.tabs))
	for _, e := range m.tabs {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		if e.tab.State != types.TabClosed {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (m *Manager) lookup(tabID string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.tabs[tabID]
	if !ok {
		return nil, fmt.Errorf("%w: tab %s", types.ErrNotFound, tabID)
	}
	return e, nil
}

// retire queues a closed tab for eviction and drops the oldest closed tabs
// beyond the retention bound
func (m *Manager) retire(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = append(m.closed, tabID)
	for len(m.closed) > m.retain {
		evicted := m.closed[0]
		m.closed = m.closed[1:]
		m.forgetLocked(evicted)
		m.logger.Debug("closed tab evicted", zap.String("tab_id", evicted))
	}
}

func (m *Manager) forget(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forgetLocked(tabID)
}

func (m *Manager) forgetLocked(tabID string) {
	delete(m.tabs, tabID)
	for i, v := range m.order {
		if v == tabID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// updated publishes a snapshot of t and returns it. Caller holds t's lock.
func (m *Manager) updated(t *types.Tab) *types.Tab {
	snap := *t
	if m.publisher != nil {
		ev := types.NewEvent(types.EventTabUpdated)
		tabCopy := snap
		ev.Tab = &tabCopy
		ev.ProfileID = t.ProfileID
		m.publisher.Publish(ev)
	}
	return &snap
}
