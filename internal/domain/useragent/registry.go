package useragent

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/shared/id"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// Validator checks User-Agent strings before they enter the registry
type Validator interface {
	Validate(value string) bool
}

// Registry holds built-in and custom presets
type Registry struct {
	validator Validator
	logger    *zap.Logger

	mu       sync.RWMutex
	builtins []types.Preset // immutable after construction
	custom   []types.Preset // creation order
	ids      map[string]bool
}

// NewRegistry creates a registry seeded with builtins. Built-in presets must
// carry unique ids and valid values.
func NewRegistry(validator Validator, builtins []types.Preset, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		validator: validator,
		logger:    logger,
		builtins:  make([]types.Preset, 0, len(builtins)),
		ids:       make(map[string]bool, len(builtins)),
	}

	for _, p := range builtins {
		if p.ID == "" {
			return nil, fmt.Errorf("built-in preset %q has no id", p.Name)
		}
		if r.ids[p.ID] {
			return nil, fmt.Errorf("duplicate built-in preset id %q", p.ID)
		}
		if !validator.Validate(p.Value) {
			return nil, fmt.Errorf("built-in preset %q: %w", p.ID, types.ErrInvalidUserAgent)
		}
		p.Custom = false
		r.builtins = append(r.builtins, p)
		r.ids[p.ID] = true
	}

	return r, nil
}

// ListPresets returns built-ins first, then custom presets in creation order
func (r *Registry) ListPresets() []types.Preset {
	return r.ListPresetsByCategory("")
}

// ListPresetsByCategory returns presets in category; an empty category matches all
func (r *Registry) ListPresetsByCategory(category types.Category) []types.Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(category)
}

// filter must be called with mu held
func (r *Registry) filter(category types.Category) []types.Preset {
	out := make([]types.Preset, 0, len(r.builtins)+len(r.custom))
	for _, set := range [][]types.Preset{r.builtins, r.custom} {
		for _, p := range set {
			if category == "" || p.Category == category {
				out = append(out, p)
			}
		}
	}
	return out
}

// Get returns the preset with the given id
func (r *Registry) Get(presetID string) (types.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, set := range [][]types.Preset{r.builtins, r.custom} {
		for _, p := range set {
			if p.ID == presetID {
				return p, nil
			}
		}
	}
	return types.Preset{}, fmt.Errorf("%w: preset %s", types.ErrNotFound, presetID)
}

// Categories returns every category in use, in first-seen order
func (r *Registry) Categories() []types.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[types.Category]bool)
	var out []types.Category
	for _, p := range r.filter("") {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// AddCustomPreset validates value and appends it as a custom preset with a fresh id
func (r *Registry) AddCustomPreset(value string, category types.Category, name string) (types.Preset, error) {
	if !r.validator.Validate(value) {
		return types.Preset{}, fmt.Errorf("%w: preset value rejected", types.ErrInvalidUserAgent)
	}

	preset := types.Preset{
		Name:     strings.TrimSpace(name),
		Value:    value,
		Category: types.Category(strings.TrimSpace(string(category))),
		Custom:   true,
	}

	r.mu.Lock()
	for {
		preset.ID = string(id.NewPresetID())
		if !r.ids[preset.ID] {
			break
		}
	}
	r.ids[preset.ID] = true
	r.custom = append(r.custom, preset)
	r.mu.Unlock()

	r.logger.Info("custom preset added",
		zap.String("preset_id", preset.ID),
		zap.String("category", string(preset.Category)))
	return preset, nil
}

// LoadCustom adds presets from an external source, skipping invalid entries.
// It returns the number added.
func (r *Registry) LoadCustom(presets []types.Preset) int {
	added := 0
	for _, p := range presets {
		if _, err := r.AddCustomPreset(p.Value, p.Category, p.Name); err != nil {
			r.logger.Warn("skipping invalid preset",
				zap.String("name", p.Name),
				zap.Error(err))
			continue
		}
		added++
	}
	return added
}

// RemoveCustomPreset removes a custom preset. Built-in ids are reported as not found.
func (r *Registry) RemoveCustomPreset(presetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.custom {
		if p.ID == presetID {
			r.custom = append(r.custom[:i:i], r.custom[i+1:]...)
			delete(r.ids, presetID)
			r.logger.Info("custom preset removed", zap.String("preset_id", presetID))
			return nil
		}
	}
	return fmt.Errorf("%w: custom preset %s", types.ErrNotFound, presetID)
}

// PickRandom returns a uniformly chosen preset in category; an empty category matches all
func (r *Registry) PickRandom(category types.Category) (types.Preset, error) {
	r.mu.RLock()
	candidates := r.filter(category)
	r.mu.RUnlock()

	if len(candidates) == 0 {
		if category == "" {
			return types.Preset{}, types.ErrNoPresetsAvailable
		}
		return types.Preset{}, fmt.Errorf("%w: category %s", types.ErrNoPresetsAvailable, category)
	}
	return candidates[rand.IntN(len(candidates))], nil
}
