package engine

import (
	"errors"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// ApplyUserAgent sets the profile's User-Agent to value
func (e *Engine) ApplyUserAgent(profileID, value string) (*types.Profile, error) {
	return e.profiles.ApplyUserAgent(profileID, value)
}

// ApplyPreset applies a preset by id
func (e *Engine) ApplyPreset(profileID, presetID string) (*types.Profile, error) {
	if _, err := e.profiles.Get(profileID); err != nil {
		return nil, err
	}
	preset, err := e.registry.Get(presetID)
	if err != nil {
		return nil, err
	}
	return e.profiles.ApplyUserAgent(profileID, preset.Value)
}

// ApplyRandom applies a random preset from category; empty matches all
func (e *Engine) ApplyRandom(profileID string, category types.Category) (*types.Profile, error) {
	if _, err := e.profiles.Get(profileID); err != nil {
		return nil, err
	}
	preset, err := e.registry.PickRandom(category)
	if err != nil {
		return nil, err
	}
	return e.profiles.ApplyUserAgent(profileID, preset.Value)
}

// ListPresets returns presets in category; empty matches all
func (e *Engine) ListPresets(category types.Category) []types.Preset {
	return e.registry.ListPresetsByCategory(category)
}

// Categories returns the preset categories in use
func (e *Engine) Categories() []types.Category {
	return e.registry.Categories()
}

// AddCustomPreset adds a custom preset
func (e *Engine) AddCustomPreset(value string, category types.Category, name string) (types.Preset, error) {
	preset, err := e.registry.AddCustomPreset(value, category, name)
	if errors.Is(err, types.ErrInvalidUserAgent) {
		e.stats.Record(types.StatValidationFailure)
	}
	return preset, err
}

// RemoveCustomPreset removes a custom preset; built-ins are not found
func (e *Engine) RemoveCustomPreset(presetID string) error {
	return e.registry.RemoveCustomPreset(presetID)
}

// Validate reports whether value is a well-formed User-Agent
func (e *Engine) Validate(value string) bool {
	ok := e.codec.Validate(value)
	if !ok {
		e.stats.Record(types.StatValidationFailure)
	}
	return ok
}

// Parse extracts structured fields from value. Malformed input yields an
// all-unknown result and is counted as a parse failure.
func (e *Engine) Parse(value string) types.ParsedUserAgent {
	parsed, ok := e.codec.Parse(value)
	if !ok {
		e.stats.Record(types.StatParseFailure)
	}
	return parsed
}
