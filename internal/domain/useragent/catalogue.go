package useragent

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

//go:embed presets.yaml
var builtinCatalogue []byte

// presetFile is the on-disk shape shared by the YAML and TOML formats.
type presetFile struct {
	Presets []types.Preset `yaml:"presets" toml:"presets"`
}

// Builtins returns the presets shipped with the engine.
func Builtins() ([]types.Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(builtinCatalogue, &file); err != nil {
		return nil, fmt.Errorf("failed to parse built-in presets: %w", err)
	}
	return file.Presets, nil
}

// LoadPresetFile reads presets from a .yaml, .yml or .toml file.
func LoadPresetFile(path string) ([]types.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var file presetFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported preset file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}

	return file.Presets, nil
}
