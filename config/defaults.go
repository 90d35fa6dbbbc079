package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Texture sampling settings, named after the GL enums they map to.
const (
	FilterLinear  = "linear"
	FilterNearest = "nearest"

	WrapRepeat = "repeat"
	WrapClamp  = "clamp"
	WrapMirror = "mirror"
)

type TextureConfig struct {
	Name   string `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Path   string `json:"path" yaml:"path" toml:"path" mapstructure:"path"`
	Strict bool   `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty" mapstructure:"strict"`
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty" toml:"filter,omitempty" mapstructure:"filter"`
	Wrap   string `json:"wrap,omitempty" yaml:"wrap,omitempty" toml:"wrap,omitempty" mapstructure:"wrap"`
}

// tomlFile wraps the list since TOML documents must be tables.
type tomlFile struct {
	Textures []TextureConfig `toml:"textures"`
}

// LoadConfig reads and parses the textures file. The format follows the
// extension: .json (default), .yml/.yaml or .toml.
func LoadConfig(configPath string) ([]TextureConfig, error) {
	var configs []TextureConfig
	configData, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Configuration file '%s' not found. Returning empty configuration.", configPath)
			return configs, nil // Return empty slice, not an error
		}
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	var raw interface{}
	switch ext(configPath) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(configData, &raw)
	case ".toml":
		var doc map[string]interface{}
		err = toml.Unmarshal(configData, &doc)
		raw = doc["textures"]
	default:
		err = json.Unmarshal(configData, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}

	if raw != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &configs,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("failed to decode configuration file '%s': %w", configPath, err)
		}
	}
	log.Printf("Loaded %d texture configurations from %s.", len(configs), configPath)
	return configs, nil
}

// SaveConfig saves the texture configurations back to configPath.
func SaveConfig(configPath string, configs []TextureConfig) error {
	// Sort configs by name for consistency before saving
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})

	var (
		data []byte
		err  error
	)
	switch ext(configPath) {
	case ".yml", ".yaml":
		data, err = yaml.Marshal(configs)
	case ".toml":
		data, err = toml.Marshal(tomlFile{Textures: configs})
	default:
		data, err = json.MarshalIndent(configs, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal updated configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write updated configuration file '%s': %w", configPath, err)
	}
	return nil
}

// Validate checks every entry and returns the first problem found.
func Validate(configs []TextureConfig) error {
	names := make(map[string]bool)
	for i, c := range configs {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("texture %d has no name", i+1)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate texture name '%s'", c.Name)
		}
		names[c.Name] = true
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("texture '%s' has no path", c.Name)
		}
		switch c.Filter {
		case "", FilterLinear, FilterNearest:
		default:
			return fmt.Errorf("texture '%s' has unknown filter '%s'", c.Name, c.Filter)
		}
		switch c.Wrap {
		case "", WrapRepeat, WrapClamp, WrapMirror:
		default:
			return fmt.Errorf("texture '%s' has unknown wrap mode '%s'", c.Name, c.Wrap)
		}
	}
	return nil
}

// Find returns the texture with the given name.
func Find(configs []TextureConfig, name string) (TextureConfig, bool) {
	for _, c := range configs {
		if c.Name == name {
			return c, true
		}
	}
	return TextureConfig{}, false
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
