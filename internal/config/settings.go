package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Image settings
	JPEGQuality     int `json:"jpeg_quality" yaml:"jpeg_quality"`
	CoverArtMaxSize int `json:"cover_art_max_size" yaml:"cover_art_max_size"`

	// Tag settings
	ID3Version int `json:"id3_version" yaml:"id3_version"`

	// Batch settings
	MaxConcurrentFiles int `json:"max_concurrent_files" yaml:"max_concurrent_files"`

	// Remote images
	HTTPTimeout float64 `json:"http_timeout" yaml:"http_timeout"`

	// Prompts
	ConfirmRemove bool `json:"confirm_remove" yaml:"confirm_remove"`
}

// ConfigError represents an invalid or unreadable configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		JPEGQuality:        90,
		CoverArtMaxSize:    0,
		ID3Version:         3,
		MaxConcurrentFiles: 4,
		HTTPTimeout:        30,
		ConfirmRemove:      true,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "id3-image", "config.json")
}

// Load reads settings from a JSON or YAML file.
//
// A missing file is not an error: defaults are returned.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, &ConfigError{Message: fmt.Sprintf("Error reading configuration file: %v", err)}
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("Error parsing configuration file %s: %v", path, err)}
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// LoadDefault resolves settings the way the command line tools do.
//
// A .env file in the working directory is loaded first if present. The
// file path is explicitPath, else $ID3IMAGE_CONFIG, else DefaultPath().
// A missing DefaultPath() yields defaults; a missing explicit or
// $ID3IMAGE_CONFIG path is a *ConfigError. Environment overrides are
// applied last.
func LoadDefault(explicitPath string) (*Settings, error) {
	_ = godotenv.Load()

	path := explicitPath
	if path == "" {
		path = os.Getenv("ID3IMAGE_CONFIG")
	}

	// Only the implicit default path may be absent.
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("Error reading configuration file: %v", err)}
		}
	} else {
		path = DefaultPath()
	}

	settings := DefaultSettings()
	if path != "" {
		var err error
		settings, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}
	return settings, nil
}

// ApplyEnv overrides fields from ID3IMAGE_* environment variables.
func (s *Settings) ApplyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"ID3IMAGE_JPEG_QUALITY", &s.JPEGQuality},
		{"ID3IMAGE_ID3_VERSION", &s.ID3Version},
		{"ID3IMAGE_MAX_CONCURRENT", &s.MaxConcurrentFiles},
		{"ID3IMAGE_MAX_SIZE", &s.CoverArtMaxSize},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return &ConfigError{Message: fmt.Sprintf("Invalid %s: %q is not an integer", v.key, raw)}
		}
		*v.dst = n
	}

	if raw := os.Getenv("ID3IMAGE_HTTP_TIMEOUT"); raw != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return &ConfigError{Message: fmt.Sprintf("Invalid ID3IMAGE_HTTP_TIMEOUT: %q is not a number", raw)}
		}
		s.HTTPTimeout = f
	}

	return s.Validate()
}

// Validate checks that every field is within range.
func (s *Settings) Validate() error {
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		return &ConfigError{Message: fmt.Sprintf("jpeg_quality must be between 1 and 100, got %d", s.JPEGQuality)}
	}
	if s.ID3Version != 3 && s.ID3Version != 4 {
		return &ConfigError{Message: fmt.Sprintf("id3_version must be 3 or 4, got %d", s.ID3Version)}
	}
	if s.MaxConcurrentFiles < 1 {
		return &ConfigError{Message: fmt.Sprintf("max_concurrent_files must be at least 1, got %d", s.MaxConcurrentFiles)}
	}
	if s.CoverArtMaxSize < 0 {
		return &ConfigError{Message: fmt.Sprintf("cover_art_max_size must not be negative, got %d", s.CoverArtMaxSize)}
	}
	if s.HTTPTimeout < 0 {
		return &ConfigError{Message: fmt.Sprintf("http_timeout must not be negative, got %v", s.HTTPTimeout)}
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
