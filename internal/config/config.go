// Package config loads and saves the dicomloop YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 6
	MaxFPS           = 60
	DefaultExtension = ".dcm"
)

// Config is the viewer configuration. Zero values are replaced by defaults on load.
type Config struct {
	// Directory holding the DICOM series to play.
	Directory string `yaml:"directory"`

	// Extension selects which directory entries are treated as DICOM files.
	Extension string `yaml:"extension"`

	// FPS is the playback rate in frames per second.
	FPS int `yaml:"fps"`

	// ExtraFields lists additional tags shown under the three standard metadata lines.
	ExtraFields []string `yaml:"extra_fields,omitempty"`

	// ShowStats shows the pixel statistics line on start.
	ShowStats bool `yaml:"show_stats"`

	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ExportConfig controls the export command.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	GIF       bool   `yaml:"gif"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Extension: DefaultExtension,
		FPS:       DefaultFPS,
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "dicomloop.log"),
		},
		Export: ExportConfig{
			OutputDir: "export",
			GIF:       true,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps must be 1-%d, got %d", MaxFPS, c.FPS)
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension must start with '.', got %q", c.Extension)
	}
	return nil
}

// Interval is the delay between two playback ticks.
func (c *Config) Interval() time.Duration {
	return FPSInterval(c.FPS)
}

// FPSInterval converts a frame rate into a tick interval. fps <= 0 falls back to DefaultFPS.
func FPSInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
