package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/portfolio-lab/summit/parameter"
)

// Config is the file, env and flag layered configuration of both binaries
type Config struct {
	Game    GameConfig    `toml:"game" yaml:"game"`
	Cry     CryConfig     `toml:"cry" yaml:"cry"`
	Storage StorageConfig `toml:"storage" yaml:"storage"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// GameConfig tunes the climbing game
type GameConfig struct {
	// Seed 0 picks a time-based seed
	Seed     uint64 `toml:"seed" yaml:"seed"`
	TickRate int    `toml:"tick_rate" yaml:"tick_rate"`
	Sound    bool   `toml:"sound" yaml:"sound"`
	// Keymap is an optional TOML file overriding key bindings
	Keymap string `toml:"keymap" yaml:"keymap"`
}

// CryConfig tunes capture and classification
type CryConfig struct {
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate"`
	FFTSize    int     `toml:"fft_size" yaml:"fft_size"`
	IntervalMS int     `toml:"interval_ms" yaml:"interval_ms"`
	Threshold  float64 `toml:"threshold" yaml:"threshold"`
	// Source is "mic" or a WAV file path
	Source string `toml:"source" yaml:"source"`
}

// StorageConfig locates the database
type StorageConfig struct {
	DataDir string `toml:"data_dir" yaml:"data_dir"`
}

// LogConfig controls file logging
type LogConfig struct {
	Debug bool `toml:"debug" yaml:"debug"`
}

// SourceMic selects live capture
const SourceMic = "mic"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TickRate: parameter.TickRate,
		},
		Cry: CryConfig{
			SampleRate: parameter.CrySampleRate,
			FFTSize:    parameter.CryFFTSize,
			IntervalMS: int(parameter.CryInterval / time.Millisecond),
			Threshold:  parameter.CryVolumeThreshold,
			Source:     SourceMic,
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
	}
}

// Load reads path over the defaults, a missing file yields the defaults
// .toml is decoded with BurntSushi/toml, .yaml and .yml with yaml.v3
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", filepath.Ext(path))
	}

	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overlays SUMMIT_* variables, unparsable values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SUMMIT_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Game.Seed = n
		}
	}

	if v := os.Getenv("SUMMIT_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Game.Sound = b
		}
	}

	if v := os.Getenv("SUMMIT_KEYMAP"); v != "" {
		c.Game.Keymap = v
	}

	if v := os.Getenv("SUMMIT_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}

	if v := os.Getenv("SUMMIT_CRY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Cry.Threshold = f
		}
	}

	if v := os.Getenv("SUMMIT_CRY_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cry.IntervalMS = n
		}
	}

	if v := os.Getenv("SUMMIT_CRY_SOURCE"); v != "" {
		c.Cry.Source = v
	}
}

// normalize resets out-of-range values to defaults
func (c *Config) normalize() {
	def := Default()
	if c.Game.TickRate <= 0 {
		c.Game.TickRate = def.Game.TickRate
	}
	if c.Cry.SampleRate <= 0 {
		c.Cry.SampleRate = def.Cry.SampleRate
	}
	if c.Cry.FFTSize < 32 || c.Cry.FFTSize&(c.Cry.FFTSize-1) != 0 {
		c.Cry.FFTSize = def.Cry.FFTSize
	}
	if c.Cry.IntervalMS <= 0 {
		c.Cry.IntervalMS = def.Cry.IntervalMS
	}
	if c.Cry.Threshold <= 0 {
		c.Cry.Threshold = def.Cry.Threshold
	}
	if c.Cry.Source == "" {
		c.Cry.Source = SourceMic
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = def.Storage.DataDir
	}
}

// TickInterval is the fixed timestep for the configured tick rate
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}

// CryInterval is the classification period
func (c *Config) CryInterval() time.Duration {
	return time.Duration(c.Cry.IntervalMS) * time.Millisecond
}
