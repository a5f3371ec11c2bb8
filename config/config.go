package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRACKER_"

// Config holds runtime configuration for the tracker and its session defaults.
// Fields are loaded from a JSON file, then overridden by TRACKER_* variables
// and finally by command-line flags.
type Config struct {
	Debug    bool `json:"debug" env:"DEBUG"`
	DarkMode bool `json:"dark_mode" env:"DARK_MODE"`

	// Sampling: SamplingNum samples every SamplingDen seconds.
	SamplingNum int     `json:"sampling_rate_num" env:"SAMPLING_NUM"`
	SamplingDen int     `json:"sampling_rate_den" env:"SAMPLING_DEN"`
	TrailLength int     `json:"trail_length" env:"TRAIL_LENGTH"`
	DefaultFPS  float64 `json:"default_fps" env:"DEFAULT_FPS"`

	SurfaceWidth  int     `json:"surface_width" env:"SURFACE_WIDTH"`
	SurfaceHeight int     `json:"surface_height" env:"SURFACE_HEIGHT"`
	MarkerRadius  float64 `json:"marker_radius" env:"MARKER_RADIUS"`

	SessionDB       string `json:"session_db" env:"SESSION_DB"`
	AutosaveSeconds int    `json:"autosave_seconds" env:"AUTOSAVE_SECONDS"`

	// HoldKey is the Tk keysym that suspends auto-pause while held.
	HoldKey string `json:"hold_key" env:"HOLD_KEY"`

	LastVideo string `json:"last_video"`
	LastCSV   string `json:"last_csv"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		SamplingNum:     1,
		SamplingDen:     1,
		TrailLength:     3,
		DefaultFPS:      30,
		SurfaceWidth:    960,
		SurfaceHeight:   540,
		MarkerRadius:    7,
		SessionDB:       defaultSessionDB(),
		AutosaveSeconds: 10,
		HoldKey:         "Shift_L",
	}
}

func defaultSessionDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "frame-tracker.db"
	}
	return filepath.Join(dir, "frame-tracker", "session.db")
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "frame-tracker.json"
	}
	return filepath.Join(dir, "frame-tracker", "config.json")
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.SamplingNum < 1 {
		c.SamplingNum = 1
	}
	if c.SamplingNum > 120 {
		c.SamplingNum = 120
	}
	if c.SamplingDen < 1 {
		c.SamplingDen = 1
	}
	if c.SamplingDen > 120 {
		c.SamplingDen = 120
	}
	if c.TrailLength < 0 {
		c.TrailLength = 0
	}
	if c.TrailLength > 100 {
		c.TrailLength = 100
	}
	if c.DefaultFPS <= 0 {
		c.DefaultFPS = 30
	}
	if c.SurfaceWidth < 200 {
		c.SurfaceWidth = 200
	}
	if c.SurfaceHeight < 150 {
		c.SurfaceHeight = 150
	}
	if c.MarkerRadius <= 0 {
		c.MarkerRadius = 7
	}
	if c.AutosaveSeconds < 1 {
		c.AutosaveSeconds = 1
	}
	if c.HoldKey == "" {
		c.HoldKey = "Shift_L"
	}
	return nil
}

// ApplyEnv overrides fields from TRACKER_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return c.Validate()
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
