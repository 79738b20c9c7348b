package config

import (
	"fmt"
	"os"
	"time"

	"github.com/milk9111/marblebounce/session"
	"gopkg.in/yaml.v3"
)

// Config is the editor and level server configuration file.
type Config struct {
	Editor EditorConfig `yaml:"editor"`
	Server ServerConfig `yaml:"server"`
}

type EditorConfig struct {
	// ClickDuration and ClickDistance separate a click from a drag when placing things.
	ClickDuration time.Duration `yaml:"click_duration"`
	ClickDistance float64       `yaml:"click_distance"`
	MaxUndo       int           `yaml:"max_undo"`
	HitTolerance  float64       `yaml:"hit_tolerance"`
	// Template names the scaffold used for new levels.
	Template    string `yaml:"template"`
	TemplateDir string `yaml:"template_dir"`
	// AppName keys the local draft store.
	AppName         string `yaml:"app_name"`
	DisableAutosave bool   `yaml:"disable_autosave"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	DBPath       string        `yaml:"db_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// RequestTimeout bounds catalog work per request; zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads and parses a YAML configuration file.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", filename, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filename, err)
	}
	return c, nil
}

// Parse decodes YAML and fills in defaults for missing fields.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	e := &c.Editor
	if e.ClickDuration <= 0 {
		e.ClickDuration = time.Second
	}
	if e.ClickDistance <= 0 {
		e.ClickDistance = 5
	}
	if e.HitTolerance <= 0 {
		e.HitTolerance = 0.05
	}
	if e.Template == "" {
		e.Template = "default"
	}
	if e.AppName == "" {
		e.AppName = "marblebounce"
	}
	if e.Width <= 0 {
		e.Width = 960
	}
	if e.Height <= 0 {
		e.Height = 720
	}

	s := &c.Server
	if s.Addr == "" {
		s.Addr = ":3000"
	}
	if s.DBPath == "" {
		s.DBPath = "levels.db"
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 10 * time.Second
	}
}

// Thresholds returns the click detection window for gestures.
func (e EditorConfig) Thresholds() session.Thresholds {
	return session.Thresholds{ClickDuration: e.ClickDuration, ClickDistance: e.ClickDistance}
}

// ApplyEnv overrides server settings from PORT, LEVELS_DB_PATH, READ_TIMEOUT, WRITE_TIMEOUT and REQUEST_TIMEOUT.
func (s *ServerConfig) ApplyEnv() {
	if port := getEnv("PORT", ""); port != "" {
		s.Addr = ":" + port
	}
	s.DBPath = getEnv("LEVELS_DB_PATH", s.DBPath)
	s.ReadTimeout = getEnvAsDuration("READ_TIMEOUT", s.ReadTimeout)
	s.WriteTimeout = getEnvAsDuration("WRITE_TIMEOUT", s.WriteTimeout)
	s.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", s.RequestTimeout)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
