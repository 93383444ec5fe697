package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBaseURL  = "http://127.0.0.1:8000/api/tasks"
	DefaultStrategy = "balanced"
	DefaultLogLevel = "warn"
	DefaultLogFmt   = "text"
	DefaultAddr     = "127.0.0.1:8000"
)

// Environment overrides, applied on top of the file by Load.
const (
	EnvBaseURL  = "TRIAGE_API_BASE"
	EnvStrategy = "TRIAGE_STRATEGY"
	EnvLogLevel = "TRIAGE_LOG_LEVEL"
)

// Config holds the top-level triage configuration.
type Config struct {
	Scoring ScoringConfig `toml:"scoring"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
}

// ScoringConfig points the client at the scoring service.
type ScoringConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent,omitempty"`
}

type DisplayConfig struct {
	Strategy string `toml:"strategy"`
	// Color defaults to true when unset.
	Color *bool `toml:"color,omitempty"`
}

// ColorEnabled treats a missing value as true.
func (d DisplayConfig) ColorEnabled() bool {
	if d.Color == nil {
		return true
	}
	return *d.Color
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// ServerConfig configures `triage serve`.
type ServerConfig struct {
	Addr   string `toml:"addr"`
	DBPath string `toml:"db_path,omitempty"` // empty means Paths.DBFile
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := filepath.Join(envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), "triage")
	dataDir := filepath.Join(envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), "triage")

	return Paths{
		ConfigDir:  configDir,
		DataDir:    dataDir,
		ConfigFile: filepath.Join(configDir, "config.toml"),
		DBFile:     filepath.Join(dataDir, "scorer.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the config file and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads the config file only, filling unset fields with defaults.
// A missing file yields the defaults.
func LoadFile() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(GetPaths().ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", GetPaths().ConfigFile, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ApplyEnv overrides fields from TRIAGE_* environment variables.
func (c *Config) ApplyEnv() {
	c.Scoring.BaseURL = envOr(EnvBaseURL, c.Scoring.BaseURL)
	c.Display.Strategy = envOr(EnvStrategy, c.Display.Strategy)
	c.Log.Level = envOr(EnvLogLevel, c.Log.Level)
}

// DBPath resolves the scorer database location.
func (c *Config) DBPath() string {
	if c.Server.DBPath != "" {
		return c.Server.DBPath
	}
	return GetPaths().DBFile
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{BaseURL: DefaultBaseURL},
		Display: DisplayConfig{Strategy: DefaultStrategy, Color: BoolPtr(true)},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFmt},
		Server:  ServerConfig{Addr: DefaultAddr},
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Scoring.BaseURL == "" {
		c.Scoring.BaseURL = def.Scoring.BaseURL
	}
	if c.Display.Strategy == "" {
		c.Display.Strategy = def.Display.Strategy
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
