package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rnwolfe/triage/internal/rank"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeBool   KeyType = "bool"
	KeyTypeEnum   KeyType = "enum"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	Type       KeyType
	Desc       string
	DefaultStr string
	// Choices lists accepted values for enum keys.
	Choices []string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the registry of settable keys, in TOML dot-notation.
var SchemaKeys = map[string]*KeyEntry{
	"scoring.base_url": {
		Type:       KeyTypeString,
		Desc:       "Root URL of the scoring service",
		DefaultStr: DefaultBaseURL,
		get:        func(cfg *Config) string { return cfg.Scoring.BaseURL },
		set: func(cfg *Config, v string) error {
			u, err := url.Parse(v)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid value %q for scoring.base_url: need an absolute http(s) URL", v)
			}
			cfg.Scoring.BaseURL = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Scoring.BaseURL = DefaultBaseURL },
	},
	"scoring.user_agent": {
		Type:  KeyTypeString,
		Desc:  "User-Agent sent to the scoring service (empty: triage/<version>)",
		get:   func(cfg *Config) string { return cfg.Scoring.UserAgent },
		set:   func(cfg *Config, v string) error { cfg.Scoring.UserAgent = v; return nil },
		unset: func(cfg *Config) { cfg.Scoring.UserAgent = "" },
	},
	"display.strategy": {
		Type:       KeyTypeEnum,
		Desc:       "Default sort strategy",
		DefaultStr: DefaultStrategy,
		Choices:    strategyNames(),
		get:        func(cfg *Config) string { return cfg.Display.Strategy },
		set: func(cfg *Config, v string) error {
			s, ok := rank.LookupStrategy(v)
			if !ok {
				return fmt.Errorf("invalid value %q for display.strategy (use one of: %s)", v, strings.Join(strategyNames(), ", "))
			}
			cfg.Display.Strategy = s.String()
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.Strategy = DefaultStrategy },
	},
	"display.color": {
		Type:       KeyTypeBool,
		Desc:       "Colorize output",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Display.ColorEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for display.color: %w", v, err)
			}
			cfg.Display.Color = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.Color = BoolPtr(true) },
	},
	"log.level": enumKey("log.level", "Log level", DefaultLogLevel, []string{"debug", "info", "warn", "error"},
		func(cfg *Config) *string { return &cfg.Log.Level }),
	"log.format": enumKey("log.format", "Log format", DefaultLogFmt, []string{"text", "json"},
		func(cfg *Config) *string { return &cfg.Log.Format }),
	"server.addr": {
		Type:       KeyTypeString,
		Desc:       "Listen address for `triage serve`",
		DefaultStr: DefaultAddr,
		get:        func(cfg *Config) string { return cfg.Server.Addr },
		set:        func(cfg *Config, v string) error { cfg.Server.Addr = v; return nil },
		unset:      func(cfg *Config) { cfg.Server.Addr = DefaultAddr },
	},
	"server.db_path": {
		Type:  KeyTypeString,
		Desc:  "SQLite database for `triage serve` (empty: data dir)",
		get:   func(cfg *Config) string { return cfg.Server.DBPath },
		set:   func(cfg *Config, v string) error { cfg.Server.DBPath = v; return nil },
		unset: func(cfg *Config) { cfg.Server.DBPath = "" },
	},
}

func enumKey(key, desc, def string, choices []string, field func(*Config) *string) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeEnum,
		Desc:       desc,
		DefaultStr: def,
		Choices:    choices,
		get:        func(cfg *Config) string { return *field(cfg) },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, c := range choices {
				if v == c {
					*field(cfg) = v
					return nil
				}
			}
			return fmt.Errorf("invalid value %q for %s (use one of: %s)", v, key, strings.Join(choices, ", "))
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

func strategyNames() []string {
	names := make([]string, len(rank.Strategies))
	for i, s := range rank.Strategies {
		names[i] = s.String()
	}
	return names
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts true/false, 1/0, yes/no and on/off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
