package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/glremix/glwrap/logutil"
)

// Config holds generator defaults read from the environment. Command line
// flags take precedence over every value here.
type Config struct {
	// Set via GLWRAP_DEBUG in the environment
	Debug string `env:"GLWRAP_DEBUG"`
	// Set via GLWRAP_MIN_VERSION in the environment
	MinVersion string `env:"GLWRAP_MIN_VERSION" envDefault:"1.0"`
	// Set via GLWRAP_MAX_VERSION in the environment
	MaxVersion string `env:"GLWRAP_MAX_VERSION" envDefault:"1.1"`
	// Set via GLWRAP_EXTENSIONS in the environment
	Extensions []string `env:"GLWRAP_EXTENSIONS" envSeparator:"," envDefault:"GL_ARB_multitexture"`
	// Set via GLWRAP_APIS in the environment
	APIs []string `env:"GLWRAP_APIS" envSeparator:"," envDefault:"gl,glcore"`
	// Set via GLWRAP_SYMBOL_PREFIX in the environment
	SymbolPrefix string `env:"GLWRAP_SYMBOL_PREFIX" envDefault:"glRemix_"`
}

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Debug = clean(cfg.Debug)
	cfg.MinVersion = clean(cfg.MinVersion)
	cfg.MaxVersion = clean(cfg.MaxVersion)
	cfg.SymbolPrefix = clean(cfg.SymbolPrefix)
	cfg.Extensions = cleanList(cfg.Extensions)
	cfg.APIs = cleanList(cfg.APIs)

	return cfg, nil
}

// LogLevel maps GLWRAP_DEBUG to a log level: unset or false is Info, 1 or
// any other true value is Debug, and 2 or higher (or "trace") is Trace.
func (c Config) LogLevel() slog.Level {
	if c.Debug == "" {
		return slog.LevelInfo
	}

	if strings.EqualFold(c.Debug, "trace") {
		return logutil.LevelTrace
	}

	if n, err := strconv.ParseInt(c.Debug, 10, 64); err == nil {
		switch {
		case n >= 2:
			return logutil.LevelTrace
		case n == 1:
			return slog.LevelDebug
		default:
			return slog.LevelInfo
		}
	}

	if d, err := strconv.ParseBool(c.Debug); err == nil && !d {
		return slog.LevelInfo
	}

	return slog.LevelDebug
}

func (c Config) AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"GLWRAP_DEBUG":         {"GLWRAP_DEBUG", c.Debug, "Show additional debug information (GLWRAP_DEBUG=1), or per-command trace output (GLWRAP_DEBUG=2)"},
		"GLWRAP_MIN_VERSION":   {"GLWRAP_MIN_VERSION", c.MinVersion, "Lowest core version to include (default \"1.0\")"},
		"GLWRAP_MAX_VERSION":   {"GLWRAP_MAX_VERSION", c.MaxVersion, "Highest core version to include (default \"1.1\")"},
		"GLWRAP_EXTENSIONS":    {"GLWRAP_EXTENSIONS", c.Extensions, "A comma separated list of extensions to include"},
		"GLWRAP_APIS":          {"GLWRAP_APIS", c.APIs, "A comma separated list of feature APIs to include (default \"gl,glcore\")"},
		"GLWRAP_SYMBOL_PREFIX": {"GLWRAP_SYMBOL_PREFIX", c.SymbolPrefix, "Prefix of the exported wrapper symbols (default \"glRemix_\")"},
	}
}

// Values returns the configuration as printable strings keyed by variable.
func (c Config) Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range c.AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(s string) string {
	return strings.Trim(s, "\"' ")
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

