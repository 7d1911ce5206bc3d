package driver

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"comma/internal/diag"
	"comma/internal/prof"
	"comma/internal/trace"
)

// ConfigFileName is the conventional name of the configuration file.
const ConfigFileName = "comma.toml"

// Config controls a checking run.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
	Driver      RunConfig         `toml:"driver"`
	Profile     ProfileConfig     `toml:"profile"`
}

// DiagnosticsConfig is the [diagnostics] table.
type DiagnosticsConfig struct {
	// Max bounds diagnostics kept per unit; 0 means unlimited.
	Max           int  `toml:"max"`
	NoteOverrides bool `toml:"note_overrides"`
	Dedup         bool `toml:"dedup"`

	// MinSeverity is the lowest severity kept: info, warning or error.
	MinSeverity string `toml:"min_severity"`
}

// TraceConfig is the [trace] table.
type TraceConfig struct {
	Level  string `toml:"level"`
	Sink   string `toml:"sink"`
	Output string `toml:"output"`
}

// RunConfig is the [driver] table.
type RunConfig struct {
	// Jobs limits units checked at once; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`

	// FailFast cancels remaining units after the first unit with errors.
	FailFast bool `toml:"fail_fast"`
}

// ProfileConfig is the [profile] table. Empty paths disable the output.
type ProfileConfig struct {
	CPU   string `toml:"cpu"`
	Mem   string `toml:"mem"`
	Trace string `toml:"trace"`
}

func (p ProfileConfig) paths() prof.Paths {
	return prof.Paths{CPU: p.CPU, Mem: p.Mem, Trace: p.Trace}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Dedup: true, MinSeverity: "info"},
		Trace:       TraceConfig{Level: "off", Sink: "stream", Output: "-"},
	}
}

// LoadConfig reads a TOML configuration file. Keys that are absent keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validateConfig(&cfg, meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes configuration from TOML text.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := validateConfig(&cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative, got %d", cfg.Diagnostics.Max)
	}
	if meta.IsDefined("diagnostics", "min_severity") {
		if _, err := diag.ParseSeverity(cfg.Diagnostics.MinSeverity); err != nil {
			return fmt.Errorf("[diagnostics].min_severity: %w", err)
		}
	}
	if meta.IsDefined("driver", "jobs") && cfg.Driver.Jobs < 0 {
		return fmt.Errorf("[driver].jobs must not be negative, got %d", cfg.Driver.Jobs)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return fmt.Errorf("[trace].level: %w", err)
		}
	}
	if meta.IsDefined("trace", "sink") {
		if _, err := trace.ParseSink(cfg.Trace.Sink); err != nil {
			return fmt.Errorf("[trace].sink: %w", err)
		}
	}
	if meta.IsDefined("trace", "output") && strings.TrimSpace(cfg.Trace.Output) == "" {
		return fmt.Errorf("[trace].output must not be empty")
	}
	return nil
}

// TracerConfig converts the [trace] table for trace.New.
func (c Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	sink, err := trace.ParseSink(c.Trace.Sink)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{Level: level, Sink: sink, OutputPath: c.Trace.Output}, nil
}
