// Package config loads and validates a run's options:
// input root filename, output root filename/directory, one or more output
// modes, an optional encoding name, an optional line-ending choice, and a
// page width override. An optional `.xmlman.kdl` project file
// (kdl_config.go) supplies defaults; CLI flags override them field by field.
package config

// DefaultPageWidth is the page width used when nothing overrides it.
const DefaultPageWidth = 77

// Config is one run's resolved options.
type Config struct {
	InputRoot  string
	OutputRoot string
	Modes      []string
	Encoding   string
	LineEnding string
	PageWidth  int
	Strict     bool // promotes every recoverable diagnostic to fatal
}

// Default returns a Config with every field at its spec-mandated default.
func Default() *Config {
	return &Config{
		Modes:      []string{"text"},
		Encoding:   "UTF8",
		LineEnding: "LF",
		PageWidth:  DefaultPageWidth,
	}
}

// Load resolves a run's Config from an optional `.xmlman.kdl` file found in
// dir, falling back to Default() when none exists.
func Load(dir string) (*Config, error) {
	cfg, err := LoadKDL(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}
	return cfg, nil
}

// Overrides holds CLI-flag values that should replace a loaded Config's
// fields when set: the KDL file provides defaults, CLI flags override them.
type Overrides struct {
	InputRoot  string
	OutputRoot string
	Modes      []string
	Encoding   string
	LineEnding string
	PageWidth  int
	Strict     bool
}

// Apply overwrites cfg's fields with every non-zero field in o.
func (cfg *Config) Apply(o Overrides) {
	if o.InputRoot != "" {
		cfg.InputRoot = o.InputRoot
	}
	if o.OutputRoot != "" {
		cfg.OutputRoot = o.OutputRoot
	}
	if len(o.Modes) > 0 {
		cfg.Modes = o.Modes
	}
	if o.Encoding != "" {
		cfg.Encoding = o.Encoding
	}
	if o.LineEnding != "" {
		cfg.LineEnding = o.LineEnding
	}
	if o.PageWidth != 0 {
		cfg.PageWidth = o.PageWidth
	}
	if o.Strict {
		cfg.Strict = true
	}
}
