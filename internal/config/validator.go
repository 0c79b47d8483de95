package config

import (
	"fmt"

	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/transcode"
)

const (
	minPageWidth = 20
	maxPageWidth = 500
)

var validModes = map[string]bool{
	resources.ModeText:            true,
	resources.ModeLegacyHypertext: true,
	resources.ModeWebHypertext:    true,
	resources.ModeDebug:           true,
}

var validLineEndings = map[string]bool{
	"CR": true, "LF": true, "CRLF": true, "LFCR": true,
}

// Validator checks a loaded Config's invocation rules before a run starts:
// page width bounds, encoding name validity, mode name validity.
type Validator struct{}

// NewValidator creates a configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports the first rule cfg violates, or nil if cfg is runnable.
func (v *Validator) Validate(cfg *Config) error {
	if cfg.InputRoot == "" {
		return fmt.Errorf("input root filename is required")
	}
	if len(cfg.Modes) == 0 {
		return fmt.Errorf("at least one output mode is required")
	}
	for _, m := range cfg.Modes {
		if !validModes[m] {
			return fmt.Errorf("unknown output mode %q", m)
		}
	}
	if cfg.Encoding != "" {
		if _, ok := transcode.LookupTarget(cfg.Encoding); !ok {
			return fmt.Errorf("unknown encoding %q", cfg.Encoding)
		}
	}
	if cfg.LineEnding != "" && !validLineEndings[cfg.LineEnding] {
		return fmt.Errorf("unknown line ending %q", cfg.LineEnding)
	}
	if cfg.PageWidth < minPageWidth || cfg.PageWidth > maxPageWidth {
		return fmt.Errorf("page width %d out of range %d..%d", cfg.PageWidth, minPageWidth, maxPageWidth)
	}
	return nil
}

// ValidateConfig is a convenience wrapper for a one-off validation.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
