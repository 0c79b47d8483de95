package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsDefaultConfigWithInputRoot(t *testing.T) {
	cfg := Default()
	cfg.InputRoot = "manual.xml"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateRejectsMissingInputRoot(t *testing.T) {
	cfg := Default()
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := Default()
	cfg.InputRoot = "manual.xml"
	cfg.Modes = []string{"pdf"}
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsUnknownEncoding(t *testing.T) {
	cfg := Default()
	cfg.InputRoot = "manual.xml"
	cfg.Encoding = "ASCII-FOO"
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsPageWidthOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.InputRoot = "manual.xml"
	cfg.PageWidth = 5
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsUnknownLineEnding(t *testing.T) {
	cfg := Default()
	cfg.InputRoot = "manual.xml"
	cfg.LineEnding = "LFLF"
	assert.Error(t, ValidateConfig(cfg))
}
