package config

import (
	_ "embed"
)

//go:embed defaults/wizard.yaml
var defaultWizardYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWizardYAML
}
