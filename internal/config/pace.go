package config

import "time"

// PacePreset is a named tempo for walking and chain reactions.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// ParsePace validates a preset name. Empty means normal.
func ParsePace(s string) (PacePreset, bool) {
	switch PacePreset(s) {
	case "", PaceNormal:
		return PaceNormal, true
	case PaceRelaxed, PaceBrisk:
		return PacePreset(s), true
	}
	return "", false
}

// ApplyPace adjusts walking speed and chain timing for a preset.
func ApplyPace(cfg *WizardConfig, preset PacePreset) {
	switch preset {
	case PaceRelaxed:
		cfg.Movement.Speed = 3
		cfg.Felling.ChainStepDelay = 250 * time.Millisecond
		cfg.Felling.HoldConfirm = 3 * time.Second
	case PaceBrisk:
		cfg.Movement.Speed = 8
		cfg.Felling.ChainStepDelay = 50 * time.Millisecond
		cfg.Felling.HoldConfirm = time.Second
	}
}
