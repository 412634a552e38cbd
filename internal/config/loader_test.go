package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/little-wizard/internal/felling"
)

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))

	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("felling:\n  propagation: radius\n  chain_step_delay: 40ms\nmap:\n  id: domino\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, felling.PropagateRadius, cfg.Felling.Propagation)
	assert.Equal(t, 40*time.Millisecond, cfg.Felling.ChainStepDelay)
	assert.Equal(t, "domino", cfg.Map.ID)
	assert.Equal(t, 2*time.Second, cfg.Felling.HoldConfirm, "unset fields keep defaults")
	assert.Equal(t, 150.0, cfg.Gesture.SwipeMinDistance)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("gesture: [oops"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("felling:\n  propagation: sideways\n"), 0o600))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WizardConfig)
	}{
		{"tap above swipe", func(c *WizardConfig) { c.Gesture.TapGuaranteedMax = time.Second }},
		{"hold below swipe", func(c *WizardConfig) { c.Gesture.HoldMin = 10 * time.Millisecond }},
		{"zero swipe distance", func(c *WizardConfig) { c.Gesture.SwipeMinDistance = 0 }},
		{"zero speed", func(c *WizardConfig) { c.Movement.Speed = 0 }},
		{"zero tick rate", func(c *WizardConfig) { c.Display.TickRate = 0 }},
		{"no map", func(c *WizardConfig) { c.Map.ID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyPace(t *testing.T) {
	cfg := Default()
	ApplyPace(&cfg, PaceBrisk)
	assert.Equal(t, 50*time.Millisecond, cfg.Felling.ChainStepDelay)
	assert.Equal(t, 8.0, cfg.Movement.Speed)

	normal := Default()
	ApplyPace(&normal, PaceNormal)
	assert.Equal(t, Default(), normal)

	p, ok := ParsePace("")
	assert.True(t, ok)
	assert.Equal(t, PaceNormal, p)
	_, ok = ParsePace("ludicrous")
	assert.False(t, ok)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.wizard/wizard.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wizard", "wizard.db"), got)

	got, err = ExpandHome("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}
