// Package config provides YAML-based configuration loading for the
// wizard: gesture thresholds, walking, felling, map choice, storage and
// the SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/little-wizard/internal/felling"
	"github.com/vovakirdan/little-wizard/internal/gesture"
	"github.com/vovakirdan/little-wizard/internal/movement"
)

// WizardConfig is the complete configuration.
type WizardConfig struct {
	Gesture  gesture.Config  `yaml:"gesture"`
	Movement movement.Config `yaml:"movement"`
	Felling  felling.Config  `yaml:"felling"`
	Map      MapConfig       `yaml:"map"`
	Display  DisplayConfig   `yaml:"display"`
	Storage  StorageConfig   `yaml:"storage"`
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
}

// MapConfig selects the map to play.
type MapConfig struct {
	ID   string `yaml:"id"`
	Dir  string `yaml:"dir"`  // Extra directory of YAML maps
	Seed int64  `yaml:"seed"` // 0 = random, generated maps only
}

// DisplayConfig controls the terminal front-end.
type DisplayConfig struct {
	TickRate  int `yaml:"tick_rate"`  // Simulation ticks per second
	CellWidth int `yaml:"cell_width"` // Terminal columns per grid cell
	// PixelsPerColumn converts terminal columns to gesture pixels so the
	// touch-tuned distance thresholds keep their meaning.
	PixelsPerColumn float64 `yaml:"pixels_per_column"`
	PixelsPerRow    float64 `yaml:"pixels_per_row"`
}

// StorageConfig controls session persistence.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig controls `wizard serve`.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
	MetricsAddr string `yaml:"metrics_addr"` // Empty disables the HTTP endpoint
	MaxSessions int    `yaml:"max_sessions"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() WizardConfig {
	return WizardConfig{
		Gesture:  gesture.DefaultConfig(),
		Movement: movement.DefaultConfig(),
		Felling:  felling.DefaultConfig(),
		Map: MapConfig{
			ID: "grove",
		},
		Display: DisplayConfig{
			TickRate:        60,
			CellWidth:       2,
			PixelsPerColumn: 20,
			PixelsPerRow:    40,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.wizard/wizard.db",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/wizard_host_ed25519",
			MetricsAddr: ":9090",
			MaxSessions: 32,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports the first invalid setting.
func (c WizardConfig) Validate() error {
	g := c.Gesture
	if g.TapGuaranteedMax <= 0 || g.SwipeGuaranteedMin < g.TapGuaranteedMax {
		return fmt.Errorf("config: gesture: need 0 < tap_guaranteed_max <= swipe_guaranteed_min")
	}
	if g.HoldMin < g.SwipeGuaranteedMin {
		return fmt.Errorf("config: gesture: hold_min must not be below swipe_guaranteed_min")
	}
	if g.SwipeMinDistance <= 0 || g.HoldMaxDistance < 0 {
		return fmt.Errorf("config: gesture: distances must be positive")
	}
	if c.Movement.Speed <= 0 {
		return fmt.Errorf("config: movement: speed must be positive")
	}
	if c.Felling.ChainStepDelay < 0 || c.Felling.HoldConfirm < time.Millisecond {
		return fmt.Errorf("config: felling: invalid timings")
	}
	switch c.Felling.Propagation {
	case felling.PropagateChain, felling.PropagateRadius:
	default:
		return fmt.Errorf("config: felling: unknown propagation %q", c.Felling.Propagation)
	}
	if c.Display.TickRate <= 0 || c.Display.CellWidth <= 0 {
		return fmt.Errorf("config: display: tick_rate and cell_width must be positive")
	}
	if c.Map.ID == "" {
		return fmt.Errorf("config: map: id is required")
	}
	return nil
}
