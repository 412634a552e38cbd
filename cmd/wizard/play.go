package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/platform/tui"
	"github.com/vovakirdan/little-wizard/internal/registry"
	"github.com/vovakirdan/little-wizard/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play a map",
	Long: `Start playing the given map, or the configured default.

Mouse:
  Click           - Walk there
  Drag over tree  - Mark it to fall in the drag direction
  Hold on marked  - Keep holding to start the chain
  Double-click    - Chop a tree by hand

Keyboard:
  Arrows/hjkl     - Move cursor
  Enter           - Walk to cursor
  H/J/K/L         - Push the tree under the cursor
  F               - Hold on the cursor (press again to let go)
  X               - Chop
  P / R / ?       - Pause / Restart / Help
  Esc, Q          - Quit

Examples:
  wizard play
  wizard play domino
  wizard play forest --seed 7 --pace brisk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mapID := cfg.Map.ID
	if len(args) == 1 {
		mapID = args[0]
	}
	if !registry.Exists(mapID) {
		return fmt.Errorf("unknown map %q, run 'wizard maps' to see available maps", mapID)
	}

	width, height := terminalSize()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return playMap(mapID, store, width, height)
}

// playMap runs one session on mapID in the current terminal.
func playMap(mapID string, store *storage.Store, width, height int) error {
	def, err := registry.Create(mapID)
	if err != nil {
		return err
	}

	restore := logToFile()
	defer restore()

	g, err := game.New(def, cfg, cfg.Map.Seed, game.WithLogger(logger.WithPrefix("game")))
	if err != nil {
		return err
	}
	logger.Info("session starting", "map", mapID, "seed", g.Seed())
	return tui.Run(g, store, cfg, width, height, logger)
}

func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStore opens the records database, or returns nil when storage is
// disabled or unavailable. Play continues without it.
func openStore() *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open records database", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}
