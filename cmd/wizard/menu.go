package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/little-wizard/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick maps interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for records.
When you leave a map you return to the menu.

Examples:
  wizard menu
  wizard menu --pace relaxed
  wizard menu --maps ./my-maps`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	for {
		result, err := tui.RunMenu(store, width, height)
		if err != nil {
			return err
		}
		if result.Width > 0 {
			width, height = result.Width, result.Height
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.MapID != "":
			if err := playMap(result.MapID, store, width, height); err != nil {
				fmt.Fprintf(os.Stderr, "Error running map: %v\n", err)
			}
		}
	}
}
