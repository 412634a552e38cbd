package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/little-wizard/internal/storage"
)

var flagTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show felling records",
	Long: `Display totals per map and the best sessions overall.

Examples:
  wizard stats
  wizard stats --top 20
  wizard stats --db ./wizard.db`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagTop, "top", 10, "Number of sessions to list")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	total, err := store.TotalFelled()
	if err != nil {
		return err
	}
	perMap, err := store.AllMapStats()
	if err != nil {
		return err
	}
	top, err := store.TopSessions(flagTop)
	if err != nil {
		return err
	}

	fmt.Printf("Trees felled: %s\n", humanize.Comma(int64(total)))
	fmt.Println()

	if len(perMap) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'wizard play' to fell the first tree!")
		return nil
	}

	fmt.Printf("  %-12s  %-8s  %-8s  %-10s  %s\n", "Map", "Sessions", "Felled", "Best chain", "Last played")
	fmt.Printf("  %-12s  %-8s  %-8s  %-10s  %s\n", "---", "--------", "------", "----------", "-----------")
	for _, m := range perMap {
		fmt.Printf("  %-12s  %-8d  %-8s  %-10d  %s\n",
			m.MapID, m.Sessions, humanize.Comma(int64(m.Felled)), m.BestChain, humanize.Time(m.LastPlayed))
	}

	fmt.Println()
	fmt.Printf("Top %d sessions:\n", len(top))
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-8s  %s\n", "Rank", "Map", "Felled", "Chain", "Time", "Played")
	for i, s := range top {
		fmt.Printf("  %-4d  %-12s  %-6d  %-5d  %-8s  %s\n",
			i+1, s.MapID, s.Felled, s.LongestChain, s.Duration().Round(time.Second), humanize.Time(s.StartedAt))
	}
	return nil
}
