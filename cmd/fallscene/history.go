package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fallscene/internal/platform/tui"
	"github.com/vovakirdan/fallscene/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryInteractive bool
	flagHistoryAll         bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved plans",
	Long: `List plans saved with 'fallscene plan --save', newest first.

Examples:
  fallscene history
  fallscene history --all --limit 50
  fallscene history -i
  fallscene history verify <id>`,
	Run: runHistory,
}

var historyVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Regenerate a saved plan and compare fingerprints",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryVerify,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole history",
	Run:   runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse the history in a table")
	historyCmd.Flags().BoolVar(&flagHistoryAll, "all", false, "Show every composition, not just --composition")

	historyCmd.AddCommand(historyVerifyCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openStore opens the history database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runHistory(cmd *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if flagHistoryInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	filter := flagComposition
	if flagHistoryAll || !cmd.Flags().Changed("composition") {
		filter = ""
	}

	entries, err := store.RecentRenders(filter, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No plans saved yet.")
		fmt.Println()
		fmt.Println("Run 'fallscene plan --save' to save one.")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-14s  %-7s  %-5s  %-6s  %-16s  %s\n", "ID", "Composition", "Seed", "Items", "Frames", "Fingerprint", "Date")
	fmt.Printf("  %-36s  %-14s  %-7s  %-5s  %-6s  %-16s  %s\n", "--", "-----------", "----", "-----", "------", "-----------", "----")

	// Print entries
	for _, e := range entries {
		fmt.Printf("  %-36s  %-14s  %-7d  %-5d  %-6d  %-16s  %s\n",
			e.ID, e.Composition, e.Seed, e.SpawnCount, e.TotalFrames, e.Fingerprint[:16],
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if filter == "" {
		printHistorySummary(store)
	}
}

// printHistorySummary prints saved and distinct plan counts per composition.
func printHistorySummary(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		cs := stats[id]
		fmt.Printf("  %-14s  %d saved, %d distinct plans, last %s\n",
			id, cs.Renders, cs.Fingerprints, cs.LastRendered.Format("2006-01-02 15:04"))
	}
}

func runHistoryVerify(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	v, err := store.Verify(args[0])
	if errors.Is(err, storage.ErrRenderNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no saved plan with ID %s\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	e := v.Entry
	fmt.Printf("Plan %s (%s, seed %d, %d items, %d frames at %dx%d)\n",
		e.ID, e.Composition, e.Seed, e.SpawnCount, e.TotalFrames, e.Width, e.Height)
	fmt.Printf("  recorded:     %s\n", v.Recorded)
	fmt.Printf("  stored:       %s\n", v.Stored)
	fmt.Printf("  regenerated:  %s\n", v.Regenerated)

	if !v.OK() {
		fmt.Println("MISMATCH")
		os.Exit(1)
	}
	fmt.Println("OK: plan is bit-identical")
}

func runHistoryDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteRender(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %s\n", args[0])
}

func runHistoryClear(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if err := store.ClearRenders(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("History cleared.")
}
