package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/scene"
	"github.com/vovakirdan/fallscene/internal/storage"
)

var (
	flagPlanSave    bool
	flagPlanRecords bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the spawn plan of a composition",
	Long: `Compute the viewport and spawn plan and print a summary with the plan
fingerprint. Equal fingerprints mean bit-identical plans.

Examples:
  fallscene plan
  fallscene plan --records
  fallscene plan --seed 7 --save`,
	Run: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&flagPlanSave, "save", false, "Save the plan to the history database")
	planCmd.Flags().BoolVar(&flagPlanRecords, "records", false, "Print every spawn record")
}

func runPlan(cmd *cobra.Command, _ []string) {
	logger := newLogger()
	ls := mustLoadScene(cmd, logger)
	sim := ls.Sim
	geom := sim.Geometry()
	video := sim.Video()
	cfg := sim.Config()
	plan := sim.Plan()

	fmt.Printf("Composition:  %s (%s)\n", ls.Composition.ID, ls.Composition.Title)
	if ls.ConfigPath != "" {
		fmt.Printf("Config:       %s\n", ls.ConfigPath)
	}
	fmt.Printf("Video:        %dx%d @ %d fps, %d frames (%.1fs)\n",
		video.Width, video.Height, video.FPS, video.DurationInFrames, video.Seconds())
	fmt.Printf("Asset:        %s %s\n", cfg.Asset.Kind, cfg.Asset.Source)
	fmt.Printf("Scene:        seed %d, %d items, fall %.2f, scale %.2f, bg %s\n",
		cfg.Seed, cfg.SpawnCount, cfg.FallSpeed, cfg.ItemScale, cfg.BackgroundColor)
	fmt.Printf("Viewport:     half %.4f x %.4f, margin %.2f, x range ±%.6f, fov %.4f°\n",
		geom.HalfWidth, geom.HalfHeight, geom.Margin, geom.XRange, geom.FOVDegrees)

	first, last := scene.VisibleFrames(0, video.FPS, cfg.FallSpeed)
	fmt.Printf("Lifetime:     %d frames on screen\n", last-first+1)
	fmt.Printf("Fingerprint:  %s\n", scene.Fingerprint(plan))

	if flagPlanRecords {
		fmt.Println()
		fmt.Printf("  %-5s  %-6s  %-20s  %-20s  %s\n", "#", "Frame", "X0", "Rotation", "Drift")
		fmt.Printf("  %-5s  %-6s  %-20s  %-20s  %s\n", "-", "-----", "--", "--------", "-----")
		for i, r := range plan.Records {
			fmt.Printf("  %-5d  %-6d  %-20.15f  %-20.15f  %.15f\n", i, r.SpawnFrame, r.X0, r.RotationSpeed, r.Drift)
		}
	}

	if !flagPlanSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entry, err := store.SaveRender(ls.Composition.ID, sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving plan: %v\n", err)
		os.Exit(1)
	}
	logger.Info("plan saved", "id", entry.ID, "records", plan.Len())
	fmt.Println()
	fmt.Printf("Saved as %s\n", entry.ID)
	fmt.Printf("Verify with: fallscene history verify %s\n", entry.ID)
}
