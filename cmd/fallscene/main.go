// fallscene plans and previews a deterministic falling-items scene.
//
// Usage:
//
//	fallscene list                 - List available compositions
//	fallscene plan                 - Print the spawn plan and its fingerprint
//	fallscene frame <n>            - Print the items visible at frame n
//	fallscene preview              - Play the scene in the terminal
//	fallscene export --out <dir>   - Write every frame as text
//	fallscene chart -o <file>      - Plot item trajectories
//	fallscene serve                - Serve the preview over SSH
//	fallscene history              - Browse and verify saved plans
//	fallscene config               - Print or install the default config
//
// Global flags:
//
//	-c, --composition <id>  - Composition to use (default: scene)
//	--config <path>         - Config file (default: ~/.fallscene/configs/scene.yaml)
//	--db <path>             - History database (default: ~/.fallscene/history.db)
//	--seed, --spawn-count, --fall-speed, --item-scale, ...
//	                        - Override individual scene parameters
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import compositions to register them
	_ "github.com/vovakirdan/fallscene/internal/compositions"
)

var (
	// Global flags
	flagComposition string
	flagConfig      string
	flagDBPath      string
	flagVerbose     bool
	flagClamp       bool

	// Scene overrides, applied only when set
	flagSeed       int64
	flagSpawnCount int
	flagFallSpeed  float64
	flagItemScale  float64
	flagBackground string
	flagAsset      string
	flagAssetKind  string
	flagWidth      int
	flagHeight     int
	flagFPS        int
	flagFrames     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fallscene",
	Short: "Fallscene - deterministic falling-items scene planner",
	Long: `Fallscene computes where every falling item of a scene is at any frame.

The same seed, item count, duration and frame size always produce the
same spawn plan, bit for bit, so any frame can be rendered on its own.

Available commands:
  list     - Show all compositions
  plan     - Print the spawn plan (and optionally save it)
  frame    - Print the visible items at one frame
  preview  - Play the scene in the terminal
  export   - Write frames as text files
  chart    - Plot trajectories with gonum/plot
  serve    - Serve the preview over SSH
  history  - Browse and verify saved plans
  config   - Print or install the default config

Examples:
  fallscene list
  fallscene plan --seed 7 --spawn-count 20
  fallscene frame 90 --format yaml
  fallscene preview -c scene-portrait
  fallscene serve --ssh :2222`,
}

func init() {
	pf := rootCmd.PersistentFlags()

	// Global persistent flags
	pf.StringVarP(&flagComposition, "composition", "c", "scene", "Composition ID")
	pf.StringVar(&flagConfig, "config", "", "Path to config file (default: search ~/.fallscene/configs and ./configs)")
	pf.StringVar(&flagDBPath, "db", "~/.fallscene/history.db", "Path to history database")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flagClamp, "clamp", false, "Clamp out-of-range parameters instead of rejecting them")

	// Scene overrides
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0-1000000)")
	pf.IntVar(&flagSpawnCount, "spawn-count", 0, "Number of items (1-500)")
	pf.Float64Var(&flagFallSpeed, "fall-speed", 0, "Fall speed multiplier (0.01-10)")
	pf.Float64Var(&flagItemScale, "item-scale", 0, "Item size in world units (0.01-5)")
	pf.StringVar(&flagBackground, "background", "", "Background color (#rrggbb)")
	pf.StringVar(&flagAsset, "asset", "", "Asset path or URL")
	pf.StringVar(&flagAssetKind, "asset-kind", "", "Asset kind (image or model)")
	pf.IntVar(&flagWidth, "width", 0, "Frame width in pixels")
	pf.IntVar(&flagHeight, "height", 0, "Frame height in pixels")
	pf.IntVar(&flagFPS, "fps", 0, "Frames per second")
	pf.IntVar(&flagFrames, "frames", 0, "Duration in frames")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
