package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fallscene/internal/asset"
	"github.com/vovakirdan/fallscene/internal/platform/tui"
	"github.com/vovakirdan/fallscene/internal/scene"
)

var (
	flagAssetRoot   string
	flagSnapshotDir string
	flagNoProbe     bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the scene in the terminal",
	Long: `Play the composition in the terminal, looping over the timeline.

Controls:
  Space/P          - Pause / resume
  Left/Right, h/l  - Step one frame
  PgUp/PgDn, H/L   - Seek one second
  Home/R           - Back to frame 0
  Ctrl+S           - Save the frame as text
  ?                - Toggle help
  Q                - Quit

Examples:
  fallscene preview
  fallscene preview -c scene-portrait --fall-speed 3
  fallscene preview --asset ./item.png --asset-root .`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagAssetRoot, "asset-root", ".", "Directory that root-relative asset paths resolve against")
	previewCmd.Flags().StringVar(&flagSnapshotDir, "snapshots", "~/.fallscene/snapshots", "Directory for Ctrl+S snapshots")
	previewCmd.Flags().BoolVar(&flagNoProbe, "no-probe", false, "Do not read the image asset to size items")
}

func runPreview(cmd *cobra.Command, _ []string) {
	logger := newLogger()
	ls := mustLoadScene(cmd, logger)

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	opts := tui.PreviewOptions{
		Name:        ls.Composition.ID,
		SnapshotDir: expandHome(flagSnapshotDir),
		Logger:      logger,
	}
	if !flagNoProbe {
		opts.ItemAspect = probeItemAspect(ls.Sim.Config().Asset, flagAssetRoot, logger)
	}

	if err := tui.Run(ls.Sim, width, height, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// probeItemAspect reads the image header of an image asset. Failures are
// logged and fall back to square items.
func probeItemAspect(a scene.Asset, root string, logger *log.Logger) float64 {
	if a.Kind != scene.AssetImage {
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := asset.NewProber(root).Probe(ctx, a.Source)
	if err != nil {
		logger.Warn("cannot probe asset, drawing square items", "source", a.Source, "error", err)
		return 1
	}
	logger.Debug("asset probed", "format", info.Format, "width", info.Width, "height", info.Height)
	return info.Aspect()
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
