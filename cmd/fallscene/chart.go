package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/chart"
)

var (
	flagChartOut       string
	flagChartOccupancy string
	flagChartStep      int
	flagChartMaxItems  int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plot item trajectories",
	Long: `Plot the path of every item in world space, and optionally the number
of items on screen per frame. The image format follows the file extension
(png, svg, pdf, ...).

Examples:
  fallscene chart -o trajectories.png
  fallscene chart -o paths.svg --max-items 10 --occupancy count.png`,
	Run: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&flagChartOut, "out", "o", "trajectories.png", "Trajectory chart file")
	chartCmd.Flags().StringVar(&flagChartOccupancy, "occupancy", "", "Also write an items-on-screen chart to this file")
	chartCmd.Flags().IntVar(&flagChartStep, "step", 5, "Frames between trajectory samples")
	chartCmd.Flags().IntVar(&flagChartMaxItems, "max-items", 0, "Plot only the first N items (0 = all)")
}

func runChart(cmd *cobra.Command, _ []string) {
	logger := newLogger()
	ls := mustLoadScene(cmd, logger)

	opts := chart.DefaultOptions()
	opts.Step = flagChartStep
	opts.MaxItems = flagChartMaxItems

	if err := chart.Trajectories(ls.Sim, flagChartOut, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagChartOut)

	if flagChartOccupancy != "" {
		if err := chart.Occupancy(ls.Sim, flagChartOccupancy, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", flagChartOccupancy)
	}
}
