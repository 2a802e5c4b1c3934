// Package chart plots spawn plans with gonum/plot: item trajectories in world
// space and the number of items on screen over time.
package chart

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vovakirdan/fallscene/internal/scene"
)

// Options controls chart sampling and output size.
type Options struct {
	Step      int       // Frames between trajectory samples
	MaxItems  int       // Trajectories drawn, 0 means all
	MaxLegend int       // Legend is shown only up to this many trajectories
	Width     vg.Length // Output width
	Height    vg.Length // Output height
}

// DefaultOptions returns options for a 14x6 inch chart sampled every 5 frames.
func DefaultOptions() Options {
	return Options{
		Step:      5,
		MaxLegend: 12,
		Width:     14 * vg.Inch,
		Height:    6 * vg.Inch,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Step <= 0 {
		o.Step = d.Step
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// TrajectoryPoints samples the world-space path of plan record index every
// step frames over its visible window, clipped to the timeline. The last
// visible frame is always included.
func TrajectoryPoints(sim *scene.Simulator, index, step int) plotter.XYs {
	plan := sim.Plan()
	if index < 0 || index >= plan.Len() {
		return nil
	}
	if step <= 0 {
		step = 1
	}
	video := sim.Video()
	fallSpeed := sim.Config().FallSpeed
	rec := plan.Records[index]

	first, last := scene.VisibleFrames(rec.SpawnFrame, video.FPS, fallSpeed)
	if end := video.DurationInFrames - 1; last > end {
		last = end
	}
	if last < first {
		return nil
	}

	pts := make(plotter.XYs, 0, (last-first)/step+2)
	sample := func(frame int) {
		st := scene.EvaluateRecord(rec, frame, video.FPS, fallSpeed, plan.Key.XRange)
		if st.Visible {
			pts = append(pts, plotter.XY{X: st.X, Y: st.Y})
		}
	}
	for f := first; f <= last; f += step {
		sample(f)
	}
	if (last-first)%step != 0 {
		sample(last)
	}
	return pts
}

// VisibleCounts returns the number of visible items at every frame.
func VisibleCounts(sim *scene.Simulator) plotter.XYs {
	frames := sim.Video().DurationInFrames
	if frames < 1 {
		frames = 1
	}
	pts := make(plotter.XYs, frames)
	for f := 0; f < frames; f++ {
		pts[f] = plotter.XY{X: float64(f), Y: float64(len(sim.Frame(f)))}
	}
	return pts
}

// Trajectories writes a chart of every item's path to path. The format
// follows the file extension (png, svg, pdf, ...).
func Trajectories(sim *scene.Simulator, path string, opts Options) error {
	opts = opts.normalized()
	plan := sim.Plan()
	geom := sim.Geometry()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Item trajectories (seed %d, %d items)", sim.Config().Seed, plan.Len())
	p.X.Label.Text = "X (world units)"
	p.Y.Label.Text = "Y (world units)"
	p.X.Min, p.X.Max = -geom.HalfWidth, geom.HalfWidth
	p.Y.Min, p.Y.Max = scene.YEnd, scene.YStart
	p.Add(plotter.NewGrid())

	n := plan.Len()
	if opts.MaxItems > 0 && opts.MaxItems < n {
		n = opts.MaxItems
	}
	colors := Palette(n)
	showLegend := n <= opts.MaxLegend

	for i := 0; i < n; i++ {
		pts := TrajectoryPoints(sim, i, opts.Step)
		if len(pts) < 2 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart: trajectory %d: %w", i, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		if showLegend {
			p.Legend.Add(fmt.Sprintf("#%d @%d", i, plan.Records[i].SpawnFrame), line)
		}
	}

	// Configure legend
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("chart: save trajectories: %w", err)
	}
	return nil
}

// Occupancy writes a chart of the number of visible items per frame to path.
func Occupancy(sim *scene.Simulator, path string, opts Options) error {
	opts = opts.normalized()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Items on screen (seed %d)", sim.Config().Seed)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Visible items"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(VisibleCounts(sim))
	if err != nil {
		return fmt.Errorf("chart: occupancy: %w", err)
	}
	line.Color = Palette(1)[0]
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("chart: save occupancy: %w", err)
	}
	return nil
}

// Palette returns n evenly spaced hues.
func Palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = colorful.Hsl(360*float64(i)/float64(n), 0.7, 0.5)
	}
	return colors
}
