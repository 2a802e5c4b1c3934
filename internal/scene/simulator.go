package scene

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/fallscene/internal/core"
)

// ErrDegenerateTimeline is returned when the frame rate is not positive.
var ErrDegenerateTimeline = errors.New("scene: degenerate timeline")

// Item is one visible item of a frame, ready to be drawn.
type Item struct {
	Index    int // Position in the plan; stable across frames
	Asset    Asset
	Position core.Vec3
	Rotation float64 // Radians around the view axis
	Scale    float64
}

// Renderer draws evaluated frames. Implementations passed to RenderRange must
// be safe for concurrent use.
type Renderer interface {
	RenderFrame(frame int, camera CameraParams, lights Lighting, items []Item) error
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for caller contract warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlanCache makes the simulator fetch its plan through a shared cache.
func WithPlanCache(c *PlanCache) Option {
	return func(s *Simulator) {
		s.cache = c
	}
}

// Simulator binds a configuration to a video timeline. After construction it
// holds only immutable data, so Frame and States may be called concurrently.
type Simulator struct {
	cfg      SimulationConfig
	video    core.VideoConfig
	geometry Geometry
	camera   CameraParams
	lighting Lighting
	plan     Plan
	logger   *log.Logger
	cache    *PlanCache
}

// NewSimulator computes the viewport and spawn plan for cfg rendered into video.
// Out-of-range configuration is tolerated and logged once; non-positive
// dimensions or frame rate are rejected.
func NewSimulator(cfg SimulationConfig, video core.VideoConfig, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		cfg:      cfg,
		video:    video,
		lighting: DefaultLighting(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if video.FPS <= 0 {
		s.logger.Error("rejecting timeline", "fps", video.FPS)
		return nil, fmt.Errorf("%w: fps %d", ErrDegenerateTimeline, video.FPS)
	}

	geom, err := ComputeGeometry(video.Width, video.Height, cfg.ItemScale)
	if err != nil {
		s.logger.Error("rejecting viewport", "width", video.Width, "height", video.Height)
		return nil, err
	}
	cam, err := ComputeCameraParams(video.Width, video.Height)
	if err != nil {
		return nil, err
	}
	s.geometry = geom
	s.camera = cam

	if video.DurationInFrames <= 0 {
		s.logger.Warn("non-positive duration, planning a single frame", "frames", video.DurationInFrames)
	}
	if !cfg.InRange() {
		s.logger.Warn("simulation config outside accepted bounds",
			"spawn_count", cfg.SpawnCount,
			"seed", cfg.Seed,
			"fall_speed", cfg.FallSpeed,
			"item_scale", cfg.ItemScale,
		)
	}

	key := PlanKey{
		Seed:        SeedFrom(cfg.Seed),
		SpawnCount:  cfg.SpawnCount,
		TotalFrames: video.DurationInFrames,
		XRange:      geom.XRange,
	}
	if s.cache != nil {
		s.plan = s.cache.Get(key)
	} else {
		s.plan = NewPlanForKey(key)
	}

	s.logger.Debug("scene planned",
		"seed", key.Seed,
		"spawns", s.plan.Len(),
		"frames", key.TotalFrames,
		"x_range", key.XRange,
	)
	return s, nil
}

// Config returns the simulation config.
func (s *Simulator) Config() SimulationConfig { return s.cfg }

// Video returns the video timeline.
func (s *Simulator) Video() core.VideoConfig { return s.video }

// Geometry returns the viewport geometry.
func (s *Simulator) Geometry() Geometry { return s.geometry }

// Camera returns the camera parameters for the render target.
func (s *Simulator) Camera() CameraParams { return s.camera }

// Lighting returns the light rig.
func (s *Simulator) Lighting() Lighting { return s.lighting }

// Plan returns the spawn plan. The records must not be modified.
func (s *Simulator) Plan() Plan { return s.plan }

// States returns the state of every record at the given frame.
func (s *Simulator) States(frame int) []FrameState {
	return Evaluate(s.plan, frame, s.video.FPS, s.cfg.FallSpeed)
}

// Frame returns the visible items at the given frame, in plan order.
func (s *Simulator) Frame(frame int) []Item {
	var items []Item
	for i, rec := range s.plan.Records {
		st := EvaluateRecord(rec, frame, s.video.FPS, s.cfg.FallSpeed, s.plan.Key.XRange)
		if !st.Visible {
			continue
		}
		items = append(items, Item{
			Index:    i,
			Asset:    s.cfg.Asset,
			Position: core.V3(st.X, st.Y, 0),
			Rotation: st.Rotation,
			Scale:    s.cfg.ItemScale,
		})
	}
	return items
}

// RenderFrame evaluates one frame and hands it to r.
func (s *Simulator) RenderFrame(r Renderer, frame int) error {
	return r.RenderFrame(frame, s.camera, s.lighting, s.Frame(frame))
}

// RenderRange renders frames [from, to) with up to workers goroutines. Frames
// are evaluated independently, so completion order is unspecified. The first
// renderer error cancels the remaining frames.
func (s *Simulator) RenderRange(ctx context.Context, r Renderer, from, to, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for frame := from; frame < to; frame++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.RenderFrame(r, frame); err != nil {
				return fmt.Errorf("scene: render frame %d: %w", frame, err)
			}
			return nil
		})
	}
	return g.Wait()
}
