package tui

import (
	"math"

	"github.com/vovakirdan/fallscene/internal/core"
	"github.com/vovakirdan/fallscene/internal/scene"
)

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// orientationGlyphs approximate an upright quad rotated by multiples of 45 degrees.
var orientationGlyphs = []rune{'|', '\\', '-', '/'}

// modelGlyph marks items whose asset is a 3-D model.
const modelGlyph = '@'

// FrameSink receives a projected frame.
type FrameSink func(frame int, s *core.Screen) error

// Projector rasterizes evaluated items into character cells. It implements
// scene.Renderer and allocates a fresh screen per frame, so it is safe for
// concurrent use by Simulator.RenderRange.
type Projector struct {
	geometry   scene.Geometry
	cols, rows int
	itemAspect float64
	sink       FrameSink
}

// NewProjector creates a projector for a cols x rows cell grid. sink may be nil.
func NewProjector(geom scene.Geometry, cols, rows int, sink FrameSink) *Projector {
	return &Projector{
		geometry:   geom,
		cols:       max(cols, 0),
		rows:       max(rows, 0),
		itemAspect: 1,
		sink:       sink,
	}
}

// SetItemAspect sets the width/height ratio items are drawn with.
func (p *Projector) SetItemAspect(aspect float64) {
	if aspect > 0 {
		p.itemAspect = aspect
	}
}

// Size returns the cell grid size.
func (p *Projector) Size() (cols, rows int) {
	return p.cols, p.rows
}

// Project draws items onto a new screen.
func (p *Projector) Project(items []scene.Item) *core.Screen {
	s := core.NewScreen(p.cols, p.rows)
	if p.geometry.HalfWidth <= 0 {
		return s
	}

	for _, it := range items {
		cx, cy := p.geometry.ToPixel(it.Position.X, it.Position.Y, p.cols, p.rows)

		// World size -> cells
		h := it.Scale / (2 * p.geometry.HalfHeight) * float64(p.rows)
		w := it.Scale * p.itemAspect / (2 * p.geometry.HalfWidth) * float64(p.cols)
		cw := max(1, int(math.Round(w)))
		ch := max(1, int(math.Round(h)))

		r := core.NewRect(int(math.Floor(cx))-cw/2, int(math.Floor(cy))-ch/2, cw, ch)
		s.DrawRect(r, Glyph(it), core.PaletteColor(it.Index))
	}
	return s
}

// RenderFrame projects items and passes the screen to the sink.
func (p *Projector) RenderFrame(frame int, _ scene.CameraParams, _ scene.Lighting, items []scene.Item) error {
	s := p.Project(items)
	if p.sink == nil {
		return nil
	}
	return p.sink(frame, s)
}

var _ scene.Renderer = (*Projector)(nil)

// Glyph returns the rune an item is drawn with.
func Glyph(it scene.Item) rune {
	if it.Asset.Kind == scene.AssetModel {
		return modelGlyph
	}
	// Quads are symmetric under half turns
	steps := int(math.Round(it.Rotation / (math.Pi / 4)))
	idx := steps % len(orientationGlyphs)
	if idx < 0 {
		idx += len(orientationGlyphs)
	}
	return orientationGlyphs[idx]
}

// FitCells returns the largest cell grid inside cols x rows that shows a frame
// of the given aspect without distortion.
func FitCells(aspect float64, cols, rows int) (w, h int) {
	if cols <= 0 || rows <= 0 || aspect <= 0 {
		return 0, 0
	}
	w = cols
	h = int(math.Round(float64(w) / aspect / CellAspect))
	if h > rows {
		h = rows
		w = int(math.Round(float64(h) * aspect * CellAspect))
	}
	return max(w, 1), max(h, 1)
}
