package scene

import (
	"errors"
	"fmt"
	"math"
)

// World constants shared with the camera setup.
const (
	HalfHeight     = 5.0  // Visible half-height at z=0, in world units
	CameraDistance = 10.0 // Camera distance from the focal plane
	MinMargin      = 0.2  // Minimum horizontal margin kept free of spawns
)

// ErrDegenerateViewport is returned when output dimensions are not positive.
var ErrDegenerateViewport = errors.New("scene: degenerate viewport")

// Geometry maps an output frame onto world units at the focal plane.
type Geometry struct {
	HalfHeight float64
	HalfWidth  float64
	Margin     float64
	XRange     float64 // Spawn and drift limit: |x| <= XRange
	FOVDegrees float64 // Vertical field of view
}

// FieldOfView returns the vertical field of view in degrees that shows
// halfHeight world units above and below center at the given distance.
func FieldOfView(halfHeight, distance float64) float64 {
	return 2 * math.Atan(halfHeight/distance) * 180 / math.Pi
}

// ComputeGeometry derives the world extents for a pixelWidth x pixelHeight
// frame. itemScale only widens the margin; it never changes the field of view.
//
// Non-positive dimensions return ErrDegenerateViewport together with a usable
// geometry whose horizontal extent is zero, so no NaN escapes.
func ComputeGeometry(pixelWidth, pixelHeight int, itemScale float64) (Geometry, error) {
	g := Geometry{
		HalfHeight: HalfHeight,
		Margin:     math.Max(MinMargin, itemScale*0.5),
		FOVDegrees: FieldOfView(HalfHeight, CameraDistance),
	}
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return g, fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, pixelWidth, pixelHeight)
	}

	aspect := float64(pixelWidth) / float64(pixelHeight)
	// Rounded explicitly so the margin subtraction cannot fuse into an FMA.
	g.HalfWidth = float64(g.HalfHeight * aspect)
	g.XRange = math.Max(0, g.HalfWidth-g.Margin)
	return g, nil
}

// ToPixel maps a world position at the focal plane to pixel coordinates of a
// pixelWidth x pixelHeight frame, origin top-left, y growing downwards.
func (g Geometry) ToPixel(x, y float64, pixelWidth, pixelHeight int) (px, py float64) {
	if g.HalfWidth <= 0 || g.HalfHeight <= 0 {
		return 0, 0
	}
	px = (x/g.HalfWidth + 1) / 2 * float64(pixelWidth)
	py = (1 - y/g.HalfHeight) / 2 * float64(pixelHeight)
	return px, py
}
