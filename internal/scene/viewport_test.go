package scene

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		itemScale     float64
		halfWidth     float64
		margin        float64
		xRange        float64
	}{
		{"720p default scale", 1280, 720, 1.2, 5 * 1280.0 / 720.0, 0.6, 5*1280.0/720.0 - 0.6},
		{"small items keep minimum margin", 1280, 720, 0.1, 5 * 1280.0 / 720.0, 0.2, 5*1280.0/720.0 - 0.2},
		{"square", 1000, 1000, 0.8, 5, 0.4, 4.6},
		{"portrait", 1080, 1920, 1.0, 5 * 1080.0 / 1920.0, 0.5, 5*1080.0/1920.0 - 0.5},
		{"margin wider than frame clamps to zero", 10, 1000, 5, 0.05, 2.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ComputeGeometry(tc.width, tc.height, tc.itemScale)
			if err != nil {
				t.Fatalf("ComputeGeometry() error = %v", err)
			}
			if g.HalfHeight != HalfHeight {
				t.Errorf("HalfHeight = %f, expected %f", g.HalfHeight, HalfHeight)
			}
			if !almostEqual(g.HalfWidth, tc.halfWidth) {
				t.Errorf("HalfWidth = %f, expected %f", g.HalfWidth, tc.halfWidth)
			}
			if !almostEqual(g.Margin, tc.margin) {
				t.Errorf("Margin = %f, expected %f", g.Margin, tc.margin)
			}
			if !almostEqual(g.XRange, tc.xRange) {
				t.Errorf("XRange = %f, expected %f", g.XRange, tc.xRange)
			}
			if g.XRange < 0 {
				t.Errorf("XRange = %f, must never be negative", g.XRange)
			}
		})
	}
}

func TestComputeGeometryExactXRange(t *testing.T) {
	g, err := ComputeGeometry(1280, 720, 1.2)
	if err != nil {
		t.Fatalf("ComputeGeometry() error = %v", err)
	}
	// Half width is rounded to float64 before the margin is subtracted.
	if g.XRange != 8.28888888888889 {
		t.Errorf("XRange = %.17g, expected 8.28888888888889", g.XRange)
	}

	sizes := [][2]int{{1280, 720}, {1920, 1080}, {1080, 1920}, {640, 480}, {2560, 1080}, {333, 777}}
	for _, size := range sizes {
		for _, scale := range []float64{0.1, 0.5, 0.8, 1.2, 1.7, 2.3, 3.1} {
			g, err := ComputeGeometry(size[0], size[1], scale)
			if err != nil {
				t.Fatalf("ComputeGeometry(%d, %d, %v) error = %v", size[0], size[1], scale, err)
			}
			aspect := float64(size[0]) / float64(size[1])
			halfWidth := float64(HalfHeight * aspect)
			expected := math.Max(0, halfWidth-math.Max(MinMargin, scale*0.5))
			if g.XRange != expected {
				t.Errorf("ComputeGeometry(%d, %d, %v).XRange = %.17g, expected %.17g",
					size[0], size[1], scale, g.XRange, expected)
			}
		}
	}
}

func TestFieldOfViewIgnoresItemScale(t *testing.T) {
	expected := 2 * math.Atan(0.5) * 180 / math.Pi // ~53.13 degrees

	for _, scale := range []float64{0.01, 0.8, 5} {
		g, err := ComputeGeometry(1920, 1080, scale)
		if err != nil {
			t.Fatalf("ComputeGeometry() error = %v", err)
		}
		if !almostEqual(g.FOVDegrees, expected) {
			t.Errorf("FOVDegrees with scale %v = %f, expected %f", scale, g.FOVDegrees, expected)
		}
	}

	if !almostEqual(FieldOfView(HalfHeight, CameraDistance), 53.13010235415598) {
		t.Errorf("FieldOfView() = %f, expected 53.1301...", FieldOfView(HalfHeight, CameraDistance))
	}
}

func TestComputeGeometryDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero height", 1280, 0},
		{"zero width", 0, 720},
		{"negative", -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ComputeGeometry(tc.width, tc.height, 1)
			if !errors.Is(err, ErrDegenerateViewport) {
				t.Fatalf("ComputeGeometry() error = %v, expected ErrDegenerateViewport", err)
			}
			if math.IsNaN(g.XRange) || math.IsInf(g.HalfWidth, 0) || math.IsNaN(g.HalfWidth) {
				t.Errorf("degenerate geometry leaked non-finite values: %+v", g)
			}
			if g.XRange != 0 {
				t.Errorf("XRange = %f, expected 0", g.XRange)
			}
		})
	}
}

func TestGeometryToPixel(t *testing.T) {
	g, err := ComputeGeometry(1280, 720, 1)
	if err != nil {
		t.Fatalf("ComputeGeometry() error = %v", err)
	}

	tests := []struct {
		name   string
		x, y   float64
		px, py float64
	}{
		{"center", 0, 0, 640, 360},
		{"top-left", -g.HalfWidth, HalfHeight, 0, 0},
		{"bottom-right", g.HalfWidth, -HalfHeight, 1280, 720},
		{"spawn height", 0, YStart, 640, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			px, py := g.ToPixel(tc.x, tc.y, 1280, 720)
			if !almostEqual(px, tc.px) || !almostEqual(py, tc.py) {
				t.Errorf("ToPixel(%f, %f) = (%f, %f), expected (%f, %f)", tc.x, tc.y, px, py, tc.px, tc.py)
			}
		})
	}
}

func TestComputeCameraParams(t *testing.T) {
	cam, err := ComputeCameraParams(1280, 720)
	if err != nil {
		t.Fatalf("ComputeCameraParams() error = %v", err)
	}
	if cam.Position.Z != CameraDistance || cam.Position.X != 0 || cam.Position.Y != 0 {
		t.Errorf("Position = %+v, expected (0, 0, %v)", cam.Position, CameraDistance)
	}
	if cam.Near != 0.1 || cam.Far != 1000 {
		t.Errorf("Near/Far = %v/%v, expected 0.1/1000", cam.Near, cam.Far)
	}
	if !almostEqual(cam.Aspect, 1280.0/720.0) {
		t.Errorf("Aspect = %f, expected %f", cam.Aspect, 1280.0/720.0)
	}
	if !almostEqual(cam.FOVDegrees, FieldOfView(HalfHeight, CameraDistance)) {
		t.Errorf("FOVDegrees = %f", cam.FOVDegrees)
	}

	if _, err := ComputeCameraParams(1280, 0); !errors.Is(err, ErrDegenerateViewport) {
		t.Errorf("ComputeCameraParams(1280, 0) error = %v, expected ErrDegenerateViewport", err)
	}
}

func TestDefaultLighting(t *testing.T) {
	l := DefaultLighting()
	if l.Ambient.Intensity != 1.2 || l.Ambient.Color != 0xffffff {
		t.Errorf("Ambient = %+v", l.Ambient)
	}
	if l.Directional.Intensity != 0.6 || l.Directional.Position.X != 3 || l.Directional.Position.Y != 5 || l.Directional.Position.Z != 2 {
		t.Errorf("Directional = %+v", l.Directional)
	}
}
