package scene

import (
	"fmt"

	"github.com/vovakirdan/fallscene/internal/core"
)

// CameraParams is everything a renderer needs to place its perspective camera.
type CameraParams struct {
	Position   core.Vec3
	LookAt     core.Vec3
	Up         core.Vec3
	Near       float64
	Far        float64
	Aspect     float64
	FOVDegrees float64
}

// ComputeCameraParams returns the fixed camera for a render target. The camera
// sits at (0, 0, CameraDistance) looking at the origin, with the field of view
// chosen so that HalfHeight world units are visible above and below center.
func ComputeCameraParams(pixelWidth, pixelHeight int) (CameraParams, error) {
	cam := CameraParams{
		Position:   core.V3(0, 0, CameraDistance),
		LookAt:     core.V3(0, 0, 0),
		Up:         core.V3(0, 1, 0),
		Near:       0.1,
		Far:        1000,
		FOVDegrees: FieldOfView(HalfHeight, CameraDistance),
	}
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return cam, fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, pixelWidth, pixelHeight)
	}
	cam.Aspect = float64(pixelWidth) / float64(pixelHeight)
	return cam, nil
}

// Light is a single light source.
type Light struct {
	Position  core.Vec3 // Unused for ambient light
	Color     uint32    // 0xRRGGBB
	Intensity float64
}

// Lighting is the fixed light rig used for model items.
type Lighting struct {
	Ambient     Light
	Directional Light
}

// DefaultLighting returns the scene light rig.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:     Light{Color: 0xffffff, Intensity: 1.2},
		Directional: Light{Position: core.V3(3, 5, 2), Color: 0xffffff, Intensity: 0.6},
	}
}
