package core

// VideoConfig describes the output timeline the scene is rendered into.
// It is owned by the composition layer and handed to the simulation per render.
type VideoConfig struct {
	Width            int // Output width in pixels
	Height           int // Output height in pixels
	FPS              int // Frames per second
	DurationInFrames int // Total number of frames in the video
}

// DefaultVideoConfig returns a 10 second 720p timeline at 30 fps.
func DefaultVideoConfig() VideoConfig {
	return VideoConfig{
		Width:            1280,
		Height:           720,
		FPS:              30,
		DurationInFrames: 300,
	}
}

// Aspect returns width/height, or 0 when the height is not positive.
func (v VideoConfig) Aspect() float64 {
	if v.Height <= 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// Seconds returns the video duration in seconds.
func (v VideoConfig) Seconds() float64 {
	if v.FPS <= 0 {
		return 0
	}
	return float64(v.DurationInFrames) / float64(v.FPS)
}
