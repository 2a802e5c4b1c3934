package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/fallscene/internal/core"
	"github.com/vovakirdan/fallscene/internal/scene"
)

// ErrInvalidConfiguration is wrapped by every validation failure.
var ErrInvalidConfiguration = errors.New("config: invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Validate checks every field against its accepted bounds and reports all
// violations at once.
func Validate(f File) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	v := f.Video
	if v.Width <= 0 || v.Height <= 0 {
		add("video size %dx%d must be positive", v.Width, v.Height)
	}
	if v.FPS <= 0 {
		add("video.fps %d must be positive", v.FPS)
	}
	if v.DurationInFrames <= 0 {
		add("video.duration_in_frames %d must be positive", v.DurationInFrames)
	}

	s := f.Scene
	if _, err := NormalizeColor(s.BackgroundColor); err != nil {
		add("background_color %q is not a hex color", s.BackgroundColor)
	}
	if _, err := scene.ParseAssetKind(s.Asset.Kind); err != nil {
		add("asset.kind %q must be image or model", s.Asset.Kind)
	}
	if strings.TrimSpace(s.Asset.Source) == "" {
		add("asset.source must not be empty")
	}
	if s.SpawnCount < scene.MinSpawnCount || s.SpawnCount > scene.MaxSpawnCount {
		add("spawn_count %d outside [%d, %d]", s.SpawnCount, scene.MinSpawnCount, scene.MaxSpawnCount)
	}
	if s.Seed < scene.MinSeed || s.Seed > scene.MaxSeed {
		add("seed %d outside [%d, %d]", s.Seed, scene.MinSeed, scene.MaxSeed)
	}
	if !(s.FallSpeed >= scene.MinFallSpeed && s.FallSpeed <= scene.MaxFallSpeed) {
		add("fall_speed %g outside [%g, %g]", s.FallSpeed, scene.MinFallSpeed, scene.MaxFallSpeed)
	}
	if !(s.ItemScale >= scene.MinItemScale && s.ItemScale <= scene.MaxItemScale) {
		add("item_scale %g outside [%g, %g]", s.ItemScale, scene.MinItemScale, scene.MaxItemScale)
	}

	if len(problems) == 0 {
		return nil
	}
	return invalid("%s", strings.Join(problems, "; "))
}

// Normalize clamps the numeric scene fields into their accepted bounds.
// Video and non-numeric fields are left untouched.
func Normalize(s SceneConfig) SceneConfig {
	s.SpawnCount = core.Clamp(s.SpawnCount, scene.MinSpawnCount, scene.MaxSpawnCount)
	if s.Seed < scene.MinSeed {
		s.Seed = scene.MinSeed
	}
	if s.Seed > scene.MaxSeed {
		s.Seed = scene.MaxSeed
	}
	s.FallSpeed = core.ClampF(s.FallSpeed, scene.MinFallSpeed, scene.MaxFallSpeed)
	s.ItemScale = core.ClampF(s.ItemScale, scene.MinItemScale, scene.MaxItemScale)
	return s
}
