// Package config provides YAML-based scene configuration loading and the
// upstream validation that keeps out-of-range values away from the simulation.
package config

import (
	"github.com/vovakirdan/fallscene/internal/core"
	"github.com/vovakirdan/fallscene/internal/scene"
)

// File is the on-disk layout of a scene configuration.
type File struct {
	Video VideoSettings `yaml:"video"`
	Scene SceneConfig   `yaml:"scene"`
}

// VideoSettings describes the output timeline.
type VideoSettings struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	FPS              int `yaml:"fps"`
	DurationInFrames int `yaml:"duration_in_frames"`
}

// SceneConfig contains all user-facing parameters of the falling scene.
type SceneConfig struct {
	BackgroundColor string      `yaml:"background_color"`
	Asset           AssetConfig `yaml:"asset"`
	SpawnCount      int         `yaml:"spawn_count"`
	Seed            int64       `yaml:"seed"`
	FallSpeed       float64     `yaml:"fall_speed"` // 0.01 - 10
	ItemScale       float64     `yaml:"item_scale"` // 0.01 - 5
}

// AssetConfig selects what falls.
type AssetConfig struct {
	Kind   string `yaml:"kind"`   // "image" or "model"
	Source string `yaml:"source"` // Path or URL
}

// Runtime converts the settings to the core video config.
func (v VideoSettings) Runtime() core.VideoConfig {
	return core.VideoConfig{
		Width:            v.Width,
		Height:           v.Height,
		FPS:              v.FPS,
		DurationInFrames: v.DurationInFrames,
	}
}

// FromRuntime converts a core video config back to settings.
func FromRuntime(v core.VideoConfig) VideoSettings {
	return VideoSettings{
		Width:            v.Width,
		Height:           v.Height,
		FPS:              v.FPS,
		DurationInFrames: v.DurationInFrames,
	}
}

// Simulation converts a validated config to the simulation's input.
// The background color is normalized to lowercase #rrggbb.
func (c SceneConfig) Simulation() (scene.SimulationConfig, error) {
	kind, err := scene.ParseAssetKind(c.Asset.Kind)
	if err != nil {
		return scene.SimulationConfig{}, invalid("asset.kind: %v", err)
	}
	bg, err := NormalizeColor(c.BackgroundColor)
	if err != nil {
		return scene.SimulationConfig{}, err
	}

	return scene.SimulationConfig{
		BackgroundColor: bg,
		Asset:           scene.Asset{Kind: kind, Source: c.Asset.Source},
		SpawnCount:      c.SpawnCount,
		Seed:            c.Seed,
		FallSpeed:       c.FallSpeed,
		ItemScale:       c.ItemScale,
	}, nil
}
