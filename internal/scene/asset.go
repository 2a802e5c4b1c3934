package scene

import (
	"fmt"
	"strings"
)

// AssetKind selects how the rendering side draws an item.
type AssetKind int

const (
	AssetImage AssetKind = iota // Textured quad sized by the image aspect
	AssetModel                  // Externally loaded 3-D model
)

// String returns the lowercase name used in config files.
func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetModel:
		return "model"
	default:
		return fmt.Sprintf("AssetKind(%d)", int(k))
	}
}

// ParseAssetKind parses "image" or "model" (case-insensitive).
func ParseAssetKind(s string) (AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return AssetImage, nil
	case "model":
		return AssetModel, nil
	default:
		return AssetImage, fmt.Errorf("scene: unknown asset kind %q", s)
	}
}

// Asset is the tagged asset reference carried by every item. The simulation
// never looks inside it; it is passed through to the renderer untouched.
type Asset struct {
	Kind   AssetKind
	Source string // Opaque locator: path or URL
}

// ImageAsset returns an image asset for the given locator.
func ImageAsset(src string) Asset {
	return Asset{Kind: AssetImage, Source: src}
}

// ModelAsset returns a model asset for the given locator.
func ModelAsset(src string) Asset {
	return Asset{Kind: AssetModel, Source: src}
}

// SimulationConfig holds the user-facing parameters of a scene.
// Values are expected to be validated upstream; see config.Validate.
type SimulationConfig struct {
	BackgroundColor string
	Asset           Asset
	SpawnCount      int     // 1..500
	Seed            int64   // 0..1,000,000
	FallSpeed       float64 // 0.01..10
	ItemScale       float64 // 0.01..5
}

// Bounds accepted for SimulationConfig fields.
const (
	MinSpawnCount = 1
	MaxSpawnCount = 500
	MinSeed       = 0
	MaxSeed       = 1_000_000
	MinFallSpeed  = 0.01
	MaxFallSpeed  = 10.0
	MinItemScale  = 0.01
	MaxItemScale  = 5.0
)

// InRange reports whether every numeric field lies within its accepted bounds.
func (c SimulationConfig) InRange() bool {
	return c.SpawnCount >= MinSpawnCount && c.SpawnCount <= MaxSpawnCount &&
		c.Seed >= MinSeed && c.Seed <= MaxSeed &&
		c.FallSpeed >= MinFallSpeed && c.FallSpeed <= MaxFallSpeed &&
		c.ItemScale >= MinItemScale && c.ItemScale <= MaxItemScale
}
