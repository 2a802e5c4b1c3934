// Package compositions registers the built-in falling-items compositions.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/fallscene/internal/compositions"
package compositions

import (
	"github.com/vovakirdan/fallscene/internal/config"
	"github.com/vovakirdan/fallscene/internal/registry"
)

// DefaultAssetURL is the item image used by the landscape composition.
const DefaultAssetURL = "https://cdn-icons-png.flaticon.com/512/6978/6978281.png"

func init() {
	registry.Register("scene", Scene)
	registry.Register("scene-model", SceneModel)
	registry.Register("scene-portrait", ScenePortrait)
}

// Scene is the 10 second 720p composition with image items. It starts from
// the schema defaults and changes the asset and item settings.
func Scene() registry.Composition {
	f := config.DefaultFile()
	f.Scene.Asset = config.AssetConfig{Kind: "image", Source: DefaultAssetURL}
	f.Scene.SpawnCount = 80
	f.Scene.FallSpeed = 1.4
	f.Scene.ItemScale = 1.2

	return registry.Composition{
		Title:    "Falling Items",
		Defaults: f,
	}
}

// SceneModel is Scene with a 3-D model asset.
func SceneModel() registry.Composition {
	c := Scene()
	c.Title = "Falling Models"
	c.Defaults.Scene.Asset = config.AssetConfig{Kind: "model", Source: "/model.glb"}
	return c
}

// ScenePortrait is Scene rendered for a vertical 1080x1920 frame.
func ScenePortrait() registry.Composition {
	c := Scene()
	c.Title = "Falling Items (Portrait)"
	c.Defaults.Video.Width = 1080
	c.Defaults.Video.Height = 1920
	return c
}
