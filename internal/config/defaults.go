package config

import (
	"bytes"
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fallscene/internal/core"
)

//go:embed defaults/scene.yaml
var defaultSceneYAML []byte

// DefaultFile returns the embedded default configuration, falling back to the
// hardcoded defaults if the embedded YAML cannot be parsed. Compositions are
// built on top of it.
func DefaultFile() File {
	var f File
	if err := yaml.Unmarshal(defaultSceneYAML, &f); err != nil {
		return File{
			Video: FromRuntimeDefaults(),
			Scene: DefaultSceneConfig(),
		}
	}
	return f
}

// DefaultSceneConfig returns the hardcoded scene defaults.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		BackgroundColor: "#00ff00",
		Asset: AssetConfig{
			Kind:   "image",
			Source: "/image.png",
		},
		SpawnCount: 50,
		Seed:       42,
		FallSpeed:  1.5,
		ItemScale:  0.8,
	}
}

// FromRuntimeDefaults returns the default video settings.
func FromRuntimeDefaults() VideoSettings {
	return FromRuntime(core.DefaultVideoConfig())
}

// OverlayTemplate returns the embedded defaults with every setting commented
// out. Loaded as is it changes nothing; each uncommented key overrides that
// value for every composition.
func OverlayTemplate() []byte {
	var b bytes.Buffer
	b.WriteString("# Uncommented settings override every composition.\n")
	for _, line := range strings.Split(strings.TrimRight(string(defaultSceneYAML), "\n"), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			b.WriteString("# ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
