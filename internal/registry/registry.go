// Package registry provides a global registry for scene compositions.
// Compositions register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/fallscene/internal/config"
)

// Composition binds a scene to its output timeline and default parameters.
type Composition struct {
	// ID is a unique identifier used on the command line (e.g., "scene").
	ID string

	// Title is a human-readable name for display.
	Title string

	// Defaults holds the video settings and scene parameters the composition
	// starts from before config files and flags are applied.
	Defaults config.File
}

// CompositionInfo contains metadata about a registered composition.
type CompositionInfo struct {
	ID    string
	Title string
	Size  string // e.g. "1280x720@30"
}

// Factory is a function that creates a new composition.
type Factory func() Composition

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	sizes     = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a composition factory to the registry.
// Typically called from an init() function.
// Panics if a composition with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: composition %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	c := f()
	titles[id] = c.Title
	v := c.Defaults.Video
	sizes[id] = fmt.Sprintf("%dx%d@%d", v.Width, v.Height, v.FPS)
}

// List returns information about all registered compositions, sorted by ID.
func List() []CompositionInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CompositionInfo, 0, len(factories))
	for id := range factories {
		result = append(result, CompositionInfo{
			ID:    id,
			Title: titles[id],
			Size:  sizes[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a composition by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Composition, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Composition{}, fmt.Errorf("registry: unknown composition %q", id)
	}

	c := f()
	c.ID = id
	return c, nil
}

// Exists checks if a composition with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
