// Package registry provides a global registry for map factories.
// Map sources register themselves in init() functions so the CLI and
// the front-ends can discover maps without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// ErrUnknownMap is returned by Create for unregistered IDs.
var ErrUnknownMap = errors.New("registry: unknown map")

// Map is a playable map definition.
type Map interface {
	// ID returns a unique identifier (e.g. "grove"). Used by the CLI and
	// stored with every session.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Build produces a fresh tile map and the wizard's start cell.
	// Static maps ignore the seed.
	Build(seed int64) (*world.TileMap, core.Cell, error)
}

// MapInfo contains metadata about a registered map.
type MapInfo struct {
	ID    string
	Title string
}

// Factory creates a map definition.
type Factory func() Map

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a map factory to the registry.
// Panics if a map with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: map %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// TryRegister adds a factory unless the ID is taken. It reports whether
// the factory was added.
func TryRegister(id string, f Factory) bool {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return false
	}
	factories[id] = f
	titles[id] = f().Title()
	return true
}

// List returns all registered maps sorted by ID.
func List() []MapInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MapInfo, 0, len(factories))
	for id := range factories {
		result = append(result, MapInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a map by ID.
func Create(id string) (Map, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMap, id)
	}

	return f(), nil
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
