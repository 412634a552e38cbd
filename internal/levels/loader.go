package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/little-wizard/internal/registry"
)

// Loader loads maps from a directory tree.
type Loader struct {
	Root   string
	Logger *log.Logger
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, Logger: log.Default().WithPrefix("levels")}
}

// LoadAll recursively loads every map file under Root, sorted by ID.
// Files that fail to parse are logged and skipped.
func (l *Loader) LoadAll() ([]*Map, error) {
	var maps []*Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			l.Logger.Warn("skipping map", "path", path, "err", err)
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].MapID < maps[j].MapID
	})
	return maps, nil
}

// LoadFile loads a single map file.
func (l *Loader) LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	m.FilePath = path
	return m, nil
}

// LoadByID loads the map with the given ID.
func (l *Loader) LoadByID(id string) (*Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, m := range maps {
		if m.MapID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w %q in %s", registry.ErrUnknownMap, id, l.Root)
}

// RegisterAll loads every map under Root and registers those whose IDs
// are not taken yet. It returns the IDs that were added.
func (l *Loader) RegisterAll() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	var added []string
	for _, m := range maps {
		if registry.TryRegister(m.MapID, func() registry.Map { return m }) {
			added = append(added, m.MapID)
		} else {
			l.Logger.Warn("map id already registered", "id", m.MapID, "path", m.FilePath)
		}
	}
	return added, nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), strings.ToLower(ext))
}
