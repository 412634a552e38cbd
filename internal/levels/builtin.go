package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/little-wizard/internal/registry"
)

//go:embed maps/*.yaml
var builtinFS embed.FS

// Builtin parses the embedded maps, sorted by file name.
func Builtin() ([]*Map, error) {
	entries, err := fs.ReadDir(builtinFS, "maps")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded maps: %w", err)
	}
	maps := make([]*Map, 0, len(entries))
	for _, e := range entries {
		name := path.Join("maps", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", name, err)
		}
		m, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		m.FilePath = name
		maps = append(maps, m)
	}
	return maps, nil
}

func init() {
	maps, err := Builtin()
	if err != nil {
		panic(err)
	}
	for _, m := range maps {
		registry.Register(m.MapID, func() registry.Map { return m })
	}
	registry.Register("forest", func() registry.Map {
		return NewForest(DefaultForestConfig())
	})
}
