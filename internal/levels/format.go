// Package levels loads tile maps from YAML files and generates forests
// procedurally. Built-in maps register with the registry at init.
package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// TileKind is what a map character stands for.
type TileKind string

const (
	TileVoid   TileKind = "void"
	TileGround TileKind = "ground"
	TileRock   TileKind = "rock"
	TileTree   TileKind = "tree"
	TileStart  TileKind = "start"
)

// Tile is one legend entry.
type Tile struct {
	Kind TileKind `yaml:"kind"`
	// PixelHeight of the tree sprite. Trees only.
	PixelHeight float64 `yaml:"pixel_height,omitempty"`
}

// DefaultPixelsPerUnit is the sprite scale used when a map omits it.
const DefaultPixelsPerUnit = 16

// DefaultLegend maps the characters every map understands.
func DefaultLegend() map[rune]Tile {
	return map[rune]Tile{
		' ': {Kind: TileVoid},
		'~': {Kind: TileVoid},
		'.': {Kind: TileGround},
		'#': {Kind: TileRock},
		'@': {Kind: TileStart},
		't': {Kind: TileTree, PixelHeight: 16},
		'T': {Kind: TileTree, PixelHeight: 32},
		'B': {Kind: TileTree, PixelHeight: 48},
	}
}

// YAMLMap is the on-disk map structure.
type YAMLMap struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	PixelsPerUnit float64           `yaml:"pixels_per_unit,omitempty"`
	Legend        map[string]Tile   `yaml:"legend,omitempty"`
	Rows          []string          `yaml:"rows"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// Map is a parsed static map.
type Map struct {
	MapID    string
	Name     string
	Width    int
	Height   int
	Start    core.Cell
	PPU      float64
	Tiles    map[core.Cell]Tile
	Metadata map[string]string
	FilePath string
}

// ParseYAML parses and validates a YAML map.
func ParseYAML(data []byte) (*Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return nil, fmt.Errorf("levels: map has no id")
	}
	if len(ym.Rows) == 0 {
		return nil, fmt.Errorf("levels: map %q has no rows", ym.ID)
	}

	legend := DefaultLegend()
	for key, tile := range ym.Legend {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("levels: map %q: legend key %q must be one character", ym.ID, key)
		}
		legend[r[0]] = tile
	}

	ppu := ym.PixelsPerUnit
	if ppu <= 0 {
		ppu = DefaultPixelsPerUnit
	}

	m := &Map{
		MapID:    ym.ID,
		Name:     ym.Name,
		Height:   len(ym.Rows),
		PPU:      ppu,
		Tiles:    make(map[core.Cell]Tile),
		Metadata: ym.Metadata,
	}
	if m.Name == "" {
		m.Name = ym.ID
	}

	starts := 0
	for y, row := range ym.Rows {
		x := 0
		for _, ch := range row {
			tile, ok := legend[ch]
			if !ok {
				return nil, fmt.Errorf("levels: map %q row %d col %d: unknown tile %q", ym.ID, y, x, ch)
			}
			c := core.C(x, y)
			switch tile.Kind {
			case TileVoid:
			case TileStart:
				m.Start = c
				starts++
				m.Tiles[c] = Tile{Kind: TileGround}
			case TileGround, TileRock, TileTree:
				m.Tiles[c] = tile
			default:
				return nil, fmt.Errorf("levels: map %q: unknown tile kind %q", ym.ID, tile.Kind)
			}
			x++
		}
		m.Width = max(m.Width, x)
	}

	if starts != 1 {
		return nil, fmt.Errorf("levels: map %q needs exactly one start, found %d", ym.ID, starts)
	}
	return m, nil
}

// ID implements registry.Map.
func (m *Map) ID() string {
	return m.MapID
}

// Title implements registry.Map.
func (m *Map) Title() string {
	return m.Name
}

// Build implements registry.Map. The seed is ignored.
func (m *Map) Build(int64) (*world.TileMap, core.Cell, error) {
	return m.TileMap(), m.Start, nil
}

// TileMap converts the parsed tiles into a fresh world.TileMap.
func (m *Map) TileMap() *world.TileMap {
	tm := world.NewTileMap(m.Width, m.Height)
	for c, tile := range m.Tiles {
		tm.SetGround(c)
		switch tile.Kind {
		case TileRock:
			tm.SetObstacle(c)
		case TileTree:
			tm.PlantTree(c, world.Sprite{PixelHeight: tile.PixelHeight, PixelsPerUnit: m.PPU})
		}
	}
	return tm
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
