package levels

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// ForestConfig holds procedural forest parameters.
type ForestConfig struct {
	ID     string
	Title  string
	Width  int
	Height int
	// TreeLevel and RockLevel are noise thresholds in [0,1]; higher means
	// sparser.
	TreeLevel float64
	RockLevel float64
	Frequency float64
	// ClearRadius keeps a square around the start free of trees and rocks.
	ClearRadius int
}

// DefaultForestConfig returns a medium-sized mixed forest.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		ID:          "forest",
		Title:       "Wild Forest",
		Width:       40,
		Height:      20,
		TreeLevel:   0.55,
		RockLevel:   0.78,
		Frequency:   0.12,
		ClearRadius: 2,
	}
}

// Forest is a seeded procedural map.
type Forest struct {
	cfg ForestConfig
}

// NewForest creates a generator.
func NewForest(cfg ForestConfig) *Forest {
	return &Forest{cfg: cfg}
}

// ID implements registry.Map.
func (f *Forest) ID() string {
	return f.cfg.ID
}

// Title implements registry.Map.
func (f *Forest) Title() string {
	return f.cfg.Title
}

// Build implements registry.Map. A zero seed picks a random one.
func (f *Forest) Build(seed int64) (*world.TileMap, core.Cell, error) {
	if seed == 0 {
		seed = rand.Int63()
	}
	cfg := f.cfg

	treeNoise := opensimplex.NewNormalized(seed)
	rockNoise := opensimplex.NewNormalized(seed + 1)
	heightNoise := opensimplex.NewNormalized(seed + 2)

	start := core.C(cfg.Width/2, cfg.Height/2)
	tm := world.NewOpenField(cfg.Width, cfg.Height)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := core.C(x, y)
			if c.Chebyshev(start) <= cfg.ClearRadius {
				continue
			}
			fx, fy := float64(x), float64(y)

			if octaveNoise(rockNoise, fx, fy, 2, cfg.Frequency*1.5, 0.5) > cfg.RockLevel {
				tm.SetObstacle(c)
				continue
			}
			if octaveNoise(treeNoise, fx, fy, 3, cfg.Frequency, 0.5) > cfg.TreeLevel {
				// Taller trees cluster where the height layer peaks.
				h := 1 + int(heightNoise.Eval2(fx*0.3, fy*0.3)*3)
				h = core.Clamp(h, 1, 3)
				tm.PlantTree(c, world.Sprite{PixelHeight: float64(h * DefaultPixelsPerUnit), PixelsPerUnit: DefaultPixelsPerUnit})
			}
		}
	}
	return tm, start, nil
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
