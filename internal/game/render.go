package game

import (
	"fmt"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

var arrows = map[core.Dir]rune{
	core.DirUp:    '↑',
	core.DirRight: '→',
	core.DirDown:  '↓',
	core.DirLeft:  '←',
}

// treeGlyph picks a glyph by visual height.
func treeGlyph(h int) rune {
	switch {
	case h >= 3:
		return '♠'
	case h == 2:
		return '♣'
	default:
		return 't'
	}
}

// Render draws the HUD and the map into screen.
func (g *Game) Render(screen *core.Screen) {
	screen.Clear()
	if g.tooSmall {
		msg := fmt.Sprintf("Terminal too small: need %dx%d",
			g.grid.W*g.viewport.CellWidth, g.grid.H+hudHeight+1)
		screen.DrawTextCentered(screen.Height()/2, msg, core.ColorWarning)
		return
	}

	g.renderHUD(screen)
	g.renderMap(screen)

	if g.paused {
		y := hudHeight + g.grid.H/2
		box := core.NewRect((screen.Width()-12)/2, y-1, 12, 3)
		for x := box.X + 1; x < box.Right()-1; x++ {
			screen.Set(x, y, ' ')
		}
		screen.DrawBox(box, core.ColorWarning)
		screen.DrawTextCentered(y, "PAUSED", core.ColorWarning)
	}
}

func (g *Game) renderHUD(screen *core.Screen) {
	st := g.State()
	x := 0
	put := func(label, value string) {
		screen.DrawText(x, 0, label, core.ColorHUD)
		x += len(label)
		screen.DrawText(x, 0, value, core.ColorHUDValue)
		x += len([]rune(value)) + 2
	}
	put("", g.Title())
	put("Felled: ", fmt.Sprint(st.Felled))
	put("Marked: ", fmt.Sprint(st.Marked))
	chain := "idle"
	if st.Chaining {
		chain = "falling"
	}
	put("Chain: ", chain)

	if g.message != "" {
		screen.DrawText(0, 1, g.message, core.ColorWarning)
	}
}

func (g *Game) renderMap(screen *core.Screen) {
	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			c := core.C(x, y)
			r, col := g.glyphAt(c)
			sx, sy := g.viewport.CellToColumn(c)
			screen.SetColored(sx, sy, r, col)
		}
	}

	if g.marker.placed {
		c := world.UnitLayout.WorldToCell(g.marker.at)
		sx, sy := g.viewport.CellToColumn(c)
		screen.SetColored(sx+g.viewport.CellWidth-1, sy, '×', core.ColorMarker)
	}

	p := world.UnitLayout.WorldToCell(g.exec.Position())
	sx, sy := g.viewport.CellToColumn(p)
	screen.SetColored(sx, sy, '@', core.ColorPlayer)
}

func (g *Game) glyphAt(c core.Cell) (rune, core.Color) {
	if f, ok := g.visuals.falling[c]; ok {
		if r, ok := arrows[f.tree.Dir]; ok {
			return r, core.ColorFalling
		}
		return '%', core.ColorFalling
	}
	if t, ok := g.fell.Tree(c); ok {
		if r, ok := arrows[t.Dir]; ok {
			return r, core.ColorMarkedTree
		}
		return treeGlyph(t.Height), core.ColorMarkedTree
	}
	switch {
	case g.grid.HasTree(c):
		return treeGlyph(g.grid.HeightOf(c)), core.ColorTree
	case g.grid.IsObstacle(c):
		return '#', core.ColorObstacle
	case g.grid.HasGround(c):
		return '.', core.ColorGround
	default:
		return ' ', core.ColorDefault
	}
}
