package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for map and HUD elements.
const (
	ColorDefault Color = iota
	ColorGround
	ColorTree
	ColorMarkedTree
	ColorObstacle
	ColorPlayer
	ColorMarker
	ColorFalling
	ColorHUD
	ColorHUDValue
	ColorWarning
)
