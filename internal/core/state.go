package core

// GameState summarizes a running session for the platform layer.
type GameState struct {
	Felled   int  // Trees felled so far
	Marked   int  // Trees currently marked
	Chaining bool // Whether a chain reaction is in progress
	Moving   bool // Whether the player is walking
	Paused   bool
}
