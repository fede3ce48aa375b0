// Package sim implements the game simulation: player physics, the pipe
// stream, the run state machine, and rendering into a screen buffer.
// It is pure logic with no platform dependencies, driven by one Step call
// per rendered frame.
package sim

import (
	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Player is the falling entity. Horizontal position is fixed for the
// lifetime of a run; only the vertical pair (Y, Vel) integrates.
type Player struct {
	Y   float64 // Vertical position (top of hitbox)
	Vel float64 // Vertical velocity, positive = down

	X, W, H float64 // Fixed hitbox, set at reset
}

// NewPlayer creates a player with the configured hitbox, resting at midY.
func NewPlayer(cfg config.Player, midY float64) Player {
	return Player{
		Y: midY,
		X: cfg.X,
		W: cfg.Width,
		H: cfg.Height,
	}
}

// Tick integrates one step: velocity += gravity, position += velocity.
// Called exactly once per active simulation tick. maxFall <= 0 leaves
// fall speed unclamped.
func (p *Player) Tick(gravity, maxFall float64) {
	p.Vel += gravity
	if maxFall > 0 && p.Vel > maxFall {
		p.Vel = maxFall
	}
	p.Y += p.Vel
}

// Impulse unconditionally overwrites the current velocity.
func (p *Player) Impulse(vel float64) {
	p.Vel = vel
}

// Rect returns the player's collision box.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// HitCeiling reports contact with the playfield top. Fatal.
func (p *Player) HitCeiling() bool {
	return p.Y <= 0
}

// HitFloor reports contact with the ground at fieldH. Fatal.
func (p *Player) HitFloor(fieldH float64) bool {
	return p.Y+p.H >= fieldH
}
