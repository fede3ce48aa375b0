package sim

import "testing"

func TestPlayerTickIntegration(t *testing.T) {
	// One tick: velocity += gravity, then position += velocity.
	p := Player{Y: 300, Vel: 0, X: 10, W: 2, H: 2}
	p.Tick(0.5, 0)

	if p.Vel != 0.5 {
		t.Errorf("velocity after tick = %v, expected 0.5", p.Vel)
	}
	if p.Y != 300.5 {
		t.Errorf("position after tick = %v, expected 300.5", p.Y)
	}
}

func TestPlayerImpulseThenTick(t *testing.T) {
	p := Player{Y: 300, Vel: 3.0, X: 10, W: 2, H: 2}

	// Impulse overwrites the current velocity unconditionally.
	p.Impulse(-8)
	if p.Vel != -8 {
		t.Errorf("velocity after impulse = %v, expected -8", p.Vel)
	}

	p.Tick(0.5, 0)
	if p.Vel != -7.5 {
		t.Errorf("velocity after impulse+tick = %v, expected -7.5", p.Vel)
	}
	if p.Y != 292.5 {
		t.Errorf("position after impulse+tick = %v, expected 292.5", p.Y)
	}
}

func TestPlayerFallSpeedUnclampedByDefault(t *testing.T) {
	// With maxFall <= 0 the fall speed grows without bound. This pins the
	// baseline behavior: no terminal velocity unless configured.
	p := Player{Y: 0, Vel: 0}
	for i := 0; i < 100; i++ {
		p.Tick(0.5, 0)
	}
	if p.Vel != 50 {
		t.Errorf("velocity after 100 ticks = %v, expected 50 (unclamped)", p.Vel)
	}
}

func TestPlayerFallSpeedCapWhenConfigured(t *testing.T) {
	p := Player{Y: 0, Vel: 0}
	for i := 0; i < 100; i++ {
		p.Tick(0.5, 3.0)
	}
	if p.Vel != 3.0 {
		t.Errorf("velocity with cap = %v, expected 3.0", p.Vel)
	}
}

func TestPlayerBounds(t *testing.T) {
	p := Player{Y: 0, Vel: 0, X: 10, W: 2, H: 2}
	if !p.HitCeiling() {
		t.Error("player at y=0 should touch the ceiling")
	}

	p.Y = 5
	if p.HitCeiling() {
		t.Error("player at y=5 should not touch the ceiling")
	}
	if p.HitFloor(20) {
		t.Error("player at y=5 with h=2 should not touch floor at 20")
	}

	p.Y = 18
	if !p.HitFloor(20) {
		t.Error("player at y=18 with h=2 should touch floor at 20")
	}
}
