// Package config provides YAML-based game configuration loading.
package config

// Config contains all tunable parameters of the game.
type Config struct {
	Physics    Physics    `yaml:"physics"`
	Obstacles  Obstacles  `yaml:"obstacles"`
	Player     Player     `yaml:"player"`
	Commentary Commentary `yaml:"commentary"`
}

// Physics defines the per-tick integration constants.
type Physics struct {
	// Gravity is the downward acceleration added to the player's velocity
	// once per active tick.
	Gravity float64 `yaml:"gravity"`
	// JumpImpulse replaces the player's velocity on a flap. Negative = up.
	JumpImpulse float64 `yaml:"jump_impulse"`
	// MaxFallSpeed caps downward velocity. 0 disables the cap; the shipped
	// default is 0, matching the unclamped baseline behavior.
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	// PipeSpeed is how far pipes move left per tick, in cells.
	PipeSpeed float64 `yaml:"pipe_speed"`
}

// Obstacles defines the pipe geometry and spawn cadence.
type Obstacles struct {
	PipeWidth float64 `yaml:"pipe_width"`
	// SpawnInterval is the spawn cadence in ticks: one pipe is appended
	// every SpawnInterval active ticks, the first at tick SpawnInterval.
	SpawnInterval int `yaml:"spawn_interval"`
	GapHeight     int `yaml:"gap_height"`
	// TopMargin is the minimum offset of the gap's top edge from the
	// playfield top.
	TopMargin int `yaml:"top_margin"`
	// GroundBuffer keeps the gap's bottom edge away from the ground.
	GroundBuffer int `yaml:"ground_buffer"`
}

// Player defines the player hitbox.
type Player struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Commentary configures the run-end flavor-text request.
type Commentary struct {
	// Endpoint is the URL the final score is posted to.
	// Empty disables the remote call; the fallback line is used instead.
	Endpoint string `yaml:"endpoint"`
	// TimeoutMS bounds each request in milliseconds.
	TimeoutMS int `yaml:"timeout_ms"`
	// Fallback is shown whenever no commentary could be fetched.
	Fallback string `yaml:"fallback"`
}
