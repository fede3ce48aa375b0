package sim

import (
	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Phase is the state of the run machine. Exactly one Game instance exists
// per session and only Step mutates it.
type Phase int

const (
	PhaseIdle   Phase = iota // Waiting for the first flap
	PhaseActive              // Simulation ticking
	PhasePaused              // Rendering continues, ticks suppressed
	PhaseEnded               // Run over; retry or reset to leave
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActive:
		return "Active"
	case PhasePaused:
		return "Paused"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// RunEnd describes a finished run. Emitted exactly once per run so the
// platform can persist the score and request commentary without the
// simulation ever blocking on either.
type RunEnd struct {
	Score int
	Best  int
	Epoch uint64 // Identifies the run the commentary request belongs to
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	RunEnded *RunEnd // Non-nil on the tick a fatal collision ended the run
}

// Game is the loop driver: it owns the player, the pipe stream, the score,
// and the phase machine, and advances them one tick per rendered frame.
type Game struct {
	cfg config.Config
	rt  core.RuntimeConfig

	player Player
	pipes  *PipeStream
	score  int
	best   int
	phase  Phase
	epoch  uint64
	ticks  uint64

	// commentLine is display-only state for the game-over overlay. It is
	// never read by the simulation and is cleared on every new run.
	commentLine string
}

// New creates a game with the given configuration.
func New(cfg config.Config) *Game {
	return &Game{cfg: cfg}
}

// Reset fully (re)initializes the game into the Idle phase. Called once
// at session start; the runtime config carries screen size and RNG seed.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.epoch = 0
	g.resetRun()
	g.phase = PhaseIdle
}

// resetRun restores the per-run initial values: player centered with zero
// velocity, empty pipe stream, zero score. The pipe RNG is reseeded from
// the base seed offset by the epoch so consecutive runs differ while
// staying deterministic for a fixed seed.
func (g *Game) resetRun() {
	fieldH := g.fieldHeight()
	g.player = NewPlayer(g.cfg.Player, fieldH/2)

	seed := g.rt.Seed + int64(g.epoch)
	if g.pipes == nil {
		g.pipes = NewPipeStream(seed, float64(g.rt.ScreenW), fieldH, g.cfg.Obstacles, g.cfg.Physics.PipeSpeed)
	} else {
		g.pipes.SetField(float64(g.rt.ScreenW), fieldH)
		g.pipes.Reset(seed)
	}

	g.score = 0
	g.ticks = 0
	g.commentLine = ""
	g.phase = PhaseIdle
}

// startRun begins a new run: the epoch advances so late responses for an
// earlier run can be told apart, and the machine enters Active.
func (g *Game) startRun() {
	g.epoch++
	g.commentLine = ""
	g.phase = PhaseActive
}

// Step consumes one input frame and advances the machine by one tick.
// Invoked exactly once per rendered frame; input events between frames
// only enqueue intents, so Step is the single writer of all game state.
func (g *Game) Step(in core.InputFrame) StepResult {
	switch g.phase {
	case PhaseIdle:
		// The first flap starts the run but does not also apply an
		// impulse in the same tick.
		if in.Has(core.ActionFlap) {
			g.startRun()
		}
		return StepResult{}

	case PhaseEnded:
		if in.Has(core.ActionRetry) {
			// Reset and start as one atomic transition: no intermediate
			// idle-state frame is ever rendered.
			g.resetRun()
			g.startRun()
			return StepResult{}
		}
		if in.Has(core.ActionReset) {
			g.resetRun()
		}
		return StepResult{}

	case PhasePaused:
		if in.Has(core.ActionPause) {
			g.phase = PhaseActive
		}
		return StepResult{}
	}

	// PhaseActive
	if in.Has(core.ActionPause) {
		g.phase = PhasePaused
		return StepResult{}
	}
	if in.Has(core.ActionFlap) {
		g.player.Impulse(g.cfg.Physics.JumpImpulse)
	}
	return g.tick()
}

// tick runs one active simulation step in the required order: physics,
// obstacles, ceiling/floor, per-pipe collision, passage/score.
func (g *Game) tick() StepResult {
	g.ticks++

	g.player.Tick(g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed)
	g.pipes.Tick()

	if g.player.HitCeiling() || g.player.HitFloor(g.fieldHeight()) {
		return g.endRun()
	}
	if g.pipes.Collides(g.player.Rect()) {
		return g.endRun()
	}

	g.score += g.pipes.CheckPassage(g.player.X)
	return StepResult{}
}

// endRun transitions to Ended, folds the best score, and reports the
// finished run. Processing of the fatal tick stops here.
func (g *Game) endRun() StepResult {
	g.phase = PhaseEnded
	if g.score > g.best {
		g.best = g.score
	}
	return StepResult{
		RunEnded: &RunEnd{Score: g.score, Best: g.best, Epoch: g.epoch},
	}
}

// Resize updates the playfield dimensions used by spawn-range and floor
// calculations. It never resets a running game.
func (g *Game) Resize(w, h int) {
	g.rt.ScreenW = w
	g.rt.ScreenH = h
	if g.pipes != nil {
		g.pipes.SetField(float64(w), g.fieldHeight())
	}
}

// fieldHeight is the playable height: the bottom row is the ground line.
func (g *Game) fieldHeight() float64 {
	h := g.rt.ScreenH - 1
	if h < 4 {
		h = 4
	}
	return float64(h)
}

// SetCommentary attaches a flavor-text line for the run identified by
// epoch. Responses for a run the player has already left behind are
// discarded, as are responses arriving outside the game-over screen.
// Returns whether the line was applied.
func (g *Game) SetCommentary(epoch uint64, text string) bool {
	if epoch != g.epoch || g.phase != PhaseEnded {
		return false
	}
	g.commentLine = text
	return true
}

// SetBest seeds the best score from persistence at session start.
func (g *Game) SetBest(best int) {
	if best > g.best {
		g.best = best
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the current run's score.
func (g *Game) Score() int { return g.score }

// Best returns the best score seen this session (seeded from storage).
func (g *Game) Best() int { return g.best }

// Epoch returns the identifier of the current (or just-ended) run.
func (g *Game) Epoch() uint64 { return g.epoch }

// Ticks returns the number of active ticks in the current run.
func (g *Game) Ticks() uint64 { return g.ticks }
