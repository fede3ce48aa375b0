package sim

import (
	"math/rand"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Pipe is one gated barrier pair: a top and a bottom segment sharing a gap.
type Pipe struct {
	X      float64 // Horizontal position (leading/left edge)
	GapY   int     // Vertical offset of the gap's top edge from the playfield top
	Passed bool    // Set once the player has cleared this pipe (score source)
}

// TopRect returns the collision box of the segment above the gap.
func (p Pipe) TopRect(width float64) core.Rect {
	return core.NewRect(p.X, 0, width, float64(p.GapY))
}

// BottomRect returns the collision box of the segment below the gap.
func (p Pipe) BottomRect(width float64, gapHeight int, fieldH float64) core.Rect {
	top := float64(p.GapY + gapHeight)
	return core.NewRect(p.X, top, width, fieldH-top)
}

// PipeStream owns the ordered sequence of pipes. Pipes are appended on a
// fixed tick cadence and retired from the front once fully off-screen;
// spawn order keeps horizontal positions monotonic, so only the frontmost
// pipe ever needs a retirement check.
type PipeStream struct {
	pipes  []Pipe
	rng    *rand.Rand
	ticks  int // ticks since reset, drives the spawn cadence
	fieldW float64
	fieldH float64
	cfg    config.Obstacles
	speed  float64
}

// NewPipeStream creates a pipe stream with the given RNG seed.
// The seed is injectable so tests can assert exact obstacle geometry.
func NewPipeStream(seed int64, fieldW, fieldH float64, cfg config.Obstacles, speed float64) *PipeStream {
	ps := &PipeStream{
		pipes:  make([]Pipe, 0, 8),
		fieldW: fieldW,
		fieldH: fieldH,
		cfg:    cfg,
		speed:  speed,
	}
	ps.Reset(seed)
	return ps
}

// Reset clears all pipes, the tick counter, and reseeds the RNG.
func (ps *PipeStream) Reset(seed int64) {
	ps.pipes = ps.pipes[:0]
	ps.rng = rand.New(rand.NewSource(seed))
	ps.ticks = 0
}

// SetField updates the playfield dimensions used for spawn position and
// gap range. Existing pipes are left untouched.
func (ps *PipeStream) SetField(fieldW, fieldH float64) {
	ps.fieldW = fieldW
	ps.fieldH = fieldH
}

// Tick advances the stream by one simulation step: every pipe moves left
// by the constant speed, one pipe is appended every SpawnInterval ticks
// (the first at tick SpawnInterval, not tick 0), and the frontmost pipe
// is dropped once its trailing edge is a full width past the left edge.
func (ps *PipeStream) Tick() {
	for i := range ps.pipes {
		ps.pipes[i].X -= ps.speed
	}

	ps.ticks++
	if ps.cfg.SpawnInterval > 0 && ps.ticks%ps.cfg.SpawnInterval == 0 {
		ps.spawn()
	}

	if len(ps.pipes) > 0 {
		front := ps.pipes[0]
		if front.X+ps.cfg.PipeWidth < -ps.cfg.PipeWidth {
			ps.pipes = ps.pipes[1:]
		}
	}
}

// spawn appends a new pipe at the right edge with a uniformly random gap
// offset in [topMargin, fieldH - gapHeight - topMargin - groundBuffer].
func (ps *PipeStream) spawn() {
	minGapY := ps.cfg.TopMargin
	maxGapY := int(ps.fieldH) - ps.cfg.GapHeight - ps.cfg.TopMargin - ps.cfg.GroundBuffer

	if maxGapY < minGapY {
		maxGapY = minGapY // Degenerate case for very small screens
	}

	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + ps.rng.Intn(maxGapY-minGapY+1)
	}

	ps.pipes = append(ps.pipes, Pipe{
		X:    ps.fieldW,
		GapY: gapY,
	})
}

// CheckPassage marks every pipe whose trailing edge the player's leading
// edge has passed and returns the number of pipes newly passed this tick.
// Each pipe is counted at most once; the Passed flag is the source of
// score truth.
func (ps *PipeStream) CheckPassage(playerLeftX float64) int {
	passed := 0
	for i := range ps.pipes {
		if !ps.pipes[i].Passed && playerLeftX > ps.pipes[i].X+ps.cfg.PipeWidth {
			ps.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Collides tests the given box against every live pipe's two segments.
func (ps *PipeStream) Collides(box core.Rect) bool {
	for _, p := range ps.pipes {
		if box.Intersects(p.TopRect(ps.cfg.PipeWidth)) {
			return true
		}
		if box.Intersects(p.BottomRect(ps.cfg.PipeWidth, ps.cfg.GapHeight, ps.fieldH)) {
			return true
		}
	}
	return false
}

// Pipes returns the current pipe sequence, ordered by spawn time.
func (ps *PipeStream) Pipes() []Pipe {
	return ps.pipes
}
