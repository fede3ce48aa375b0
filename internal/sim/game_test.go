package sim

import (
	"testing"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newTestGame() *Game {
	g := New(config.Default())
	g.Reset(testRuntime())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// forceFatal positions the player so the next active tick ends the run.
func forceFatal(g *Game) StepResult {
	g.player.Y = g.fieldHeight() - 1
	g.player.Vel = 10
	return g.Step(frame())
}

func TestStartTransition(t *testing.T) {
	g := newTestGame()

	if g.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v, expected Idle", g.Phase())
	}

	// The starting flap transitions Idle -> Active without also applying
	// an impulse or running a physics tick.
	y, vel := g.player.Y, g.player.Vel
	g.Step(frame(core.ActionFlap))

	if g.Phase() != PhaseActive {
		t.Fatalf("phase after start = %v, expected Active", g.Phase())
	}
	if g.player.Y != y || g.player.Vel != vel {
		t.Error("starting flap must not move the player in the same tick")
	}
	if g.Epoch() != 1 {
		t.Errorf("epoch after first start = %d, expected 1", g.Epoch())
	}
}

func TestActiveTickIntegratesOnce(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start

	y := g.player.Y
	g.Step(frame())

	wantVel := g.cfg.Physics.Gravity
	if g.player.Vel != wantVel {
		t.Errorf("velocity after one tick = %v, expected %v", g.player.Vel, wantVel)
	}
	if g.player.Y != y+wantVel {
		t.Errorf("position after one tick = %v, expected %v", g.player.Y, y+wantVel)
	}
	if g.Ticks() != 1 {
		t.Errorf("tick count = %d, expected 1", g.Ticks())
	}
}

func TestFlapAppliesImpulseWhileActive(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start
	g.Step(frame())                // fall a bit

	g.Step(frame(core.ActionFlap))
	wantVel := g.cfg.Physics.JumpImpulse + g.cfg.Physics.Gravity
	if g.player.Vel != wantVel {
		t.Errorf("velocity after flap tick = %v, expected %v", g.player.Vel, wantVel)
	}
}

func TestPauseSuppressesTicks(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start
	g.Step(frame())

	g.Step(frame(core.ActionPause))
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %v, expected Paused", g.Phase())
	}

	y, vel, ticks := g.player.Y, g.player.Vel, g.Ticks()
	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	if g.player.Y != y || g.player.Vel != vel || g.Ticks() != ticks {
		t.Error("paused ticks must not advance physics")
	}

	g.Step(frame(core.ActionPause))
	if g.Phase() != PhaseActive {
		t.Errorf("phase after resume = %v, expected Active", g.Phase())
	}
}

func TestFatalCollisionEndsRun(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start

	res := forceFatal(g)
	if res.RunEnded == nil {
		t.Fatal("fatal tick should report RunEnded")
	}
	if g.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, expected Ended", g.Phase())
	}
	if res.RunEnded.Epoch != g.Epoch() {
		t.Errorf("RunEnded.Epoch = %d, expected %d", res.RunEnded.Epoch, g.Epoch())
	}

	// The event fires exactly once.
	if res := g.Step(frame()); res.RunEnded != nil {
		t.Error("RunEnded must not fire again after the run is over")
	}
}

func TestCeilingIsFatal(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start

	g.player.Y = 1
	g.player.Vel = -5
	res := g.Step(frame())

	if res.RunEnded == nil || g.Phase() != PhaseEnded {
		t.Error("ceiling contact should end the run")
	}
}

func TestBestScoreFolds(t *testing.T) {
	g := newTestGame()
	g.SetBest(3)

	g.Step(frame(core.ActionFlap)) // start
	g.score = 5
	res := forceFatal(g)

	if g.Best() != 5 {
		t.Errorf("best = %d, expected 5", g.Best())
	}
	if res.RunEnded.Best != 5 || res.RunEnded.Score != 5 {
		t.Errorf("RunEnded = %+v, expected score 5 best 5", res.RunEnded)
	}

	// A worse run never lowers the best.
	g.Step(frame(core.ActionRetry))
	forceFatal(g)
	if g.Best() != 5 {
		t.Errorf("best after scoreless run = %d, expected 5", g.Best())
	}
}

func TestRetryIsAtomic(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start
	g.score = 2
	forceFatal(g)

	epoch := g.Epoch()
	g.Step(frame(core.ActionRetry))

	// No intermediate Idle frame: retry lands directly in Active.
	if g.Phase() != PhaseActive {
		t.Fatalf("phase after retry = %v, expected Active", g.Phase())
	}
	if g.Score() != 0 {
		t.Errorf("score after retry = %d, expected 0", g.Score())
	}
	if g.Epoch() != epoch+1 {
		t.Errorf("epoch after retry = %d, expected %d", g.Epoch(), epoch+1)
	}
	if len(g.pipes.Pipes()) != 0 {
		t.Error("retry should clear the pipe stream")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start
	forceFatal(g)

	g.Step(frame(core.ActionReset))
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase after reset = %v, expected Idle", g.Phase())
	}
	if g.Score() != 0 {
		t.Errorf("score after reset = %d, expected 0", g.Score())
	}
}

func TestResetIdempotence(t *testing.T) {
	rt := testRuntime()

	// Reset from every prior phase must yield identical initial values.
	setups := map[string]func(*Game){
		"from idle": func(g *Game) {},
		"from active": func(g *Game) {
			g.Step(frame(core.ActionFlap))
			for i := 0; i < 20; i++ {
				g.Step(frame())
			}
		},
		"from paused": func(g *Game) {
			g.Step(frame(core.ActionFlap))
			g.Step(frame(core.ActionPause))
		},
		"from ended": func(g *Game) {
			g.Step(frame(core.ActionFlap))
			forceFatal(g)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			g := New(config.Default())
			g.Reset(rt)
			setup(g)
			g.Reset(rt)

			if g.Phase() != PhaseIdle {
				t.Errorf("phase = %v, expected Idle", g.Phase())
			}
			if g.Score() != 0 || g.Ticks() != 0 {
				t.Errorf("score/ticks = %d/%d, expected 0/0", g.Score(), g.Ticks())
			}
			if g.player.Vel != 0 {
				t.Errorf("velocity = %v, expected 0", g.player.Vel)
			}
			if g.player.Y != g.fieldHeight()/2 {
				t.Errorf("position = %v, expected %v", g.player.Y, g.fieldHeight()/2)
			}
			if len(g.pipes.Pipes()) != 0 {
				t.Errorf("pipes = %d, expected 0", len(g.pipes.Pipes()))
			}
		})
	}
}

func TestScoreIncrementsOncePerPipe(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start

	// Park the player safely mid-gap and plant a pipe just left of it,
	// already passed territory after one more tick of movement.
	g.player.Vel = 0
	g.pipes.pipes = append(g.pipes.pipes, Pipe{
		X:    g.player.X - g.cfg.Obstacles.PipeWidth - 0.5,
		GapY: 0,
	})

	// Keep the player stationary by neutralizing gravity each tick.
	for i := 0; i < 5 && g.Phase() == PhaseActive; i++ {
		g.player.Vel = -g.cfg.Physics.Gravity
		g.Step(frame())
	}

	if g.Score() != 1 {
		t.Errorf("score = %d, expected exactly 1", g.Score())
	}
}

func TestCommentaryEpochGate(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start, epoch 1
	forceFatal(g)

	if !g.SetCommentary(1, "rough landing") {
		t.Error("commentary for the current ended run should apply")
	}
	if g.commentLine != "rough landing" {
		t.Errorf("commentLine = %q", g.commentLine)
	}

	// Start and end a second run before the first run's (duplicate/stale)
	// response arrives: it must be discarded.
	g.Step(frame(core.ActionRetry)) // epoch 2
	forceFatal(g)

	if g.SetCommentary(1, "stale") {
		t.Error("stale commentary from a previous epoch must be discarded")
	}
	if g.commentLine == "stale" {
		t.Error("stale commentary must not be displayed")
	}
	if !g.SetCommentary(2, "fresh") {
		t.Error("commentary for the current epoch should apply")
	}
}

func TestCommentaryIgnoredOutsideEnded(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start, epoch 1
	forceFatal(g)
	g.Step(frame(core.ActionReset)) // back to idle

	if g.SetCommentary(1, "late") {
		t.Error("commentary must not apply once the player left the game-over screen")
	}
}

func TestResizeIsNonDestructive(t *testing.T) {
	g := newTestGame()
	g.Step(frame(core.ActionFlap)) // start
	for i := 0; i < 60; i++ {
		// Hold the player level so the run survives long enough to spawn.
		g.player.Vel = -g.cfg.Physics.Gravity
		g.Step(frame())
	}
	if g.Phase() != PhaseActive {
		t.Fatalf("run ended unexpectedly in phase %v", g.Phase())
	}
	pipesBefore := len(g.pipes.Pipes())
	scoreBefore := g.Score()

	g.Resize(100, 30)

	if g.Phase() != PhaseActive {
		t.Error("resize must not change the phase")
	}
	if len(g.pipes.Pipes()) != pipesBefore || g.Score() != scoreBefore {
		t.Error("resize must not reset pipes or score")
	}
	if g.pipes.fieldW != 100 {
		t.Errorf("resize should update the spawn edge, fieldW = %v", g.pipes.fieldW)
	}
}

func TestDeterminismWithSeedAndScriptedInput(t *testing.T) {
	run := func() (int, uint64) {
		g := New(config.Default())
		g.Reset(testRuntime())
		g.Step(frame(core.ActionFlap)) // start
		for i := 0; i < 500; i++ {
			in := frame()
			if i%12 == 0 {
				in.Set(core.ActionFlap)
			}
			g.Step(in)
			if g.Phase() == PhaseEnded {
				break
			}
		}
		return g.Score(), g.Ticks()
	}

	s1, t1 := run()
	s2, t2 := run()
	if s1 != s2 || t1 != t2 {
		t.Errorf("runs diverged: score %d/%d, ticks %d/%d", s1, s2, t1, t2)
	}
}

func TestRenderDrawsState(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	// Ground line on the bottom playable row.
	if screen.Get(0, int(g.fieldHeight())) != groundChar {
		t.Error("ground line should be drawn")
	}

	// Render is idempotent and side-effect free on the simulation.
	before := g.player.Y
	g.Render(screen)
	if g.player.Y != before {
		t.Error("render must not mutate simulation state")
	}
}
