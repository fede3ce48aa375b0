package sim

import (
	"fmt"

	"github.com/vovakirdan/flappy-tui/internal/core"
)

// Visual characters for rendering.
const (
	playerChar    = '▶'
	playerBody    = '●'
	pipeChar      = '█'
	pipeCapTop    = '▄'
	pipeCapBottom = '▀'
	groundChar    = '═'
)

// Render draws the current simulation state into the screen buffer.
// It is a pure consumer: idempotent and without effect on game state,
// called every frame regardless of phase.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	groundY := int(g.fieldHeight())
	dst.DrawHLine(0, groundY, dst.Width(), groundChar)

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, p, groundY)
	}

	g.drawPlayer(dst)

	hud := fmt.Sprintf(" Score: %d  Best: %d ", g.score, g.best)
	dst.DrawTextColored(2, 0, hud, core.ColorBrightYellow)

	switch g.phase {
	case PhaseIdle:
		g.drawCenteredMessage(dst, "FLAPPY", "Press Space to start")
	case PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseEnded:
		sub := fmt.Sprintf("Score: %d  Best: %d", g.score, g.best)
		g.drawGameOver(dst, sub)
	}
}

// drawPipe renders both segments of one pipe with caps around the gap.
func (g *Game) drawPipe(dst *core.Screen, p Pipe, groundY int) {
	x := int(p.X)
	width := int(g.cfg.Obstacles.PipeWidth)
	gapBottom := p.GapY + g.cfg.Obstacles.GapHeight

	for y := 0; y < p.GapY; y++ {
		for dx := 0; dx < width; dx++ {
			dst.SetCell(x+dx, y, pipeChar, core.ColorGreen)
		}
	}
	if p.GapY > 0 {
		for dx := 0; dx < width; dx++ {
			dst.SetCell(x+dx, p.GapY-1, pipeCapTop, core.ColorGreen)
		}
	}

	for y := gapBottom; y < groundY; y++ {
		for dx := 0; dx < width; dx++ {
			dst.SetCell(x+dx, y, pipeChar, core.ColorGreen)
		}
	}
	if gapBottom < groundY {
		for dx := 0; dx < width; dx++ {
			dst.SetCell(x+dx, gapBottom, pipeCapBottom, core.ColorGreen)
		}
	}
}

// drawPlayer renders the player hitbox with a beak on the top-right cell.
func (g *Game) drawPlayer(dst *core.Screen) {
	px := int(g.player.X)
	py := int(g.player.Y)
	w := int(g.player.W)
	h := int(g.player.H)

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if dx == w-1 && dy == 0 {
				dst.SetCell(px+dx, py+dy, playerChar, core.ColorBrightYellow)
			} else {
				dst.SetCell(px+dx, py+dy, playerBody, core.ColorBrightYellow)
			}
		}
	}
}

// drawGameOver renders the end-of-run overlay including the commentary
// line once (and if) it arrives.
func (g *Game) drawGameOver(dst *core.Screen, subtitle string) {
	lines := []string{subtitle}
	if g.commentLine != "" {
		lines = append(lines, "“"+g.commentLine+"”")
	}
	lines = append(lines, "R retry  ·  T scores  ·  Q quit")
	g.drawMessageBox(dst, "GAME OVER", lines)
}

// drawCenteredMessage draws a single-subtitle message box.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	g.drawMessageBox(dst, title, []string{subtitle})
}

// drawMessageBox draws a bordered box in the center of the screen.
func (g *Game) drawMessageBox(dst *core.Screen, title string, lines []string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		if n := len([]rune(l)); n > boxW {
			boxW = n
		}
	}
	boxW += 4
	boxH := len(lines)*2 + 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	for i, l := range lines {
		n := len([]rune(l))
		dst.DrawText(boxX+(boxW-n)/2, boxY+3+i*2, l)
	}
}
