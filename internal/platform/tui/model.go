package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-tui/internal/commentary"
	"github.com/vovakirdan/flappy-tui/internal/core"
	"github.com/vovakirdan/flappy-tui/internal/sim"
	"github.com/vovakirdan/flappy-tui/internal/storage"
)

// commentaryMsg delivers the asynchronous flavor-text result. It carries
// the epoch of the run it was requested for; the simulation discards it
// if the player has already moved on to another run.
type commentaryMsg struct {
	epoch uint64
	text  string
}

// Model is the Bubble Tea model driving the game: one simulation tick per
// frame, intents collected between ticks, render every frame.
type Model struct {
	game        *sim.Game
	screen      *core.Screen
	store       *storage.Store
	commentator *commentary.Client
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	keyMapper   *KeyMapper
	scoreboard  *ScoreboardModel // Non-nil while the scoreboard is shown
	quitting    bool
}

// NewModel creates the game model. store and commentator may be nil; the
// game then runs without persistence or flavor text.
func NewModel(game *sim.Game, store *storage.Store, commentator *commentary.Client, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game.Reset(cfg)
	if store != nil {
		if best, err := store.BestScore(); err == nil {
			game.SetBest(best)
		}
	}

	return Model{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:       store,
		commentator: commentator,
		config:      cfg,
		inputFrame:  core.NewInputFrame(),
		keyMapper:   NewKeyMapper(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case commentaryMsg:
		// Display-only; the simulation drops stale epochs itself.
		m.game.SetCommentary(msg.epoch, msg.text)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. Keys only enqueue intents; the
// simulation consumes them on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = &sb
		if sb.quitting {
			m.quitting = true
			return m, tea.Quit
		}
		if sb.goingBack {
			m.scoreboard = nil
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "t":
		// Scoreboard is reachable whenever the simulation is not ticking.
		if m.game.Phase() != sim.PhaseActive {
			sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. Resize is non-destructive:
// it adjusts the playfield bounds without resetting a running game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = &sb
		return m, cmd
	}

	return m, nil
}

// handleTick runs one simulation step and schedules the next frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	if result.RunEnded != nil {
		end := *result.RunEnded

		// Best-effort persistence; the game continues regardless.
		if m.store != nil && end.Score > 0 {
			m.store.SaveScore(end.Score) //nolint:errcheck
		}

		// Fire-and-forget commentary request, tagged with the run epoch.
		if m.commentator != nil {
			cmds = append(cmds, requestCommentary(m.commentator, end))
		}
	}

	return m, tea.Batch(cmds...)
}

// requestCommentary returns a command that fetches flavor text for the
// finished run. It runs concurrently with subsequent frames and never
// blocks the tick loop; the Client itself degrades errors to a fallback.
func requestCommentary(client *commentary.Client, end sim.RunEnd) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return commentaryMsg{
			epoch: end.Epoch,
			text:  client.Commentary(ctx, end.Score),
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots")
	//nolint:errcheck // Best-effort
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))

	//nolint:errcheck // Best-effort
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *sim.Game, store *storage.Store, commentator *commentary.Client, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, commentator, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
