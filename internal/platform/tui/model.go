package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/game"
	"github.com/vovakirdan/bear-run/internal/loop"
	"github.com/vovakirdan/bear-run/internal/storage"
)

// Muter is implemented by sound outputs that can be silenced by the player.
type Muter interface {
	ToggleMute() bool
	Muted() bool
}

// Options configures a Model.
type Options struct {
	Game     config.BearConfig
	Runtime  core.RuntimeConfig
	Sound    game.Sound // nil plays nothing
	Ledger   *storage.Ledger
	Player   string
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // nil uses the local terminal
}

// Model is the Bubble Tea model for one game of Bear Run.
type Model struct {
	session  *game.Session
	driver   *loop.Driver
	cfg      config.BearConfig
	runtime  core.RuntimeConfig
	sound    game.Sound
	screen   *core.Screen
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	board    Leaderboard
	player   string
	logger   *log.Logger

	gen       int  // Current frame chain
	recorded  bool // Whether the current run reached the ledger
	showBoard bool
	muted     bool
	quitting  bool
}

// NewModel creates a model with an idle session sized to the runtime config.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sound := opts.Sound
	if sound == nil {
		sound = game.NopSound{}
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	session := game.NewSession(opts.Game,
		game.WithSeed(cfg.Seed),
		game.WithSound(sound),
		game.WithListener(func(e game.Event) {
			logger.Debug("event", "kind", e.Kind, "tick", e.Tick, "score", e.Score)
		}),
	)

	h := help.New()
	h.Width = cfg.ScreenW

	muted := false
	if muter, ok := sound.(Muter); ok {
		muted = muter.Muted()
	}

	return Model{
		session:  session,
		driver:   loop.NewDriver(session, logger),
		cfg:      opts.Game,
		runtime:  cfg,
		sound:    sound,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		renderer: NewRenderer(opts.Renderer),
		keys:     DefaultKeyMap(),
		help:     h,
		board:    NewLeaderboard(opts.Ledger, cfg.ScreenW, cfg.ScreenH),
		player:   player,
		logger:   logger,
		muted:    muted,
	}
}

// Init sets the window title. The session waits idle for the first key.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Bear Run")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.driver.Stop()
		return m, tea.Quit

	case core.ActionMute:
		if muter, ok := m.sound.(Muter); ok {
			m.muted = muter.ToggleMute()
			m.logger.Info("audio", "muted", m.muted)
		}
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionLeaderboard:
		m.showBoard = !m.showBoard
		if m.showBoard {
			m.board.Refresh()
		}
		return m, nil

	case core.ActionJump:
		if !m.showBoard {
			return m.press()
		}
	}

	if m.showBoard {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}
	return m, nil
}

// press feeds the single game gesture to the session.
func (m Model) press() (tea.Model, tea.Cmd) {
	switch m.session.Press() {
	case game.TransitionStarted, game.TransitionRestarted:
		m.recorded = false
		m.driver.Start()
		m.gen++
		return m, frameCmd(m.runtime.TickRate, m.gen)
	}
	return m, nil
}

// handleResize processes window resize events. The world keeps its
// coordinates; only the mapping onto cells changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	m.board.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleFrame runs one frame and schedules the next while the run lasts.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	// The leaderboard pauses the run; keep the chain alive without ticking.
	if m.showBoard && m.driver.Active() {
		return m, frameCmd(m.runtime.TickRate, m.gen)
	}

	more := m.driver.Frame()
	if m.session.Phase() == game.PhaseDead && !m.recorded {
		m.recordRun()
	}
	if !more {
		return m, nil
	}
	return m, frameCmd(m.runtime.TickRate, m.gen)
}

// recordRun stores the finished run in the ledger once.
func (m *Model) recordRun() {
	m.recorded = true
	snap := m.session.Snapshot()
	m.logger.Info("run finished", "player", m.player, "score", snap.Score, "best", snap.Best, "ticks", snap.Tick)

	if m.board.ledger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
	defer cancel()

	_, err := m.board.ledger.Record(ctx, storage.RunRecord{
		Player: m.player,
		Score:  snap.Score,
		Ticks:  snap.Tick,
		Seed:   m.runtime.Seed,
		Night:  snap.NightBlend > 0,
	})
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
		return
	}
	m.board.Refresh()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpLine := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.keys))

	if m.showBoard {
		return m.board.View(m.renderer, helpLine)
	}

	snap := m.session.Snapshot()
	game.Render(m.screen, snap, m.cfg)

	var sb strings.Builder
	sb.WriteString(m.renderer.Render(m.screen))
	sb.WriteString("\n")
	sb.WriteString(m.statusLine(snap, helpLine))
	return sb.String()
}

// statusLine shows the key help, the mute state and, after a crash, the
// best runs of the ledger.
func (m Model) statusLine(snap game.Snapshot, helpLine string) string {
	parts := []string{helpLine}
	if m.muted {
		parts = append(parts, "[muted]")
	}
	if snap.Dead {
		if podium := m.board.Podium(3); podium != "" {
			parts = append(parts, podium)
		}
	}
	return strings.Join(parts, "  ")
}

// Session exposes the model's game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Err returns the error that stopped the frame driver, if any.
func (m Model) Err() error {
	return m.driver.Err()
}

// Run starts a local Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
