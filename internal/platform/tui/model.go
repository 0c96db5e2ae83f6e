package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/paddle-arcade/internal/core"
	"github.com/vovakirdan/paddle-arcade/internal/registry"
	"github.com/vovakirdan/paddle-arcade/internal/storage"
)

// statusRows is the number of rows below the game used by the status bar.
const statusRows = 1

// RoundStats accumulates per-round figures from step results.
type RoundStats struct {
	Ticks      int
	Collisions int
	PeakSpeed  float64
}

// Add folds one step result into the stats.
func (s *RoundStats) Add(res core.StepResult) {
	s.Ticks++
	s.Collisions += res.Collisions
	s.PeakSpeed = math.Max(s.PeakSpeed, res.PeakSpeed)
}

// Round builds the storage record for a finished round.
func (s RoundStats) Round(gameID string, state core.GameState) storage.Round {
	return storage.Round{
		GameID:     gameID,
		Score:      state.Score,
		Opponent:   state.Opponent,
		Won:        state.Score > state.Opponent,
		Ticks:      s.Ticks,
		Collisions: s.Collisions,
		PeakSpeed:  s.PeakSpeed,
	}
}

// GameModel runs one game with a status bar and back-to-menu support.
// It is used directly by `arcade play` and embedded in SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	stats      RoundStats
	keyMapper  *KeyMapper
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	roundSaved bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithLogger reports storage failures to the given logger.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) { m.logger = l }
}

// Standalone makes Back quit the program.
func Standalone() GameOption {
	return func(m *GameModel) { m.standalone = true }
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func gameHeight(screenH int) int {
	return max(1, screenH-statusRows)
}

// gameConfig is the runtime config the game sees, without the status bar.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back only works when the round is not running
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))

	// Field size is fixed at reset, so a live round restarts
	if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
		m.stats = RoundStats{}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.stats = RoundStats{}
		m.roundSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !result.State.Paused && !m.roundSaved {
		m.stats.Add(result)
	}

	if m.gameState.GameOver && !m.roundSaved {
		m.saveRound()
		m.roundSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRound records the finished round. Storage is best-effort.
func (m GameModel) saveRound() {
	if m.store == nil {
		return
	}
	round := m.stats.Round(m.game.ID(), m.gameState)
	if _, err := m.store.SaveRound(round); err != nil {
		m.logger.Warn("could not save round", "game", round.GameID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the game and the status bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + RenderStatus(m.config.ScreenW, m.game.Title(), m.stats, m.config.TickRate)
}

// Stats returns the figures gathered so far this round.
func (m GameModel) Stats() RoundStats {
	return m.stats
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	opts = append(opts, Standalone())
	model := NewGameModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
