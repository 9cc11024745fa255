package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Game-over panel buttons.
const (
	overRestart = iota
	overMenu
)

// GameModel puts a flappy.Game on screen: it feeds input into the frame
// loop, records finished runs and shows the game-over panel.
type GameModel struct {
	game       *flappy.Game
	deps       Deps
	painter    *Painter
	screen     *core.Screen
	config     core.RuntimeConfig
	theme      string
	gen        int
	inputFrame core.InputFrame
	gameState  core.GameState
	prevBest   int
	keyMapper  *KeyMapper
	help       help.Model
	overCursor int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the game screen. gen tags the tick chain this
// model accepts.
func NewGameModel(game *flappy.Game, deps Deps, painter *Painter, cfg core.RuntimeConfig, theme string, gen int) GameModel {
	return GameModel{
		game:       game,
		deps:       deps,
		painter:    painter,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:     cfg,
		theme:      theme,
		gen:        gen,
		inputFrame: core.NewInputFrame(),
		prevBest:   game.BestScore(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
}

// playHeight leaves one row for the controls bar.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Start begins a new run and returns the first tick.
func (m *GameModel) Start() tea.Cmd {
	m.restart()
	return tickCmd(m.config.TickRate, m.gen)
}

// restart starts a run on the existing tick chain.
func (m *GameModel) restart() {
	seed := m.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if _, err := m.game.Start(m.theme, seed); err != nil && !errors.Is(err, flappy.ErrRunActive) {
		m.deps.Logger.Error("cannot start run", "error", err)
	}
	m.prevBest = m.game.BestScore()
	m.gameState = m.game.State()
	m.overCursor = overRestart
	m.inputFrame.Clear()
}

// Init starts the run.
func (m GameModel) Init() tea.Cmd {
	return m.Start()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input. Gameplay keys are collected into the
// input frame and applied on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.gameState.GameOver {
		if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
			m.quitting = true
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, nil
	}

	switch {
	case action == core.ActionRestart:
		m.restart()
	case action == core.ActionBack:
		m.leave()
	case msg.String() == "enter":
		if m.overCursor == overRestart {
			m.restart()
		} else {
			m.leave()
		}
	default:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp, MenuActionLeft:
			m.overCursor = overRestart
		case MenuActionDown, MenuActionRight:
			m.overCursor = overMenu
		case MenuActionBack:
			m.leave()
		}
	}
	return m, nil
}

// handleMouse queues a tap during a run; on the game-over panel a click
// presses the button under the pointer.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapMouse(msg) != core.ActionTap {
		return m, nil
	}
	if !m.gameState.GameOver {
		m.inputFrame.Set(core.ActionTap)
		return m, nil
	}

	layout := newGameOverLayout(m.screen.Width(), m.screen.Height(), m.gameState.Score, m.gameState.BestScore, m.newBest())
	switch {
	case layout.restart.Contains(msg.X, msg.Y):
		m.restart()
	case layout.menu.Contains(msg.X, msg.Y):
		m.leave()
	}
	return m, nil
}

// leave returns the game to Idle and asks the session for the menu.
func (m *GameModel) leave() {
	m.game.ReturnToMenu()
	m.backToMenu = true
}

// handleResize adapts the screen. The world is scaled, so the run goes on.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one frame of the simulation.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, e := range result.Events {
		m.deps.Logger.Debug("game event", "event", e, "score", m.gameState.Score)
		if e == core.EventHit {
			m.recordRun()
		}
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// recordRun appends the finished run to the score history.
func (m *GameModel) recordRun() {
	if m.deps.Store == nil || m.gameState.Score == 0 {
		return
	}
	if _, err := m.deps.Store.SaveScore(m.game.Theme().Name, m.gameState.Score); err != nil {
		m.deps.Logger.Warn("cannot record run", "score", m.gameState.Score, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	m.game.Render(m.screen)

	bar := m.help.View(m.keyMapper.Keys())
	if m.gameState.GameOver {
		drawGameOverPanel(m.screen, m.gameState.Score, m.gameState.BestScore, m.newBest(), m.overCursor)
		bar = m.help.ShortHelpView(m.keyMapper.Keys().GameOverHelp())
	}

	return m.painter.Render(m.screen) + "\n" + bar
}

// newBest reports whether the finished run beat the best from before it.
func (m GameModel) newBest() bool {
	return m.gameState.Score > m.prevBest
}

const (
	restartLabel = " Restart "
	menuLabel    = " Menu "
	buttonGap    = 3
)

// gameOverLayout places the end-of-run box and its buttons in the center
// of a w x h play area.
type gameOverLayout struct {
	box           core.Rect
	restart, menu core.Rect
	scoreLine     string
	bestLine      string
}

func newGameOverLayout(w, h, score, best int, newBest bool) gameOverLayout {
	l := gameOverLayout{
		scoreLine: fmt.Sprintf("Score: %d", score),
		bestLine:  fmt.Sprintf("Best: %d", best),
	}
	if newBest {
		l.bestLine = "New best!"
	}

	buttons := len(restartLabel) + buttonGap + len(menuLabel)
	boxW := core.Max(buttons, core.Max(len(l.scoreLine), len(l.bestLine))) + 6
	boxH := 8
	l.box = core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	x := l.box.X + (l.box.W-buttons)/2
	y := l.box.Y + 6
	l.restart = core.NewRect(x, y, len(restartLabel), 1)
	l.menu = core.NewRect(l.restart.Right()+buttonGap, y, len(menuLabel), 1)
	return l
}

// drawGameOverPanel draws the end-of-run box with its two buttons in the
// center of the screen.
func drawGameOverPanel(dst *core.Screen, score, best int, newBest bool, cursor int) {
	l := newGameOverLayout(dst.Width(), dst.Height(), score, best, newBest)
	box := l.box

	panel := core.Cell{Rune: ' ', Fg: core.ColorBrightWhite, Bg: core.ColorBlack}
	dst.PaintRect(box, panel)
	dst.DrawBox(box)

	center := func(y int, text string, style core.Cell) {
		dst.DrawStyledText(box.X+(box.W-len(text))/2, y, text, style)
	}

	bold := panel
	bold.Bold = true
	center(box.Y+1, "GAME OVER", bold)
	center(box.Y+3, l.scoreLine, panel)
	if newBest {
		highlight := bold
		highlight.Fg = core.ColorYellow
		center(box.Y+4, l.bestLine, highlight)
	} else {
		center(box.Y+4, l.bestLine, panel)
	}

	selected := core.Cell{Fg: core.ColorBlack, Bg: core.ColorYellow, Bold: true}
	styles := [2]core.Cell{panel, panel}
	styles[cursor] = selected

	dst.DrawStyledText(l.restart.X, l.restart.Y, restartLabel, styles[overRestart])
	dst.DrawStyledText(l.menu.X, l.menu.Y, menuLabel, styles[overMenu])
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
