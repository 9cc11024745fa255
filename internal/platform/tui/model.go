package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Deps are the collaborators one session works with.
type Deps struct {
	Config   config.FlappyConfig
	Store    *storage.Store     // Optional; nil keeps scores in memory
	Mixer    *audio.Mixer       // Optional; nil is silent
	Logger   *log.Logger        // Optional; nil discards
	Renderer *lipgloss.Renderer // Optional; nil uses the local terminal
}

// withDefaults fills in the optional collaborators.
func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Mixer == nil {
		d.Mixer = audio.NewMixer(nil, d.Config.Audio, d.Logger)
	}
	return d
}

type screenID int

const (
	screenMenu screenID = iota
	screenSettings
	screenScores
	screenGame
)

// SessionModel manages one player's flow between the main menu, the
// settings and scores screens and the game. It is the top-level model for
// local play and for every SSH session.
type SessionModel struct {
	deps     Deps
	config   core.RuntimeConfig
	game     *flappy.Game
	painter  *Painter
	theme    string
	current  screenID
	menu     MenuModel
	settings SettingsModel
	scores   ScoreboardModel
	play     GameModel
	tickGen  int
	quitting bool
}

// NewSessionModel creates a session. theme is the initial theme selection;
// with startInGame the first run starts right away instead of the menu.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, theme string, startInGame bool) SessionModel {
	deps = deps.withDefaults()

	opts := []flappy.Option{
		flappy.WithAudio(deps.Mixer),
		flappy.WithLogger(deps.Logger),
	}
	if deps.Store != nil {
		opts = append(opts, flappy.WithStore(deps.Store))
	}

	if theme == "" {
		theme = deps.Config.DefaultTheme
	}

	m := SessionModel{
		deps:    deps,
		config:  cfg,
		game:    flappy.New(deps.Config, opts...),
		painter: NewPainter(deps.Renderer),
		theme:   theme,
	}
	if startInGame {
		m.current = screenGame
		m.play = m.newGameModel()
	} else {
		m.menu = m.newMenu()
	}
	return m
}

func (m *SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.deps.Renderer, m.config.ScreenW, m.config.ScreenH, m.game.BestScore(), m.theme)
}

func (m *SessionModel) newGameModel() GameModel {
	m.tickGen++
	return NewGameModel(m.game, m.deps, m.painter, m.config, m.theme, m.tickGen)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenGame {
		return m.play.Start()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Chosen() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.current = screenGame
		m.play = m.newGameModel()
		return m, m.play.Start()

	case ChoiceSettings:
		m.current = screenSettings
		m.settings = NewSettingsModel(m.deps.Renderer, m.config.ScreenW, m.config.ScreenH,
			m.deps.Config.ThemeNames(), m.theme, m.deps.Mixer.SoundEnabled(), m.deps.Mixer.MusicEnabled())
		return m, m.settings.Init()

	case ChoiceScores:
		m.current = screenScores
		m.scores = NewScoreboardModel(m.deps.Renderer, m.deps.Store, m.deps.Config.ThemeNames(),
			m.game.BestScore(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateSettings applies every change right away so leaving the screen
// needs no extra step.
func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSettings, cmd := m.settings.Update(msg)
	if settings, ok := newSettings.(SettingsModel); ok {
		m.settings = settings
	}

	if m.settings.Theme() != "" {
		m.theme = m.settings.Theme()
	}
	m.deps.Mixer.SetSoundEnabled(m.settings.Sound())
	state := m.game.State()
	m.deps.Mixer.SetMusicEnabled(m.settings.Music(), state.Running && !state.Paused)

	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.Done() {
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.play = gameModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu shows a fresh main menu. Ticks still in flight from the game
// screen reach the menu, which drops them.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.play.View()
	case screenSettings:
		return m.settings.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Theme returns the theme the next run starts with.
func (m SessionModel) Theme() string {
	return m.theme
}

// Game returns the session's game.
func (m SessionModel) Game() *flappy.Game {
	return m.game
}

// Run starts a local Bubble Tea program for one session.
func Run(deps Deps, cfg core.RuntimeConfig, theme string, startInGame bool) error {
	model := NewSessionModel(deps, cfg, theme, startInGame)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flap
	)

	_, err := p.Run()
	return err
}
