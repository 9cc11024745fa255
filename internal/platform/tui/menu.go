package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// MenuChoice is what the player picked on the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceSettings
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	label  string
	choice MenuChoice
}

// menuStyles holds the styles shared by the menu screens.
type menuStyles struct {
	title    lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	panel    lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f7d51d")),
		item: r.NewStyle().
			Padding(0, 2),
		selected: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("241")),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#70c5ce")).
			Padding(1, 4),
	}
}

// MenuModel is the main menu: Play, Settings, Scores, Quit.
type MenuModel struct {
	items     []menuItem
	cursor    int
	width     int
	height    int
	best      int
	theme     string
	keyMapper *KeyMapper
	styles    menuStyles
	chosen    MenuChoice
}

// NewMenuModel creates the main menu. best and theme are shown as status.
func NewMenuModel(r *lipgloss.Renderer, width, height, best int, theme string) MenuModel {
	return MenuModel{
		items: []menuItem{
			{"Play", ChoicePlay},
			{"Settings", ChoiceSettings},
			{"Scores", ChoiceScores},
			{"Quit", ChoiceQuit},
		},
		width:     width,
		height:    height,
		best:      best,
		theme:     theme,
		keyMapper: NewKeyMapper(),
		styles:    newMenuStyles(r),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.chosen = ChoiceQuit
		case MenuActionUp:
			m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
		case MenuActionDown:
			m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
		case MenuActionSelect:
			m.chosen = m.items[m.cursor].choice
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("F L A P P Y"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render(item.label))
		} else {
			b.WriteString(m.styles.item.Render(item.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("best %d  ·  theme %s", m.best, m.theme)))

	panel := m.styles.panel.Render(b.String())
	footer := m.styles.dim.Render("up/down: navigate  enter: select  q: quit")
	return place(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, panel, "", footer))
}

// Chosen returns the selected entry, or ChoiceNone.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// SettingsModel edits the theme and the two audio toggles.
type SettingsModel struct {
	themes    []string
	themeIdx  int
	sound     bool
	music     bool
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	styles    menuStyles
	done      bool
	quitting  bool
}

const (
	settingTheme = iota
	settingSound
	settingMusic
	settingBack
	settingCount
)

// NewSettingsModel creates the settings screen with the current values.
func NewSettingsModel(r *lipgloss.Renderer, width, height int, themes []string, theme string, sound, music bool) SettingsModel {
	idx := 0
	for i, t := range themes {
		if t == theme {
			idx = i
		}
	}
	return SettingsModel{
		themes:    themes,
		themeIdx:  idx,
		sound:     sound,
		music:     music,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		styles:    newMenuStyles(r),
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionBack:
			m.done = true
		case MenuActionUp:
			m.cursor = core.Clamp(m.cursor-1, 0, settingCount-1)
		case MenuActionDown:
			m.cursor = core.Clamp(m.cursor+1, 0, settingCount-1)
		case MenuActionLeft:
			m.change(-1)
		case MenuActionRight:
			m.change(1)
		case MenuActionSelect:
			if m.cursor == settingBack {
				m.done = true
			} else {
				m.change(1)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// change steps the setting under the cursor.
func (m *SettingsModel) change(dir int) {
	switch m.cursor {
	case settingTheme:
		if n := len(m.themes); n > 0 {
			m.themeIdx = (m.themeIdx + dir + n) % n
		}
	case settingSound:
		m.sound = !m.sound
	case settingMusic:
		m.music = !m.music
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	rows := []string{
		fmt.Sprintf("Theme   < %-6s >", m.Theme()),
		"Sound   " + onOff(m.sound),
		"Music   " + onOff(m.music),
		"Back",
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("SETTINGS"))
	b.WriteString("\n\n")
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render(row))
		} else {
			b.WriteString(m.styles.item.Render(row))
		}
		b.WriteString("\n")
	}

	panel := m.styles.panel.Render(b.String())
	footer := m.styles.dim.Render("left/right: change  enter: toggle  esc: back")
	return place(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, panel, "", footer))
}

// Theme returns the selected theme name.
func (m SettingsModel) Theme() string {
	if len(m.themes) == 0 {
		return ""
	}
	return m.themes[m.themeIdx]
}

// Sound returns the sound effects toggle.
func (m SettingsModel) Sound() bool { return m.sound }

// Music returns the music toggle.
func (m SettingsModel) Music() bool { return m.music }

// Done returns true once the player leaves the screen.
func (m SettingsModel) Done() bool { return m.done }

// IsQuitting returns true if the player asked to quit.
func (m SettingsModel) IsQuitting() bool { return m.quitting }

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// place centers content in the terminal, or returns it as is before the
// first size message.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
