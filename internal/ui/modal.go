package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/keys"
	"github.com/parley-irc/parley/internal/theme"
)

// ModalWidth is the rendered width of modal dialogs.
const ModalWidth = 60

// ModalState is one dialog's state and rendering.
type ModalState interface {
	modalState()
	Title() string
	Render(th theme.Theme) string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal hosts the currently open dialog, if any.
type Modal struct {
	state   ModalState
	visible bool
}

// NewModal creates an empty (hidden) modal host.
func NewModal() *Modal {
	return &Modal{}
}

// Show opens a dialog.
func (m *Modal) Show(state ModalState) {
	m.state = state
	m.visible = true
}

// Hide closes the dialog.
func (m *Modal) Hide() {
	m.visible = false
	m.state = nil
}

// IsVisible reports whether a dialog is open.
func (m *Modal) IsVisible() bool {
	return m.visible
}

// State returns the open dialog's state.
func (m *Modal) State() ModalState {
	return m.state
}

// Update forwards a message to the open dialog.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}
	var cmd tea.Cmd
	m.state, cmd = m.state.Update(msg)
	return cmd
}

// View renders the open dialog centered in the given area.
func (m *Modal) View(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Primary))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.GetBorderFocus())).
		Padding(1, 2).
		Width(ModalWidth)

	content := titleStyle.Render(m.state.Title()) + "\n\n" + m.state.Render(th)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// modalTheme returns a huh theme matching the application theme.
func modalTheme(th theme.Theme) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)
		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(th.Primary))
		t.Focused.Title = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text)).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted)).Italic(true)
		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).SetString("> ")
		t.Focused.Option = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(lipgloss.Color(th.TextInverse)).
			Background(lipgloss.Color(th.Primary))
		return t
	})
}

// huhFormUpdate is the common Update logic for form-backed dialogs. Enter
// and Escape stay with the caller; everything else goes to the form.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}
	m, cmd := form.Update(msg)
	return m.(*huh.Form), cmd
}

// ConnectState is the "add server" dialog.
type ConnectState struct {
	Name     string
	Host     string
	port     string
	Nick     string
	channels string

	form *huh.Form
}

func (*ConnectState) modalState() {}

// NewConnectState builds the add-server form.
func NewConnectState(th theme.Theme) *ConnectState {
	s := &ConnectState{port: "6697"}
	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("libera").
			Value(&s.Name),
		huh.NewInput().
			Title("Host").
			Placeholder("irc.libera.chat").
			Value(&s.Host),
		huh.NewInput().
			Title("Port").
			Value(&s.port),
		huh.NewInput().
			Title("Nick").
			Value(&s.Nick),
		huh.NewInput().
			Title("Channels").
			Description("Comma-separated, joined on connect").
			Placeholder("#go, #rust").
			Value(&s.channels),
	)).
		WithTheme(modalTheme(th)).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)
	s.form.Init()
	return s
}

func (s *ConnectState) Title() string { return "Connect to Server" }

func (s *ConnectState) Render(th theme.Theme) string {
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted)).
		Render("Tab: next field  Enter: connect  Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}

func (s *ConnectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// ServerConfig converts the form fields into a server entry.
func (s *ConnectState) ServerConfig() (config.ServerConfig, error) {
	srv := config.ServerConfig{
		Name: strings.TrimSpace(s.Name),
		Host: strings.TrimSpace(s.Host),
		Nick: strings.TrimSpace(s.Nick),
	}
	if srv.Name == "" || srv.Host == "" {
		return srv, fmt.Errorf("name and host are required")
	}
	port, err := strconv.Atoi(strings.TrimSpace(s.port))
	if err != nil || port <= 0 || port > 65535 {
		return srv, fmt.Errorf("invalid port %q", s.port)
	}
	srv.Port = port
	for _, ch := range strings.Split(s.channels, ",") {
		if ch = strings.TrimSpace(ch); ch != "" {
			srv.Channels = append(srv.Channels, ch)
		}
	}
	return srv, nil
}

// SettingsState is the preferences dialog.
type SettingsState struct {
	SelectedTheme        string
	NotificationsEnabled bool

	form *huh.Form
}

func (*SettingsState) modalState() {}

// NewSettingsState builds the preferences form from current values.
func NewSettingsState(th theme.Theme, currentTheme string, notifications bool) *SettingsState {
	s := &SettingsState{SelectedTheme: currentTheme, NotificationsEnabled: notifications}

	names := theme.Names()
	themeOptions := make([]huh.Option[string], len(names))
	for i, name := range names {
		themeOptions[i] = huh.NewOption(string(name), string(name))
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.SelectedTheme),
		huh.NewConfirm().
			Title("Desktop notifications").
			Affirmative("On").
			Negative("Off").
			Value(&s.NotificationsEnabled),
	)).
		WithTheme(modalTheme(th)).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)
	s.form.Init()
	return s
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Render(th theme.Theme) string {
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted)).
		Render("Tab: next field  Enter: save  Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}
