// Package tui is the Bubble Tea front end: login gate, mode selection and
// the two assistant screens. All service calls run synchronously inside
// Update; the interface blocks until each operation completes.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/auth"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/service"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/session"
)

// Backend wires the TUI to the application core. StartSession is called
// once per successful login and owns construction of the per-session
// services; the TUI never builds core components itself.
type Backend struct {
	Auth         *auth.Store
	StartSession func(user string) (*session.Session, *service.Companion, *service.Analyzer)
}

type screen int

const (
	screenLogin screen = iota
	screenMode
	screenCompanion
	screenAnalyzer
)

const modeCount = 2

// Model is the Bubble Tea model for the assistant.
type Model struct {
	backend Backend

	current     screen
	registering bool // login form doubles as the registration form

	username textinput.Model
	password textinput.Model
	field    int // focused login field

	modeCursor int

	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool

	sess      *session.Session
	companion *service.Companion
	analyzer  *service.Analyzer
}

// New creates the TUI model starting at the login screen.
func New(backend Backend) Model {
	username := textinput.New()
	username.Prompt = "Username: "
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Prompt = "Password: "
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0

	return Model{
		backend:  backend,
		current:  screenLogin,
		username: username,
		password: password,
		input:    input,
		viewport: viewport.New(0, 0),
		status:   "Log in or press Tab to switch to registration.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 3 + ih // header, status, spacer, input frame
		vh := msg.Height - reserved - fh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.refreshViewport()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch m.current {
		case screenLogin:
			return m.updateLogin(msg)
		case screenMode:
			return m.updateModeSelect(msg)
		case screenCompanion, screenAnalyzer:
			return m.updateChat(msg)
		}
	}
	// Route everything else (cursor blink and friends) to the focused input.
	var cmd tea.Cmd
	switch m.current {
	case screenLogin:
		if m.field == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case screenCompanion, screenAnalyzer:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.registering = !m.registering
		if m.registering {
			m.status = "Registration: pick a username and password, then press Enter."
		} else {
			m.status = "Log in or press Tab to switch to registration."
		}
		return m, nil
	case "up", "down":
		m.field = (m.field + 1) % 2
		return m, m.focusLoginField()
	case "enter":
		if m.field == 0 {
			m.field = 1
			return m, m.focusLoginField()
		}
		return m.submitLogin()
	}
	var cmd tea.Cmd
	if m.field == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLoginField() tea.Cmd {
	if m.field == 0 {
		m.password.Blur()
		return m.username.Focus()
	}
	m.username.Blur()
	return m.password.Focus()
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	user := strings.TrimSpace(m.username.Value())
	pass := m.password.Value()
	if user == "" || pass == "" {
		m.status = "Username and password are required."
		return m, nil
	}
	if m.registering {
		if err := m.backend.Auth.Register(user, pass); err != nil {
			m.status = "Registration failed: " + err.Error()
			return m, nil
		}
		m.registering = false
		m.status = "Account created! Please log in."
		m.password.SetValue("")
		m.field = 1
		return m, m.focusLoginField()
	}
	if !m.backend.Auth.Verify(user, pass) {
		m.status = "Invalid credentials"
		m.password.SetValue("")
		return m, nil
	}
	m.sess, m.companion, m.analyzer = m.backend.StartSession(user)
	m.current = screenMode
	m.status = fmt.Sprintf("Welcome, %s! Pick a mode.", user)
	m.password.SetValue("")
	return m, nil
}

func (m Model) updateModeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.modeCursor = (m.modeCursor - 1 + modeCount) % modeCount
	case "down", "j":
		m.modeCursor = (m.modeCursor + 1) % modeCount
	case "enter":
		if m.modeCursor == 0 {
			m.current = screenCompanion
			m.status = "Code Companion. Esc returns to mode selection."
		} else {
			m.current = screenAnalyzer
			m.status = "Document Analyzer. /open <path> uploads a PDF; Esc goes back."
		}
		m.input.SetValue("")
		m.refreshViewport()
		return m, m.input.Focus()
	case "esc", "q":
		// Logout drops the session and everything it owns.
		m.sess, m.companion, m.analyzer = nil, nil, nil
		m.current = screenLogin
		m.field = 0
		m.status = "Logged out."
		return m, m.focusLoginField()
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.current = screenMode
		m.status = fmt.Sprintf("Welcome, %s! Pick a mode.", m.sess.CurrentUser())
		m.input.Blur()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if line == "" {
			return m, nil
		}
		m.input.SetValue("")
		if m.current == screenAnalyzer {
			return m.submitAnalyzer(line)
		}
		return m.submitCompanion(line)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitCompanion(line string) (tea.Model, tea.Cmd) {
	m.status = "Thinking..."
	if _, err := m.companion.Respond(context.Background(), line); err != nil {
		m.status = "Error: " + err.Error()
	} else {
		m.status = "Ready."
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) submitAnalyzer(line string) (tea.Model, tea.Cmd) {
	if path, ok := strings.CutPrefix(line, "/open "); ok {
		data, err := os.ReadFile(strings.TrimSpace(path))
		if err != nil {
			m.status = "Cannot read file: " + err.Error()
			return m, nil
		}
		m.status = "Processing document..."
		count, err := m.analyzer.IngestPDF(context.Background(), data)
		if err != nil {
			m.status = "Upload failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Document indexed: %d chunks. Ask away.", count)
		return m, nil
	}
	m.status = "Thinking..."
	answer, err := m.analyzer.Ask(context.Background(), line)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}
	if answer == service.NoDocumentMessage {
		m.status = answer
		return m, nil
	}
	m.status = "Ready."
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m *Model) refreshViewport() {
	if m.sess == nil {
		return
	}
	switch m.current {
	case screenCompanion:
		m.viewport.SetContent(renderTranscript(m.sess.CompanionLog.Turns(), m.viewport.Width))
	case screenAnalyzer:
		m.viewport.SetContent(renderTranscript(m.sess.AnalyzerLog.Turns(), m.viewport.Width))
	}
}

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch m.current {
	case screenLogin:
		return m.viewLogin()
	case screenMode:
		return m.viewModeSelect()
	default:
		return m.viewChat()
	}
}

func (m Model) viewLogin() string {
	title := "🔒 AI Platform Login"
	if m.registering {
		title = "🔒 AI Platform Registration"
	}
	header := titleStyle.Render(title)
	form := inputBoxStyle.Render(m.username.View() + "\n" + m.password.View())
	status := statusStyle.Render(m.status)
	return header + "\n\n" + form + "\n" + status
}

func (m Model) viewModeSelect() string {
	header := titleStyle.Render("Select Mode")
	modes := []string{"🧠 Code Companion", "📘 Document Analyzer"}
	var sb strings.Builder
	for i, mode := range modes {
		cursor := "  "
		line := mode
		if i == m.modeCursor {
			cursor = "> "
			line = selectedStyle.Render(mode)
		}
		sb.WriteString(cursor + line + "\n")
	}
	status := statusStyle.Render(m.status)
	return header + "\n\n" + sb.String() + "\n" + status
}

func (m Model) viewChat() string {
	title := "🧠 Code Companion"
	if m.current == screenAnalyzer {
		title = "📘 Document Analyzer"
	}
	header := titleStyle.Render(title) + dimStyle.Render("  ("+m.sess.CurrentUser()+")")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func renderTranscript(turns []domain.Turn, width int) string {
	if len(turns) == 0 {
		return dimStyle.Render("No messages yet.")
	}
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := userLabelStyle.Render("You")
		if t.Role == domain.RoleAssistant {
			label = assistantLabelStyle.Render("Assistant")
		}
		sb.WriteString(label + "\n" + wrap(t.Content, width))
	}
	return sb.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

var (
	titleStyle          = lipgloss.NewStyle().Bold(true)
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
