package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenfolio/internal/models"
	"zenfolio/internal/portfolio"
	"zenfolio/internal/ui/components"
)

// Loader produces the full project list shown by the browser
type Loader func(ctx context.Context) ([]models.ProjectData, error)

type keyMap struct {
	Quit          key.Binding
	Search        key.Binding
	Done          key.Binding
	NextFramework key.Binding
	PrevFramework key.Binding
	Refresh       key.Binding
}

var keys = keyMap{
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Done:          key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "done")),
	NextFramework: key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "framework")),
	PrevFramework: key.NewBinding(key.WithKeys("shift+tab", "F")),
	Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}

// Model represents the UI model
type Model struct {
	List          components.ProjectListModel
	Search        textinput.Model
	Spinner       spinner.Model
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	NeedsLogin    bool
	Source        string
	Projects      []models.ProjectData
	Frameworks    []string
	FrameworkIdx  int
	Width         int
	Height        int
	Ready         bool

	ctx    context.Context
	loader Loader
	seq    int
	now    func() time.Time
}

// NewModel creates a new UI model. source names where the projects come from.
func NewModel(ctx context.Context, source string, loader Loader) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "Search projects..."
	search.Prompt = "/ "
	search.CharLimit = 64

	return Model{
		List:          components.NewProjectListModel(80, 20),
		Search:        search,
		Spinner:       s,
		IsLoading:     true,
		StatusMessage: "Loading projects...",
		Source:        source,
		Frameworks:    []string{portfolio.AllFrameworks},
		ctx:           ctx,
		loader:        loader,
		seq:           1,
		now:           time.Now,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadProjects(m.ctx, m.loader, m.seq))
}

// Framework returns the selected framework
func (m Model) Framework() string {
	return m.Frameworks[m.FrameworkIdx]
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Search.Focused() {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Search):
			return m, m.Search.Focus()
		case key.Matches(msg, keys.NextFramework):
			m.FrameworkIdx = (m.FrameworkIdx + 1) % len(m.Frameworks)
			return m, m.applyFilter()
		case key.Matches(msg, keys.PrevFramework):
			m.FrameworkIdx = (m.FrameworkIdx - 1 + len(m.Frameworks)) % len(m.Frameworks)
			return m, m.applyFilter()
		case key.Matches(msg, keys.Refresh):
			m.seq++
			m.IsLoading = true
			m.StatusMessage = "Refreshing projects..."
			return m, tea.Batch(m.Spinner.Tick, loadProjects(m.ctx, m.loader, m.seq))
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetSize(msg.Width, max(msg.Height-7, 1))
		m.Search.Width = max(msg.Width/2, 10)
		m.Ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.IsLoading {
			return m, nil
		}
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		return m, spinnerCmd

	case projectsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.IsLoading = false
		m.ErrorMessage = ""
		m.NeedsLogin = false
		m.Projects = msg.projects
		m.setFrameworks(portfolio.Frameworks(msg.projects))
		m.StatusMessage = fmt.Sprintf("Loaded %d projects", len(msg.projects))
		return m, m.applyFilter()

	case errorMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.IsLoading = false
		m.StatusMessage = "Error"
		var authErr *models.AuthenticationError
		if errors.As(msg.err, &authErr) || errors.Is(msg.err, models.ErrNotLoggedIn) {
			m.NeedsLogin = true
			m.ErrorMessage = "Invalid Token. Run 'zenfolio login' to connect again."
		} else {
			m.NeedsLogin = false
			m.ErrorMessage = msg.err.Error()
		}
		return m, nil
	}

	var listCmd tea.Cmd
	m.List, listCmd = m.List.Update(msg)
	cmds = append(cmds, listCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Done) {
		m.Search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	return m, tea.Batch(cmd, m.applyFilter())
}

// setFrameworks replaces the selector options, keeping the current choice if it survived
func (m *Model) setFrameworks(frameworks []string) {
	current := m.Framework()
	m.Frameworks = frameworks
	m.FrameworkIdx = 0
	for i, fw := range frameworks {
		if fw == current {
			m.FrameworkIdx = i
			break
		}
	}
}

func (m *Model) applyFilter() tea.Cmd {
	visible := portfolio.FilterProjects(m.Projects, m.Search.Value(), m.Framework())
	return m.List.SetProjects(visible, m.now())
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = fmt.Sprintf("%s · showing %d of %d", m.StatusMessage, len(m.List.Projects), len(m.Projects))
	}

	titleBar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		Render(fmt.Sprintf("ZenFolio - %s", m.Source))

	frameworkStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252"))
	if m.Framework() != portfolio.AllFrameworks {
		frameworkStyle = frameworkStyle.Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0"))
	}
	filterBar := lipgloss.JoinHorizontal(
		lipgloss.Center,
		lipgloss.NewStyle().Padding(0, 1).Render(m.Search.View()),
		frameworkStyle.Render(m.Framework()),
	)

	statusBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(status)

	body := m.List.View()
	if !m.IsLoading && len(m.List.Projects) == 0 && m.ErrorMessage == "" {
		body = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("241")).
			Padding(1, 2).
			Render("No projects found in this realm.")
	}

	detail := ""
	if sel := m.List.Selected; sel != nil {
		detail = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Render(fmt.Sprintf("%s → %s", sel.Name, sel.URL))
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.ErrorMessage)
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(helpLine())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		filterBar,
		statusBar,
		body,
		detail,
		errorView,
		help,
	)
}

func helpLine() string {
	bindings := []key.Binding{keys.Search, keys.NextFramework, keys.Refresh, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " • ")
}

// Messages
type projectsLoadedMsg struct {
	seq      int
	projects []models.ProjectData
}

type errorMsg struct {
	seq int
	err error
}

// Commands
func loadProjects(ctx context.Context, loader Loader, seq int) tea.Cmd {
	return func() tea.Msg {
		projects, err := loader(ctx)
		if err != nil {
			return errorMsg{seq: seq, err: err}
		}
		return projectsLoadedMsg{seq: seq, projects: projects}
	}
}
