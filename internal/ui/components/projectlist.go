package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenfolio/internal/models"
	"zenfolio/internal/util"
)

// ProjectItem represents a project in the list
type ProjectItem struct {
	Project models.ProjectData
	Now     time.Time
}

// FilterValue returns the filter value for the project item
func (i ProjectItem) FilterValue() string {
	return i.Project.Name
}

// Title returns the title for the project item
func (i ProjectItem) Title() string {
	return fmt.Sprintf("%s %s", StatusBadge(i.Project.Status), i.Project.Name)
}

// MaxURLWidth bounds the URL shown in a list row
const MaxURLWidth = 48

// Description returns the description for the project item
func (i ProjectItem) Description() string {
	return fmt.Sprintf("%s · %s · updated %s",
		i.Project.Framework,
		util.Truncate(i.Project.URL, MaxURLWidth),
		util.FormatAge(i.Project.UpdatedAt, i.Now),
	)
}

var statusColors = map[models.Status]lipgloss.Color{
	models.StatusReady:    lipgloss.Color("10"),
	models.StatusBuilding: lipgloss.Color("11"),
	models.StatusError:    lipgloss.Color("196"),
	models.StatusUnknown:  lipgloss.Color("8"),
}

// StatusBadge renders a coloured dot for the readiness state
func StatusBadge(s models.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = statusColors[models.StatusUnknown]
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// ProjectListModel represents the project list model
type ProjectListModel struct {
	List     list.Model
	Projects []models.ProjectData
	Selected *models.ProjectData
}

// NewProjectListModel creates a new project list model. Filtering is done
// by the caller, so the list's own filter is disabled.
func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Projects"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(false)
	listModel.SetShowHelp(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ProjectListModel{
		List:     listModel,
		Projects: []models.ProjectData{},
	}
}

// SetProjects replaces the visible projects, keeping their order
func (m *ProjectListModel) SetProjects(projects []models.ProjectData, now time.Time) tea.Cmd {
	m.Projects = projects

	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = ProjectItem{Project: p, Now: now}
	}

	cmd := m.List.SetItems(items)
	m.List.ResetSelected()
	m.syncSelected()
	return cmd
}

// SetSize resizes the list
func (m *ProjectListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Update handles project list updates
func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		p := item.Project
		m.Selected = &p
	} else {
		m.Selected = nil
	}
}

// View renders the project list
func (m ProjectListModel) View() string {
	return m.List.View()
}
