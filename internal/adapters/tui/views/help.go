package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cardapio/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToListMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Cardapio Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Recipes, posts and favorites"))
	b.WriteString("\n\n")

	// Navigation section
	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpBinding(ListKeys.Up, "Move up"))
	b.WriteString(helpBinding(ListKeys.Down, "Move down"))
	b.WriteString(helpBinding(ListKeys.PageDown, "Scroll a screen down"))
	b.WriteString(helpBinding(ListKeys.PageUp, "Scroll a screen up"))
	b.WriteString(helpBinding(ListKeys.NextKind, "Recipes, posts, favorites"))
	b.WriteString(helpBinding(ListKeys.More, "Load the next page"))
	b.WriteString("\n")

	// Filters section
	b.WriteString(styles.InputLabel.Render("Filters"))
	b.WriteString("\n")
	b.WriteString(helpBinding(ListKeys.Search, "Search by title (enter applies now)"))
	b.WriteString(helpBinding(ListKeys.Category, "Next category"))
	b.WriteString(helpBinding(ListKeys.Diet, "Next diet tag"))
	b.WriteString(helpBinding(ListKeys.Sort, "Next ordering"))
	b.WriteString(helpBinding(ListKeys.Clear, "Clear all filters"))
	b.WriteString(helpBinding(ListKeys.Share, "Copy a link to this list"))
	b.WriteString(helpBinding(ListKeys.Open, "Open this list in the browser"))
	b.WriteString("\n")

	// Actions section
	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpBinding(ListKeys.Favorite, "Toggle favorite"))
	b.WriteString(helpBinding(ListKeys.Delete, "Delete (press twice)"))
	b.WriteString(helpBinding(ListKeys.Retry, "Reload the list"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpBinding(k key.Binding, desc string) string {
	return helpLine(k.Help().Key, desc)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
