package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cardapio/internal/adapters/tui/views"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	backend ports.Backend
	opts    views.ListOptions

	state ViewState
	list  *views.ListModel
	help  *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application showing the list of kind, filtered
// by rawQuery
func NewApp(backend ports.Backend, kind domain.Kind, rawQuery string, opts views.ListOptions) *App {
	return &App{
		backend: backend,
		opts:    opts,
		state:   ViewList,
		list:    views.NewListModel(backend, kind, rawQuery, opts),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchKindMsg:
		// A new list page starts with no filters; the old one is unmounted
		// and its pending results are dropped.
		opts := a.opts
		opts.Initial = nil
		a.list = views.NewListModel(a.backend, msg.Kind, "", opts)
		a.list.SetSize(a.width, a.height)
		a.state = ViewList
		return a, a.list.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToListMsg:
		a.state = ViewList
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.list.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// List returns the mounted list view
func (a *App) List() *views.ListModel {
	return a.list
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.list.View()
	}
}
