package views

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cardapio/internal/adapters/tui/styles"
	"cardapio/internal/application/commands"
	"cardapio/internal/debounce"
	"cardapio/internal/domain"
	"cardapio/internal/listing"
	"cardapio/internal/ports"
	"cardapio/internal/urlstate"
)

// ListKeyMap defines key bindings for the list view
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Search   key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Category key.Binding
	Diet     key.Binding
	Sort     key.Binding
	Clear    key.Binding
	Favorite key.Binding
	Delete   key.Binding
	More     key.Binding
	Retry    key.Binding
	Share    key.Binding
	Open     key.Binding
	NextKind key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdown", "page down"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search now"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "leave search"),
	),
	Category: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	Diet: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "diet"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear filters"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	More: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "load more"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Share: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
	NextKind: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next list"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Kinds is the tab order of the list views
var Kinds = []domain.Kind{domain.KindRecipe, domain.KindPost, domain.KindFavorite}

// ListOptions configures a ListModel
type ListOptions struct {
	PerPage  int
	Debounce time.Duration
	// Initial is a page fetched before the view was shown
	Initial *domain.Page
	// ShareURL turns the in-app URL into one that can be shared
	ShareURL func(target string) string
	// Copy defaults to the system clipboard
	Copy func(text string) error
	// Open shows a link in a browser; without it the key is disabled
	Open func(link string) error
}

var lastMount int64

// ListModel is one mounted list page: its filters live in the query string
// of its Synchronizer and every navigation re-fetches the list
type ListModel struct {
	ViewState

	backend ports.Backend
	kind    domain.Kind
	mount   int
	opts    ListOptions

	sync      *urlstate.Synchronizer
	navigated bool
	store     *listing.Store
	meta      domain.PaginationMeta
	taxonomy  domain.Taxonomy
	paginator *Paginator

	input     textinput.Model
	searching bool
	debouncer *debounce.Debouncer

	spinner   spinner.Model
	loading   bool
	fetchErr  error
	confirmID int64
}

// NewListModel mounts a list of kind with the filters in rawQuery
func NewListModel(backend ports.Backend, kind domain.Kind, rawQuery string, opts ListOptions) *ListModel {
	input := textinput.New()
	input.Placeholder = "Search " + kind.Path() + "..."
	input.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &ListModel{
		backend:   backend,
		kind:      kind,
		mount:     int(atomic.AddInt64(&lastMount, 1)),
		opts:      opts,
		input:     input,
		debouncer: debounce.New(opts.Debounce),
		spinner:   s,
		paginator: NewPaginator(10),
	}
	m.sync = urlstate.New("/"+kind.Path(), rawQuery, ports.NavigatorFunc(func(string) {
		m.navigated = true
	}))
	m.input.SetValue(m.sync.Filters().Title())

	var seed []domain.ListItem
	if opts.Initial != nil {
		seed = opts.Initial.Data
		m.meta = opts.Initial.Meta
	}
	m.store = listing.NewStore(seed, ports.NotifierFunc(m.Notify))
	m.paginator.SetTotal(m.store.Len())
	return m
}

type listLoadedMsg struct {
	mount  int
	result listing.Result
}

type taxonomyLoadedMsg struct {
	mount    int
	taxonomy *domain.Taxonomy
	err      error
}

type favoriteSettledMsg struct {
	mount  int
	toggle listing.Toggle
	err    error
}

type removeSettledMsg struct {
	mount   int
	removal listing.Removal
	err     error
}

// Init loads the taxonomy and, unless the list was seeded, the first page
func (m *ListModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadTaxonomy()}
	if m.opts.Initial == nil {
		cmds = append(cmds, m.fetch())
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the list
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	// Results addressed to another mount belong to a list that is gone
	case listLoadedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		return m, m.handleLoaded(msg.result)

	case taxonomyLoadedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		if msg.err != nil {
			m.SetMessage("Could not load filters: "+msg.err.Error(), true)
			return m, m.expireMessage(m.mount)
		}
		m.taxonomy = *msg.taxonomy
		return m, nil

	case favoriteSettledMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.store.SettleToggle(msg.toggle, msg.err)
		return m, m.expireMessage(m.mount)

	case removeSettledMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.store.SettleRemove(msg.removal, msg.err)
		if msg.err == nil {
			m.meta.Total = max(0, m.meta.Total-1)
		}
		m.paginator.SetTotal(m.store.Len())
		return m, m.expireMessage(m.mount)

	case messageExpiredMsg:
		if msg.owner == m.mount {
			m.handleExpired(msg)
		}
		return m, nil

	case debounce.FiredMsg:
		if value, ok := m.debouncer.Settle(msg); ok {
			return m, m.setFilters(map[string]string{domain.FilterTitle: strings.TrimSpace(value)})
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	confirm := m.confirmID
	m.confirmID = 0

	switch {
	case key.Matches(msg, ListKeys.Quit):
		return tea.Quit

	case key.Matches(msg, ListKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(msg, ListKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(msg, ListKeys.PageUp):
		m.paginator.PageUp()

	case key.Matches(msg, ListKeys.PageDown):
		m.paginator.PageDown()

	case key.Matches(msg, ListKeys.Search):
		m.searching = true
		return m.input.Focus()

	case key.Matches(msg, ListKeys.Category):
		return m.setFilters(map[string]string{domain.FilterCategory: m.nextCategory()})

	case key.Matches(msg, ListKeys.Diet):
		return m.setFilters(map[string]string{domain.FilterDiet: m.nextDiet()})

	case key.Matches(msg, ListKeys.Sort):
		return m.setFilters(map[string]string{domain.FilterSort: m.nextSort()})

	case key.Matches(msg, ListKeys.Clear):
		changes := make(map[string]string)
		for _, k := range m.sync.Filters().Keys() {
			changes[k] = ""
		}
		m.input.SetValue("")
		m.debouncer.Cancel()
		return m.setFilters(changes)

	case key.Matches(msg, ListKeys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, ListKeys.Delete):
		return m.deleteSelected(confirm)

	case key.Matches(msg, ListKeys.More):
		return m.loadMore()

	case key.Matches(msg, ListKeys.Retry):
		return m.fetch()

	case key.Matches(msg, ListKeys.Share):
		return m.share()

	case key.Matches(msg, ListKeys.Open):
		return m.open()

	case key.Matches(msg, ListKeys.NextKind):
		next := Kinds[(slices.Index(Kinds, m.kind)+1)%len(Kinds)]
		return func() tea.Msg {
			return SwitchKindMsg{Kind: next}
		}

	case key.Matches(msg, ListKeys.Help):
		return func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}
	return nil
}

// updateSearch feeds the search box. Typing arms the debouncer; only the
// value present when the window elapses reaches the query string.
func (m *ListModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit

	case key.Matches(msg, ListKeys.Cancel):
		m.searching = false
		m.input.Blur()
		return nil

	case key.Matches(msg, ListKeys.Submit):
		m.searching = false
		m.input.Blur()
		m.debouncer.Cancel()
		return m.setFilters(map[string]string{domain.FilterTitle: strings.TrimSpace(m.input.Value())})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.debouncer.Trigger(m.input.Value()))
}

// setFilters writes changes to the query string. Any filter change goes back
// to the first page. Nothing is fetched when the query does not change.
func (m *ListModel) setFilters(changes map[string]string) tea.Cmd {
	changes[domain.FilterPage] = ""
	m.sync.UpdateAll(changes)
	if !m.navigated {
		return nil
	}
	m.navigated = false
	m.paginator.Reset()
	return m.fetch()
}

func (m *ListModel) queryFilters() domain.FilterState {
	filters := m.sync.Filters()
	if m.opts.PerPage > 0 && filters.PerPage() == 0 {
		filters = filters.With(domain.FilterPerPage, strconv.Itoa(m.opts.PerPage))
	}
	return filters
}

// fetch loads the first page for the current URL. An earlier fetch still in
// flight is not cancelled.
func (m *ListModel) fetch() tea.Cmd {
	m.loading = true
	backend, kind, mount, filters := m.backend, m.kind, m.mount, m.queryFilters()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return listLoadedMsg{mount: mount, result: listing.Fetch(context.Background(), backend, kind, filters)}
	})
}

func (m *ListModel) loadMore() tea.Cmd {
	if m.loading || m.fetchErr != nil || !m.meta.HasNext() {
		return nil
	}
	m.loading = true
	backend, kind, mount, filters, meta := m.backend, m.kind, m.mount, m.queryFilters(), m.meta
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return listLoadedMsg{mount: mount, result: listing.FetchNext(context.Background(), backend, kind, filters, meta)}
	})
}

func (m *ListModel) handleLoaded(res listing.Result) tea.Cmd {
	m.loading = false
	if err := res.ApplyTo(m.store); err != nil {
		if res.Append {
			m.SetMessage(fmt.Sprintf("Could not load more %s: %v", m.kind.Path(), err), true)
			return m.expireMessage(m.mount)
		}
		m.fetchErr = err
		m.meta = domain.PaginationMeta{}
		m.store.Replace(nil)
		m.paginator.SetTotal(0)
		return nil
	}

	m.fetchErr = nil
	m.meta, _ = res.Meta()
	if !res.Append {
		m.paginator.Reset()
	}
	m.paginator.SetTotal(m.store.Len())
	return nil
}

func (m *ListModel) loadTaxonomy() tea.Cmd {
	backend, mount := m.backend, m.mount
	return func() tea.Msg {
		tax, err := commands.NewLoadTaxonomyCommand(backend).Execute(context.Background())
		return taxonomyLoadedMsg{mount: mount, taxonomy: tax, err: err}
	}
}

func (m *ListModel) selected() (domain.ListItem, bool) {
	return m.store.At(m.paginator.Cursor())
}

func (m *ListModel) toggleFavorite() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	backend, kind, mount := m.backend, m.kind, m.mount

	// On the favorites list, unfavoriting takes the item off the list
	if m.kind == domain.KindFavorite {
		r, ok := m.store.BeginRemove(it.ID, listing.RemoveUnfavorite)
		if !ok {
			return nil
		}
		m.paginator.SetTotal(m.store.Len())
		return func() tea.Msg {
			_, err := commands.NewSetFavoriteCommand(backend, kind, r.ID, false).Execute(context.Background())
			return removeSettledMsg{mount: mount, removal: r, err: err}
		}
	}

	t, ok := m.store.BeginToggle(it.ID)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		_, err := commands.NewSetFavoriteCommand(backend, kind, t.ID, t.Target).Execute(context.Background())
		return favoriteSettledMsg{mount: mount, toggle: t, err: err}
	}
}

// deleteSelected asks for confirmation on the first press and deletes on
// the second press on the same item
func (m *ListModel) deleteSelected(confirm int64) tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	if m.kind == domain.KindFavorite {
		m.SetMessage("Recipes are deleted from the recipes list", true)
		return m.expireMessage(m.mount)
	}
	if confirm != it.ID {
		m.confirmID = it.ID
		m.SetMessage(fmt.Sprintf("Press x again to delete %q", it.Title), false)
		return m.expireMessage(m.mount)
	}

	r, ok := m.store.BeginRemove(it.ID, listing.RemoveDelete)
	if !ok {
		return nil
	}
	m.paginator.SetTotal(m.store.Len())
	backend, kind, mount := m.backend, m.kind, m.mount
	return func() tea.Msg {
		_, err := commands.NewDeleteCommand(backend, kind, r.ID).Execute(context.Background())
		return removeSettledMsg{mount: mount, removal: r, err: err}
	}
}

func (m *ListModel) shareLink() string {
	link := m.sync.URL()
	if m.opts.ShareURL != nil {
		link = m.opts.ShareURL(link)
	}
	return link
}

func (m *ListModel) share() tea.Cmd {
	link := m.shareLink()
	copyFn := m.opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	if err := copyFn(link); err != nil {
		m.SetMessage("Could not copy link: "+err.Error(), true)
	} else {
		m.SetMessage("Copied "+link, false)
	}
	return m.expireMessage(m.mount)
}

func (m *ListModel) open() tea.Cmd {
	if m.opts.Open == nil {
		return nil
	}
	link := m.shareLink()
	if err := m.opts.Open(link); err != nil {
		m.SetMessage("Could not open link: "+err.Error(), true)
	} else {
		m.SetMessage("Opened "+link, false)
	}
	return m.expireMessage(m.mount)
}

func (m *ListModel) nextCategory() string {
	cats := m.taxonomy.Categories
	next := 0
	if current, ok := m.sync.Filters().CategoryID(); ok {
		next = slices.IndexFunc(cats, func(c domain.Category) bool { return c.ID == current }) + 1
	}
	if next >= len(cats) {
		return ""
	}
	return strconv.FormatInt(cats[next].ID, 10)
}

// nextDiet cycles through single diet tags; a multi-tag selection made
// elsewhere continues from its first tag
func (m *ListModel) nextDiet() string {
	tags := m.taxonomy.DietTags
	next := 0
	if ids := m.sync.Filters().DietIDs(); len(ids) > 0 {
		next = slices.IndexFunc(tags, func(d domain.DietTag) bool { return d.ID == ids[0] }) + 1
	}
	if next >= len(tags) {
		return ""
	}
	return strconv.FormatInt(tags[next].ID, 10)
}

func (m *ListModel) nextSort() string {
	options := append([]domain.SortKey{domain.SortDefault}, domain.SortKeys...)
	i := slices.Index(options, m.sync.Filters().Sort())
	return string(options[(i+1)%len(options)])
}

// SetSize updates the view dimensions and the number of visible rows
func (m *ListModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(max(3, height-14))
}

// Kind returns the kind of list this model shows
func (m *ListModel) Kind() domain.Kind {
	return m.kind
}

// URL returns the current path and query
func (m *ListModel) URL() string {
	return m.sync.URL()
}

// Items returns the items currently shown
func (m *ListModel) Items() []domain.ListItem {
	return m.store.Items()
}

// Loading reports whether a list fetch is in flight
func (m *ListModel) Loading() bool {
	return m.loading
}

// Err returns the error of the last failed list fetch
func (m *ListModel) Err() error {
	return m.fetchErr
}

// View renders the list
func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderBody())

	// Message
	if m.Message != "" {
		b.WriteString("\n\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	// Help line
	b.WriteString("\n\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *ListModel) renderTabs() string {
	parts := []string{styles.Title.Render("cardapio")}
	for _, k := range Kinds {
		label := k.String() + "s"
		if k == m.kind {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *ListModel) renderFilters() string {
	filters := m.sync.Filters()
	var parts []string
	add := func(label, value string) {
		parts = append(parts, styles.FilterLabel.Render(label+": ")+styles.FilterValue.Render(value))
	}

	if t := filters.Title(); t != "" {
		add("search", t)
	}
	if id, ok := filters.CategoryID(); ok {
		name := m.taxonomy.CategoryName(id)
		if name == "" {
			name = strconv.FormatInt(id, 10)
		}
		add("category", name)
	}
	if ids := filters.DietIDs(); len(ids) > 0 {
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			if name := m.taxonomy.DietTagName(id); name != "" {
				names = append(names, name)
			} else {
				names = append(names, strconv.FormatInt(id, 10))
			}
		}
		add("diet", strings.Join(names, ", "))
	}
	if s := filters.Sort(); s != domain.SortDefault {
		add("sort", string(s))
	}

	if len(parts) == 0 {
		return styles.Subtitle.Render("No filters")
	}
	return strings.Join(parts, "  ")
}

func (m *ListModel) renderBody() string {
	if m.store.Len() == 0 {
		switch {
		case m.loading:
			return m.spinner.View() + " Loading " + m.kind.Path() + "..."
		case m.fetchErr != nil:
			return styles.ErrorMsg.Render(fmt.Sprintf("Could not load %s: %v", m.kind.Path(), m.fetchErr)) +
				"\n" + styles.MutedText.Render("Press r to retry")
		case m.sync.Filters().Len() > 0:
			return styles.MutedText.Render(fmt.Sprintf("No %s match these filters. Press C to clear them.", m.kind.Path()))
		default:
			return styles.MutedText.Render(fmt.Sprintf("No %s yet.", m.kind.Path()))
		}
	}

	var b strings.Builder
	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		it, _ := m.store.At(i)
		b.WriteString(m.renderItem(it, i == m.paginator.Cursor()))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d of %d", m.store.Len(), m.meta.Total)
	if m.meta.HasNext() {
		status += fmt.Sprintf(" · page %d/%d · m for more", m.meta.CurrentPage, m.meta.LastPage)
	}
	if m.loading {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(styles.StatusText.Render(status))
	return b.String()
}

func (m *ListModel) renderItem(it domain.ListItem, selected bool) string {
	glyph := domain.IconNone.Glyph()
	var details []string
	if c, ok := m.taxonomy.Category(it.CategoryID); ok {
		glyph = c.Icon.Glyph()
		details = append(details, c.Name)
	}
	if it.PrepMinutes > 0 {
		details = append(details, fmt.Sprintf("%d min", it.PrepMinutes))
	}
	if it.Author != "" {
		details = append(details, it.Author)
	}

	cursor := "  "
	text := styles.Item.Render(glyph + " " + it.Title)
	if selected {
		cursor = "> "
		text = styles.ItemSelected.Render(glyph + " " + it.Title)
	}

	star := "  "
	if it.IsFavorited {
		star = styles.Favorite.Render("★ ")
	}

	line := cursor + star + text
	if len(details) > 0 {
		line += " " + styles.ItemMeta.Render(strings.Join(details, " · "))
	}
	if m.store.IsLoading(it.ID) {
		line += " " + styles.Pending.Render("saving...")
	}
	return line
}

func (m *ListModel) renderHelpLine() string {
	keys := []key.Binding{
		ListKeys.Down, ListKeys.Search, ListKeys.Category, ListKeys.Diet, ListKeys.Sort,
		ListKeys.Favorite, ListKeys.More, ListKeys.NextKind, ListKeys.Help, ListKeys.Quit,
	}
	if m.searching {
		keys = []key.Binding{ListKeys.Submit, ListKeys.Cancel}
	}

	var parts []string
	for _, k := range keys {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(h.Key),
			styles.HelpDesc.Render(h.Desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
