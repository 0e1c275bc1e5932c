// Package tui provides the terminal user interface for the video browser.
package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/video-browser/internal/config"
	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/interaction"
	"github.com/dtg01100/video-browser/internal/layout"
	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dtg01100/video-browser/internal/notify"
	"github.com/dtg01100/video-browser/internal/tui/components"
	"github.com/dtg01100/video-browser/internal/tui/screens"
	"github.com/dtg01100/video-browser/internal/view"
	"github.com/rs/zerolog"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Page represents a sidebar destination.
type Page int

const (
	PageVideos Page = iota
	PageSources
	PageSettings
)

// Pages lists the sidebar destinations in display order.
var Pages = []Page{PageVideos, PageSources, PageSettings}

// String returns the sidebar label of a page.
func (p Page) String() string {
	switch p {
	case PageVideos:
		return "Videos"
	case PageSources:
		return "Sources"
	case PageSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Container returns the id of the container the page shows.
func (p Page) Container() string {
	switch p {
	case PageSources:
		return view.ContainerSources
	case PageSettings:
		return view.ContainerSettings
	default:
		return view.ContainerVideos
	}
}

// TabAll is the top-nav tab that shows every category.
const TabAll = "All"

const (
	// LoadingDuration is how long the loading indicator stays up.
	LoadingDuration = 1000 * time.Millisecond
	toastInterval   = 100 * time.Millisecond
	fadeDuration    = 300 * time.Millisecond
	requestTimeout  = 5 * time.Second
)

// CatalogLoadedMsg is sent when the mock backend has answered.
type CatalogLoadedMsg struct {
	Catalog models.Catalog
	Err     error
}

// LoadingDoneMsg is sent when the loading interval has elapsed.
type LoadingDoneMsg struct{}

type toastTickMsg time.Time

type fadeDoneMsg struct {
	container string
}

// modalForm is a form drawn in place of the page content.
type modalForm interface {
	tea.Model
	SetSize(width, height int)
}

// Options wires the app's collaborators. Zero values take defaults.
type Options struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Clock     notify.Clock
	Generator *mock.Generator
	API       *mock.API
}

// App is the main TUI application model.
type App struct {
	width    int
	height   int
	loading  bool
	loadErr  error
	showHelp bool
	ticking  bool

	cursor  int
	hovered string
	query   string

	searching bool
	search    textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      KeyMap
	form      modalForm

	// Services
	config   *config.Config
	logger   zerolog.Logger
	clock    notify.Clock
	notifier *notify.Service
	ctrl     *interaction.Controller
	renderer *view.Renderer
	resolver *layout.Resolver
	gen      *mock.Generator
	api      *mock.API
	catalog  models.Catalog
}

// NewApp creates a new TUI application.
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = notify.SystemClock
	}
	gen := opts.Generator
	if gen == nil {
		gen = mock.NewGenerator()
	}
	api := opts.API
	if api == nil {
		api = mock.NewAPI()
	}

	notifier := notify.NewService(cfg.NotifyConfig(), clock)
	dispatcher := interaction.NewDispatcher(notifier, opts.Logger)

	sidebar := make([]string, len(Pages))
	for i, p := range Pages {
		sidebar[i] = p.String()
	}
	tabs := []string{TabAll}
	for _, c := range models.Categories {
		tabs = append(tabs, string(c))
	}
	ctrl := interaction.NewController(dispatcher, sidebar, tabs)

	doc := view.NewDocument(view.ContainerVideos, view.ContainerSources, view.ContainerSettings)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search videos..."
	search.CharLimit = 64
	search.Width = 24

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = components.Styles.Selected

	return &App{
		loading:  true,
		search:   search,
		spinner:  spin,
		help:     help.New(),
		keys:     DefaultKeyMap(),
		config:   cfg,
		logger:   opts.Logger,
		clock:    clock,
		notifier: notifier,
		ctrl:     ctrl,
		renderer: view.NewRenderer(doc, ctrl, opts.Logger),
		resolver: layout.NewResolver(cfg.LayoutConfig()),
		gen:      gen,
		api:      api,
	}
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadCatalog,
		tea.Tick(LoadingDuration, func(time.Time) tea.Msg { return LoadingDoneMsg{} }),
	)
}

// loadCatalog asks the mock backend for the catalog and generates it.
func (a *App) loadCatalog() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	videos, sources := a.config.Catalog.Videos, a.config.Catalog.Sources
	env, err := a.api.Request(ctx, "/api/catalog", mock.Options{
		Data: map[string]any{"videos": videos, "sources": sources},
	})
	if err != nil {
		return CatalogLoadedMsg{Err: err}
	}
	a.logger.Debug().Bool("success", env.Success).Str("message", env.Message).Msg("catalog request answered")

	return CatalogLoadedMsg{Catalog: a.gen.Catalog(videos, sources)}
}

// Update handles application updates.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)

	case LoadingDoneMsg:
		a.loading = false

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case CatalogLoadedMsg:
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.logger.Error().Err(msg.Err).Msg("catalog load failed")
			a.notifier.Notify(msg.Err.Error(), notify.SeverityError)
			break
		}
		a.catalog = msg.Catalog
		cmds = append(cmds, a.renderAll()...)

	case toastTickMsg:
		a.notifier.Prune()
		if a.notifier.Len() > 0 {
			cmds = append(cmds, toastTick())
		} else {
			a.ticking = false
		}

	case fadeDoneMsg:
		if c, ok := a.renderer.Document().Container(msg.container); ok {
			c.MarkShown()
		}

	case screens.SettingSubmittedMsg:
		a.form = nil
		a.changeSetting(msg.Index, msg.Value)

	case screens.SourceSubmittedMsg:
		a.form = nil
		a.ctrl.Dispatcher().AddSource(msg.Name)

	case screens.FormCancelMsg:
		a.form = nil

	case tea.KeyMsg:
		if a.form != nil {
			cmds = append(cmds, a.updateForm(msg))
			break
		}
		cmds = append(cmds, a.handleKey(msg))

	default:
		if a.form != nil {
			cmds = append(cmds, a.updateForm(msg))
		} else if a.searching {
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, a.ensureTicking())
	return a, tea.Batch(cmds...)
}

// setSize records the terminal size and re-resolves the layout.
func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width

	panels, changed := a.resolver.Apply(a.config.ViewportWidth(width))
	if changed {
		a.logger.Info().
			Int("columns", width).
			Str("mode", a.resolver.Mode().String()).
			Int("sidebar_width", panels.SidebarWidth).
			Msg("layout changed")
	}

	if a.form != nil {
		a.form.SetSize(a.mainWidth(), height)
	}
}

func (a *App) updateForm(msg tea.Msg) tea.Cmd {
	model, cmd := a.form.Update(msg)
	if f, ok := model.(modalForm); ok {
		a.form = f
	}
	return cmd
}

func (a *App) openForm(f modalForm) tea.Cmd {
	f.SetSize(a.mainWidth(), a.height)
	a.form = f
	return f.Init()
}

// handleKey handles keys while the page itself has focus.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case key.Matches(msg, a.keys.Videos):
		a.navigate(PageVideos)
	case key.Matches(msg, a.keys.Sources):
		a.navigate(PageSources)
	case key.Matches(msg, a.keys.Settings):
		a.navigate(PageSettings)
	case key.Matches(msg, a.keys.PrevTab):
		return a.stepTab(-1)
	case key.Matches(msg, a.keys.NextTab):
		return a.stepTab(1)
	case key.Matches(msg, a.keys.Up):
		a.setCursor(a.cursor - 1)
	case key.Matches(msg, a.keys.Down):
		a.setCursor(a.cursor + 1)
	case key.Matches(msg, a.keys.Enter):
		return a.activate()
	case key.Matches(msg, a.keys.Edit):
		a.clickSource(view.TargetEdit)
	case key.Matches(msg, a.keys.Delete):
		a.clickSource(view.TargetDelete)
	case key.Matches(msg, a.keys.Add):
		if a.Page() == PageSources {
			return a.openForm(screens.NewSourceForm())
		}
	case key.Matches(msg, a.keys.Favorite):
		if id, ok := a.focusedVideo(); ok {
			a.ctrl.Dispatcher().AddToFavorites(id)
		}
	case key.Matches(msg, a.keys.Unfavorite):
		if id, ok := a.focusedVideo(); ok {
			a.ctrl.Dispatcher().RemoveFromFavorites(id)
		}
	case key.Matches(msg, a.keys.History):
		if id, ok := a.focusedVideo(); ok {
			a.ctrl.Dispatcher().AddToHistory(id)
		}
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.search.SetValue(a.query)
		a.search.CursorEnd()
		return a.search.Focus()
	case key.Matches(msg, a.keys.ToggleSidebar):
		panels := a.resolver.ToggleSidebar()
		a.logger.Debug().Int("sidebar_width", panels.SidebarWidth).Msg("sidebar toggled")
	}

	return nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		a.searching = false
		a.search.Blur()
		return nil
	case "enter":
		a.searching = false
		a.search.Blur()
		a.query = strings.TrimSpace(a.search.Value())
		if a.query != "" {
			a.ctrl.Dispatcher().Search(a.query)
		}
		cmd := a.renderVideos()
		a.navigate(PageVideos)
		return cmd
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return cmd
}

// Page returns the page selected in the sidebar.
func (a *App) Page() Page {
	active, _ := a.ctrl.Sidebar().Active()
	for _, p := range Pages {
		if p.String() == active {
			return p
		}
	}
	return PageVideos
}

// navigate selects a sidebar page and puts the pointer on its first entry.
func (a *App) navigate(p Page) {
	if a.ctrl.ClickSidebar(p.String()) {
		a.logger.Debug().Str("page", p.String()).Msg("navigate")
	}
	a.setCursor(0)
}

func (a *App) stepTab(delta int) tea.Cmd {
	tab := a.ctrl.TopNav().Step(delta)
	a.logger.Debug().Str("tab", tab).Msg("tab selected")
	cmd := a.renderVideos()
	if a.Page() == PageVideos {
		a.setCursor(0)
	}
	return cmd
}

func (a *App) container() (*view.Container, bool) {
	return a.renderer.Document().Container(a.Page().Container())
}

// setCursor moves the pointer to fragment i of the current page, clamped to
// the fragments present, and moves the hover with it.
func (a *App) setCursor(i int) {
	c, ok := a.container()
	if !ok || c.Len() == 0 {
		a.cursor = 0
		a.setHover("", interaction.ElementCard)
		return
	}
	a.cursor = min(max(i, 0), c.Len()-1)

	f, _ := c.Fragment(a.cursor)
	if f.Kind == view.KindSetting {
		a.setHover("", interaction.ElementCard)
		return
	}
	a.setHover(f.EntityID, interaction.ElementCard)
}

func (a *App) setHover(id string, kind interaction.ElementKind) {
	if a.hovered == id {
		return
	}
	if a.hovered != "" {
		a.ctrl.PointerLeave(a.hovered)
	}
	a.hovered = id
	if id != "" {
		a.ctrl.PointerEnter(id, kind)
	}
}

func (a *App) focused() (view.Fragment, bool) {
	c, ok := a.container()
	if !ok {
		return view.Fragment{}, false
	}
	return c.Fragment(a.cursor)
}

func (a *App) focusedVideo() (string, bool) {
	if a.Page() != PageVideos {
		return "", false
	}
	f, ok := a.focused()
	return f.EntityID, ok
}

// activate clicks the fragment under the pointer.
func (a *App) activate() tea.Cmd {
	c, ok := a.container()
	if !ok {
		return nil
	}
	f, ok := c.Fragment(a.cursor)
	if !ok {
		return nil
	}

	switch f.Kind {
	case view.KindVideoCard, view.KindSourceCard:
		c.Dispatch(view.Event{Type: view.EventClick, Index: a.cursor, Target: view.TargetCard})
	case view.KindSetting:
		if f.Control == nil {
			return nil
		}
		if f.Control.Type == models.SettingBoolean {
			c.Dispatch(view.Event{Type: view.EventChange, Index: a.cursor, Value: strconv.FormatBool(!f.Control.Checked)})
			return nil
		}
		return a.openForm(screens.NewSettingForm(a.cursor, f))
	}
	return nil
}

func (a *App) clickSource(target view.Target) {
	if a.Page() != PageSources {
		return
	}
	if c, ok := a.container(); ok {
		c.Dispatch(view.Event{Type: view.EventClick, Index: a.cursor, Target: target})
	}
}

func (a *App) changeSetting(index int, value string) {
	if c, ok := a.renderer.Document().Container(view.ContainerSettings); ok {
		c.Dispatch(view.Event{Type: view.EventChange, Index: index, Value: value})
	}
}

// filteredVideos returns the videos of the active tab matching the search.
func (a *App) filteredVideos() []models.Video {
	tab, _ := a.ctrl.TopNav().Active()
	query := strings.ToLower(a.query)

	out := make([]models.Video, 0, len(a.catalog.Videos))
	for _, v := range a.catalog.Videos {
		if tab != "" && tab != TabAll && string(v.Category) != tab {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(v.Title), query) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (a *App) renderVideos() tea.Cmd {
	a.renderer.RenderVideoCards(view.ContainerVideos, a.filteredVideos())
	return fadeOut(view.ContainerVideos)
}

// renderAll renders every container from the catalog.
func (a *App) renderAll() []tea.Cmd {
	cmds := []tea.Cmd{a.renderVideos()}

	a.renderer.RenderSourceList(view.ContainerSources, a.catalog.Sources)
	cmds = append(cmds, fadeOut(view.ContainerSources))

	a.ctrl.ResetSwitches()
	a.renderer.RenderSettings(view.ContainerSettings, a.catalog.Settings)
	cmds = append(cmds, fadeOut(view.ContainerSettings))

	a.setCursor(a.cursor)
	a.logger.Info().
		Int("videos", len(a.catalog.Videos)).
		Int("sources", len(a.catalog.Sources)).
		Int("settings", len(a.catalog.Settings)).
		Msg("catalog rendered")
	return cmds
}

func fadeOut(container string) tea.Cmd {
	return tea.Tick(fadeDuration, func(time.Time) tea.Msg { return fadeDoneMsg{container: container} })
}

func toastTick() tea.Cmd {
	return tea.Tick(toastInterval, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

// ensureTicking starts the toast timer when messages are live.
func (a *App) ensureTicking() tea.Cmd {
	if a.ticking || a.notifier.Len() == 0 {
		return nil
	}
	a.ticking = true
	return toastTick()
}

func (a *App) mainWidth() int {
	return max(1, a.width-a.resolver.Panels().MainMargin)
}

// View renders the application.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	panels := a.resolver.Panels()

	header := components.TitleBar(a.width, "Video Browser", Version)
	topnav := components.TopNav(a.ctrl.TopNav(), a.width, panels.TopNavOffset, a.searchView())
	footer := components.StatusBar(a.width, a.help.View(a.keys))

	bodyHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(topnav)-lipgloss.Height(footer))
	mainWidth := a.mainWidth()

	var content string
	if a.form != nil {
		content = a.form.View()
	} else {
		content = a.renderPage(mainWidth, bodyHeight)
	}
	if toasts := a.renderToasts(mainWidth); toasts != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, toasts, content)
	}

	main := lipgloss.NewStyle().
		Width(mainWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)

	body := main
	if panels.SidebarWidth > 0 {
		sidebar := components.Sidebar(a.ctrl.Sidebar(), max(1, panels.SidebarWidth-1), bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		topnav,
		body,
		footer,
	)
}

func (a *App) searchView() string {
	if a.searching {
		return a.search.View()
	}
	if a.query != "" {
		return components.Styles.Selected.Render("search: " + a.query)
	}
	return components.Styles.HelpText.Render("/ search")
}

// renderToasts stacks the live notifications, newest last, on the right.
func (a *App) renderToasts(width int) string {
	active := a.notifier.Visible()
	if len(active) == 0 {
		return ""
	}

	now := a.clock.Now()
	toastWidth := min(40, width)
	stack := make([]string, 0, len(active))
	for _, n := range active {
		stack = append(stack, components.Toast(n, n.Phase(now), toastWidth))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, stack...))
}

// renderPage draws the container of the current page.
func (a *App) renderPage(width, height int) string {
	if a.loading {
		return components.Center(a.spinner.View()+" Loading...", width)
	}
	if a.loadErr != nil {
		var appErr *apperrors.AppError
		if errors.As(a.loadErr, &appErr) {
			return components.Styles.Error.Width(min(width, 60)).Render(appErr.FormatForTUI())
		}
		return components.RenderError(a.loadErr.Error())
	}

	page := a.Page()
	heading := components.Styles.Title.Render(page.String())
	c, ok := a.container()
	if !ok {
		return heading
	}

	fragments := c.Fragments()
	if len(fragments) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, heading, "", components.Styles.Subtitle.Render("Nothing to show."))
	}

	listHeight := max(1, height-2)
	var list string
	switch page {
	case PageVideos:
		list = a.renderVideoGrid(fragments, width, listHeight)
	case PageSources:
		list = a.renderSourceList(fragments, width, listHeight)
	case PageSettings:
		list = a.renderSettingList(fragments, width, listHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, heading, "", list)
}

// videoCardHeight is the height of a card with its border and lift row.
const videoCardHeight = 6

func (a *App) renderVideoGrid(fragments []view.Fragment, width, height int) string {
	cols := components.GridColumns(width)
	start, end := visibleRange(len(fragments), a.cursor, cols, videoCardHeight, height)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := fragments[i]
		cards = append(cards, components.VideoCard(f, components.CardState{
			Focused: i == a.cursor,
			Lift:    a.ctrl.Offset(f.EntityID),
		}))
	}
	return components.VideoGrid(cards, width)
}

// sourceRowHeight is the height of a source card with its border and lift row.
const sourceRowHeight = 5

func (a *App) renderSourceList(fragments []view.Fragment, width, height int) string {
	start, end := visibleRange(len(fragments), a.cursor, 1, sourceRowHeight, height)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := fragments[i]
		rows = append(rows, components.SourceRow(f, width, components.CardState{
			Focused: i == a.cursor,
			Lift:    a.ctrl.Offset(f.EntityID),
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderSettingList(fragments []view.Fragment, width, height int) string {
	start, end := visibleRange(len(fragments), a.cursor, 1, 1, height)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := fragments[i]
		token, _ := a.ctrl.SwitchColor(f.EntityID)
		rows = append(rows, components.SettingRow(f, width, i == a.cursor, token))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// visibleRange returns the slice of n items, laid out perRow to a row of
// rowHeight lines, that fits height while keeping cursor on screen.
func visibleRange(n, cursor, perRow, rowHeight, height int) (start, end int) {
	perRow = max(1, perRow)
	rows := max(1, height/max(1, rowHeight))
	cursorRow := cursor / perRow
	firstRow := max(0, cursorRow-rows+1)

	start = firstRow * perRow
	end = min(n, start+rows*perRow)
	return start, end
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
