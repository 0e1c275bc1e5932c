package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtg01100/video-browser/internal/config"
	apperrors "github.com/dtg01100/video-browser/internal/errors"
	"github.com/dtg01100/video-browser/internal/interaction"
	"github.com/dtg01100/video-browser/internal/layout"
	"github.com/dtg01100/video-browser/internal/mock"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dtg01100/video-browser/internal/notify"
	"github.com/dtg01100/video-browser/internal/tui/screens"
	"github.com/dtg01100/video-browser/internal/view"
	"github.com/rs/zerolog"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// newTestApp returns an app that has loaded a seeded catalog and received a
// wide window.
func newTestApp(t *testing.T) (*App, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	gen := mock.NewGenerator(mock.WithSeed(7))

	app := NewApp(Options{
		Config:    config.Default(),
		Logger:    zerolog.Nop(),
		Clock:     clock,
		Generator: gen,
	})
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	app.Update(LoadingDoneMsg{})
	app.Update(CatalogLoadedMsg{Catalog: gen.Catalog(12, 5)})
	return app, clock
}

func send(app *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = app.Update(keyMsg(k))
	}
	return cmd
}

func lastToast(t *testing.T, app *App) string {
	t.Helper()
	active := app.notifier.Active()
	if len(active) == 0 {
		t.Fatal("no notification shown")
	}
	return active[len(active)-1].Text
}

func TestPage_String(t *testing.T) {
	tests := []struct {
		page      Page
		expected  string
		container string
	}{
		{PageVideos, "Videos", view.ContainerVideos},
		{PageSources, "Sources", view.ContainerSources},
		{PageSettings, "Settings", view.ContainerSettings},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.page.String(); got != tt.expected {
				t.Errorf("Page(%d).String() = %q, want %q", tt.page, got, tt.expected)
			}
			if got := tt.page.Container(); got != tt.container {
				t.Errorf("Page(%d).Container() = %q, want %q", tt.page, got, tt.container)
			}
		})
	}

	if got := Page(99).String(); got != "Unknown" {
		t.Errorf("Page(99).String() = %q, want %q", got, "Unknown")
	}
}

func TestNewApp(t *testing.T) {
	app := NewApp(Options{})

	if app == nil {
		t.Fatal("NewApp() returned nil")
	}
	if !app.loading {
		t.Error("app should start loading")
	}
	if app.Page() != PageVideos {
		t.Errorf("Page() = %v, want %v", app.Page(), PageVideos)
	}
	if tab, _ := app.ctrl.TopNav().Active(); tab != TabAll {
		t.Errorf("active tab = %q, want %q", tab, TabAll)
	}
	if got := len(app.ctrl.TopNav().Members()); got != 1+len(models.Categories) {
		t.Errorf("tabs = %d, want %d", got, 1+len(models.Categories))
	}
	if app.Init() == nil {
		t.Error("Init() should return a command")
	}
}

func TestView_BeforeSize(t *testing.T) {
	app := NewApp(Options{})
	if got := app.View(); got != "Loading..." {
		t.Errorf("View() = %q, want %q", got, "Loading...")
	}
}

func TestView_Loading(t *testing.T) {
	app := NewApp(Options{})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	if !strings.Contains(app.View(), "Loading...") {
		t.Error("View() should show the loading indicator before LoadingDoneMsg")
	}

	app.Update(LoadingDoneMsg{})
	if app.loading {
		t.Error("LoadingDoneMsg should clear the loading state")
	}
}

func TestCatalogLoaded_RendersContainers(t *testing.T) {
	app, _ := newTestApp(t)
	doc := app.renderer.Document()

	tests := []struct {
		id   string
		want int
	}{
		{view.ContainerVideos, 12},
		{view.ContainerSources, 5},
		{view.ContainerSettings, 7},
	}
	for _, tt := range tests {
		c, ok := doc.Container(tt.id)
		if !ok {
			t.Fatalf("container %q missing", tt.id)
		}
		if c.Len() != tt.want {
			t.Errorf("container %q has %d fragments, want %d", tt.id, c.Len(), tt.want)
		}
	}

	out := app.View()
	if !strings.Contains(out, "Video Browser") {
		t.Error("View() should contain the title bar")
	}
	if !strings.Contains(out, "Video 1") {
		t.Error("View() should contain the first video card")
	}
}

func TestWindowSize_AppliesLayout(t *testing.T) {
	app := NewApp(Options{Logger: zerolog.Nop()})

	tests := []struct {
		name    string
		columns int
		mode    layout.Mode
		sidebar int
	}{
		{"breakpoint is compact", 96, layout.Compact, 0},
		{"one past breakpoint is expanded", 97, layout.Expanded, 24},
		{"narrow terminal", 40, layout.Compact, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tt.columns, Height: 30})
			if got := app.resolver.Mode(); got != tt.mode {
				t.Errorf("Mode() = %v, want %v", got, tt.mode)
			}
			if got := app.resolver.Panels().SidebarWidth; got != tt.sidebar {
				t.Errorf("SidebarWidth = %d, want %d", got, tt.sidebar)
			}
		})
	}
}

func TestToggleSidebar_ResetByResize(t *testing.T) {
	app, _ := newTestApp(t)

	if app.resolver.Panels().Collapsed() {
		t.Fatal("wide window should start with the sidebar shown")
	}

	send(app, "ctrl+b")
	if !app.resolver.Panels().Collapsed() {
		t.Error("ctrl+b should collapse the sidebar")
	}
	if app.resolver.Mode() != layout.Expanded {
		t.Error("toggling must not change the mode")
	}

	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	if app.resolver.Panels().Collapsed() {
		t.Error("resize should restore the panels of the mode")
	}
}

func TestSidebarNavigation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		key  string
		want Page
	}{
		{"2", PageSources},
		{"3", PageSettings},
		{"1", PageVideos},
	}

	for _, tt := range tests {
		send(app, tt.key)
		if app.Page() != tt.want {
			t.Errorf("after %q Page() = %v, want %v", tt.key, app.Page(), tt.want)
		}
		for _, p := range Pages {
			if active := app.ctrl.Sidebar().IsActive(p.String()); active != (p == tt.want) {
				t.Errorf("after %q sidebar item %q active = %v", tt.key, p, active)
			}
		}
	}
}

func TestPointerMovesHover(t *testing.T) {
	app, _ := newTestApp(t)
	videos, _ := app.renderer.Document().Container(view.ContainerVideos)
	first, _ := videos.Fragment(0)
	second, _ := videos.Fragment(1)

	if got := app.ctrl.Offset(first.EntityID); got != interaction.CardLift {
		t.Errorf("first card offset = %d, want %d", got, interaction.CardLift)
	}

	send(app, "down")
	if app.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.cursor)
	}
	if app.ctrl.Hovered(first.EntityID) {
		t.Error("first card should lose hover")
	}
	if got := app.ctrl.Offset(second.EntityID); got != interaction.CardLift {
		t.Errorf("second card offset = %d, want %d", got, interaction.CardLift)
	}

	send(app, "up", "up")
	if app.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after moving past the top", app.cursor)
	}
}

func TestEnter_PlaysVideo(t *testing.T) {
	app, _ := newTestApp(t)
	videos, _ := app.renderer.Document().Container(view.ContainerVideos)
	first, _ := videos.Fragment(0)

	send(app, "enter")

	if want := "Playing video: " + first.EntityID; lastToast(t, app) != want {
		t.Errorf("toast = %q, want %q", lastToast(t, app), want)
	}
}

func TestVideoShortcuts(t *testing.T) {
	app, _ := newTestApp(t)
	videos, _ := app.renderer.Document().Container(view.ContainerVideos)
	first, _ := videos.Fragment(0)

	tests := []struct {
		key    string
		prefix string
	}{
		{"f", "Added to favorites: "},
		{"F", "Removed from favorites: "},
		{"H", "Added to history: "},
	}

	for _, tt := range tests {
		send(app, tt.key)
		if want := tt.prefix + first.EntityID; lastToast(t, app) != want {
			t.Errorf("after %q toast = %q, want %q", tt.key, lastToast(t, app), want)
		}
	}

	before := app.notifier.Len()
	send(app, "2", "f")
	if app.notifier.Len() != before {
		t.Error("favorite shortcut should do nothing outside the video page")
	}
}

func TestSourceActions(t *testing.T) {
	app, _ := newTestApp(t)
	sources, _ := app.renderer.Document().Container(view.ContainerSources)
	first, _ := sources.Fragment(0)

	send(app, "2")

	tests := []struct {
		key  string
		want string
	}{
		{"enter", "Switching source: " + first.EntityID},
		{"e", "Editing source: " + first.EntityID},
		{"d", "Deleting source: " + first.EntityID},
	}

	for _, tt := range tests {
		send(app, tt.key)
		if got := lastToast(t, app); got != tt.want {
			t.Errorf("after %q toast = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestAddSource_OpensForm(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "a")
	if app.form != nil {
		t.Fatal("add should only open a form on the sources page")
	}

	send(app, "2", "a")
	if _, ok := app.form.(*screens.SourceForm); !ok {
		t.Fatalf("form = %T, want *screens.SourceForm", app.form)
	}

	app.Update(screens.SourceSubmittedMsg{Name: "Home", URL: "https://home.example"})
	if app.form != nil {
		t.Error("form should close after submit")
	}
	if got := lastToast(t, app); got != "Adding source: Home" {
		t.Errorf("toast = %q, want %q", got, "Adding source: Home")
	}
}

func TestBooleanSettingToggle(t *testing.T) {
	app, _ := newTestApp(t)
	send(app, "3")

	// autoPlay starts checked.
	send(app, "enter")

	settings, _ := app.renderer.Document().Container(view.ContainerSettings)
	f, _ := settings.Fragment(0)
	if f.Control.Checked {
		t.Error("enter should uncheck autoPlay")
	}
	if token, ok := app.ctrl.SwitchColor("autoPlay"); !ok || token != interaction.TokenBorder {
		t.Errorf("SwitchColor(autoPlay) = %q, %v; want %q", token, ok, interaction.TokenBorder)
	}
	if got := lastToast(t, app); got != "Setting updated: autoPlay = false" {
		t.Errorf("toast = %q", got)
	}

	send(app, "enter")
	if token, _ := app.ctrl.SwitchColor("autoPlay"); token != interaction.TokenPrimary {
		t.Errorf("SwitchColor(autoPlay) = %q, want %q", token, interaction.TokenPrimary)
	}
}

func TestSelectSetting_OpensFormAndApplies(t *testing.T) {
	app, _ := newTestApp(t)
	send(app, "3", "down", "down", "down", "down")

	f, ok := app.focused()
	if !ok || f.EntityID != "language" {
		t.Fatalf("focused = %q, want language", f.EntityID)
	}

	send(app, "enter")
	if _, ok := app.form.(*screens.SettingForm); !ok {
		t.Fatalf("form = %T, want *screens.SettingForm", app.form)
	}

	app.Update(screens.SettingSubmittedMsg{Index: app.cursor, Key: "language", Value: "ja-JP"})
	if app.form != nil {
		t.Error("form should close after submit")
	}

	settings, _ := app.renderer.Document().Container(view.ContainerSettings)
	f, _ = settings.Fragment(4)
	if got, _ := f.Control.Selected(); got != "ja-JP" {
		t.Errorf("selected = %q, want %q", got, "ja-JP")
	}
	if got := lastToast(t, app); got != "Setting updated: language = ja-JP" {
		t.Errorf("toast = %q", got)
	}
}

func TestFormCancel(t *testing.T) {
	app, _ := newTestApp(t)
	send(app, "2", "a")

	app.Update(screens.FormCancelMsg{})
	if app.form != nil {
		t.Error("FormCancelMsg should close the form")
	}
}

func TestTopNavFiltersVideos(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "right")
	tab, _ := app.ctrl.TopNav().Active()
	if tab != string(models.Categories[0]) {
		t.Fatalf("active tab = %q, want %q", tab, models.Categories[0])
	}

	videos, _ := app.renderer.Document().Container(view.ContainerVideos)
	want := 0
	for _, v := range app.catalog.Videos {
		if v.Category == models.Categories[0] {
			want++
		}
	}
	if videos.Len() != want {
		t.Errorf("videos shown = %d, want %d", videos.Len(), want)
	}
	for _, f := range videos.Fragments() {
		if !strings.HasPrefix(f.Meta, tab) {
			t.Errorf("fragment %q meta %q not in tab %q", f.Title, f.Meta, tab)
		}
	}

	send(app, "left")
	if videos.Len() != 12 {
		t.Errorf("All tab shows %d videos, want 12", videos.Len())
	}
}

func TestSearch(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "/")
	if !app.searching {
		t.Fatal("/ should focus the search box")
	}
	send(app, "V", "i", "d", "e", "o", " ", "1", "enter")

	if app.searching {
		t.Error("enter should leave search mode")
	}
	if got := lastToast(t, app); got != "Search: Video 1" {
		t.Errorf("toast = %q, want %q", got, "Search: Video 1")
	}

	videos, _ := app.renderer.Document().Container(view.ContainerVideos)
	// Video 1, 10, 11, 12
	if videos.Len() != 4 {
		t.Errorf("videos matching = %d, want 4", videos.Len())
	}
}

func TestSearch_HoverFollowsResults(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "/", "V", "i", "d", "e", "o", " ", "2", "enter")

	f, ok := app.focused()
	if !ok {
		t.Fatal("expected a focused fragment after search")
	}
	if f.Title != "Video 2" {
		t.Errorf("focused title = %q, want %q", f.Title, "Video 2")
	}
	if app.hovered != f.EntityID {
		t.Errorf("hovered = %q, want focused %q", app.hovered, f.EntityID)
	}
	if got := app.ctrl.Offset(f.EntityID); got != interaction.CardLift {
		t.Errorf("focused card offset = %d, want %d", got, interaction.CardLift)
	}
}

func TestSearch_EscCancels(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "/", "x", "esc")
	if app.searching {
		t.Error("esc should leave search mode")
	}
	if app.query != "" {
		t.Errorf("query = %q, want empty", app.query)
	}
	if app.notifier.Len() != 0 {
		t.Error("cancelled search should not notify")
	}
}

func TestSearch_QuitKeyIsText(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "/", "q")
	if !app.searching {
		t.Error("q while searching should be typed, not quit")
	}
	if got := app.search.Value(); got != "q" {
		t.Errorf("search value = %q, want %q", got, "q")
	}
}

func TestQuit(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := send(app, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestNotificationsExpire(t *testing.T) {
	app, clock := newTestApp(t)

	send(app, "enter")
	if !app.ticking {
		t.Fatal("a live notification should start the toast timer")
	}

	clock.Advance(2999 * time.Millisecond)
	app.Update(toastTickMsg(clock.Now()))
	if app.notifier.Len() != 1 {
		t.Errorf("notification gone at 2999ms")
	}

	clock.Advance(302 * time.Millisecond)
	app.Update(toastTickMsg(clock.Now()))
	if app.notifier.Len() != 0 {
		t.Errorf("notification still present at 3301ms")
	}
	if app.ticking {
		t.Error("toast timer should stop when no messages are live")
	}
}

func TestFadeDone(t *testing.T) {
	app, _ := newTestApp(t)
	videos, _ := app.renderer.Document().Container(view.ContainerVideos)

	f, _ := videos.Fragment(0)
	if !f.FadeIn {
		t.Fatal("fresh fragments should be fading in")
	}

	app.Update(fadeDoneMsg{container: view.ContainerVideos})
	f, _ = videos.Fragment(0)
	if f.FadeIn {
		t.Error("fadeDoneMsg should mark fragments shown")
	}
}

func TestCatalogLoadError(t *testing.T) {
	app := NewApp(Options{Logger: zerolog.Nop()})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	app.Update(LoadingDoneMsg{})
	app.Update(CatalogLoadedMsg{Err: errTest})

	if app.loadErr == nil {
		t.Fatal("load error not recorded")
	}
	if !strings.Contains(app.View(), "boom") {
		t.Error("View() should show the load error")
	}
	if got := app.notifier.Active(); len(got) != 1 || got[0].Severity != notify.SeverityError {
		t.Errorf("notifications = %+v, want one error", got)
	}
}

func TestCatalogLoadAppError(t *testing.T) {
	app := NewApp(Options{Logger: zerolog.Nop()})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	app.Update(LoadingDoneMsg{})
	app.Update(CatalogLoadedMsg{Err: apperrors.New(apperrors.ErrRequestCancelled, "Catalog request cancelled")})

	out := app.View()
	for _, want := range []string{"Catalog request cancelled", "Error Code: API_001"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewDoesNotPruneToasts(t *testing.T) {
	app, clock := newTestApp(t)

	send(app, "enter")
	if app.notifier.Len() != 1 {
		t.Fatalf("notifications = %d, want 1", app.notifier.Len())
	}

	clock.now = clock.now.Add(4 * time.Second)
	if strings.Contains(app.View(), "Playing") {
		t.Error("expired toast should not be drawn")
	}
	if app.notifier.Len() != 1 {
		t.Error("View() must not prune notifications")
	}

	app.Update(toastTickMsg{})
	if app.notifier.Len() != 0 {
		t.Error("toast tick should prune the expired notification")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")

func TestHelpToggle(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, "?")
	if !app.showHelp || !app.help.ShowAll {
		t.Error("? should show the full help")
	}
	send(app, "?")
	if app.showHelp {
		t.Error("? should hide the full help")
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name                                 string
		n, cursor, perRow, rowHeight, height int
		start, end                           int
	}{
		{"all fit", 5, 0, 1, 1, 10, 0, 5},
		{"cursor at top", 20, 0, 1, 2, 10, 0, 5},
		{"cursor below window", 20, 7, 1, 2, 10, 3, 8},
		{"grid rows", 12, 11, 4, 6, 12, 4, 12},
		{"empty", 0, 0, 3, 6, 12, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.n, tt.cursor, tt.perRow, tt.rowHeight, tt.height)
			if start != tt.start || end != tt.end {
				t.Errorf("visibleRange() = %d, %d; want %d, %d", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	if len(keys.FullHelp()) == 0 {
		t.Error("FullHelp() should not be empty")
	}
}
