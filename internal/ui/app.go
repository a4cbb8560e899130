package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/prefs"
	"github.com/beqramo/case/internal/state"
)

// SearchDebounce is how long typing must pause before a search is sent.
const SearchDebounce = 500 * time.Millisecond

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewDetail
	ViewFavorites
)

// Loader fetches listings into the browse store.
type Loader interface {
	SelectCategory(ctx context.Context, category string) error
	Search(ctx context.Context, query string) error
	Refresh(ctx context.Context) error
	Detail(ctx context.Context, id string) (*mealdb.MealDetail, error)
}

// FavoriteStore is the favorites surface the UI reads and mutates.
type FavoriteStore interface {
	IsFavorite(id string) bool
	Favorites() []mealdb.Meal
	Toggle(ctx context.Context, meal mealdb.Meal) (bool, error)
	Len() int
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Loader    Loader
	Browse    *state.Store
	Favorites FavoriteStore
	ThemeName string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger

	// FavoritesLoadErr is the error from loading saved favorites, if any.
	// While set, toggling is refused so the unreadable list is not replaced.
	FavoritesLoadErr error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	loader    Loader
	browse    *state.Store
	favorites FavoriteStore
	prefs     prefs.Prefs
	prefsPath string
	logger    *zap.Logger
	keys      keyMap

	// UI state
	theme    Theme
	view     View
	returnTo View
	width    int
	height   int
	ready    bool
	showHelp bool

	// Set when saved favorites failed to load; toggling is refused
	favLoadErr error

	// Listing state
	snapshot    state.Snapshot
	selected    int
	favSelected int

	// Detail state
	detailMeal     mealdb.Meal
	detail         *mealdb.MealDetail
	detailErr      error
	detailLoading  bool
	detailViewport viewport.Model

	// Search state
	search        textinput.Model
	searchFocused bool
	searchSeq     int

	// One-line feedback shown in the footer
	flash    string
	flashErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "Search meals..."
	input.Prompt = "/ "
	input.CharLimit = 64

	m := Model{
		ctx:       ctx,
		loader:    opts.Loader,
		browse:    opts.Browse,
		favorites: opts.Favorites,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		logger:    logger.Named("ui"),
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		view:      ViewBrowse,
		search:    input,
	}
	m.favLoadErr = opts.FavoritesLoadErr
	if m.browse != nil {
		m.snapshot = m.browse.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.browse != nil {
		return fetchSnapshotCmd(m.browse, nil)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.detailHeight())
		} else {
			m.detailViewport.Width = msg.Width
			m.detailViewport.Height = m.detailHeight()
		}
		m.ready = true
		m.updateDetailViewport()
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snap
		m.clampSelection()
		if msg.err != nil {
			m.setFlash("Could not load meals: "+classifyError(msg.err), true)
		}
		return m, nil

	case detailMsg:
		if msg.id != m.detailMeal.ID {
			// A newer detail request superseded this one.
			return m, nil
		}
		m.detailLoading = false
		m.detail = msg.detail
		m.detailErr = msg.err
		m.updateDetailViewport()
		m.detailViewport.GotoTop()
		return m, nil

	case favoriteMsg:
		m.handleFavoriteResult(msg)
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.runSearch(msg.query)
	}

	if m.searchFocused {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.view {
	case ViewDetail:
		return m.renderDetail()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return m.renderBrowse()
	}
}

// contentHeight is the number of rows between the command bar and footer.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	m.flash = ""
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Favorites):
		if m.view == ViewFavorites {
			m.view = ViewBrowse
		} else {
			m.view = ViewFavorites
			m.favSelected = 0
		}
		return m, nil
	}

	switch m.view {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

// back leaves the current view. In the listing it clears an active search.
func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewDetail:
		m.view = m.returnTo
		return m, nil
	case ViewFavorites:
		m.view = ViewBrowse
		return m, nil
	}
	if m.snapshot.Searching() {
		m.search.SetValue("")
		m.searchSeq++
		return m, m.runSearch("")
	}
	return m, nil
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

// Messages

type snapshotMsg struct {
	snap state.Snapshot
	err  error
}

type detailMsg struct {
	id     string
	detail *mealdb.MealDetail
	err    error
}

type favoriteMsg struct {
	meal  mealdb.Meal
	added bool
	err   error
}

type searchDebounceMsg struct {
	seq   int
	query string
}

// Commands

func fetchSnapshotCmd(store *state.Store, err error) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: store.Snapshot(), err: err}
	}
}

// loadCmd runs a loader operation and reports the resulting snapshot.
func (m Model) loadCmd(op func(ctx context.Context) error) tea.Cmd {
	if m.loader == nil || m.browse == nil {
		return nil
	}
	ctx, store := m.ctx, m.browse
	return func() tea.Msg {
		err := op(ctx)
		return snapshotMsg{snap: store.Snapshot(), err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
