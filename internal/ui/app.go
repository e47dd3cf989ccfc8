package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/zeuzapp/zeuz/internal/carousel"
	"github.com/zeuzapp/zeuz/internal/config"
	"github.com/zeuzapp/zeuz/internal/logtail"
	"github.com/zeuzapp/zeuz/internal/prefs"
	"github.com/zeuzapp/zeuz/internal/state"
	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// Tab is one of the bottom-level screens.
type Tab int

const (
	TabHome Tab = iota
	TabLibrary
	TabProfile
)

var tabOrder = []Tab{TabHome, TabLibrary, TabProfile}

func (t Tab) String() string {
	switch t {
	case TabLibrary:
		return "Library"
	case TabProfile:
		return "Profile"
	default:
		return "Home"
	}
}

const (
	railCardWidth = 22
	railGap       = 2
	railExtent    = railCardWidth + railGap

	// heroNominalExtent is the hero's fallback page width before the first
	// window size is known.
	heroNominalExtent = 80

	diagnosticsLines = 400
)

// Refresher is the background data source driven by the UI.
type Refresher interface {
	Refresh()
	RefreshTrending(ctx context.Context, timeRange string)
	RefreshUser(ctx context.Context)
	MarkNotificationsRead(ctx context.Context)
}

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	Refresher     Refresher
	Config        *config.Config
	Logger        *zerolog.Logger
	PollTick      time.Duration
	ThemeName     string
	PrefsPath     string
	TrendingRange string
	Now           func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	refresher Refresher
	config    *config.Config
	logger    zerolog.Logger
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	tab         Tab
	width       int
	height      int
	ready       bool
	termFocused bool
	homeFocused bool

	// Data state
	snapshot      state.Snapshot
	version       uint64
	trendingRange string

	// Carousels
	clock         *teaClock
	hero          *carousel.Controller[zeuzapi.Novel]
	rail          *carousel.Controller[zeuzapi.Novel]
	heroStrip     *strip
	railStrip     *strip
	arrivalsStrip *strip
	touching      homeSection

	// Home state
	section        homeSection
	latestSelected int
	homeViewport   viewport.Model
	progress       progress.Model
	spinner        spinner.Model

	// Overlays
	detail            *zeuzapi.Novel
	detailViewport    viewport.Model
	showNotifications bool
	notifSelected     int
	showHelp          bool
	showDiagnostics   bool
	diagViewport      viewport.Model
	diagEntries       []logtail.Entry
	diagErr           error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	trendingRange := opts.TrendingRange
	if !prefs.ValidTrendingRange(trendingRange) {
		trendingRange = zeuzapi.TimeRanges[0]
	}

	clock := newTeaClock()
	if opts.Now != nil {
		clock.now = opts.Now
	}

	carouselLog := logger.With().Str("component", "carousel").Logger()
	hero := carousel.New[zeuzapi.Novel](carousel.Options{
		Name:       "hero",
		Cooldown:   cfg.Hero.Cooldown,
		MinItems:   cfg.Hero.MinItems,
		ItemExtent: heroNominalExtent,
		Clock:      clock,
		Logger:     &carouselLog,
	})
	rail := carousel.New[zeuzapi.Novel](carousel.Options{
		Name:       "rail",
		Cooldown:   cfg.Rail.Cooldown,
		MinItems:   cfg.Rail.MinItems,
		ItemExtent: railExtent,
		Clock:      clock,
		Logger:     &carouselLog,
	})
	heroStrip := newStrip("hero", heroNominalExtent, 1)
	railStrip := newStrip("rail", railExtent, 3)
	hero.Attach(heroStrip)
	rail.Attach(railStrip)

	theme := GetTheme(themeName)

	return Model{
		ctx:           ctx,
		store:         opts.Store,
		refresher:     opts.Refresher,
		config:        cfg,
		logger:        logger.With().Str("component", "ui").Logger(),
		prefsPath:     prefsPath,
		pollTick:      pollTick,
		keys:          DefaultKeyMap(),
		theme:         theme,
		tab:           TabHome,
		termFocused:   true,
		trendingRange: trendingRange,
		clock:         clock,
		hero:          hero,
		rail:          rail,
		heroStrip:     heroStrip,
		railStrip:     railStrip,
		arrivalsStrip: newStrip("arrivals", railExtent, 3),
		touching:      sectionNone,
		section:       sectionHero,
		progress:      newProgress(theme),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func newProgress(theme Theme) progress.Model {
	return progress.New(
		progress.WithSolidFill(theme.Accent),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. After every message the home focus edge is
// re-evaluated and timer and settle commands queued by the carousels are
// handed to the runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	focusCmd := m.syncFocus()
	return m, tea.Batch(cmd, focusCmd, m.drain())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.heroStrip.SetExtent(float64(max(1, msg.Width)))
		m.resizeViewports()
		m.ready = true
		return m, nil

	case tea.FocusMsg:
		m.termFocused = true
		return m, nil

	case tea.BlurMsg:
		m.termFocused = false
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case timerFiredMsg:
		m.clock.Fire(msg.id)
		return m, nil

	case settleMsg:
		m.handleSettle(msg)
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.HasHome {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logTailMsg:
		m.diagEntries = msg.entries
		m.diagErr = msg.err
		m.updateDiagViewport()
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("url", msg.url).Msg("open browser failed")
		} else {
			m.logger.Info().Str("url", msg.url).Msg("opened in browser")
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// homeVisible reports whether the home screen is what the user sees.
// Dropdowns and the help overlay leave it visible.
func (m Model) homeVisible() bool {
	return m.ready &&
		m.termFocused &&
		m.tab == TabHome &&
		m.detail == nil &&
		!m.showDiagnostics
}

// syncFocus drives both carousels from the home visibility edge. Each rising
// edge also reloads the reader's notifications and history.
func (m *Model) syncFocus() tea.Cmd {
	visible := m.homeVisible()
	if visible == m.homeFocused {
		return nil
	}
	m.homeFocused = visible

	if !visible {
		m.hero.Deactivate()
		m.rail.Deactivate()
		m.logger.Debug().Msg("home blurred")
		return nil
	}

	if err := m.hero.Activate(m.config.Hero.Interval, true); err != nil {
		m.logger.Warn().Err(err).Msg("activate hero carousel")
	}
	if err := m.rail.Activate(m.config.Rail.Interval, true); err != nil {
		m.logger.Warn().Err(err).Msg("activate rail carousel")
	}
	m.logger.Debug().Msg("home focused")
	return m.refreshUserCmd()
}

func (m Model) drain() tea.Cmd {
	return tea.Batch(
		m.clock.Drain(),
		m.heroStrip.Drain(),
		m.railStrip.Drain(),
		m.arrivalsStrip.Drain(),
	)
}

// applySnapshot takes in a store snapshot. Carousel items are replaced only
// when the data changed, so an unchanged poll leaves positions alone.
func (m *Model) applySnapshot(snap state.Snapshot) {
	prevRange := m.snapshot.TrendingRange
	m.snapshot = snap
	if snap.Version == m.version {
		return
	}
	m.version = snap.Version

	m.hero.SetItems(snap.Featured)
	m.heroStrip.SetCount(len(snap.Featured))
	m.rail.SetItems(snap.Trending)
	m.railStrip.SetCount(len(snap.Trending))
	m.arrivalsStrip.SetCount(len(snap.NewArrivals))

	if snap.TrendingRange != "" {
		m.trendingRange = snap.TrendingRange
	}
	if prevRange != "" && snap.TrendingRange != prevRange {
		m.railStrip.ScrollToOffset(0, false)
	}

	if m.latestSelected >= len(snap.LatestUpdates) {
		m.latestSelected = max(0, len(snap.LatestUpdates)-1)
	}
	if m.notifSelected >= len(snap.Notifications) {
		m.notifSelected = max(0, len(snap.Notifications)-1)
	}
}

func (m *Model) handleSettle(msg settleMsg) {
	switch msg.strip {
	case m.heroStrip.name:
		m.hero.Settled(msg.index)
	case m.railStrip.name:
		m.rail.Settled(msg.index)
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Fetch latest snapshot
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.showDiagnostics {
		cmds = append(cmds, loadLogsCmd(m.config.LogFile))
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

func (m *Model) resizeViewports() {
	bodyHeight := m.bodyHeight()
	m.homeViewport.Width = m.width
	m.homeViewport.Height = bodyHeight
	m.detailViewport.Width = m.width
	m.detailViewport.Height = max(1, bodyHeight-detailHeaderLines)
	m.diagViewport.Width = m.width
	m.diagViewport.Height = max(1, bodyHeight-diagHeaderLines)
	m.progress.Width = min(40, max(10, m.width/3))
	m.updateDetailViewport()
	m.updateDiagViewport()
}

// bodyHeight is the height left between the header and the hint bar.
func (m Model) bodyHeight() int {
	return max(1, m.height-2)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	header := m.renderHeader()
	body := m.renderContent()
	return header + "\n" + body + "\n" + m.renderHints()
}

// renderContent renders the area between header and hint bar.
func (m Model) renderContent() string {
	switch {
	case m.showNotifications:
		return m.renderNotifications()
	case m.showDiagnostics:
		return m.renderDiagnostics()
	case m.detail != nil:
		return m.renderDetail()
	}
	switch m.tab {
	case TabHome:
		return m.renderHome()
	default:
		return m.renderPlaceholder()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type browserOpenedMsg struct {
	url string
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refresherCmd runs fn off the event loop and then reloads the snapshot.
func (m Model) refresherCmd(fn func(Refresher)) tea.Cmd {
	if m.refresher == nil {
		return nil
	}
	r, store := m.refresher, m.store
	return func() tea.Msg {
		fn(r)
		if store == nil {
			return nil
		}
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshUserCmd() tea.Cmd {
	ctx := m.ctx
	return m.refresherCmd(func(r Refresher) { r.RefreshUser(ctx) })
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: browser.OpenURL(url)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	// xdg-open and friends would otherwise write over the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	m := New(opts)
	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
