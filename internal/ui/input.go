package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zeuzapp/zeuz/internal/carousel"
	"github.com/zeuzapp/zeuz/internal/prefs"
	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showNotifications {
		return m.handleNotificationsKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.progress = newProgress(m.theme)
		m.resizeViewports()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher != nil {
			m.refresher.Refresh()
		}
		m.logger.Info().Msg("manual refresh")
		return m, m.refreshUserCmd()

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = !m.showDiagnostics
		if m.showDiagnostics {
			m.updateDiagViewport()
			return m, loadLogsCmd(m.config.LogFile)
		}
		return m, nil

	case key.Matches(msg, m.keys.Notifications):
		return m.openNotifications()

	case key.Matches(msg, m.keys.TabHome):
		m.tab = TabHome
		return m, nil

	case key.Matches(msg, m.keys.TabLibrary):
		m.tab = TabLibrary
		return m, nil

	case key.Matches(msg, m.keys.TabProfile):
		m.tab = TabProfile
		return m, nil

	case key.Matches(msg, m.keys.OpenBrowser):
		return m, m.openInBrowser()

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.showDiagnostics:
			m.showDiagnostics = false
		case m.detail != nil:
			m.detail = nil
		}
		return m, nil
	}

	// View-specific keys
	switch {
	case m.showDiagnostics:
		scrollViewport(m.keys, msg, &m.diagViewport)
		return m, nil
	case m.detail != nil:
		scrollViewport(m.keys, msg, &m.detailViewport)
		return m, nil
	case m.tab == TabHome:
		return m.handleHomeKey(msg)
	}
	return m, nil
}

// handleHomeKey processes keyboard input for the home tab.
func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextSection):
		m.section = (m.section + 1) % sectionCount
		return m, nil

	case key.Matches(msg, m.keys.HeroPrev):
		m.nudge(m.stripSection(), -1)
		return m, nil

	case key.Matches(msg, m.keys.HeroNext):
		m.nudge(m.stripSection(), 1)
		return m, nil

	case key.Matches(msg, m.keys.RailPrev):
		m.nudge(sectionTrending, -1)
		return m, nil

	case key.Matches(msg, m.keys.RailNext):
		m.nudge(sectionTrending, 1)
		return m, nil

	case key.Matches(msg, m.keys.CycleRange):
		return m, m.cycleTrendingRange()

	case key.Matches(msg, m.keys.Confirm):
		if novel, ok := m.selectedNovel(); ok {
			m.openDetail(novel)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.section == sectionLatest {
			if m.latestSelected < len(m.snapshot.LatestUpdates)-1 {
				m.latestSelected++
			}
			m.revealLatest()
			return m, nil
		}
		m.scrollHome(func(vp *viewport.Model) { vp.LineDown(1) })

	case key.Matches(msg, m.keys.Up):
		if m.section == sectionLatest {
			if m.latestSelected > 0 {
				m.latestSelected--
			}
			m.revealLatest()
			return m, nil
		}
		m.scrollHome(func(vp *viewport.Model) { vp.LineUp(1) })

	case key.Matches(msg, m.keys.Top):
		m.scrollHome(func(vp *viewport.Model) { vp.GotoTop() })

	case key.Matches(msg, m.keys.Bottom):
		m.scrollHome(func(vp *viewport.Model) { vp.GotoBottom() })

	case key.Matches(msg, m.keys.HalfPageDown):
		m.scrollHome(func(vp *viewport.Model) { vp.HalfViewDown() })

	case key.Matches(msg, m.keys.HalfPageUp):
		m.scrollHome(func(vp *viewport.Model) { vp.HalfViewUp() })
	}
	return m, nil
}

// scrollViewport scrolls a full-screen viewport.
func scrollViewport(keys keyMap, msg tea.KeyMsg, vp *viewport.Model) {
	switch {
	case key.Matches(msg, keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, keys.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, keys.HalfPageDown):
		vp.HalfViewDown()
	case key.Matches(msg, keys.HalfPageUp):
		vp.HalfViewUp()
	}
}

// scrollHome refreshes the home viewport's content so scrolling clamps
// against the current layout, then applies fn.
func (m *Model) scrollHome(fn func(vp *viewport.Model)) {
	m.homeViewport.SetContent(m.homeContent())
	fn(&m.homeViewport)
}

// stripSection returns the strip that h/l move: the focused one, or the
// hero when the focused section has no strip.
func (m Model) stripSection() homeSection {
	switch m.section {
	case sectionTrending, sectionArrivals:
		return m.section
	}
	return sectionHero
}

func (m Model) stripFor(section homeSection) *strip {
	switch section {
	case sectionHero:
		return m.heroStrip
	case sectionTrending:
		return m.railStrip
	case sectionArrivals:
		return m.arrivalsStrip
	}
	return nil
}

func (m Model) controllerFor(section homeSection) *carousel.Controller[zeuzapi.Novel] {
	switch section {
	case sectionHero:
		return m.hero
	case sectionTrending:
		return m.rail
	}
	return nil
}

// nudge moves a strip by delta items the way a swipe would: a touch, an
// offset scroll, and a settle once the scroll comes to rest.
func (m *Model) nudge(section homeSection, delta int) {
	s := m.stripFor(section)
	if s == nil || s.count == 0 {
		return
	}
	target := max(0, min(s.Index()+delta, s.count-1))

	ctrl := m.controllerFor(section)
	if ctrl != nil {
		ctrl.TouchStart()
	}
	s.ScrollToOffset(float64(target)*s.extent, true)
	if ctrl != nil {
		ctrl.TouchEnd()
	}
}

// handleMouse maps presses over a strip to touches. Releases end the touch
// and, on a card, open it.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.tab != TabHome || m.detail != nil || m.showDiagnostics || m.showNotifications || m.showHelp {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		hit := m.hitTest(msg.Y)
		switch msg.Button {
		case tea.MouseButtonLeft:
			if hit.section != sectionNone {
				m.section = hit.section
			}
			if !hit.stripHit {
				return m, nil
			}
			if ctrl := m.controllerFor(hit.section); ctrl != nil {
				ctrl.TouchStart()
			}
			m.touching = hit.section
		case tea.MouseButtonWheelLeft:
			if hit.stripHit {
				m.nudge(hit.section, -1)
			}
		case tea.MouseButtonWheelRight:
			if hit.stripHit {
				m.nudge(hit.section, 1)
			}
		case tea.MouseButtonWheelUp:
			m.scrollHome(func(vp *viewport.Model) { vp.LineUp(3) })
		case tea.MouseButtonWheelDown:
			m.scrollHome(func(vp *viewport.Model) { vp.LineDown(3) })
		}

	case tea.MouseActionRelease:
		if m.touching == sectionNone {
			return m, nil
		}
		section := m.touching
		m.touching = sectionNone
		if ctrl := m.controllerFor(section); ctrl != nil {
			ctrl.TouchEnd()
		}

		hit := m.hitTest(msg.Y)
		if hit.section != section || !hit.stripHit {
			return m, nil
		}
		switch section {
		case sectionHero:
			if novel, ok := itemAt(m.snapshot.Featured, m.heroStrip.Index()); ok {
				m.openDetail(novel)
			}
		case sectionTrending, sectionArrivals:
			s := m.stripFor(section)
			i, ok := m.cardAt(s, msg.X)
			if !ok {
				return m, nil
			}
			items := m.snapshot.Trending
			if section == sectionArrivals {
				items = m.snapshot.NewArrivals
			}
			if novel, ok := itemAt(items, i); ok {
				m.openDetail(novel)
			}
		}
	}
	return m, nil
}

// cycleTrendingRange switches the trending window, persists it and reloads
// the rail.
func (m *Model) cycleTrendingRange() tea.Cmd {
	next := zeuzapi.NextTimeRange(m.trendingRange)
	m.trendingRange = next
	m.savePrefs()
	m.logger.Info().Str("range", next).Msg("trending range changed")

	ctx := m.ctx
	return m.refresherCmd(func(r Refresher) { r.RefreshTrending(ctx, next) })
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, TrendingRange: m.trendingRange}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn().Err(err).Msg("save prefs")
	}
}

// openInBrowser opens the novel in focus on the web.
func (m Model) openInBrowser() tea.Cmd {
	var novel zeuzapi.Novel
	switch {
	case m.detail != nil:
		novel = *m.detail
	case m.tab == TabHome && !m.showDiagnostics:
		n, ok := m.selectedNovel()
		if !ok {
			return nil
		}
		novel = n
	default:
		return nil
	}
	if novel.ID == "" {
		return nil
	}
	return openBrowserCmd(zeuzapi.WebURL(m.config.WebURL, novel.ID))
}
