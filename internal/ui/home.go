package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// homeSection is one block of the home screen.
type homeSection int

const (
	sectionNone homeSection = iota - 1
	sectionHero
	sectionContinue
	sectionTrending
	sectionLatest
	sectionArrivals
	sectionCount
)

// homeBlock is a rendered section plus the row of its strip, if any,
// relative to the top of the block.
type homeBlock struct {
	section  homeSection
	view     string
	stripRow int // -1 when the block has no strip
	stripH   int
}

// homeHit is what a screen row on the home tab lands on.
type homeHit struct {
	section  homeSection
	stripHit bool
}

// renderHome renders the home viewport.
func (m Model) renderHome() string {
	if !m.snapshot.HasHome {
		return m.renderLoading()
	}
	vp := m.homeViewport
	vp.SetContent(m.homeContent())
	return vp.View()
}

func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	msg := m.spinner.View() + " " + styles.MutedText.Render("Loading novels...")
	if m.snapshot.LastError != nil {
		msg = styles.DangerText.Render("Could not reach the server") + "\n" +
			styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), max(10, m.width-4)))
	}
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, msg)
}

// homeContent joins the rendered blocks with one blank line between them.
func (m Model) homeContent() string {
	blocks := m.homeBlocks()
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.view
	}
	return strings.Join(parts, "\n\n")
}

// homeBlocks renders every visible home section in display order.
func (m Model) homeBlocks() []homeBlock {
	var blocks []homeBlock
	if len(m.snapshot.Featured) > 0 {
		blocks = append(blocks, m.heroBlock())
	}
	if b, ok := m.continueBlock(); ok {
		blocks = append(blocks, b)
	}
	blocks = append(blocks, m.trendingBlock())
	if len(m.snapshot.LatestUpdates) > 0 {
		blocks = append(blocks, m.latestBlock())
	}
	if len(m.snapshot.NewArrivals) > 0 {
		blocks = append(blocks, m.arrivalsBlock())
	}
	return blocks
}

// hitTest resolves a screen row on the home tab.
func (m Model) hitTest(y int) homeHit {
	row := y - 1 + m.homeViewport.YOffset // header takes the first row
	if row < 0 || !m.snapshot.HasHome {
		return homeHit{section: sectionNone}
	}
	top := 0
	for _, b := range m.homeBlocks() {
		h := lipgloss.Height(b.view)
		if row >= top && row < top+h {
			hit := homeHit{section: b.section}
			if b.stripRow >= 0 {
				rel := row - top
				hit.stripHit = rel >= b.stripRow && rel < b.stripRow+b.stripH
			}
			return hit
		}
		top += h + 1
	}
	return homeHit{section: sectionNone}
}

// revealLatest scrolls the home viewport so the selected latest update is on
// screen.
func (m *Model) revealLatest() {
	top := 0
	for _, b := range m.homeBlocks() {
		if b.section != sectionLatest {
			top += lipgloss.Height(b.view) + 1
			continue
		}
		row := top + 1 + m.latestSelected
		m.homeViewport.SetContent(m.homeContent())
		switch {
		case row < m.homeViewport.YOffset:
			m.homeViewport.SetYOffset(row)
		case row >= m.homeViewport.YOffset+m.homeViewport.Height:
			m.homeViewport.SetYOffset(row - m.homeViewport.Height + 1)
		}
		return
	}
}

func (m Model) sectionTitle(section homeSection, title string) string {
	styles := m.theme.Styles()
	if m.section == section {
		return styles.AccentText.Bold(true).Render("▌ " + title)
	}
	return styles.SectionTitle.Render("  " + title)
}

// heroBlock renders the featured novel at the hero strip's position.
func (m Model) heroBlock() homeBlock {
	styles := m.theme.Styles()
	items := m.snapshot.Featured
	idx := m.heroStrip.Index()
	if idx >= len(items) {
		idx = 0
	}
	novel := items[idx]

	inner := max(10, m.width-4)
	kind := novel.StatusKind()
	lines := []string{
		styles.StatusStyle(kind).Render(kind.Label()) + " " +
			styles.Text.Bold(true).Render(truncate(novel.Title, inner-len([]rune(kind.Label()))-3)),
		styles.MutedText.Render(truncate(novel.Author, inner)),
		styles.FaintText.Render(fmt.Sprintf("%d chapters · %s views",
			novel.ChaptersCount, zeuzapi.FormatCount(novel.Views))),
		styles.AccentText.Render(pageDots(idx, len(items))),
	}

	card := styles.Card
	if m.section == sectionHero {
		card = styles.CardFocus
	}
	banner := card.Width(inner).Render(strings.Join(lines, "\n"))
	view := m.sectionTitle(sectionHero, "Featured") + "\n" + banner
	return homeBlock{
		section:  sectionHero,
		view:     view,
		stripRow: 1,
		stripH:   lipgloss.Height(banner),
	}
}

func (m Model) continueBlock() (homeBlock, bool) {
	styles := m.theme.Styles()
	entry := m.snapshot.LastRead
	if entry == nil {
		if m.snapshot.UserError == nil {
			return homeBlock{}, false
		}
		view := m.sectionTitle(sectionContinue, "Continue reading") + "\n  " +
			styles.FaintText.Render("Sign in to keep your place across devices")
		return homeBlock{section: sectionContinue, view: view, stripRow: -1}, true
	}

	chapter := entry.LastChapterTitle
	if chapter == "" {
		chapter = fmt.Sprintf("Chapter %d", entry.LastChapterID)
	}
	pct := entry.ProgressRatio()
	lines := []string{
		styles.Text.Bold(true).Render(truncate(entry.Title, max(10, m.width-6))),
		styles.MutedText.Render(truncate(chapter, max(10, m.width-6))),
		m.progress.ViewAs(pct) + " " + styles.FaintText.Render(fmt.Sprintf("%d%%", int(pct*100+0.5))),
	}
	card := styles.Card
	if m.section == sectionContinue {
		card = styles.CardFocus
	}
	view := m.sectionTitle(sectionContinue, "Continue reading") + "\n" +
		card.Width(max(10, m.width-4)).Render(strings.Join(lines, "\n"))
	return homeBlock{section: sectionContinue, view: view, stripRow: -1}, true
}

func (m Model) trendingBlock() homeBlock {
	styles := m.theme.Styles()
	var tabs []string
	for _, r := range zeuzapi.TimeRanges {
		label := rangeLabel(r)
		if r == m.trendingRange {
			tabs = append(tabs, styles.Selected.Bold(true).Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Padding(0, 1).Render(label))
		}
	}
	title := m.sectionTitle(sectionTrending, "Trending") + "  " + strings.Join(tabs, " ")

	if len(m.snapshot.Trending) == 0 {
		view := title + "\n  " + styles.FaintText.Render("Nothing trending yet")
		return homeBlock{section: sectionTrending, view: view, stripRow: -1}
	}
	cards := m.renderCards(m.snapshot.Trending, m.railStrip, m.section == sectionTrending)
	return homeBlock{
		section:  sectionTrending,
		view:     title + "\n" + cards,
		stripRow: 1,
		stripH:   lipgloss.Height(cards),
	}
}

func (m Model) arrivalsBlock() homeBlock {
	cards := m.renderCards(m.snapshot.NewArrivals, m.arrivalsStrip, m.section == sectionArrivals)
	return homeBlock{
		section:  sectionArrivals,
		view:     m.sectionTitle(sectionArrivals, "New arrivals") + "\n" + cards,
		stripRow: 1,
		stripH:   lipgloss.Height(cards),
	}
}

// renderCards lays out the cards visible at the strip's offset.
func (m Model) renderCards(novels []zeuzapi.Novel, s *strip, focused bool) string {
	first, n := s.Visible(max(railExtent, m.width-2))
	current := s.Index()
	gap := strings.Repeat(" ", railGap)

	parts := []string{"  "}
	for i := first; i < first+n && i < len(novels); i++ {
		if i > first {
			parts = append(parts, gap)
		}
		parts = append(parts, m.renderCard(novels[i], focused && i == current))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderCard renders one railCardWidth-wide card, border included.
func (m Model) renderCard(novel zeuzapi.Novel, selected bool) string {
	styles := m.theme.Styles()
	inner := railCardWidth - 2
	kind := novel.StatusKind()

	lines := []string{
		styles.Text.Bold(true).Render(truncate(novel.Title, inner)),
		styles.MutedText.Render(truncate(novel.Author, inner)),
		styles.StatusStyle(kind).Render(kind.Label()),
		styles.FaintText.Render(truncate(zeuzapi.FormatCount(novel.Views)+" views", inner)),
	}
	card := styles.Card
	if selected {
		card = styles.CardFocus
	}
	return card.Width(inner).Render(strings.Join(lines, "\n"))
}

// cardAt maps a column inside a strip row to an item index.
func (m Model) cardAt(s *strip, x int) (int, bool) {
	col := x - 2
	if col < 0 || col%railExtent >= railCardWidth {
		return 0, false
	}
	first, n := s.Visible(max(railExtent, m.width-2))
	i := col / railExtent
	if i >= n {
		return 0, false
	}
	return first + i, true
}

func (m Model) latestBlock() homeBlock {
	styles := m.theme.Styles()
	now := m.clock.Now()
	focused := m.section == sectionLatest

	agoWidth := 16
	chapterWidth := 14
	titleWidth := max(10, m.width-agoWidth-chapterWidth-8)

	var b strings.Builder
	b.WriteString(m.sectionTitle(sectionLatest, "Latest updates"))
	for i, novel := range m.snapshot.LatestUpdates {
		b.WriteString("\n")
		chapter := ""
		if ch, ok := novel.LatestChapter(); ok {
			chapter = fmt.Sprintf("Ch. %d", ch.Number)
		}
		row := "  " + padRight(truncate(novel.Title, titleWidth), titleWidth) + "  " +
			padRight(chapter, chapterWidth) + "  " +
			timeAgo(novel.ParsedUpdatedAt(), now)
		if focused && i == m.latestSelected {
			b.WriteString(styles.Selected.Render(padRight(row, m.width-1)))
			continue
		}
		b.WriteString(styles.Text.Render(row))
	}
	return homeBlock{section: sectionLatest, view: b.String(), stripRow: -1}
}

// selectedNovel returns the novel the current section points at.
func (m Model) selectedNovel() (zeuzapi.Novel, bool) {
	switch m.section {
	case sectionHero:
		return itemAt(m.snapshot.Featured, m.heroStrip.Index())
	case sectionContinue:
		if e := m.snapshot.LastRead; e != nil {
			return zeuzapi.Novel{ID: e.NovelID, Title: e.Title, Cover: e.Cover}, true
		}
	case sectionTrending:
		return itemAt(m.snapshot.Trending, m.railStrip.Index())
	case sectionLatest:
		return itemAt(m.snapshot.LatestUpdates, m.latestSelected)
	case sectionArrivals:
		return itemAt(m.snapshot.NewArrivals, m.arrivalsStrip.Index())
	}
	return zeuzapi.Novel{}, false
}

func itemAt(items []zeuzapi.Novel, i int) (zeuzapi.Novel, bool) {
	if i < 0 || i >= len(items) {
		return zeuzapi.Novel{}, false
	}
	return items[i], true
}

func rangeLabel(r string) string {
	switch r {
	case "week":
		return "This week"
	case "month":
		return "This month"
	default:
		return "Today"
	}
}

func (m Model) renderPlaceholder() string {
	styles := m.theme.Styles()
	msg := styles.SectionTitle.Render(m.tab.String()) + "\n" +
		styles.FaintText.Render("Coming soon")
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, msg)
}
