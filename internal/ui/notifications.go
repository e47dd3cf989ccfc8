package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

const notificationsWidth = 48

// openNotifications shows the dropdown and marks the feed read.
func (m Model) openNotifications() (Model, tea.Cmd) {
	m.showNotifications = true
	m.notifSelected = 0
	if m.snapshot.UnreadCount == 0 {
		return m, nil
	}
	ctx := m.ctx
	return m, m.refresherCmd(func(r Refresher) { r.MarkNotificationsRead(ctx) })
}

// handleNotificationsKey processes keyboard input while the dropdown is open.
func (m Model) handleNotificationsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.snapshot.Notifications
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Notifications):
		m.showNotifications = false
	case key.Matches(msg, m.keys.Down):
		if m.notifSelected < len(items)-1 {
			m.notifSelected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.notifSelected > 0 {
			m.notifSelected--
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.notifSelected < 0 || m.notifSelected >= len(items) {
			return m, nil
		}
		n := items[m.notifSelected]
		m.showNotifications = false
		m.tab = TabHome
		m.openDetail(m.novelForNotification(n))
	}
	return m, nil
}

// novelForNotification finds the full novel when the home feed has it.
func (m Model) novelForNotification(n zeuzapi.Notification) zeuzapi.Novel {
	id := n.Key()
	for _, list := range [][]zeuzapi.Novel{
		m.snapshot.LatestUpdates,
		m.snapshot.Featured,
		m.snapshot.Trending,
		m.snapshot.NewArrivals,
	} {
		for _, novel := range list {
			if novel.ID == id {
				return novel
			}
		}
	}
	return zeuzapi.Novel{
		ID:            id,
		Title:         n.Title,
		Cover:         n.Cover,
		ChaptersCount: n.LastChapterNumber,
		UpdatedAt:     n.UpdatedAt,
	}
}

// renderNotifications renders the dropdown under the header's bell.
func (m Model) renderNotifications() string {
	styles := m.theme.Styles()
	width := min(notificationsWidth, max(20, m.width-2))
	inner := width - 4
	now := m.clock.Now()

	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Notifications"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))

	items := m.snapshot.Notifications
	if len(items) == 0 {
		b.WriteString("\n")
		if m.snapshot.UserError != nil {
			b.WriteString(styles.MutedText.Render("Sign in to get chapter alerts"))
		} else {
			b.WriteString(styles.MutedText.Render("You're all caught up"))
		}
	}

	limit := max(1, m.bodyHeight()-6) / 2
	for i, n := range items {
		if i >= limit {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("+%d more", len(items)-limit)))
			break
		}
		chapter := fmt.Sprintf("Ch. %d", n.LastChapterNumber)
		title := padRight(truncate(n.Title, inner-len(chapter)-1), inner-len(chapter)-1)
		line1 := title + " " + chapter
		line2 := timeAgo(n.ParsedUpdatedAt(), now)

		b.WriteString("\n")
		if i == m.notifSelected {
			b.WriteString(styles.Selected.Render(padRight(line1, inner)))
			b.WriteString("\n")
			b.WriteString(styles.Selected.Render(padRight(line2, inner)))
			continue
		}
		b.WriteString(styles.Text.Render(title) + " " + styles.AccentText.Render(chapter))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(line2))
	}

	dropdown := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.bodyHeight(),
		lipgloss.Right,
		lipgloss.Top,
		dropdown,
	)
}
