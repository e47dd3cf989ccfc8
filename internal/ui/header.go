package ui

import (
	"errors"
	"net"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// renderHeader renders the top bar: logo, tabs, bell and connection status.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	left := []string{bg.Render("zeuz", styles.Logo)}
	for i, tab := range tabOrder {
		label := string(rune('1'+i)) + " " + tab.String()
		if tab == m.tab && m.detail == nil && !m.showDiagnostics {
			left = append(left, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.FocusBg)).
				Foreground(lipgloss.Color(m.theme.Text)).
				Bold(true).
				Padding(0, 1).
				Render(label))
			continue
		}
		left = append(left, bg.Spaces(1)+bg.Render(label, styles.MutedText)+bg.Spaces(1))
	}

	bell := bg.Render("alerts", styles.Text)
	if badge := unreadBadge(m.snapshot.UnreadCount); badge != "" {
		bell += bg.Space() + lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.Danger)).
			Foreground(lipgloss.Color(m.theme.Background)).
			Bold(true).
			Render(" "+badge+" ")
	}

	right := []string{m.connectionStatus(styles, bg), bell}

	leftStr := bg.Join(left, " ")
	rightStr := bg.Join(right, "  ")
	gap := m.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	content := leftStr + bg.Spaces(max(1, gap)) + rightStr
	if gap < 1 {
		content = leftStr + sep + bell
	}
	return styles.Header.Width(m.width).Render(content)
}

// connectionStatus summarises the poller's state.
func (m Model) connectionStatus(styles Styles, bg BgStyle) string {
	switch {
	case m.snapshot.IsOffline():
		return bg.Render("● offline", styles.DangerText) + bg.Space() +
			bg.Render(classifyConnectionError(m.snapshot.LastError), styles.MutedText)
	case m.snapshot.LastError != nil:
		return bg.Render("● retrying", styles.WarningText)
	case m.snapshot.LastUpdated.IsZero():
		return bg.Render("connecting...", styles.WarningText)
	}
	return bg.Render("updated", styles.FaintText) + bg.Space() +
		bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText)
}

// classifyConnectionError turns a poll failure into a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, zeuzapi.ErrUnauthorized) {
		return "signed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "no such host"):
		return "unknown host"
	case strings.Contains(msg, "status 5"):
		return "server error"
	}
	return "unreachable"
}

// renderHints renders the bottom key hint bar.
func (m Model) renderHints() string {
	styles := m.theme.Styles()
	var hints []string
	switch {
	case m.showNotifications:
		hints = []string{"j/k select", "enter open", "esc close"}
	case m.showDiagnostics:
		hints = []string{"j/k scroll", "G end", "D/esc close"}
	case m.detail != nil:
		hints = []string{"j/k scroll", "o browser", "esc back"}
	case m.tab == TabHome:
		hints = []string{"tab section", "h/l move", "[/] trending", "r range", "n alerts", "enter open", "? help"}
	default:
		hints = []string{"1 home", "? help", "q quit"}
	}
	return styles.FaintText.Width(m.width).Render(truncate(strings.Join(hints, " · "), m.width))
}
