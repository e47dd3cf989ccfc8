package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zeuzapp/zeuz/internal/carousel"
	"github.com/zeuzapp/zeuz/internal/logtail"
)

// diagHeaderLines is the carousel summary shown above the log viewport.
const diagHeaderLines = 5

type logTailMsg struct {
	entries []logtail.Entry
	err     error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, diagnosticsLines)
		return logTailMsg{entries: logtail.ParseLines(lines), err: err}
	}
}

func (m *Model) updateDiagViewport() {
	atBottom := m.diagViewport.AtBottom() || m.diagViewport.TotalLineCount() == 0
	m.diagViewport.SetContent(m.diagLog())
	if atBottom {
		m.diagViewport.GotoBottom()
	}
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Diagnostics"))
	b.WriteString("\n")
	b.WriteString(m.carouselLine("hero", m.hero.State()))
	b.WriteString("\n")
	b.WriteString(m.carouselLine("rail", m.rail.State()))
	b.WriteString("\n")

	status := fmt.Sprintf("timers %d · failures %d", m.clock.Live(), m.snapshot.ConsecutiveFailures)
	if !m.snapshot.LastUpdated.IsZero() {
		status += " · updated " + m.snapshot.LastUpdated.Format("15:04:05")
	}
	b.WriteString(styles.MutedText.Render(status))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")
	b.WriteString(m.diagViewport.View())
	return b.String()
}

func (m Model) carouselLine(name string, st carousel.State) string {
	styles := m.theme.Styles()
	phase := st.Phase()
	phaseStyle := styles.FaintText
	switch phase {
	case carousel.PhaseRunning:
		phaseStyle = styles.SuccessText
	case carousel.PhaseSuppressed:
		phaseStyle = styles.WarningText
	}

	index := "-"
	if st.HasIndex() {
		index = fmt.Sprintf("%d/%d", st.Index+1, st.Len)
	}
	parts := []string{
		styles.Text.Render(padRight(name, 5)),
		phaseStyle.Render(padRight(phase.String(), 11)),
		styles.MutedText.Render("index " + index),
	}
	if st.Interval > 0 {
		parts = append(parts, styles.MutedText.Render("every "+st.Interval.String()))
	}
	if !st.LastAdvanceAt.IsZero() {
		ago := m.clock.Now().Sub(st.LastAdvanceAt).Truncate(100 * time.Millisecond)
		parts = append(parts, styles.FaintText.Render("moved "+ago.String()+" ago"))
	}
	return strings.Join(parts, " ")
}

// diagLog renders the log tail coloured by level.
func (m Model) diagLog() string {
	styles := m.theme.Styles()
	if m.diagErr != nil {
		return styles.DangerText.Render("Could not read log: " + m.diagErr.Error())
	}
	if len(m.diagEntries) == 0 {
		return styles.FaintText.Render("No log entries yet")
	}
	lines := make([]string, len(m.diagEntries))
	for i, e := range m.diagEntries {
		lines[i] = m.levelStyle(e.Level).Render(truncate(e.String(), max(10, m.width)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case "error", "fatal", "panic":
		return styles.DangerText
	case "warn":
		return styles.WarningText
	case "debug", "trace":
		return styles.FaintText
	case "":
		return styles.MutedText
	}
	return styles.Text
}
