package ui

import (
	"fmt"
	"strings"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// detailHeaderLines is the fixed part of the detail view above its viewport.
const detailHeaderLines = 4

// openDetail shows novel in the detail overlay. Showing it hides the home
// screen, which pauses both carousels.
func (m *Model) openDetail(novel zeuzapi.Novel) {
	m.detail = &novel
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	m.logger.Debug().Str("novel", novel.Key()).Msg("open detail")
}

func (m *Model) updateDetailViewport() {
	if m.detail == nil {
		return
	}
	m.detailViewport.SetContent(m.detailBody(*m.detail))
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	styles := m.theme.Styles()
	novel := *m.detail
	kind := novel.StatusKind()

	meta := []string{}
	if novel.Author != "" {
		meta = append(meta, novel.Author)
	}
	if novel.ChaptersCount > 0 {
		meta = append(meta, fmt.Sprintf("%d chapters", novel.ChaptersCount))
	}
	if novel.Views > 0 {
		meta = append(meta, zeuzapi.FormatCount(novel.Views)+" views")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(novel.Title, max(10, m.width-2))))
	b.WriteString("\n")
	b.WriteString(styles.StatusStyle(kind).Render(kind.Label()))
	b.WriteString(" ")
	b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Updated " + timeAgo(novel.ParsedUpdatedAt(), m.clock.Now())))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")
	b.WriteString(m.detailViewport.View())
	return b.String()
}

// detailBody lists the chapters newest first, followed by the web link.
func (m Model) detailBody(novel zeuzapi.Novel) string {
	styles := m.theme.Styles()
	var b strings.Builder

	if len(novel.Chapters) == 0 {
		b.WriteString(styles.FaintText.Render("No chapters loaded"))
		b.WriteString("\n")
	}
	for i := len(novel.Chapters) - 1; i >= 0; i-- {
		ch := novel.Chapters[i]
		label := fmt.Sprintf("%5d  ", ch.Number)
		b.WriteString(styles.AccentText.Render(label))
		b.WriteString(styles.Text.Render(truncate(ch.Title, max(10, m.width-len(label)-1))))
		b.WriteString("\n")
	}

	if novel.ID != "" && m.config != nil {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("web "))
		b.WriteString(styles.InfoText.Render(truncateMiddle(zeuzapi.WebURL(m.config.WebURL, novel.ID), max(10, m.width-5))))
		b.WriteString("\n")
	}
	return b.String()
}
