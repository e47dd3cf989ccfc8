package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	require.Len(t, names, 3)
	for _, name := range names {
		assert.Equal(t, name, GetTheme(name).Name)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		assert.Equal(t, want, NextTheme(in), "NextTheme(%q)", in)
	}
}

func TestGetThemeFallback(t *testing.T) {
	assert.Equal(t, "Nightfox", GetTheme("Dracula").Name)
}

func TestStatusStyle(t *testing.T) {
	nightfox := GetTheme("Nightfox").Styles()
	assert.Equal(t, lipgloss.TerminalColor(lipgloss.Color("#81b29a")),
		nightfox.StatusStyle(zeuzapi.StatusCompleted).GetBackground())

	// Slate keeps the platform's tag colours.
	slate := GetTheme("Slate").Styles()
	for _, kind := range []zeuzapi.StatusKind{zeuzapi.StatusOngoing, zeuzapi.StatusCompleted, zeuzapi.StatusStopped} {
		assert.Equal(t, lipgloss.TerminalColor(lipgloss.Color(kind.Color())),
			slate.StatusStyle(kind).GetBackground(), "Slate %s", kind)
	}
}
