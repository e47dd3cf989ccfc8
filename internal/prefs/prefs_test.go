package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p != Defaults() {
		t.Fatalf("Load = %+v, want %+v", p, Defaults())
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "zeuz")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\ntrending_range = \"week\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.TrendingRange != "week" {
		t.Fatalf("TrendingRange = %q, want week", p.TrendingRange)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	want := Prefs{Theme: "Kanagawa", TrendingRange: "month"}
	if err := Save(prefsFile, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if got := Load(prefsFile); got != want {
		t.Fatalf("Load after Save = %+v, want %+v", got, want)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Prefs
	}{
		{"empty theme", "theme = \"\"\ntrending_range = \"week\"\n", Prefs{Theme: defaultTheme, TrendingRange: "week"}},
		{"unknown range", "theme = \"Slate\"\ntrending_range = \"year\"\n", Prefs{Theme: "Slate", TrendingRange: defaultTrendingRange}},
		{"invalid toml", "not valid toml {{{\n", Defaults()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := Load(prefsFile); got != tc.want {
				t.Fatalf("Load = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestValidTrendingRange(t *testing.T) {
	for _, r := range []string{"day", "week", "month"} {
		if !ValidTrendingRange(r) {
			t.Fatalf("ValidTrendingRange(%q) = false, want true", r)
		}
	}
	if ValidTrendingRange("Day") || ValidTrendingRange("") {
		t.Fatalf("ValidTrendingRange accepted an unknown range")
	}
}
