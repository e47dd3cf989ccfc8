package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envAPIURL, "")
	t.Setenv(envToken, "")
	t.Setenv(envLogLevel, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.Hero != DefaultHero {
		t.Fatalf("Hero = %+v, want %+v", cfg.Hero, DefaultHero)
	}
	if cfg.Rail != DefaultRail {
		t.Fatalf("Rail = %+v, want %+v", cfg.Rail, DefaultRail)
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Fatalf("RefreshInterval = %v, want 1m", cfg.RefreshInterval())
	}
}

func TestDefaults_HeroAndRailDiffer(t *testing.T) {
	if DefaultHero.Interval != 5500*time.Millisecond || DefaultHero.Cooldown != 4000*time.Millisecond {
		t.Fatalf("DefaultHero = %+v, want 5.5s/4s", DefaultHero)
	}
	if DefaultRail.Interval != 4500*time.Millisecond || DefaultRail.Cooldown != 3000*time.Millisecond {
		t.Fatalf("DefaultRail = %+v, want 4.5s/3s", DefaultRail)
	}
	if DefaultHero.MinItems != 2 || DefaultRail.MinItems != 1 {
		t.Fatalf("MinItems hero=%d rail=%d, want 2 and 1", DefaultHero.MinItems, DefaultRail.MinItems)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
api_url = "  https://api.zeuz.test  "
token = " secret "
log_file = "  ~/logs/zeuz.log  "
log_level = "DEBUG"
refresh_seconds = 15

[hero]
interval_ms = 7000

[rail]
cooldown_ms = 1500
min_items = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://api.zeuz.test" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Token != "secret" {
		t.Fatalf("Token = %q, want secret", cfg.Token)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "zeuz.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.RefreshSeconds != 15 {
		t.Fatalf("RefreshSeconds = %d, want 15", cfg.RefreshSeconds)
	}
	if cfg.Hero.Interval != 7*time.Second || cfg.Hero.Cooldown != DefaultHero.Cooldown {
		t.Fatalf("Hero = %+v, want interval 7s with default cooldown", cfg.Hero)
	}
	if cfg.Rail.Interval != DefaultRail.Interval || cfg.Rail.Cooldown != 1500*time.Millisecond || cfg.Rail.MinItems != 3 {
		t.Fatalf("Rail = %+v", cfg.Rail)
	}
	if cfg.LogDir() != filepath.Join(home, "logs") {
		t.Fatalf("LogDir = %q", cfg.LogDir())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := writeConfig(t, `
api_url = "   "
log_level = ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAPIURL, "http://env.example:9000")
	t.Setenv(envToken, "env-token")
	t.Setenv(envLogLevel, "WARN")

	path := writeConfig(t, `api_url = "http://file.example"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example:9000" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.Token != "env-token" {
		t.Fatalf("Token = %q, want env-token", cfg.Token)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `api_url = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsInvalidTimings(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cases := []struct {
		name string
		body string
		want string
	}{
		{"negative interval", "[hero]\ninterval_ms = -1\n", "hero.interval_ms"},
		{"negative cooldown", "[rail]\ncooldown_ms = -5\n", "rail.cooldown_ms"},
		{"negative min items", "[rail]\nmin_items = -2\n", "rail.min_items"},
		{"negative refresh", "refresh_seconds = -3\n", "refresh_seconds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
