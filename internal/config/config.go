package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything zeuz reads from its config file.
type Config struct {
	APIURL         string
	Token          string
	WebURL         string
	LogFile        string
	LogLevel       string
	RefreshSeconds int
	Hero           Carousel
	Rail           Carousel
}

// Carousel holds the timing of one auto-advancing carousel.
type Carousel struct {
	Interval time.Duration
	Cooldown time.Duration
	MinItems int
}

const (
	defaultConfigPath     = "~/.config/zeuz/config.toml"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultWebURL         = "https://zeuz.app"
	defaultLogFile        = "~/.local/state/zeuz/zeuz.log"
	defaultLogLevel       = "info"
	defaultRefreshSeconds = 60

	envAPIURL   = "ZEUZ_API_URL"
	envToken    = "ZEUZ_TOKEN"
	envLogLevel = "ZEUZ_LOG_LEVEL"
)

// DefaultHero and DefaultRail are the stock carousel timings. They are
// independent on purpose.
var (
	DefaultHero = Carousel{Interval: 5500 * time.Millisecond, Cooldown: 4000 * time.Millisecond, MinItems: 2}
	DefaultRail = Carousel{Interval: 4500 * time.Millisecond, Cooldown: 3000 * time.Millisecond, MinItems: 1}
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		WebURL:         defaultWebURL,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		RefreshSeconds: defaultRefreshSeconds,
		Hero:           DefaultHero,
		Rail:           DefaultRail,
	}
}

type rawCarousel struct {
	IntervalMS int `toml:"interval_ms"`
	CooldownMS int `toml:"cooldown_ms"`
	MinItems   int `toml:"min_items"`
}

type rawConfig struct {
	APIURL         string      `toml:"api_url"`
	Token          string      `toml:"token"`
	WebURL         string      `toml:"web_url"`
	LogFile        string      `toml:"log_file"`
	LogLevel       string      `toml:"log_level"`
	RefreshSeconds int         `toml:"refresh_seconds"`
	Hero           rawCarousel `toml:"hero"`
	Rail           rawCarousel `toml:"rail"`
}

// Load locates and parses the config, falling back to defaults when the file
// is missing, then applies environment overrides (including any .env file in
// the working directory).
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		var raw rawConfig
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.apply(raw)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func (c *Config) apply(raw rawConfig) {
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	c.Token = strings.TrimSpace(raw.Token)
	if v := strings.TrimSpace(raw.WebURL); v != "" {
		c.WebURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if raw.RefreshSeconds != 0 {
		c.RefreshSeconds = raw.RefreshSeconds
	}
	c.Hero = raw.Hero.merge(c.Hero)
	c.Rail = raw.Rail.merge(c.Rail)
}

// merge overlays the set fields of r onto base. Zero means unset.
func (r rawCarousel) merge(base Carousel) Carousel {
	if r.IntervalMS != 0 {
		base.Interval = time.Duration(r.IntervalMS) * time.Millisecond
	}
	if r.CooldownMS != 0 {
		base.Cooldown = time.Duration(r.CooldownMS) * time.Millisecond
	}
	if r.MinItems != 0 {
		base.MinItems = r.MinItems
	}
	return base
}

func applyEnv(c *Config) error {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate rejects values the UI cannot run with.
func (c Config) Validate() error {
	if c.RefreshSeconds <= 0 {
		return fmt.Errorf("refresh_seconds must be positive, got %d", c.RefreshSeconds)
	}
	for name, car := range map[string]Carousel{"hero": c.Hero, "rail": c.Rail} {
		if car.Interval <= 0 {
			return fmt.Errorf("%s.interval_ms must be positive", name)
		}
		if car.Cooldown < 0 {
			return fmt.Errorf("%s.cooldown_ms must not be negative", name)
		}
		if car.MinItems < 1 {
			return fmt.Errorf("%s.min_items must be at least 1", name)
		}
	}
	return nil
}

// RefreshInterval returns the home feed polling interval.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// LogDir returns the directory holding the log file.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
