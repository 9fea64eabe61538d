// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// DefaultBackendURL is the origin of the hosted query backend
const DefaultBackendURL = "https://back-fast-query.onrender.com"

// BackendURLEnv overrides backend_url when set
const BackendURLEnv = "FASTQUERY_BACKEND_URL"

// Config represents the application configuration
type Config struct {
	BackendURL         string   `toml:"backend_url"`
	RequestTimeout     string   `toml:"request_timeout"` // Go duration, empty = wait forever
	Locale             string   `toml:"locale"`          // pt-BR, en
	HistoryLimit       int      `toml:"history_limit"`
	HistoryPreviewRows int      `toml:"history_preview_rows"`
	PageSize           int      `toml:"page_size"`
	NullPlaceholder    string   `toml:"null_placeholder"`
	Servers            []Server `toml:"servers"`
	Theme              Theme    `toml:"theme_colors"`
	Keys               KeyMap   `toml:"keys"`

	// path is where Save writes; empty means the XDG location
	path string
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	PopupBg       string `toml:"popup_bg"`
	BorderColor   string `toml:"border_color"`
	SelectedBg    string `toml:"selected_bg"`
	// ChromaStyle names the chroma style used for SQL highlighting
	ChromaStyle string `toml:"chroma_style"`
}

// KeyMap defines key bindings
type KeyMap struct {
	Connect      []string `toml:"connect"`
	Preview      []string `toml:"preview"`
	Execute      []string `toml:"execute"`
	PickDatabase []string `toml:"pick_database"`
	PickServer   []string `toml:"pick_server"`
	History      []string `toml:"history"`
	Help         []string `toml:"help"`
	NextField    []string `toml:"next_field"`
	PrevField    []string `toml:"prev_field"`
	Export       []string `toml:"export"`
	Copy         []string `toml:"copy"`
	NextPage     []string `toml:"next_page"`
	PrevPage     []string `toml:"prev_page"`
	Exit         []string `toml:"exit"`
	Quit         []string `toml:"quit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		BackendURL:         DefaultBackendURL,
		RequestTimeout:     "",
		Locale:             "pt-BR",
		HistoryLimit:       100,
		HistoryPreviewRows: 3,
		PageSize:           20,
		NullPlaceholder:    "-",
		Servers:            []Server{},
		Theme: Theme{
			// Nord
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			PopupBg:       "#2E3440",
			BorderColor:   "#4C566A",
			SelectedBg:    "#3B4252",
			ChromaStyle:   "nord",
		},
		Keys: KeyMap{
			Connect:      []string{"ctrl+o"},
			Preview:      []string{"ctrl+p"},
			Execute:      []string{"ctrl+d"},
			PickDatabase: []string{"ctrl+b"},
			PickServer:   []string{"ctrl+s"},
			History:      []string{"ctrl+r"},
			Help:         []string{"f1"},
			NextField:    []string{"tab"},
			PrevField:    []string{"shift+tab"},
			Export:       []string{"ctrl+e"},
			Copy:         []string{"y"},
			NextPage:     []string{"pgdown"},
			PrevPage:     []string{"pgup"},
			Exit:         []string{"esc"},
			Quit:         []string{"ctrl+c"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("fastquery/config.toml")
}

// Load loads the config from the XDG location or creates the default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path, writing defaults on first run
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.path = path

	if cfg.fillDefaults() {
		// Persist back-filled sections so the user can see and edit them.
		// A read-only config dir is not fatal.
		_ = cfg.Save()
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fillDefaults populates missing fields and reports whether anything changed
func (c *Config) fillDefaults() bool {
	defaults := DefaultConfig()
	updated := false

	if c.BackendURL == "" {
		c.BackendURL = defaults.BackendURL
		updated = true
	}
	if c.Locale == "" {
		c.Locale = defaults.Locale
		updated = true
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaults.HistoryLimit
		updated = true
	}
	if c.HistoryPreviewRows <= 0 {
		c.HistoryPreviewRows = defaults.HistoryPreviewRows
		updated = true
	}
	if c.PageSize <= 0 {
		c.PageSize = defaults.PageSize
		updated = true
	}
	if c.NullPlaceholder == "" {
		c.NullPlaceholder = defaults.NullPlaceholder
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	if len(c.Keys.Execute) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	if len(c.Keys.Export) == 0 {
		c.Keys.Export = defaults.Keys.Export
		updated = true
	}
	if len(c.Keys.Copy) == 0 {
		c.Keys.Copy = defaults.Keys.Copy
		updated = true
	}
	return updated
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(BackendURLEnv)); v != "" {
		c.BackendURL = v
	}
}

// Validate checks the backend origin and timeout
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url %q: %w", c.BackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend_url %q: must be an http(s) origin", c.BackendURL)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the per-request timeout; zero means none
func (c *Config) Timeout() (time.Duration, error) {
	if strings.TrimSpace(c.RequestTimeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: negative", c.RequestTimeout)
	}
	return d, nil
}

// Path returns the file this config is saved to
func (c *Config) Path() (string, error) {
	if c.path != "" {
		return c.path, nil
	}
	return ConfigPath()
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := c.Path()
	if err != nil {
		return err
	}

	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
