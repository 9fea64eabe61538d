package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	path := filepath.Join(t.TempDir(), "fastquery", "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
	}
	if cfg.NullPlaceholder != "-" {
		t.Errorf("NullPlaceholder = %q, want -", cfg.NullPlaceholder)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perm = %o, want 600", perm)
	}
}

func TestLoadFromBackfillsMissingSections(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "backend_url = \"http://127.0.0.1:3001\"\nrequest_timeout = \"5s\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:3001" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if d, _ := cfg.Timeout(); d != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", d)
	}
	if len(cfg.Keys.Execute) == 0 || cfg.Theme.TextPrimary == "" {
		t.Errorf("keys/theme not back-filled: %+v %+v", cfg.Keys, cfg.Theme)
	}
}

func TestEnvOverridesBackendURL(t *testing.T) {
	t.Setenv(BackendURLEnv, "http://localhost:9999")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.BackendURL != "http://localhost:9999" {
		t.Errorf("BackendURL = %q, want env value", cfg.BackendURL)
	}
}

func TestInvalidEnvRejectedOnFirstRun(t *testing.T) {
	for _, bad := range []string{"ftp://x", "not a url"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv(BackendURLEnv, bad)
			path := filepath.Join(t.TempDir(), "config.toml")
			if _, err := LoadFrom(path); err == nil {
				t.Fatalf("LoadFrom with %s=%q succeeded, want error", BackendURLEnv, bad)
			}
			// Second run reads the saved file and must fail the same way.
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("second LoadFrom succeeded, want error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout string
		wantErr bool
	}{
		{"https origin", "https://example.com", "", false},
		{"http with port", "http://localhost:3001", "30s", false},
		{"no scheme", "example.com", "", true},
		{"ftp", "ftp://example.com", "", true},
		{"bad timeout", "https://example.com", "soon", true},
		{"negative timeout", "https://example.com", "-1s", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BackendURL = tt.url
			cfg.RequestTimeout = tt.timeout
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSavedServersNeverPersistPassword(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.RememberServer(`localhost\SQLEXPRESS`, "sa"); err != nil {
		t.Fatalf("RememberServer failed: %v", err)
	}
	// Second call is a no-op
	if err := cfg.RememberServer(`localhost\SQLEXPRESS`, "sa"); err != nil {
		t.Fatalf("RememberServer failed: %v", err)
	}
	if len(cfg.Servers) != 1 {
		t.Fatalf("Servers = %d, want 1", len(cfg.Servers))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Errorf("config file mentions a password:\n%s", raw)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := reloaded.GetServer("sa@localhost\\SQLEXPRESS")
	if err != nil {
		t.Fatalf("GetServer failed: %v", err)
	}
	if s.Server != `localhost\SQLEXPRESS` || s.User != "sa" {
		t.Errorf("server = %+v", s)
	}

	if err := reloaded.DeleteServer(s.Name); err != nil {
		t.Fatalf("DeleteServer failed: %v", err)
	}
	if len(reloaded.ListServers()) != 0 {
		t.Errorf("ListServers = %v, want empty", reloaded.ListServers())
	}
}
