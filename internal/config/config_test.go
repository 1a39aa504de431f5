package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Dataset.Source != nil || cfg.Dashboard.PageSize != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[dataset]
source = "https://example.com/data.csv"

[dashboard]
page-size = 25
debounce-ms = 400
plot-height = 8
watch = true

[export]
path = "/tmp/out.csv"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Dataset.Source == nil || *cfg.Dataset.Source != "https://example.com/data.csv" {
		t.Fatalf("unexpected source %v", cfg.Dataset.Source)
	}
	if cfg.Dashboard.PageSize == nil || *cfg.Dashboard.PageSize != 25 {
		t.Fatalf("unexpected page size %v", cfg.Dashboard.PageSize)
	}
	if got := cfg.Dashboard.Debounce(); got != 400*time.Millisecond {
		t.Fatalf("unexpected debounce %v", got)
	}
	if cfg.Dashboard.Watch == nil || !*cfg.Dashboard.Watch {
		t.Fatalf("expected watch enabled")
	}
	if cfg.Export.Path == nil || *cfg.Export.Path != "/tmp/out.csv" {
		t.Fatalf("unexpected export path %v", cfg.Export.Path)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard]\npage-sise = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "page-sise") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "insidash", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "insidash", "insidash.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
