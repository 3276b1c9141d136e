package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Strategy != "inline" {
		t.Errorf("Strategy: got %q, want inline", cfg.Strategy)
	}
	if cfg.IDGen != "basename" {
		t.Errorf("IDGen: got %q, want basename", cfg.IDGen)
	}
	if cfg.Watch.Interval != 2*time.Second {
		t.Errorf("Watch.Interval: got %v", cfg.Watch.Interval)
	}
	if cfg.Cache.History != 10 {
		t.Errorf("Cache.History: got %d, want 10", cfg.Cache.History)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconpipe.yaml")
	body := `
input: icons
output: dist
strategy: symbol
id_gen: kebab
id_prefix: icon-
copypasta_gen: symbol-ref:svg-jar
validate: true
cache:
  path: .iconpipe/cache.db
  history: 3
watch:
  interval: 5s
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Strategy != "symbol" {
		t.Errorf("Strategy: got %q", cfg.Strategy)
	}
	if cfg.Cache.Path != ".iconpipe/cache.db" {
		t.Errorf("Cache.Path: got %q", cfg.Cache.Path)
	}
	// Cache.History is the -history listing length.
	if cfg.Cache.History != 3 {
		t.Errorf("Cache.History: got %d, want 3", cfg.Cache.History)
	}
	if cfg.Watch.Interval != 5*time.Second {
		t.Errorf("Watch.Interval: got %v", cfg.Watch.Interval)
	}
	// File values merge over defaults, not replace them.
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce: got %v", cfg.Watch.Debounce)
	}
}

func TestValidateRequiresDirs(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for missing input")
	}
	cfg.Input = "icons"
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for missing output")
	}
	cfg.Output = "dist"
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
}

func TestIDGenResolution(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   string
	}{
		{"basename", "", "social/twitter.svg", "twitter"},
		{"path", "", "social/twitter.svg", "social-twitter"},
		{"kebab", "", "social/Twitter Bird.svg", "twitter-bird"},
		{"basename", "icon-", "alarm.svg", "icon-alarm"},
	}
	for _, tt := range tests {
		cfg := defaultConfig()
		cfg.IDGen = tt.name
		cfg.IDPrefix = tt.prefix
		gen, err := cfg.idGen()
		if err != nil {
			t.Fatal(err)
		}
		if got := gen(tt.path); got != tt.want {
			t.Errorf("%s(%q): got %q, want %q", tt.name, tt.path, got, tt.want)
		}
	}

	cfg := defaultConfig()
	cfg.IDGen = "bogus"
	if _, err := cfg.idGen(); err == nil {
		t.Fatal("expected error for unknown id_gen")
	}
}

func TestCopypastaResolution(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"helper:svg-jar", `{{svg-jar "alarm"}}`},
		{"helper:icon", `{{icon "alarm"}}`},
		{"symbol-ref:svg-jar", `{{svg-jar "#alarm"}}`},
		{"symbol-use", `<svg><use xlink:href="#alarm"></use></svg>`},
		{"", `{{svg-jar "alarm"}}`},
	}
	for _, tt := range tests {
		cfg := defaultConfig()
		cfg.CopypastaGen = tt.in
		gen, err := cfg.copypastaGen()
		if err != nil {
			t.Fatal(err)
		}
		if got := gen("alarm"); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}

	cfg := defaultConfig()
	cfg.CopypastaGen = "bogus"
	if _, err := cfg.copypastaGen(); err == nil {
		t.Fatal("expected error for unknown copypasta_gen")
	}
}
