package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Routing != RoutingPath {
		t.Errorf("expected default routing %q, got %q", RoutingPath, cfg.Routing)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir %q, got %q", "public", cfg.OutputDir)
	}
	if cfg.ContentDir != "content/posts" {
		t.Errorf("expected default content_dir %q, got %q", "content/posts", cfg.ContentDir)
	}
	if cfg.Highlight.LightStyle != "github" || cfg.Highlight.DarkStyle != "monokai" {
		t.Errorf("unexpected highlight styles: %+v", cfg.Highlight)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")

	original := DefaultConfig()
	original.SiteTitle = "Jinyang's notes"
	original.Routing = RoutingHash
	original.Include = []string{"*.md", "archive/**/*.md"}
	original.OutputDir = "dist"
	original.Server.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SiteTitle != original.SiteTitle {
		t.Errorf("site_title: got %q, want %q", loaded.SiteTitle, original.SiteTitle)
	}
	if loaded.Routing != original.Routing {
		t.Errorf("routing: got %q, want %q", loaded.Routing, original.Routing)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Routing != RoutingPath {
		t.Errorf("expected default routing, got %q", cfg.Routing)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("FOLIO_ROUTING", "hash")
	t.Setenv("FOLIO_OUTPUT_DIR", "site")
	t.Setenv("FOLIO_SERVER_PORT", "9090")
	t.Setenv("FOLIO_DARK_STYLE", "dracula")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Routing != RoutingHash {
		t.Errorf("env override failed: got %q, want %q", loaded.Routing, RoutingHash)
	}
	if loaded.OutputDir != "site" {
		t.Errorf("env override failed: got %q, want %q", loaded.OutputDir, "site")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("env override failed: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Highlight.DarkStyle != "dracula" {
		t.Errorf("env override failed: got %q, want dracula", loaded.Highlight.DarkStyle)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid routing", func(c *Config) { c.Routing = "query" }},
		{"empty routing", func(c *Config) { c.Routing = "" }},
		{"no content source", func(c *Config) { c.ContentDir = ""; c.ContentURL = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"non-http content url", func(c *Config) { c.ContentURL = "ftp://example.com/posts" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidateContentURLOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = ""
	cfg.ContentURL = "https://example.com/raw/"
	if err := cfg.Validate(); err != nil {
		t.Errorf("content_url alone should be valid, got: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"FOLIO_SITE_TITLE", "site_title"},
		{"FOLIO_SERVER_PORT", "server.port"},
		{"FOLIO_LIGHT_STYLE", "highlight.light_style"},
		{"FOLIO_ROUTING", "routing"},
	}
	for _, tt := range tests {
		if got := envKey(tt.input); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
