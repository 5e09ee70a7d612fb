package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix marks environment variables that override file settings.
const envPrefix = "FOLIO_"

// envKeys maps flattened environment names to nested koanf keys. Keys not
// listed here map to themselves (FOLIO_SITE_TITLE -> site_title).
var envKeys = map[string]string{
	"server_port":      "server.port",
	"server_database":  "server.database",
	"server_allow_all": "server.allow_all",
	"light_style":      "highlight.light_style",
	"dark_style":       "highlight.dark_style",
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// FOLIO_OUTPUT_DIR -> output_dir, FOLIO_SERVER_PORT -> server.port.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if mapped, ok := envKeys[key]; ok {
		return mapped
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validRouting is the set of recognized routing values.
var validRouting = map[RoutingMode]bool{
	RoutingPath: true,
	RoutingHash: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" && c.ContentURL == "" {
		return fmt.Errorf("one of content_dir or content_url is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if !validRouting[c.Routing] {
		return fmt.Errorf("invalid routing %q: must be one of path, hash", c.Routing)
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.ContentURL != "" && !strings.HasPrefix(c.ContentURL, "http://") && !strings.HasPrefix(c.ContentURL, "https://") {
		return fmt.Errorf("content_url must be an http(s) URL, got %q", c.ContentURL)
	}

	return nil
}
