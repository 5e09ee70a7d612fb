package cmd

import (
	"fmt"

	"github.com/jyliuu/folio/internal/config"
	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/profile"
	"github.com/jyliuu/folio/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newContentSource picks the note store: a remote base URL wins over a
// local directory.
func newContentSource(cfg *config.Config) content.Source {
	if cfg.ContentURL != "" {
		return content.NewHTTPSource(cfg.ContentURL)
	}
	return content.NewDirSource(cfg.ContentDir, cfg.Include, cfg.Exclude)
}

// newLoader creates the post loader shared by every command.
func newLoader(cfg *config.Config) *content.Loader {
	return content.NewLoader(newContentSource(cfg),
		content.WithLogger(logger),
		content.WithConcurrency(cfg.MaxConcurrency),
	)
}

func loadProfile(cfg *config.Config) (*profile.Profile, error) {
	if cfg.ProfileFile == "" {
		return profile.Default(), nil
	}
	return profile.Load(cfg.ProfileFile)
}

func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	return render.New(cfg.Highlight.LightStyle, cfg.Highlight.DarkStyle)
}
