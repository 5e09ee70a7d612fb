package config

// DefaultExcludes are glob patterns skipped when collecting notes.
var DefaultExcludes = []string{
	"_*.md",
	"drafts/**",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:   "Notes",
		ContentDir:  "content/posts",
		Include:     []string{"*.md"},
		Exclude:     DefaultExcludes,
		ProfileFile: "profile.yml",
		StaticDir:   "static",
		OutputDir:   "public",
		Routing:     RoutingPath,
		Highlight: Highlight{
			LightStyle: "github",
			DarkStyle:  "monokai",
		},
		MaxConcurrency: 8,
		Server: ServerConfig{
			Port:     8080,
			Database: ".folio/folio.db",
		},
	}
}
