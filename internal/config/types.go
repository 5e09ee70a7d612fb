package config

// RoutingMode selects how views are addressed in the generated site.
type RoutingMode string

const (
	// RoutingPath generates one page per route (/, /notes, /notes/{id}).
	RoutingPath RoutingMode = "path"
	// RoutingHash generates a single page addressed by URL fragment (#, #notes, #post/{id}).
	RoutingHash RoutingMode = "hash"
)

// Config is the top-level folio configuration, corresponding to folio.yml.
type Config struct {
	SiteTitle      string       `yaml:"site_title" koanf:"site_title"`
	BaseURL        string       `yaml:"base_url" koanf:"base_url"`
	ContentDir     string       `yaml:"content_dir" koanf:"content_dir"`
	ContentURL     string       `yaml:"content_url" koanf:"content_url"`
	Include        []string     `yaml:"include" koanf:"include"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	ProfileFile    string       `yaml:"profile_file" koanf:"profile_file"`
	StaticDir      string       `yaml:"static_dir" koanf:"static_dir"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`
	Routing        RoutingMode  `yaml:"routing" koanf:"routing"`
	Highlight      Highlight    `yaml:"highlight" koanf:"highlight"`
	MaxConcurrency int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
}

// Highlight names the chroma styles used for code blocks in each theme.
type Highlight struct {
	LightStyle string `yaml:"light_style" koanf:"light_style"`
	DarkStyle  string `yaml:"dark_style" koanf:"dark_style"`
}

// ServerConfig holds settings for `folio serve`.
type ServerConfig struct {
	Port     int    `yaml:"port" koanf:"port"`
	Database string `yaml:"database" koanf:"database"`
	AllowAll bool   `yaml:"allow_all" koanf:"allow_all"`
}
