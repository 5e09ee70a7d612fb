package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directories checked, in order, for existing notes.
var contentDirCandidates = []string{
	"content/posts",
	"posts",
	"src/posts",
	"notes",
}

// detectContentDir returns the first candidate directory that exists.
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return DefaultConfig().ContentDir
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = title

	// 2. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Directory holding your markdown notes",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	// 3. Routing.
	routingPrompt := promptui.Select{
		Label: "Select routing",
		Items: []string{
			"path: one HTML page per route (/notes/{id})",
			"hash: single page, addressed by #post/{id}",
		},
	}
	routingIdx, _, err := routingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("routing selection: %w", err)
	}
	cfg.Routing = []RoutingMode{RoutingPath, RoutingHash}[routingIdx]

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for `folio serve`",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	if _, err := os.Stat(cfg.ProfileFile); os.IsNotExist(err) {
		fmt.Printf("\nNote: no %s found; the built-in sample profile will be used until you add one.\n", cfg.ProfileFile)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
