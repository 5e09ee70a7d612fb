package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jyliuu/folio/internal/config"
	"github.com/jyliuu/folio/internal/progress"
	"github.com/jyliuu/folio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site",
	Long: `Loads every note, renders the CV, notes list, note and not-found views,
and writes them with their stylesheets and scripts to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("routing", "", "override routing (path or hash)")
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("base-url", "", "override the public base URL used in the note index")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("routing"); v != "" {
		cfg.Routing = config.RoutingMode(v)
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	gen := site.NewGenerator(cfg, newLoader(cfg), prof, r, logger)
	gen.Reporter = progress.NewReporter()

	start := time.Now()
	res, err := gen.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site generated: %s (%d pages, %d notes, %d static files) in %s\n",
		cfg.OutputDir, res.Pages, res.Posts, res.Assets, time.Since(start).Round(time.Millisecond))
	return nil
}
