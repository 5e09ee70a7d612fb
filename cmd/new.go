package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a note with front-matter",
	Long:  `Writes a new markdown note into the content directory, filling in id, title, date and tags.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	newCmd.Flags().String("summary", "", "one-line summary")
	newCmd.Flags().String("id", "", "note id (defaults to a slug of the title)")
	rootCmd.AddCommand(newCmd)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns "Fast PDP: Trees!" into "fast-pdp-trees".
func slugify(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

type newNote struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary,omitempty"`
	Tags    []string `yaml:"tags"`
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.ContentDir == "" {
		return fmt.Errorf("content_dir is not set; notes served from %s cannot be created locally", cfg.ContentURL)
	}

	title := strings.Join(args, " ")
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		id = slugify(title)
	}
	if id == "" {
		return fmt.Errorf("cannot derive an id from %q; pass --id", title)
	}

	tags, _ := cmd.Flags().GetStringSlice("tags")
	if tags == nil {
		tags = []string{}
	}
	summary, _ := cmd.Flags().GetString("summary")

	fm, err := yamlv3.Marshal(newNote{
		ID:      id,
		Title:   title,
		Date:    time.Now().Format("2006-01-02"),
		Summary: summary,
		Tags:    tags,
	})
	if err != nil {
		return fmt.Errorf("encoding front-matter: %w", err)
	}

	path := filepath.Join(cfg.ContentDir, id+".md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(cfg.ContentDir, 0755); err != nil {
		return fmt.Errorf("creating content dir: %w", err)
	}

	body := fmt.Sprintf("---\n%s---\n\n# %s\n\n", fm, title)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}

	logger.Debug("note created", zap.String("id", id), zap.String("path", path))
	fmt.Printf("Created %s\n", path)
	return nil
}
