package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jyliuu/folio/internal/render"
	"github.com/jyliuu/folio/internal/theme"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a note in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("dark", false, "use the dark palette")
	showCmd.Flags().Int("width", 80, "word wrap width")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newLoader(cfg).Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	mode := theme.Light
	if dark, _ := cmd.Flags().GetBool("dark"); dark {
		mode = theme.Dark
	}
	width, _ := cmd.Flags().GetInt("width")

	src := fmt.Sprintf("# %s\n\n*Published on %s*\n\n%s", p.Title, p.Date, p.Content)
	out, err := render.Terminal(src, mode, width)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
