package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/site"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `Lists every note with its id, date, title and tags, newest first.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("tag", "", "only list notes with this tag")
	listCmd.Flags().String("sort", "newest", "sort order (newest or oldest)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posts, err := newLoader(cfg).All(cmd.Context())
	if err != nil {
		return err
	}

	tag, _ := cmd.Flags().GetString("tag")
	posts = content.FilterTag(posts, tag)

	order, _ := cmd.Flags().GetString("sort")
	if site.ParseSort(order) == site.Oldest {
		content.SortOldest(posts, time.Now())
	}

	if len(posts) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}

	idWidth := len("ID")
	for _, p := range posts {
		idWidth = max(idWidth, len(p.ID))
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-*s  %-10s  %s", idWidth, "ID", "DATE", "TITLE")))
	for _, p := range posts {
		line := idStyle.Render(fmt.Sprintf("%-*s", idWidth, p.ID)) + "  " +
			dateStyle.Render(fmt.Sprintf("%-10s", p.Date)) + "  " + p.Title
		if len(p.Tags) > 0 {
			line += "  " + tagStyle.Render("#"+strings.Join(p.Tags, " #"))
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d notes\n", len(posts))
	return nil
}
