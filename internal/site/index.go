package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/router"
)

// NoteIndexEntry is one note in notes/index.json.
type NoteIndexEntry struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Path    string   `json:"path"`
	URL     string   `json:"url,omitempty"`
}

// NoteIndex lists posts, in order, with their links under strategy. URL is
// set when baseURL is.
func NoteIndex(posts []content.Post, strategy router.Strategy, baseURL string) []NoteIndexEntry {
	entries := make([]NoteIndexEntry, 0, len(posts))
	base := strings.TrimSuffix(baseURL, "/")
	for _, p := range posts {
		link := strategy.Link(router.Detail(p.ID))
		e := NoteIndexEntry{
			ID:      p.ID,
			Title:   p.Title,
			Date:    p.Date,
			Summary: p.Summary,
			Tags:    p.Tags,
			Path:    link,
		}
		if base != "" {
			if strings.HasPrefix(link, "#") {
				e.URL = base + "/" + link
			} else {
				e.URL = base + link
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// WriteNoteIndex writes the index as JSON to the given path.
func WriteNoteIndex(entries []NoteIndexEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
