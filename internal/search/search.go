// Package search indexes notes in SQLite for text and tag lookup.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/db"
)

// DefaultLimit caps results when a query sets no limit.
const DefaultLimit = 20

// Query selects notes. Empty fields match everything.
type Query struct {
	Text  string
	Tag   string
	Limit int
}

// Hit is one matching note.
type Hit struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// TagCount is a tag and the number of notes carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Index provides search over the notes table.
type Index struct {
	db *db.DB
}

// NewIndex creates an Index backed by the given database.
func NewIndex(database *db.DB) *Index {
	return &Index{db: database}
}

// Replace swaps the indexed notes for posts in one transaction. posts are
// expected newest first; results keep that order.
func (idx *Index) Replace(ctx context.Context, posts []content.Post) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags`); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clearing notes: %w", err)
	}

	for i, p := range posts {
		var published int64
		if !p.Published.IsZero() {
			published = p.Published.Unix()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, title, date, published, position, summary, content, source)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Date, published, i, p.Summary, p.Content, p.Source,
		)
		if err != nil {
			return fmt.Errorf("indexing note %s: %w", p.ID, err)
		}
		for _, tag := range p.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)`, p.ID, tag,
			); err != nil {
				return fmt.Errorf("indexing tag %s of %s: %w", tag, p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Search returns notes whose title, summary or body contain q.Text
// (case-insensitive) and that carry q.Tag, newest first.
func (idx *Index) Search(ctx context.Context, q Query) ([]Hit, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	text := strings.TrimSpace(q.Text)
	pattern := "%" + escapeLike(text) + "%"
	tag := strings.TrimSpace(q.Tag)

	rows, err := idx.db.QueryContext(ctx, `
		SELECT n.id, n.title, n.date, n.summary
		FROM notes n
		WHERE (? = '' OR n.title LIKE ? ESCAPE '\' OR n.summary LIKE ? ESCAPE '\' OR n.content LIKE ? ESCAPE '\')
		  AND (? = '' OR EXISTS (
				SELECT 1 FROM note_tags t WHERE t.note_id = n.id AND t.tag = ? COLLATE NOCASE))
		ORDER BY n.position
		LIMIT ?`,
		text, pattern, pattern, pattern, tag, tag, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Title, &h.Date, &h.Summary); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		h.Tags = []string{}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(hits) == 0 {
		return []Hit{}, nil
	}
	if err := idx.attachTags(ctx, hits); err != nil {
		return nil, err
	}
	return hits, nil
}

func (idx *Index) attachTags(ctx context.Context, hits []Hit) error {
	pos := make(map[string]int, len(hits))
	for i, h := range hits {
		pos[h.ID] = i
	}

	rows, err := idx.db.QueryContext(ctx, `SELECT note_id, tag FROM note_tags ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		if i, ok := pos[id]; ok {
			hits[i].Tags = append(hits[i].Tags, tag)
		}
	}
	return rows.Err()
}

// Tags returns every tag with its note count, most used first.
func (idx *Index) Tags(ctx context.Context) ([]TagCount, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT tag, COUNT(*) AS n
		FROM note_tags
		GROUP BY tag
		ORDER BY n DESC, tag ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	defer rows.Close()

	counts := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// Count returns the number of indexed notes.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := idx.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
