// Package content loads markdown notes with front-matter from a content store.
package content

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no post carries the requested id.
var ErrNotFound = errors.New("post not found")

// ErrDuplicateID is returned when two files in the content store resolve to the same id.
var ErrDuplicateID = errors.New("duplicate post id")

// Post is one markdown-authored note.
type Post struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Content string   `json:"content,omitempty"`

	// Source is the store-relative name of the file the post was read from.
	Source string `json:"source,omitempty"`
	// Published is Date parsed; zero when Date is not a recognized date.
	Published time.Time `json:"-"`
}

// HasTag reports whether the post is tagged with tag (case-insensitive).
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SortTime is the instant used for ordering. Unparsable dates sort as now.
func (p Post) SortTime(now time.Time) time.Time {
	if p.Published.IsZero() {
		return now
	}
	return p.Published
}
