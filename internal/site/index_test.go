package site

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jyliuu/folio/internal/router"
)

func TestNoteIndexHashLinks(t *testing.T) {
	got := NoteIndex(testPosts, router.HashStrategy{}, "https://jyliuu.github.io/")
	want := []NoteIndexEntry{
		{ID: "b", Title: "Second", Date: "2025-01-01", Tags: []string{"ml"},
			Path: "#post/b", URL: "https://jyliuu.github.io/#post/b"},
		{ID: "a", Title: "First", Date: "2024-01-01", Tags: []string{},
			Path: "#post/a", URL: "https://jyliuu.github.io/#post/a"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NoteIndex mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteIndexWithoutBaseURL(t *testing.T) {
	got := NoteIndex(testPosts[:1], router.PathStrategy{}, "")
	want := []NoteIndexEntry{
		{ID: "b", Title: "Second", Date: "2025-01-01", Tags: []string{"ml"}, Path: "/notes/b/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NoteIndex mismatch (-want +got):\n%s", diff)
	}
}
