package site

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/profile"
	"github.com/jyliuu/folio/internal/render"
	"github.com/jyliuu/folio/internal/router"
	"github.com/jyliuu/folio/internal/theme"
)

func newTestViews(t *testing.T, strategy router.Strategy, opts ViewOptions) *Views {
	t.Helper()
	r, err := render.New("", "")
	if err != nil {
		t.Fatal(err)
	}
	opts.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	v, err := NewViews(strategy, profile.Default(), r, opts)
	if err != nil {
		t.Fatalf("NewViews: %v", err)
	}
	return v
}

var testPosts = []content.Post{
	{ID: "b", Title: "Second", Date: "2025-01-01", Tags: []string{"ml"}, Content: "two",
		Published: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	{ID: "a", Title: "First", Date: "2024-01-01", Tags: []string{}, Content: "one",
		Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
}

func TestHomeView(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{})
	var buf bytes.Buffer
	if err := v.Home(&buf, theme.Dark); err != nil {
		t.Fatalf("Home: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`data-theme="dark"`,
		"Jinyang Liu",
		`data-email="jl@math.ku.dk"`,
		"Preprints &amp; Publications",
		"Fast Estimation of Partial Dependence Functions using Trees",
		`href="https://arxiv.org/abs/2410.13448"`,
		"Education",
		"Advisor: Munir Hiabu.",
		"Technical",
		`<span class="chip">Python</span>`,
		"&copy; 2026 Jinyang Liu. All rights reserved.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page should contain %q", want)
		}
	}
	if strings.Contains(out, "Python (Advanced)") {
		t.Error("skill qualifiers should be dropped")
	}
}

func TestNotesListView(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{ServerToggle: true})
	var buf bytes.Buffer
	if err := v.NotesList(&buf, testPosts, Oldest, "ml", theme.Light); err != nil {
		t.Fatalf("NotesList: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<option value="oldest" selected>`) {
		t.Error("oldest option should be selected")
	}
	if !strings.Contains(out, "data-server") {
		t.Error("server views should submit the sort form")
	}
	if !strings.Contains(out, `action="/theme/toggle"`) {
		t.Error("server views should post theme toggles")
	}
	if !strings.Contains(out, `name="tag" value="ml"`) {
		t.Error("tag filter should be kept across sort changes")
	}
	if !strings.Contains(out, `data-sort-key="1735689600"`) {
		t.Error("cards should carry their sort key")
	}
	if strings.Index(out, "Second") > strings.Index(out, "First") {
		t.Error("posts should be listed in the order given")
	}
}

func TestNotesListEmpty(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{})
	var buf bytes.Buffer
	if err := v.NotesList(&buf, nil, Newest, "", theme.Light); err != nil {
		t.Fatalf("NotesList: %v", err)
	}
	if !strings.Contains(buf.String(), "No notes yet.") {
		t.Error("empty list should say so")
	}
}

func TestNoteViewInlinePalette(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{})
	p := content.Post{ID: "c", Title: "Code", Date: "2024-05-01", Tags: []string{"go"},
		Content: "```go\nfunc main() {}\n```\n"}

	var light, dark bytes.Buffer
	if err := v.Note(&light, p, theme.Light); err != nil {
		t.Fatalf("Note: %v", err)
	}
	if err := v.Note(&dark, p, theme.Dark); err != nil {
		t.Fatalf("Note: %v", err)
	}
	if light.String() == dark.String() {
		t.Error("inline rendering should differ between palettes")
	}
	if !strings.Contains(light.String(), "Published on 2024-05-01") {
		t.Error("note should show its date")
	}
	if !strings.Contains(light.String(), `<span class="tag">go</span>`) {
		t.Error("note should show its tags")
	}
}

func TestNotFoundView(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{})
	var buf bytes.Buffer
	if err := v.NotFound(&buf, theme.Light); err != nil {
		t.Fatalf("NotFound: %v", err)
	}
	if !strings.Contains(buf.String(), "Post not found") || !strings.Contains(buf.String(), `href="/notes/"`) {
		t.Error("not found page should link back to the notes")
	}
}

func TestLiveReloadScript(t *testing.T) {
	v := newTestViews(t, router.PathStrategy{}, ViewOptions{LiveReload: true})
	var buf bytes.Buffer
	if err := v.NotFound(&buf, theme.Light); err != nil {
		t.Fatalf("NotFound: %v", err)
	}
	if !strings.Contains(buf.String(), "/ws/reload") {
		t.Error("live reload client should be included")
	}
}

func TestShortSkill(t *testing.T) {
	tests := map[string]string{
		"Python (Advanced)":           "Python",
		"Rust (Systems/ML Library)":   "Rust",
		"Google Cloud Platform (GCP)": "Google Cloud Platform",
		"SQL":                         "SQL",
	}
	for in, want := range tests {
		if got := shortSkill(in); got != want {
			t.Errorf("shortSkill(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSort(t *testing.T) {
	if ParseSort("oldest") != Oldest || ParseSort("OLDEST") != Oldest {
		t.Error("oldest should parse")
	}
	if ParseSort("") != Newest || ParseSort("random") != Newest {
		t.Error("anything else should be newest")
	}
}
