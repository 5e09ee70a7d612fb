package router

import "testing"

func TestPathParse(t *testing.T) {
	tests := []struct {
		input string
		want  Route
	}{
		{"/", Route{Kind: Home}},
		{"", Route{Kind: Home}},
		{"/index.html", Route{Kind: Home}},
		{"/notes", Route{Kind: NotesList}},
		{"/notes/", Route{Kind: NotesList}},
		{"/notes/index.html", Route{Kind: NotesList}},
		{"/notes?sort=oldest", Route{Kind: NotesList}},
		{"/notes/fast-pdp", Detail("fast-pdp")},
		{"/notes/fast-pdp/", Detail("fast-pdp")},
		{"/notes/fast-pdp/index.html", Detail("fast-pdp")},
		{"https://example.com/notes/fast-pdp", Detail("fast-pdp")},
		{"/notes/a%20b", Detail("a b")},
		{"/notes/a/b", Route{Kind: NotFound}},
		{"/notes/myindex.html", Detail("myindex.html")},
		{"/notes/fast-pdp/myindex.html", Route{Kind: NotFound}},
		{"/myindex.html", Route{Kind: NotFound}},
		{"index.html", Route{Kind: Home}},
		{"/notes/..", Route{Kind: NotFound}},
		{"/about", Route{Kind: NotFound}},
	}
	var s PathStrategy
	for _, tt := range tests {
		if got := s.Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestHashParse(t *testing.T) {
	tests := []struct {
		input string
		want  Route
	}{
		{"", Route{Kind: Home}},
		{"#", Route{Kind: Home}},
		{"#notes", Route{Kind: NotesList}},
		{"notes", Route{Kind: NotesList}},
		{"#post/fast-pdp", Detail("fast-pdp")},
		{"https://example.com/#post/fast-pdp", Detail("fast-pdp")},
		{"#post/", Route{Kind: Home}},
		{"#whatever", Route{Kind: Home}},
	}
	var s HashStrategy
	for _, tt := range tests {
		if got := s.Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestLinkRoundTrip(t *testing.T) {
	routes := []Route{{Kind: Home}, {Kind: NotesList}, Detail("fast-pdp"), Detail("with space")}
	for _, s := range []Strategy{PathStrategy{}, HashStrategy{}} {
		for _, r := range routes {
			if got := s.Parse(s.Link(r)); got != r {
				t.Errorf("%s: Parse(Link(%+v)) = %+v", s.Name(), r, got)
			}
		}
	}
}

func TestHashLinks(t *testing.T) {
	var s HashStrategy
	if got := s.Link(Route{Kind: Home}); got != "" {
		t.Errorf("home link = %q, want empty", got)
	}
	if got := s.Link(Route{Kind: NotesList}); got != "#notes" {
		t.Errorf("notes link = %q", got)
	}
	if got := s.Link(Detail("x")); got != "#post/x" {
		t.Errorf("post link = %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	var s PathStrategy
	tests := map[Route]string{
		{Kind: Home}:      "index.html",
		{Kind: NotesList}: "notes/index.html",
		Detail("x"):       "notes/x/index.html",
		{Kind: NotFound}:  "404.html",
	}
	for r, want := range tests {
		if got := s.OutputPath(r); got != want {
			t.Errorf("OutputPath(%+v) = %q, want %q", r, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for name, want := range map[string]string{"": "path", "path": "path", "hash": "hash"} {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if s.Name() != want {
			t.Errorf("New(%q).Name() = %q, want %q", name, s.Name(), want)
		}
	}
	if _, err := New("query"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"fast-pdp", true},
		{"notes.v2", true},
		{"with space", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../../escaped", false},
		{"2024/intro", false},
		{`a\b`, false},
		{"a?b", false},
		{"a#b", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
