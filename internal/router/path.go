package router

import (
	"net/url"
	"path"
	"strings"
)

const PathName = "path"

// PathStrategy addresses views by file path: /, /notes and /notes/{id}.
type PathStrategy struct{}

func (PathStrategy) Name() string { return PathName }

// Parse accepts full URLs, query strings, trailing slashes and index.html.
// Anything unrecognized is NotFound.
func (PathStrategy) Parse(location string) Route {
	p := location
	if u, err := url.Parse(location); err == nil {
		p = u.EscapedPath()
	}
	if p == "index.html" {
		p = ""
	}
	p = strings.TrimSuffix(p, "/index.html")
	p = strings.Trim(p, "/")

	if p == "" {
		return Route{Kind: Home}
	}
	segs := strings.Split(p, "/")
	if segs[0] != "notes" {
		return Route{Kind: NotFound}
	}
	switch len(segs) {
	case 1:
		return Route{Kind: NotesList}
	case 2:
		if id := unescape(segs[1]); ValidID(id) {
			return Detail(id)
		}
	}
	return Route{Kind: NotFound}
}

func (PathStrategy) Link(r Route) string {
	switch r.Kind {
	case NotesList:
		return "/notes/"
	case NoteDetail:
		return "/notes/" + url.PathEscape(r.ID) + "/"
	case NotFound:
		return "/404.html"
	}
	return "/"
}

// OutputPath is the file, relative to the output directory, that holds the
// page for r in a static build.
func (PathStrategy) OutputPath(r Route) string {
	switch r.Kind {
	case NotesList:
		return "notes/index.html"
	case NoteDetail:
		return path.Join("notes", r.ID, "index.html")
	case NotFound:
		return "404.html"
	}
	return "index.html"
}
