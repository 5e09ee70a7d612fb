// Package router maps URLs to views. Two strategies address the same routes:
// file paths for the statically generated site and hash fragments for the
// single-page shell.
package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies a view.
type Kind int

const (
	Home Kind = iota
	NotesList
	NoteDetail
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case NotesList:
		return "notes"
	case NoteDetail:
		return "post"
	case NotFound:
		return "not-found"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Route is a parsed location. ID is set only for NoteDetail.
type Route struct {
	Kind Kind
	ID   string
}

// Detail is the route of one note.
func Detail(id string) Route { return Route{Kind: NoteDetail, ID: id} }

// Strategy converts between locations and routes.
type Strategy interface {
	Name() string
	// Parse maps a location (a path or a fragment) to a route. It never fails.
	Parse(location string) Route
	// Link is the location that Parse maps back to r.
	Link(r Route) string
}

// New returns the strategy registered under name ("path" or "hash").
func New(name string) (Strategy, error) {
	switch name {
	case "", PathName:
		return PathStrategy{}, nil
	case HashName:
		return HashStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown routing strategy %q", name)
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

// ValidID reports whether id can address a note as a single URL path
// segment and a single output directory.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\?#")
}
