package router

import (
	"net/url"
	"strings"
)

const HashName = "hash"

// HashStrategy addresses views by URL fragment: #, #notes and #post/{id}.
// Unknown fragments show Home.
type HashStrategy struct{}

func (HashStrategy) Name() string { return HashName }

// Parse accepts a bare fragment ("notes"), a fragment with its '#', or a full
// URL carrying one.
func (HashStrategy) Parse(location string) Route {
	frag := location
	if i := strings.IndexByte(frag, '#'); i >= 0 {
		frag = frag[i+1:]
	}
	frag = strings.Trim(frag, "/")

	switch {
	case frag == "notes":
		return Route{Kind: NotesList}
	case strings.HasPrefix(frag, "post/"):
		if id := unescape(strings.TrimPrefix(frag, "post/")); ValidID(id) {
			return Detail(id)
		}
	}
	return Route{Kind: Home}
}

// Link is the fragment pushed into the address bar, so back and forward
// navigation and deep links restore the view. Home has an empty fragment.
func (HashStrategy) Link(r Route) string {
	switch r.Kind {
	case NotesList:
		return "#notes"
	case NoteDetail:
		return "#post/" + url.PathEscape(r.ID)
	}
	return ""
}
