package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/profile"
	"github.com/jyliuu/folio/internal/router"
	"github.com/jyliuu/folio/internal/theme"
)

// Markdown converts note bodies to HTML.
type Markdown interface {
	Render(src string, mode theme.Mode) (string, error)
	RenderClassed(src string) (string, error)
}

// Sort orders the notes list.
type Sort string

const (
	Newest Sort = "newest"
	Oldest Sort = "oldest"
)

// ParseSort maps a query value to a Sort; anything but "oldest" is Newest.
func ParseSort(s string) Sort {
	if Sort(strings.ToLower(s)) == Oldest {
		return Oldest
	}
	return Newest
}

// ViewOptions configure how pages are rendered.
type ViewOptions struct {
	SiteTitle string
	// Classed renders code with CSS classes so one page serves both palettes.
	Classed bool
	// ServerToggle posts theme changes to /theme/toggle instead of handling
	// them in the browser only.
	ServerToggle bool
	// LiveReload adds the websocket reload client.
	LiveReload bool
	Now        func() time.Time
}

// Views renders the Home, Notes list, Note detail and Not found pages.
type Views struct {
	tmpl     *template.Template
	strategy router.Strategy
	profile  *profile.Profile
	md       Markdown
	opts     ViewOptions
}

// NewViews parses the page templates. Links in the pages are produced by strategy.
func NewViews(strategy router.Strategy, p *profile.Profile, md Markdown, opts ViewOptions) (*Views, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	v := &Views{strategy: strategy, profile: p, md: md, opts: opts}

	tmpl, err := template.New("layout").Funcs(v.funcs()).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	for name, src := range map[string]string{
		"home":      homeTemplate,
		"notes":     notesTemplate,
		"note":      noteTemplate,
		"not-found": notFoundTemplate,
		"shell":     shellTemplate,
	} {
		if _, err := tmpl.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}
	v.tmpl = tmpl
	return v, nil
}

// Strategy returns the link strategy the pages are rendered with.
func (v *Views) Strategy() router.Strategy { return v.strategy }

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"href": func(r router.Route) string {
			if link := v.strategy.Link(r); link != "" {
				return link
			}
			return "#"
		},
		"noteRoute":  router.Detail,
		"homeRoute":  func() router.Route { return router.Route{Kind: router.Home} },
		"notesRoute": func() router.Route { return router.Route{Kind: router.NotesList} },
		"shortSkill": shortSkill,
		"isoDate": func(p content.Post) string {
			if p.Published.IsZero() {
				return ""
			}
			return p.Published.Format("2006-01-02")
		},
	}
}

var parenthetical = regexp.MustCompile(` *\([^)]*\) *`)

// shortSkill drops parenthetical qualifiers ("Python (Advanced)" -> "Python").
func shortSkill(s string) string {
	return parenthetical.ReplaceAllString(s, "")
}

// layoutData is the data for the shared page chrome.
type layoutData struct {
	Title        string
	SiteTitle    string
	Owner        string
	Year         int
	Theme        theme.Mode
	Active       router.Kind
	Body         template.HTML
	ServerToggle bool
	LiveReload   bool
	Hash         bool
	// AssetBase prefixes stylesheet and script URLs.
	AssetBase string
}

type educationView struct {
	profile.EducationItem
	DetailsHTML template.HTML
}

type homeData struct {
	Profile   *profile.Profile
	Email     string
	Education []educationView
}

type noteSummary struct {
	content.Post
	SortKey int64
}

type notesData struct {
	Notes []noteSummary
	Sort  Sort
	Tag   string
	Tags  []string
	// Server marks the sort control as a form submitted to the server.
	Server bool
}

type noteData struct {
	Post content.Post
	Body template.HTML
}

// Home renders the CV page.
func (v *Views) Home(w io.Writer, mode theme.Mode) error {
	body, err := v.homeBody(mode)
	if err != nil {
		return err
	}
	return v.layout(w, router.Home, v.profile.Name, body, mode)
}

// NotesList renders posts in the order given. sort and tag only describe the
// current selection.
func (v *Views) NotesList(w io.Writer, posts []content.Post, sort Sort, tag string, mode theme.Mode) error {
	body, err := v.notesBody(posts, sort, tag)
	if err != nil {
		return err
	}
	return v.layout(w, router.NotesList, "Notes", body, mode)
}

// Note renders one post.
func (v *Views) Note(w io.Writer, p content.Post, mode theme.Mode) error {
	body, err := v.noteBody(p, mode)
	if err != nil {
		return err
	}
	return v.layout(w, router.NoteDetail, p.Title, body, mode)
}

// NotFound renders the terminal page for an unknown note.
func (v *Views) NotFound(w io.Writer, mode theme.Mode) error {
	body, err := v.exec("not-found", nil)
	if err != nil {
		return err
	}
	return v.layout(w, router.NotFound, "Post not found", body, mode)
}

// shellSection is one pre-rendered view in the single-page shell.
type shellSection struct {
	Kind string
	ID   string
	Body template.HTML
}

// Shell renders every view into one page. The hash router script shows the
// section matching the current fragment.
func (v *Views) Shell(w io.Writer, posts []content.Post, mode theme.Mode) error {
	var sections []shellSection

	home, err := v.homeBody(mode)
	if err != nil {
		return err
	}
	sections = append(sections, shellSection{Kind: router.Home.String(), Body: home})

	notes, err := v.notesBody(posts, Newest, "")
	if err != nil {
		return err
	}
	sections = append(sections, shellSection{Kind: router.NotesList.String(), Body: notes})

	for _, p := range posts {
		body, err := v.noteBody(p, mode)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p.ID, err)
		}
		sections = append(sections, shellSection{Kind: router.NoteDetail.String(), ID: p.ID, Body: body})
	}

	notFound, err := v.exec("not-found", nil)
	if err != nil {
		return err
	}
	sections = append(sections, shellSection{Kind: router.NotFound.String(), Body: notFound})

	body, err := v.exec("shell", sections)
	if err != nil {
		return err
	}
	return v.layout(w, router.Home, v.profile.Name, body, mode)
}

func (v *Views) homeBody(mode theme.Mode) (template.HTML, error) {
	data := homeData{Profile: v.profile, Email: v.profile.Email()}
	for _, e := range v.profile.Education {
		details, err := v.markdown(e.Details, mode)
		if err != nil {
			return "", err
		}
		data.Education = append(data.Education, educationView{EducationItem: e, DetailsHTML: details})
	}
	return v.exec("home", data)
}

func (v *Views) notesBody(posts []content.Post, sort Sort, tag string) (template.HTML, error) {
	now := v.opts.Now()
	data := notesData{Sort: sort, Tag: tag, Server: v.opts.ServerToggle}
	seen := make(map[string]bool)
	for _, p := range posts {
		data.Notes = append(data.Notes, noteSummary{Post: p, SortKey: p.SortTime(now).Unix()})
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				data.Tags = append(data.Tags, t)
			}
		}
	}
	return v.exec("notes", data)
}

func (v *Views) noteBody(p content.Post, mode theme.Mode) (template.HTML, error) {
	body, err := v.markdown(p.Content, mode)
	if err != nil {
		return "", err
	}
	return v.exec("note", noteData{Post: p, Body: body})
}

func (v *Views) markdown(src string, mode theme.Mode) (template.HTML, error) {
	var out string
	var err error
	if v.opts.Classed {
		out, err = v.md.RenderClassed(src)
	} else {
		out, err = v.md.Render(src, mode)
	}
	if err != nil {
		return "", err
	}
	// Markdown output has raw HTML escaped, so it is trusted here.
	return template.HTML(out), nil
}

func (v *Views) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (v *Views) layout(w io.Writer, active router.Kind, title string, body template.HTML, mode theme.Mode) error {
	data := layoutData{
		Title:        title,
		SiteTitle:    v.opts.SiteTitle,
		Owner:        v.profile.Name,
		Year:         v.opts.Now().Year(),
		Theme:        mode,
		Active:       active,
		Body:         body,
		ServerToggle: v.opts.ServerToggle,
		LiveReload:   v.opts.LiveReload,
		Hash:         v.strategy.Name() == router.HashName,
	}
	if data.SiteTitle == "" {
		data.SiteTitle = v.profile.Name
	}
	if !data.Hash {
		data.AssetBase = "/"
	}
	if err := v.tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("executing layout template: %w", err)
	}
	return nil
}
