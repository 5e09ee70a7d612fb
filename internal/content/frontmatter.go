package content

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/jyliuu/folio/internal/router"
)

// formats are the accepted metadata blocks. yaml.v3 keeps unquoted words
// such as "No" or "on" as strings.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// frontMatter is the typed schema of a note's metadata block.
type frontMatter struct {
	ID      flexString `yaml:"id" toml:"id"`
	Title   flexString `yaml:"title" toml:"title"`
	Date    flexString `yaml:"date" toml:"date"`
	Summary flexString `yaml:"summary" toml:"summary"`
	Tags    tagList    `yaml:"tags" toml:"tags"`
}

// flexString accepts any scalar (strings, unquoted dates, numbers) and keeps
// its text as written. Non-scalars decode to the empty string.
type flexString string

func (s *flexString) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = flexString(value.Value)
	return nil
}

func (s *flexString) UnmarshalTOML(v interface{}) error {
	*s = flexString(tomlScalar(v))
	return nil
}

// tomlScalar renders a decoded TOML value as text. Dates without a clock
// part keep the calendar date only.
func tomlScalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case []interface{}, map[string]interface{}:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// tagList accepts a sequence of scalars or a single comma-separated string.
type tagList []string

func (l *tagList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	switch value.Kind {
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				continue
			}
			if tag := strings.TrimSpace(item.Value); tag != "" {
				out = append(out, tag)
			}
		}
		*l = out
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = splitTags(value.Value)
	default:
		*l = nil
	}
	return nil
}

func (l *tagList) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if tag := strings.TrimSpace(tomlScalar(item)); tag != "" {
				out = append(out, tag)
			}
		}
		*l = out
	case string:
		*l = splitTags(t)
	default:
		*l = nil
	}
	return nil
}

// splitTags handles `tags: a, b` and `tags: [a, b]` written as a plain string.
func splitTags(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseResult is one decoded note file.
type parseResult struct {
	Post Post
	// Warning is set when the metadata block could not be decoded cleanly.
	Warning error
}

// parsePost decodes a note. name is the store-relative file name and supplies
// the defaults for id and title. It never fails: malformed metadata leaves the
// affected fields at their defaults and is reported through Warning.
func parsePost(name string, data []byte) parseResult {
	var fm frontMatter
	var warning error

	body, err := frontmatter.Parse(bytes.NewReader(data), &fm, formats...)
	if err != nil {
		warning = fmt.Errorf("front-matter of %s: %w", name, err)
		body = stripFrontMatter(data)
	}

	stem := safeID(fileStem(name))
	p := Post{
		ID:      strings.TrimSpace(string(fm.ID)),
		Title:   strings.TrimSpace(string(fm.Title)),
		Date:    strings.TrimSpace(string(fm.Date)),
		Summary: strings.TrimSpace(string(fm.Summary)),
		Tags:    []string(fm.Tags),
		Content: string(body),
		Source:  name,
	}
	if p.ID != "" && !router.ValidID(p.ID) {
		warning = errors.Join(warning, fmt.Errorf("id %q of %s cannot be used as a path segment, using %q", p.ID, name, stem))
		p.ID = ""
	}
	if p.ID == "" {
		p.ID = stem
	}
	if p.Title == "" {
		p.Title = titleFromStem(stem)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Published = ParseDate(p.Date)

	return parseResult{Post: p, Warning: warning}
}

// stripFrontMatter drops a leading --- or +++ delimited block when the block
// itself could not be decoded.
func stripFrontMatter(data []byte) []byte {
	for _, delim := range []string{"---", "+++"} {
		if !bytes.HasPrefix(data, []byte(delim)) {
			continue
		}
		rest := data[len(delim):]
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return data
		}
		rest = rest[nl+1:]
		end := bytes.Index(rest, []byte("\n"+delim))
		if end < 0 {
			if bytes.HasPrefix(rest, []byte(delim)) {
				end = -1
			} else {
				return data
			}
		}
		after := rest[end+1+len(delim):]
		if nl := bytes.IndexByte(after, '\n'); nl >= 0 {
			return after[nl+1:]
		}
		return nil
	}
	return data
}

// fileStem is the base name without extension ("notes/a.md" -> "a").
func fileStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// safeID makes a file stem usable as an id by replacing the characters
// router.ValidID rejects.
func safeID(stem string) string {
	id := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '#':
			return '-'
		}
		return r
	}, stem)
	if !router.ValidID(id) {
		return "note"
	}
	return id
}

var titleCaser = cases.Title(language.English)

// titleFromStem turns "fast-pdp_trees" into "Fast Pdp Trees".
func titleFromStem(stem string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return titleCaser.String(strings.Join(strings.Fields(words), " "))
}
