// Package render converts note markdown to HTML with highlighted code blocks.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/jyliuu/folio/internal/theme"
)

// Default palettes for fenced code.
const (
	DefaultLightStyle = "github"
	DefaultDarkStyle  = "monokai"
)

// DarkScope is the selector under which the dark palette applies in class mode.
const DarkScope = `[data-theme="dark"]`

// Renderer turns markdown into HTML. It is safe for concurrent use.
type Renderer struct {
	lightStyle string
	darkStyle  string

	light   goldmark.Markdown
	dark    goldmark.Markdown
	classed goldmark.Markdown
}

// New creates a Renderer for the named chroma styles. Empty names select the
// defaults; unknown names are an error.
func New(lightStyle, darkStyle string) (*Renderer, error) {
	if lightStyle == "" {
		lightStyle = DefaultLightStyle
	}
	if darkStyle == "" {
		darkStyle = DefaultDarkStyle
	}
	for _, name := range []string{lightStyle, darkStyle} {
		if _, ok := styles.Registry[name]; !ok {
			return nil, fmt.Errorf("unknown highlight style %q", name)
		}
	}

	return &Renderer{
		lightStyle: lightStyle,
		darkStyle:  darkStyle,
		light:      newMarkdown(lightStyle, false),
		dark:       newMarkdown(darkStyle, false),
		classed:    newMarkdown(lightStyle, true),
	}, nil
}

func newMarkdown(style string, classes bool) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(false),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(classes),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// Style returns the chroma style name used for mode.
func (r *Renderer) Style(mode theme.Mode) string {
	if mode == theme.Dark {
		return r.darkStyle
	}
	return r.lightStyle
}

// Render converts src with the palette of mode inlined into the markup.
// Raw HTML in src is escaped.
func (r *Renderer) Render(src string, mode theme.Mode) (string, error) {
	md := r.light
	if mode == theme.Dark {
		md = r.dark
	}
	return convert(md, src)
}

// RenderClassed converts src with palette-independent CSS classes. Pair it
// with StyleSheet so the browser can switch palettes without re-rendering.
func (r *Renderer) RenderClassed(src string) (string, error) {
	return convert(r.classed, src)
}

func convert(md goldmark.Markdown, src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// StyleSheet returns CSS for class-mode output: the light palette unscoped and
// the dark palette under DarkScope.
func (r *Renderer) StyleSheet() (string, error) {
	light, err := styleCSS(styles.Get(r.lightStyle))
	if err != nil {
		return "", err
	}
	dark, err := styleCSS(styles.Get(r.darkStyle))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", r.lightStyle)
	b.WriteString(light)
	fmt.Fprintf(&b, "/* %s */\n", r.darkStyle)
	b.WriteString(scopeCSS(dark, DarkScope))
	return b.String(), nil
}

func styleCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %s css: %w", style.Name, err)
	}
	return buf.String(), nil
}

// scopeCSS prefixes every rule's selector with scope. chroma writes one rule
// per line, optionally led by a /* TokenType */ comment.
func scopeCSS(css, scope string) string {
	var b strings.Builder
	for _, line := range strings.Split(css, "\n") {
		if line == "" {
			continue
		}
		if i := strings.Index(line, "*/ ."); i >= 0 {
			line = line[:i+3] + scope + " " + line[i+3:]
		} else if strings.HasPrefix(line, ".") {
			line = scope + " " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Terminal renders src for display in a terminal.
func Terminal(src string, mode theme.Mode, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(mode.String()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("rendering for terminal: %w", err)
	}
	return out, nil
}
