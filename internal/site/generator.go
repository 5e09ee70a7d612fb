package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jyliuu/folio/internal/config"
	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/profile"
	"github.com/jyliuu/folio/internal/progress"
	"github.com/jyliuu/folio/internal/render"
	"github.com/jyliuu/folio/internal/router"
	"github.com/jyliuu/folio/internal/theme"
)

// PostSource supplies the notes to publish.
type PostSource interface {
	All(ctx context.Context) ([]content.Post, error)
}

// Generator writes the portfolio as a static site.
type Generator struct {
	OutputDir string
	StaticDir string
	BaseURL   string
	SiteTitle string
	Routing   config.RoutingMode

	Posts    PostSource
	Profile  *profile.Profile
	Renderer *render.Renderer
	Reporter progress.Reporter
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewGenerator creates a Generator from cfg.
func NewGenerator(cfg *config.Config, posts PostSource, prof *profile.Profile, r *render.Renderer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		OutputDir: cfg.OutputDir,
		StaticDir: cfg.StaticDir,
		BaseURL:   cfg.BaseURL,
		SiteTitle: cfg.SiteTitle,
		Routing:   cfg.Routing,
		Posts:     posts,
		Profile:   prof,
		Renderer:  r,
		Reporter:  progress.Nop{},
		Logger:    logger,
		Now:       time.Now,
	}
}

// Result summarizes a build.
type Result struct {
	Pages  int
	Posts  int
	Assets int
}

// Build loads every note and writes the site to OutputDir.
func (g *Generator) Build(ctx context.Context) (Result, error) {
	var res Result

	posts, err := g.Posts.All(ctx)
	if err != nil {
		return res, fmt.Errorf("loading notes: %w", err)
	}
	res.Posts = len(posts)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output dir: %w", err)
	}
	// Notes removed from the content store must not linger in the output.
	if err := os.RemoveAll(filepath.Join(g.OutputDir, "notes")); err != nil {
		return res, fmt.Errorf("clearing old notes: %w", err)
	}

	strategy, err := router.New(string(g.Routing))
	if err != nil {
		return res, err
	}
	views, err := NewViews(strategy, g.Profile, g.Renderer, ViewOptions{
		SiteTitle: g.SiteTitle,
		Classed:   true,
		Now:       g.Now,
	})
	if err != nil {
		return res, err
	}

	if g.Routing == config.RoutingHash {
		res.Pages, err = g.writeShell(ctx, views, posts)
	} else {
		res.Pages, err = g.writePages(ctx, views, posts)
	}
	if err != nil {
		return res, err
	}

	if err := g.writeAssets(); err != nil {
		return res, err
	}

	entries := NoteIndex(posts, strategy, g.BaseURL)
	if err := WriteNoteIndex(entries, filepath.Join(g.OutputDir, "notes", "index.json")); err != nil {
		return res, fmt.Errorf("writing note index: %w", err)
	}

	res.Assets, err = copyStatic(g.StaticDir, g.OutputDir)
	if err != nil {
		return res, fmt.Errorf("copying static assets: %w", err)
	}

	g.Logger.Info("site built",
		zap.String("output", g.OutputDir),
		zap.String("routing", string(g.Routing)),
		zap.Int("pages", res.Pages),
		zap.Int("posts", res.Posts),
		zap.Int("assets", res.Assets),
	)
	return res, nil
}

// page is one file of a path-routed build.
type page struct {
	route router.Route
	post  content.Post
}

// writePages writes one HTML file per route.
func (g *Generator) writePages(ctx context.Context, views *Views, posts []content.Post) (int, error) {
	pages := []page{{route: router.Route{Kind: router.Home}}, {route: router.Route{Kind: router.NotesList}}}
	for _, p := range posts {
		if !router.ValidID(p.ID) {
			return 0, fmt.Errorf("note %s: id %q cannot be used as a page path", p.Source, p.ID)
		}
		pages = append(pages, page{route: router.Detail(p.ID), post: p})
	}
	pages = append(pages, page{route: router.Route{Kind: router.NotFound}})

	var paths router.PathStrategy
	g.reporter().Start(len(pages))
	defer g.reporter().Finish()

	for i, pg := range pages {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		rel := paths.OutputPath(pg.route)

		var buf bytes.Buffer
		var err error
		switch pg.route.Kind {
		case router.Home:
			err = views.Home(&buf, theme.Light)
		case router.NotesList:
			err = views.NotesList(&buf, posts, Newest, "", theme.Light)
		case router.NoteDetail:
			err = views.Note(&buf, pg.post, theme.Light)
		default:
			err = views.NotFound(&buf, theme.Light)
		}
		if err != nil {
			return i, fmt.Errorf("rendering %s: %w", rel, err)
		}
		dst, err := g.outputFile(rel)
		if err != nil {
			return i, err
		}
		if err := writeFile(dst, buf.Bytes()); err != nil {
			return i, err
		}
		g.reporter().Update(i+1, rel)
	}
	return len(pages), nil
}

// outputFile resolves rel under OutputDir and refuses paths that leave it.
func (g *Generator) outputFile(rel string) (string, error) {
	root := filepath.Clean(g.OutputDir)
	dst := filepath.Join(root, filepath.FromSlash(rel))
	back, err := filepath.Rel(root, dst)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("page path %q escapes %s", rel, g.OutputDir)
	}
	return dst, nil
}

// writeShell writes the single-page build.
func (g *Generator) writeShell(ctx context.Context, views *Views, posts []content.Post) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.reporter().Start(1)
	defer g.reporter().Finish()

	var buf bytes.Buffer
	if err := views.Shell(&buf, posts, theme.Light); err != nil {
		return 0, fmt.Errorf("rendering index.html: %w", err)
	}
	if err := writeFile(filepath.Join(g.OutputDir, "index.html"), buf.Bytes()); err != nil {
		return 0, err
	}
	g.reporter().Update(1, "index.html")
	return 1, nil
}

func (g *Generator) writeAssets() error {
	css, err := g.Renderer.StyleSheet()
	if err != nil {
		return err
	}
	assets := map[string]string{
		"style.css":     cssContent,
		"highlight.css": css,
		"script.js":     jsContent,
	}
	if g.Routing == config.RoutingHash {
		assets["router.js"] = routerJS
	}
	for name, data := range assets {
		if err := writeFile(filepath.Join(g.OutputDir, name), []byte(data)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) reporter() progress.Reporter {
	if g.Reporter == nil {
		return progress.Nop{}
	}
	return g.Reporter
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// copyStatic copies src into dst. A missing src copies nothing.
func copyStatic(src, dst string) (int, error) {
	if src == "" {
		return 0, nil
	}
	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", src)
	}
	return copyDir(src, dst)
}
