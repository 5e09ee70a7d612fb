package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/prefs"
	"github.com/jyliuu/folio/internal/site"
	"github.com/jyliuu/folio/internal/theme"
)

// themeFor resolves the visitor's theme: their stored preference, then the
// theme cookie, then the browser's color-scheme hint, then light.
func (s *Server) themeFor(w http.ResponseWriter, r *http.Request) *theme.Store {
	visitor := prefs.VisitorID(w, r)
	chain := theme.Chain{s.prefs.Persister(visitor), theme.NewCookiePersister(w, r)}
	return theme.NewStore(r.Context(), chain, theme.ClientHint(r), s.logger)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	_, views := s.snapshot()
	mode := s.themeFor(w, r).Mode()
	s.renderPage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return views.Home(buf, mode)
	})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	posts, views := s.snapshot()
	mode := s.themeFor(w, r).Mode()

	sort := site.ParseSort(r.URL.Query().Get("sort"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	list := append([]content.Post(nil), content.FilterTag(posts, tag)...)
	if sort == site.Oldest {
		content.SortOldest(list, s.now())
	}

	s.renderPage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return views.NotesList(buf, list, sort, tag, mode)
	})
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	posts, views := s.snapshot()
	mode := s.themeFor(w, r).Mode()

	p, err := content.Find(posts, chi.URLParam(r, "id"))
	if errors.Is(err, content.ErrNotFound) {
		s.renderPage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
			return views.NotFound(buf, mode)
		})
		return
	}

	s.renderPage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return views.Note(buf, p, mode)
	})
}

// handleThemeToggle flips the visitor's theme. Browsers are sent back to the
// page they came from; API clients get the new mode as JSON.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	store := s.themeFor(w, r)
	mode, err := store.Toggle(r.Context())
	if err != nil {
		s.logger.Warn("theme preference not saved", zap.Error(err))
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, map[string]string{"theme": mode.String()})
		return
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-host path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	// "//host" and "/\host" are read by browsers as another origin.
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func (s *Server) handleAPIPosts(w http.ResponseWriter, r *http.Request) {
	posts, _ := s.snapshot()
	list := append([]content.Post(nil), content.FilterTag(posts, strings.TrimSpace(r.URL.Query().Get("tag")))...)
	if site.ParseSort(r.URL.Query().Get("sort")) == site.Oldest {
		content.SortOldest(list, s.now())
	}

	out := make([]content.Post, 0, len(list))
	for _, p := range list {
		p.Content = ""
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIPost(w http.ResponseWriter, r *http.Request) {
	posts, _ := s.snapshot()
	p, err := content.Find(posts, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := site.Asset(path.Base(r.URL.Path))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(data))
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	css, err := s.renderer.StyleSheet()
	if err != nil {
		s.logger.Error("rendering highlight css", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(css))
}

// handleFallback serves files from the static directory (favicons, images)
// and renders the not-found page for everything else.
func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticDir != "" && r.Method == http.MethodGet {
		name := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
	}

	_, views := s.snapshot()
	mode := s.themeFor(w, r).Mode()
	s.renderPage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return views.NotFound(buf, mode)
	})
}

// renderPage buffers a view so template errors become a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
