package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jyliuu/folio/internal/content"
	"github.com/jyliuu/folio/internal/db"
	"github.com/jyliuu/folio/internal/render"
)

const alphaNote = `---
id: alpha
title: Alpha Note
date: 2025-03-01
tags: [ml, trees]
summary: First one.
---
# Alpha

` + "```go\nfunc main() {}\n```\n"

const betaNote = `---
title: Beta Note
date: 2024-06-15
tags: stats
---
Beta body.
`

func setupServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	dir := t.TempDir()
	for name, body := range map[string]string{"alpha.md": alphaNote, "beta.md": betaNote} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	r, err := render.New("", "")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	srv, err := New(cfg, database, content.NewLoader(content.NewDirSource(dir, nil, nil)), r, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return srv
}

func get(srv *Server, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, Config{Port: 0})

	w := get(srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupServer(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestHomePage(t *testing.T) {
	srv := setupServer(t, Config{SiteTitle: "Notes"})

	w := get(srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := w.Body.String()
	for _, want := range []string{"Jinyang Liu", `data-theme="light"`, `action="/theme/toggle"`} {
		if !strings.Contains(out, want) {
			t.Errorf("home page should contain %q", want)
		}
	}

	var visitor bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "folio_visitor" {
			visitor = true
		}
	}
	if !visitor {
		t.Error("expected a visitor cookie to be issued")
	}
}

func TestNotesPage(t *testing.T) {
	srv := setupServer(t, Config{})

	out := get(srv, "/notes").Body.String()
	a, b := strings.Index(out, "Alpha Note"), strings.Index(out, "Beta Note")
	if a < 0 || b < 0 {
		t.Fatalf("notes page should list both notes")
	}
	if a > b {
		t.Error("newest note should be listed first")
	}

	out = get(srv, "/notes?sort=oldest").Body.String()
	if strings.Index(out, "Beta Note") > strings.Index(out, "Alpha Note") {
		t.Error("sort=oldest should list the oldest note first")
	}

	out = get(srv, "/notes?tag=stats").Body.String()
	if strings.Contains(out, "Alpha Note") || !strings.Contains(out, "Beta Note") {
		t.Error("tag filter should keep only tagged notes")
	}

	// Filtering must not reorder the loaded notes.
	out = get(srv, "/notes").Body.String()
	if strings.Index(out, "Alpha Note") > strings.Index(out, "Beta Note") {
		t.Error("default order changed after an oldest-first request")
	}
}

func TestNotePage(t *testing.T) {
	srv := setupServer(t, Config{})

	w := get(srv, "/notes/alpha")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := w.Body.String()
	for _, want := range []string{"Alpha Note", "<h1", "<pre"} {
		if !strings.Contains(out, want) {
			t.Errorf("note page should contain %q", want)
		}
	}

	if w := get(srv, "/notes/beta/"); w.Code != http.StatusOK {
		t.Errorf("trailing slash: expected 200, got %d", w.Code)
	}
}

func TestUnknownNote(t *testing.T) {
	srv := setupServer(t, Config{})

	for _, path := range []string{"/notes/missing", "/no/such/page"} {
		w := get(srv, path)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Post not found") {
			t.Errorf("%s: expected the not-found view", path)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	srv := setupServer(t, Config{})

	toggle := func(cookies []*http.Cookie) (string, []*http.Cookie) {
		req := httptest.NewRequest("POST", "/theme/toggle", nil)
		req.Header.Set("Accept", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("toggle: expected 200, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return body["theme"], w.Result().Cookies()
	}

	mode, cookies := toggle(nil)
	if mode != "dark" {
		t.Fatalf("first toggle: got %q, want dark", mode)
	}

	var visitor *http.Cookie
	for _, c := range cookies {
		if c.Name == "folio_visitor" {
			visitor = c
		}
	}
	if visitor == nil {
		t.Fatal("expected a visitor cookie")
	}

	// The stored preference alone is enough to restore the theme.
	if out := get(srv, "/", visitor).Body.String(); !strings.Contains(out, `data-theme="dark"`) {
		t.Error("expected the dark theme to persist for the visitor")
	}

	mode, _ = toggle([]*http.Cookie{visitor})
	if mode != "light" {
		t.Errorf("second toggle: got %q, want light", mode)
	}
}

func TestThemeToggleRedirect(t *testing.T) {
	srv := setupServer(t, Config{})

	req := httptest.NewRequest("POST", "/theme/toggle", nil)
	req.Header.Set("Referer", "http://example.com/notes?sort=oldest")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/notes?sort=oldest" {
		t.Errorf("Location = %q, want /notes?sort=oldest", loc)
	}
}

func TestBackToStaysOnSite(t *testing.T) {
	tests := []struct {
		referer, want string
	}{
		{"http://example.com/notes?tag=ml", "/notes?tag=ml"},
		{"http://example.com//evil.example/x", "/"},
		{`http://example.com/\evil.example/x`, "/"},
		{"http://other.example/notes", "/"},
		{"", "/"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/theme/toggle", nil)
		if tt.referer != "" {
			req.Header.Set("Referer", tt.referer)
		}
		if got := backTo(req); got != tt.want {
			t.Errorf("backTo(%q) = %q, want %q", tt.referer, got, tt.want)
		}
	}
}

func TestClientHintSelectsDark(t *testing.T) {
	srv := setupServer(t, Config{})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `data-theme="dark"`) {
		t.Error("expected the browser's dark preference to apply")
	}
}

func TestAPIPosts(t *testing.T) {
	srv := setupServer(t, Config{})

	w := get(srv, "/api/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var posts []content.Post
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "alpha" {
		t.Errorf("expected newest first, got %q", posts[0].ID)
	}
	for _, p := range posts {
		if p.Content != "" {
			t.Errorf("list should omit content, got %q for %s", p.Content, p.ID)
		}
	}

	w = get(srv, "/api/posts/beta")
	var p content.Post
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Title != "Beta Note" || !strings.Contains(p.Content, "Beta body.") {
		t.Errorf("unexpected post: %+v", p)
	}

	if w := get(srv, "/api/posts/missing"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSearchRouteIsMounted(t *testing.T) {
	srv := setupServer(t, Config{})

	w := get(srv, "/api/search?q=beta")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"beta"`) {
		t.Errorf("expected beta in results, got %s", w.Body.String())
	}
}

func TestAssets(t *testing.T) {
	srv := setupServer(t, Config{})

	tests := []struct {
		path, contentType string
	}{
		{"/style.css", "text/css"},
		{"/script.js", "javascript"},
		{"/highlight.css", "text/css"},
	}
	for _, tt := range tests {
		w := get(srv, tt.path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
			t.Errorf("%s: content type %q should contain %q", tt.path, ct, tt.contentType)
		}
	}
}

func TestStaticFallback(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "favicon.ico"), []byte("icon"), 0644); err != nil {
		t.Fatal(err)
	}
	srv := setupServer(t, Config{StaticDir: static})

	w := get(srv, "/favicon.ico")
	if w.Code != http.StatusOK || w.Body.String() != "icon" {
		t.Errorf("expected favicon from static dir, got %d %q", w.Code, w.Body.String())
	}
	if w := get(srv, "/static/favicon.ico"); w.Code != http.StatusOK {
		t.Errorf("/static/: expected 200, got %d", w.Code)
	}
}

func TestLiveReloadSocket(t *testing.T) {
	srv := setupServer(t, Config{LiveReload: true})

	server := httptest.NewServer(srv.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/reload"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub().Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != ReloadMessage {
		t.Errorf("expected %q, got %q", ReloadMessage, msg)
	}

	if !strings.Contains(get(srv, "/").Body.String(), "/ws/reload") {
		t.Error("pages should carry the reload client")
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	dir := t.TempDir()
	r, err := render.New("", "")
	if err != nil {
		t.Fatal(err)
	}
	srv, err := New(Config{}, database, content.NewLoader(content.NewDirSource(dir, nil, nil)), r, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if w := get(srv, "/notes/fresh"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before the note exists, got %d", w.Code)
	}

	if err := os.WriteFile(filepath.Join(dir, "fresh.md"), []byte("# Fresh\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if w := get(srv, "/notes/fresh"); w.Code != http.StatusOK {
		t.Errorf("expected 200 after reload, got %d", w.Code)
	}
	if srv.Loaded().IsZero() {
		t.Error("Loaded should be set after a reload")
	}
}
