// Package prefs persists each visitor's theme choice in SQLite.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jyliuu/folio/internal/db"
	"github.com/jyliuu/folio/internal/theme"
)

// VisitorCookie names the cookie carrying the visitor id.
const VisitorCookie = "folio_visitor"

// Store reads and writes theme preferences keyed by visitor id.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns the stored mode for visitorID; ok is false when none is stored.
func (s *Store) Get(ctx context.Context, visitorID string) (theme.Mode, bool, error) {
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT mode FROM theme_preferences WHERE visitor_id = ?`, visitorID,
	).Scan(&mode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading theme preference: %w", err)
	}
	m, ok := theme.ParseMode(mode)
	return m, ok, nil
}

// Set stores mode for visitorID.
func (s *Store) Set(ctx context.Context, visitorID string, mode theme.Mode) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (visitor_id, mode, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(visitor_id) DO UPDATE SET mode = excluded.mode, updated_at = excluded.updated_at`,
		visitorID, mode.String(),
	)
	if err != nil {
		return fmt.Errorf("saving theme preference: %w", err)
	}
	return nil
}

// Persister binds the store to one visitor so it can back a theme.Store.
func (s *Store) Persister(visitorID string) theme.Persister {
	return visitorPersister{store: s, id: visitorID}
}

type visitorPersister struct {
	store *Store
	id    string
}

func (p visitorPersister) Load(ctx context.Context) (theme.Mode, bool, error) {
	return p.store.Get(ctx, p.id)
}

func (p visitorPersister) Save(ctx context.Context, m theme.Mode) error {
	return p.store.Set(ctx, p.id, m)
}

// VisitorID returns the id from the request's visitor cookie, issuing a new
// one on w when the cookie is missing or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(theme.CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
