// Package theme holds the light/dark display preference and its persistence.
package theme

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Mode is a display palette.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Key is the name under which the choice is persisted (cookie, localStorage).
const Key = "theme"

// ParseMode converts a persisted value. Anything other than "dark" or "light"
// is not a choice.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return "", false
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string { return string(m) }

// Resolve picks the starting mode: the persisted choice, else the operating
// system preference, else light.
func Resolve(persisted, os Mode) Mode {
	if m, ok := ParseMode(string(persisted)); ok {
		return m
	}
	if m, ok := ParseMode(string(os)); ok {
		return m
	}
	return Light
}

// Persister stores the last chosen mode.
type Persister interface {
	// Load returns the stored mode; ok is false when nothing was stored.
	Load(ctx context.Context) (m Mode, ok bool, err error)
	Save(ctx context.Context, m Mode) error
}

// Store is the active mode plus its subscribers. Toggle is the only transition.
type Store struct {
	mu      sync.Mutex
	mode    Mode
	persist Persister
	logger  *zap.Logger
	nextID  int
	subs    map[int]func(Mode)
}

// NewStore resolves the starting mode from p and the OS preference. A failed
// load is logged and treated as no stored choice.
func NewStore(ctx context.Context, p Persister, osPref Mode, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = NewMemoryPersister()
	}

	persisted, ok, err := p.Load(ctx)
	if err != nil {
		logger.Warn("loading theme preference", zap.Error(err))
	}
	if !ok {
		persisted = ""
	}

	return &Store{
		mode:    Resolve(persisted, osPref),
		persist: p,
		logger:  logger,
		subs:    make(map[int]func(Mode)),
	}
}

// Mode returns the active mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsDark reports whether the dark palette is active.
func (s *Store) IsDark() bool { return s.Mode() == Dark }

// Toggle flips the mode, persists it and notifies subscribers before
// returning. The returned error is the persistence failure, if any; the mode
// changes regardless.
func (s *Store) Toggle(ctx context.Context) (Mode, error) {
	s.mu.Lock()
	s.mode = s.mode.Opposite()
	m := s.mode
	subs := make([]func(Mode), 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	err := s.persist.Save(ctx, m)
	if err != nil {
		s.logger.Warn("saving theme preference", zap.String("mode", m.String()), zap.Error(err))
	}

	for _, fn := range subs {
		fn(m)
	}
	return m, err
}

// Subscribe registers fn to run after every toggle, in registration order.
// The returned func removes it.
func (s *Store) Subscribe(fn func(Mode)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
