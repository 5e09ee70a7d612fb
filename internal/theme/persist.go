package theme

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// MemoryPersister keeps the choice in process memory.
type MemoryPersister struct {
	mu   sync.Mutex
	mode Mode
	set  bool
}

func NewMemoryPersister() *MemoryPersister { return &MemoryPersister{} }

func (p *MemoryPersister) Load(context.Context) (Mode, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode, p.set, nil
}

func (p *MemoryPersister) Save(_ context.Context, m Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode, p.set = m, true
	return nil
}

// CookieMaxAge keeps the theme cookie for a year.
const CookieMaxAge = 365 * 24 * time.Hour

// CookiePersister reads the choice from a request's "theme" cookie and writes
// it back on the response.
type CookiePersister struct {
	r *http.Request
	w http.ResponseWriter
}

func NewCookiePersister(w http.ResponseWriter, r *http.Request) *CookiePersister {
	return &CookiePersister{r: r, w: w}
}

func (p *CookiePersister) Load(context.Context) (Mode, bool, error) {
	c, err := p.r.Cookie(Key)
	if err != nil {
		return "", false, nil
	}
	m, ok := ParseMode(c.Value)
	return m, ok, nil
}

func (p *CookiePersister) Save(_ context.Context, m Mode) error {
	http.SetCookie(p.w, &http.Cookie{
		Name:     Key,
		Value:    m.String(),
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClientHint reads the browser's Sec-CH-Prefers-Color-Scheme header. It
// returns "" when the browser did not send one.
func ClientHint(r *http.Request) Mode {
	m, _ := ParseMode(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
	return m
}

// Chain consults persisters in order on Load and writes to all of them on
// Save. The first Save error is returned after every persister has been tried.
type Chain []Persister

func (c Chain) Load(ctx context.Context) (Mode, bool, error) {
	var firstErr error
	for _, p := range c {
		m, ok, err := p.Load(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return m, true, nil
		}
	}
	return "", false, firstErr
}

func (c Chain) Save(ctx context.Context, m Mode) error {
	var firstErr error
	for _, p := range c {
		if err := p.Save(ctx, m); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
