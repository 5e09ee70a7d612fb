package content

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel reads when no limit is configured.
const DefaultConcurrency = 8

// Loader reads every note in a Source and orders them newest first.
type Loader struct {
	src         Source
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for malformed front-matter warnings.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithConcurrency limits the number of notes read at once. n <= 0 keeps the default.
func WithConcurrency(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}

// WithClock sets the clock that stands in for unparsable dates when sorting.
func WithClock(now func() time.Time) Option {
	return func(ld *Loader) {
		if now != nil {
			ld.now = now
		}
	}
}

// NewLoader creates a Loader over src.
func NewLoader(src Source, opts ...Option) *Loader {
	ld := &Loader{
		src:         src,
		logger:      zap.NewNop(),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// All returns every post, newest first. Posts with equal dates keep the
// lexical order of their file names. A failed read fails the whole load.
func (ld *Loader) All(ctx context.Context) ([]Post, error) {
	names, err := ld.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	posts := make([]Post, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ld.concurrency)
	for i, name := range names {
		g.Go(func() error {
			data, err := ld.src.Read(gctx, name)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			res := parsePost(name, data)
			if res.Warning != nil {
				ld.logger.Warn("malformed front-matter, using defaults",
					zap.String("file", name),
					zap.Error(res.Warning),
				)
			}
			posts[i] = res.Post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateID, p.ID, prev, p.Source)
		}
		seen[p.ID] = p.Source
	}

	SortNewest(posts, ld.now())
	ld.logger.Debug("loaded notes", zap.Int("count", len(posts)))
	return posts, nil
}

// Get returns the post with the given id, or ErrNotFound.
func (ld *Loader) Get(ctx context.Context, id string) (Post, error) {
	posts, err := ld.All(ctx)
	if err != nil {
		return Post{}, err
	}
	return Find(posts, id)
}

// IDs returns the id of every post, newest first.
func (ld *Loader) IDs(ctx context.Context) ([]string, error) {
	posts, err := ld.All(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids, nil
}

// Find looks id up in an already loaded slice.
func Find(posts []Post, id string) (Post, error) {
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// SortNewest orders posts by date descending, keeping the relative order of
// equal dates. Unparsable dates sort as now.
func SortNewest(posts []Post, now time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].SortTime(now).After(posts[j].SortTime(now))
	})
}

// SortOldest orders posts by date ascending, keeping the relative order of
// equal dates.
func SortOldest(posts []Post, now time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].SortTime(now).Before(posts[j].SortTime(now))
	})
}

// FilterTag returns the posts tagged with tag. An empty tag returns posts unchanged.
func FilterTag(posts []Post, tag string) []Post {
	if tag == "" {
		return posts
	}
	var out []Post
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}
