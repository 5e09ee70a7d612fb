package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"
)

// ManifestFile lists the note names served by a remote content store.
const ManifestFile = "manifest.json"

// HTTPSource reads notes from a static file host. The host serves a
// manifest.json (a JSON array of note names) next to the notes themselves.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource rooted at baseURL.
func NewHTTPSource(baseURL string) *HTTPSource {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches and decodes the manifest.
func (s *HTTPSource) List(ctx context.Context) ([]string, error) {
	data, err := s.fetch(ctx, ManifestFile)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ManifestFile, err)
	}

	out := names[:0]
	for _, n := range names {
		n = strings.TrimPrefix(strings.TrimSpace(n), "/")
		if strings.HasSuffix(n, ".md") {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Read fetches one note.
func (s *HTTPSource) Read(ctx context.Context, name string) ([]byte, error) {
	return s.fetch(ctx, name)
}

func (s *HTTPSource) fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	u.Path = path.Join(u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", u, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	return data, nil
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}
