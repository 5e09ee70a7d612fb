package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Source is a read-only store of note files.
type Source interface {
	// List returns the store-relative names of the notes, in lexical order.
	List(ctx context.Context) ([]string, error)
	// Read returns the raw contents of one note.
	Read(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads notes from a directory on disk.
type DirSource struct {
	Root    string
	Include []string
	Exclude []string
}

// NewDirSource creates a DirSource. With no include patterns every *.md file
// directly under root is a note.
func NewDirSource(root string, include, exclude []string) *DirSource {
	if len(include) == 0 {
		include = []string{"*.md"}
	}
	return &DirSource{Root: root, Include: include, Exclude: exclude}
}

// List walks the root and returns the names matching Include and not Exclude.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, fmt.Errorf("content dir %s: %w", s.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", s.Root)
	}

	var names []string
	err = filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			return nil
		}
		if s.included(rel) && !s.excluded(rel) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Root, err)
	}

	sort.Strings(names)
	return names, nil
}

// Read returns the contents of the named note.
func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid note name %q", name)
	}
	return os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(name)))
}

func (s *DirSource) included(rel string) bool {
	for _, pattern := range s.Include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (s *DirSource) excluded(rel string) bool {
	for _, pattern := range s.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
