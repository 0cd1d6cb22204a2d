package tree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when the scan root is a file.
var ErrNotDirectory = errors.New("tree root is not a directory")

// ScanOptions tune a tree scan.
type ScanOptions struct {
	// Ignore holds glob patterns matched against the relative path and the
	// base name of each entry. Matching directories are pruned.
	Ignore []string
	// MaxDepth limits how many levels below the root are read. Zero means
	// unlimited.
	MaxDepth int
	Logger   logr.Logger
}

// IgnoreMatcher matches entries against compiled ignore globs.
type IgnoreMatcher struct {
	globs []glob.Glob
}

// CompileIgnore compiles glob patterns using '/' as the separator.
func CompileIgnore(patterns []string) (IgnoreMatcher, error) {
	var m IgnoreMatcher
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return IgnoreMatcher{}, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether rel or its base name matches any pattern.
func (m IgnoreMatcher) Match(rel string) bool {
	if len(m.globs) == 0 {
		return false
	}
	base := Base(rel)
	for _, g := range m.globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Scan walks root on fs and returns a snapshot of everything beneath it.
// Unreadable entries are skipped and logged at V(1).
func Scan(ctx context.Context, fs afero.Fs, root string, opts ScanOptions) (*Tree, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	ignore, err := CompileIgnore(opts.Ignore)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	entries := make([]Entry, 0, 128)
	walkErr := afero.Walk(fs, root, func(p string, fi os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			log.V(1).Info("skipping unreadable path", "path", p, "error", err.Error())
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if ignore.Match(rel) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.MaxDepth > 0 && strings.Count(rel, "/")+1 > opts.MaxDepth {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, Entry{
			Path:    rel,
			IsDir:   fi.IsDir(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}
	log.V(1).Info("scanned tree", "root", root, "entries", len(entries))
	return New(root, entries), nil
}
