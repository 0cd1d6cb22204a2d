package completion

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
)

// DirEntry is one child returned by a DirectoryReader.
type DirEntry struct {
	Name  string
	IsDir bool
}

// DirectoryReader lists the direct children of a directory.
type DirectoryReader interface {
	ReadDirectory(ctx context.Context, dir string) ([]DirEntry, error)
}

// FSReader reads directories from an afero filesystem. Concurrent reads of
// the same directory share one call.
type FSReader struct {
	fs    afero.Fs
	base  string
	style pathparse.Style
	log   logr.Logger
	group singleflight.Group
}

// NewFSReader returns a reader that resolves relative directories against
// base.
func NewFSReader(fs afero.Fs, base string, style pathparse.Style, log logr.Logger) *FSReader {
	return &FSReader{fs: fs, base: base, style: style, log: log}
}

// ReadDirectory lists dir sorted by name. Failures are logged and returned.
func (r *FSReader) ReadDirectory(ctx context.Context, dir string) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved := r.Resolve(dir)
	v, err, shared := r.group.Do(resolved, func() (interface{}, error) {
		infos, err := afero.ReadDir(r.fs, resolved)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", resolved, err)
		}
		out := make([]DirEntry, 0, len(infos))
		for _, info := range infos {
			out = append(out, DirEntry{Name: info.Name(), IsDir: info.IsDir()})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out, nil
	})
	if err != nil {
		r.log.V(1).Info("directory read failed", "dir", dir, "error", err.Error())
		return nil, err
	}
	entries := v.([]DirEntry)
	r.log.V(1).Info("directory read", "dir", resolved, "entries", len(entries), "shared", shared)
	if shared {
		entries = append([]DirEntry(nil), entries...)
	}
	return entries, nil
}

// Resolve maps a typed directory to a cleaned filesystem path, joining
// relative input onto the base.
func (r *FSReader) Resolve(dir string) string {
	if r.style == pathparse.Windows {
		dir = strings.ReplaceAll(dir, `\`, "/")
	}
	if dir == "" {
		return filepath.Clean(r.base)
	}
	dir = filepath.FromSlash(dir)
	if !filepath.IsAbs(dir) && !hasDrive(dir) {
		dir = filepath.Join(r.base, dir)
	}
	return filepath.Clean(dir)
}

func hasDrive(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}
