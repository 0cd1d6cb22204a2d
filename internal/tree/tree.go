package tree

import (
	"path/filepath"
	"sort"
	"time"
)

// Entry is a single file or directory beneath the tree root.
type Entry struct {
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Name returns the final segment of the entry path.
func (e Entry) Name() string {
	return Base(e.Path)
}

// Tree is an immutable snapshot of a directory subtree.
type Tree struct {
	root     string
	rootName string
	entries  map[string]Entry
	children map[string][]Entry
}

// New indexes entries beneath root. Missing parent directories are
// synthesised so every entry is reachable from the root.
func New(root string, entries []Entry) *Tree {
	t := &Tree{
		root:     root,
		rootName: filepath.Base(root),
		entries:  make(map[string]Entry, len(entries)),
		children: map[string][]Entry{"": nil},
	}
	for _, e := range entries {
		e.Path = Clean(e.Path)
		if e.Path == "" {
			continue
		}
		t.insert(e)
	}
	return t
}

func (t *Tree) insert(e Entry) {
	if existing, ok := t.entries[e.Path]; ok {
		if existing.IsDir == e.IsDir {
			t.replaceChild(e)
		}
		return
	}
	parent, _ := Parent(e.Path)
	if parent != "" {
		if _, ok := t.entries[parent]; !ok {
			t.insert(Entry{Path: parent, IsDir: true})
		}
	}
	t.entries[e.Path] = e
	t.children[parent] = append(t.children[parent], e)
	if e.IsDir {
		if _, ok := t.children[e.Path]; !ok {
			t.children[e.Path] = nil
		}
	}
}

func (t *Tree) replaceChild(e Entry) {
	parent, _ := Parent(e.Path)
	siblings := t.children[parent]
	for i := range siblings {
		if siblings[i].Path == e.Path {
			siblings[i] = e
			break
		}
	}
	t.entries[e.Path] = e
}

// Root returns the absolute filesystem path the tree was built from.
func (t *Tree) Root() string {
	if t == nil {
		return ""
	}
	return t.root
}

// RootName returns the display name of the root directory.
func (t *Tree) RootName() string {
	if t == nil {
		return ""
	}
	return t.rootName
}

// ChildEntries returns the direct children of dir in no particular order.
// Unknown directories yield nil.
func (t *Tree) ChildEntries(dir string) []Entry {
	if t == nil {
		return nil
	}
	kids, ok := t.children[Clean(dir)]
	if !ok || len(kids) == 0 {
		return nil
	}
	dup := make([]Entry, len(kids))
	copy(dup, kids)
	return dup
}

// HasDir reports whether dir is a known directory (the root always is).
func (t *Tree) HasDir(dir string) bool {
	if t == nil {
		return false
	}
	_, ok := t.children[Clean(dir)]
	return ok
}

// Lookup finds the entry at p.
func (t *Tree) Lookup(p string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[Clean(p)]
	return e, ok
}

// Len returns the number of entries below the root.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Dirs lists every known directory, root first, in path order.
func (t *Tree) Dirs() []string {
	if t == nil {
		return nil
	}
	dirs := make([]string, 0, len(t.children))
	for dir := range t.children {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return ComparePaths(dirs[i], dirs[j]) < 0
	})
	return dirs
}

// AbsPath converts a root-relative path into a filesystem path.
func (t *Tree) AbsPath(rel string) string {
	rel = Clean(rel)
	if rel == "" {
		return t.Root()
	}
	return filepath.Join(t.Root(), filepath.FromSlash(rel))
}

// RelPath converts a filesystem path under the root into a root-relative
// path. Paths outside the root report false.
func (t *Tree) RelPath(abs string) (string, bool) {
	rel, err := filepath.Rel(t.Root(), abs)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", true
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return "", false
	}
	return rel, true
}
