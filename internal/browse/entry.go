// Package browse implements directory browsing over a tree snapshot: listing
// children, substring filtering, selection, and stepping into and out of
// directories.
package browse

import "github.com/atomicstack/tmux-popup-files/internal/tree"

type entryKind int

const (
	kindParent entryKind = iota
	kindConcrete
)

// Entry is either the synthetic parent marker or a concrete tree entry.
type Entry struct {
	kind  entryKind
	entry tree.Entry
}

// ParentMarker returns the synthetic "go up one level" entry.
func ParentMarker() Entry {
	return Entry{kind: kindParent}
}

// Concrete wraps a tree entry.
func Concrete(e tree.Entry) Entry {
	return Entry{kind: kindConcrete, entry: e}
}

// IsParent reports whether e is the parent marker.
func (e Entry) IsParent() bool {
	switch e.kind {
	case kindParent:
		return true
	case kindConcrete:
		return false
	}
	panic("browse: unknown entry kind")
}

// IsDir reports whether e is a concrete directory.
func (e Entry) IsDir() bool {
	switch e.kind {
	case kindParent:
		return false
	case kindConcrete:
		return e.entry.IsDir
	}
	panic("browse: unknown entry kind")
}

// Path returns the root-relative path of a concrete entry.
func (e Entry) Path() (string, bool) {
	switch e.kind {
	case kindParent:
		return "", false
	case kindConcrete:
		return e.entry.Path, true
	}
	panic("browse: unknown entry kind")
}

// TreeEntry returns the wrapped tree entry.
func (e Entry) TreeEntry() (tree.Entry, bool) {
	switch e.kind {
	case kindParent:
		return tree.Entry{}, false
	case kindConcrete:
		return e.entry, true
	}
	panic("browse: unknown entry kind")
}

// DisplayName is the text the filter matches against.
func (e Entry) DisplayName() string {
	switch e.kind {
	case kindParent:
		return ".."
	case kindConcrete:
		if name := e.entry.Name(); name != "" {
			return name
		}
		return "."
	}
	panic("browse: unknown entry kind")
}

// RowLabel is the text shown for e in a list row.
func RowLabel(e Entry) string {
	switch e.kind {
	case kindParent:
		return "parent directory"
	case kindConcrete:
		if e.entry.IsDir {
			return e.DisplayName() + "/"
		}
		return e.DisplayName()
	}
	panic("browse: unknown entry kind")
}
