package browse

import (
	"sort"

	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

// Source exposes the children of an already loaded directory.
type Source interface {
	ChildEntries(dir string) []tree.Entry
}

// List returns the ordered children of dir: the parent marker first when dir
// is not the root, then directories, then files, each group in path order.
// Hidden children are dropped unless showHidden is set.
func List(src Source, dir string, showHidden bool) []Entry {
	dir = tree.Clean(dir)
	var out []Entry
	if dir != "" {
		out = append(out, ParentMarker())
	}
	if src == nil {
		return out
	}
	var dirs, files []tree.Entry
	for _, child := range src.ChildEntries(dir) {
		if !showHidden && tree.IsHidden(child.Path) {
			continue
		}
		if child.IsDir {
			dirs = append(dirs, child)
		} else {
			files = append(files, child)
		}
	}
	sortByPath(dirs)
	sortByPath(files)
	for _, d := range dirs {
		out = append(out, Concrete(d))
	}
	for _, f := range files {
		out = append(out, Concrete(f))
	}
	return out
}

func sortByPath(entries []tree.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return tree.ComparePaths(entries[i].Path, entries[j].Path) < 0
	})
}
