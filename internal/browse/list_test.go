package browse

import (
	"sort"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

func fixtureTree() *tree.Tree {
	return tree.New("/work/proj", []tree.Entry{
		{Path: "README.md"},
		{Path: ".env"},
		{Path: "go.mod"},
		{Path: "src", IsDir: true},
		{Path: ".git", IsDir: true},
		{Path: "docs", IsDir: true},
		{Path: "src/main.go"},
		{Path: "src/Util.go"},
		{Path: "src/internal", IsDir: true},
		{Path: "src/internal/a.go"},
		{Path: "docs/guide.md"},
		{Path: "empty", IsDir: true},
	})
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = RowLabel(e)
	}
	return out
}

func TestListRootOrdersDirsFirst(t *testing.T) {
	got := labels(List(fixtureTree(), "", false))
	want := []string{"docs/", "empty/", "src/", "README.md", "go.mod"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected listing %v, want %v", got, want)
	}
}

func TestListIncludesHiddenWhenAsked(t *testing.T) {
	got := labels(List(fixtureTree(), "", true))
	want := []string{".git/", "docs/", "empty/", "src/", ".env", "README.md", "go.mod"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected listing %v, want %v", got, want)
	}
}

func TestListSubdirStartsWithParentMarker(t *testing.T) {
	got := List(fixtureTree(), "src", false)
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %v", labels(got))
	}
	if !got[0].IsParent() || got[0].DisplayName() != ".." {
		t.Fatalf("expected parent marker first, got %v", labels(got))
	}
	if RowLabel(got[0]) != "parent directory" {
		t.Fatalf("unexpected marker label %q", RowLabel(got[0]))
	}
	if p, _ := got[1].Path(); p != "src/internal" {
		t.Fatalf("expected src/internal second, got %q", p)
	}
}

func TestListEmptyAndUnknownDirectories(t *testing.T) {
	got := List(fixtureTree(), "empty", false)
	if len(got) != 1 || !got[0].IsParent() {
		t.Fatalf("expected only the parent marker, got %v", labels(got))
	}
	if got := List(fixtureTree(), "missing/dir", false); len(got) != 1 {
		t.Fatalf("expected only the parent marker for unknown dir, got %v", labels(got))
	}
	if got := List(nil, "", false); len(got) != 0 {
		t.Fatalf("expected nothing from a nil source at root, got %v", labels(got))
	}
}

func genTree(t *rapid.T) *tree.Tree {
	names := rapid.SliceOfNDistinct(
		rapid.StringMatching(`\.?[a-zA-Z0-9_]{1,6}`),
		0, 12,
		func(s string) string { return s },
	).Draw(t, "names")
	entries := make([]tree.Entry, 0, len(names))
	for _, name := range names {
		dir := rapid.Bool().Draw(t, "isDir-"+name)
		entries = append(entries, tree.Entry{Path: "d/" + name, IsDir: dir})
	}
	entries = append(entries, tree.Entry{Path: "d", IsDir: true})
	return tree.New("/r", entries)
}

func TestListProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := genTree(t)
		showHidden := rapid.Bool().Draw(t, "showHidden")
		got := List(tr, "d", showHidden)

		if len(got) == 0 || !got[0].IsParent() {
			t.Fatalf("parent marker must lead a non-root listing")
		}
		for _, e := range got[1:] {
			if e.IsParent() {
				t.Fatalf("parent marker appears twice")
			}
			if p, _ := e.Path(); !showHidden && tree.IsHidden(p) {
				t.Fatalf("hidden entry %q listed", p)
			}
		}

		seenFile := false
		var dirs, files []string
		for _, e := range got[1:] {
			p, _ := e.Path()
			if e.IsDir() {
				if seenFile {
					t.Fatalf("directory %q after a file", p)
				}
				dirs = append(dirs, p)
			} else {
				seenFile = true
				files = append(files, p)
			}
		}
		if !sort.StringsAreSorted(dirs) || !sort.StringsAreSorted(files) {
			t.Fatalf("groups not sorted: %v %v", dirs, files)
		}

		all := List(tr, "d", true)
		visible := List(tr, "d", false)
		if len(visible) > len(all) {
			t.Fatalf("hiding grew the listing")
		}
	})
}
