package tree

import "strings"

// Parent returns the parent of a root-relative path. The root ("") has no
// parent.
func Parent(p string) (string, bool) {
	p = Clean(p)
	if p == "" {
		return "", false
	}
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return "", true
	}
	return p[:idx], true
}

// Base returns the final segment of a root-relative path.
func Base(p string) string {
	p = Clean(p)
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// Join appends name to dir using the tree's slash convention.
func Join(dir, name string) string {
	dir = Clean(dir)
	if dir == "" {
		return Clean(name)
	}
	return dir + "/" + Clean(name)
}

// Clean trims surrounding slashes and collapses "." so that the root is "".
func Clean(p string) string {
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// IsHidden reports whether the final segment starts with a dot.
func IsHidden(p string) bool {
	return strings.HasPrefix(Base(p), ".")
}

// ComparePaths orders paths component by component. A path sorts before any
// path it is a proper prefix of.
func ComparePaths(a, b string) int {
	ac := splitComponents(a)
	bc := splitComponents(b)
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := strings.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	default:
		return 0
	}
}

func splitComponents(p string) []string {
	p = Clean(p)
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
