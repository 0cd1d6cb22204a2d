// Package pathparse splits partially typed filesystem paths into the
// directory being completed and the name typed so far.
package pathparse

import (
	"fmt"
	"runtime"
	"strings"
)

// Style is a platform path convention.
type Style int

const (
	Posix Style = iota
	Windows
)

// LocalStyle returns the convention of the running platform.
func LocalStyle() Style {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// ParseStyle maps a configuration value to a Style. "local" and "" select
// LocalStyle.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "local":
		return LocalStyle(), nil
	case "posix", "unix":
		return Posix, nil
	case "windows":
		return Windows, nil
	default:
		return Posix, fmt.Errorf("unknown path style %q", name)
	}
}

func (s Style) String() string {
	if s == Windows {
		return "windows"
	}
	return "posix"
}

// Separator returns the separator appended when completing a directory.
func (s Style) Separator() string {
	if s == Windows {
		return `\`
	}
	return "/"
}

// IsSeparator reports whether r separates path segments. Windows accepts
// both slash kinds.
func (s Style) IsSeparator(r rune) bool {
	if r == '/' {
		return true
	}
	return s == Windows && r == '\\'
}

// CurrentDirMarker is the display name of the "stay here" candidate.
func (s Style) CurrentDirMarker() string {
	return "." + s.Separator()
}
