package pathparse

import "strings"

// Query is a raw path split at its last separator.
type Query struct {
	// DirectoryPrefix is everything up to and including the last separator,
	// exactly as typed.
	DirectoryPrefix string
	// PartialName is the text after the last separator.
	PartialName string
	// EndsWithSeparator is set when the raw text ends with a separator.
	EndsWithSeparator bool
	// DrivePrefix holds a leading "X:" under the Windows style.
	DrivePrefix string
}

// Parse splits raw according to style. The directory prefix is never
// rewritten so completions echo the caller's separators and drive casing.
func Parse(raw string, style Style) Query {
	q := Query{DrivePrefix: drivePrefix(raw, style)}
	if raw == "" {
		return q
	}
	// separators are single-byte
	if style.IsSeparator(rune(raw[len(raw)-1])) {
		q.DirectoryPrefix = raw
		q.EndsWithSeparator = true
		return q
	}
	idx := strings.LastIndexFunc(raw, style.IsSeparator)
	switch {
	case idx >= 0:
		q.DirectoryPrefix = raw[:idx+1]
		q.PartialName = raw[idx+1:]
	case q.DrivePrefix != "":
		q.DirectoryPrefix = q.DrivePrefix
		q.PartialName = raw[len(q.DrivePrefix):]
	default:
		q.PartialName = raw
	}
	return q
}

func drivePrefix(raw string, style Style) string {
	if style != Windows || len(raw) < 2 || raw[1] != ':' {
		return ""
	}
	c := raw[0]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return raw[:2]
	}
	return ""
}
