package pathparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosix(t *testing.T) {
	cases := []struct {
		raw  string
		want Query
	}{
		{"", Query{}},
		{"/", Query{DirectoryPrefix: "/", EndsWithSeparator: true}},
		{"/root", Query{DirectoryPrefix: "/", PartialName: "root"}},
		{"/root/", Query{DirectoryPrefix: "/root/", EndsWithSeparator: true}},
		{"/root/d", Query{DirectoryPrefix: "/root/", PartialName: "d"}},
		{"src/ma", Query{DirectoryPrefix: "src/", PartialName: "ma"}},
		{"notes", Query{PartialName: "notes"}},
		{`dir\file`, Query{PartialName: `dir\file`}},
		{"C:/x", Query{DirectoryPrefix: "C:/", PartialName: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.raw, Posix))
		})
	}
}

func TestParseWindowsAcceptsBothSeparators(t *testing.T) {
	cases := []struct {
		raw  string
		want Query
	}{
		{`C:\root\`, Query{DirectoryPrefix: `C:\root\`, EndsWithSeparator: true, DrivePrefix: "C:"}},
		{"C:/root/", Query{DirectoryPrefix: "C:/root/", EndsWithSeparator: true, DrivePrefix: "C:"}},
		{`C:\root/d`, Query{DirectoryPrefix: `C:\root/`, PartialName: "d", DrivePrefix: "C:"}},
		{`c:/root\dir2`, Query{DirectoryPrefix: `c:/root\`, PartialName: "dir2", DrivePrefix: "c:"}},
		{"C:foo", Query{DirectoryPrefix: "C:", PartialName: "foo", DrivePrefix: "C:"}},
		{"C:", Query{DirectoryPrefix: "C:", DrivePrefix: "C:"}},
		{`\\server\share\x`, Query{DirectoryPrefix: `\\server\share\`, PartialName: "x"}},
		{"1:/x", Query{DirectoryPrefix: "1:/", PartialName: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.raw, Windows))
		})
	}
}

func TestParseKeepsNonASCIINames(t *testing.T) {
	q := Parse("/home/ünïcode/fïle", Posix)
	assert.Equal(t, "/home/ünïcode/", q.DirectoryPrefix)
	assert.Equal(t, "fïle", q.PartialName)
}

func TestStyleHelpers(t *testing.T) {
	assert.Equal(t, "./", Posix.CurrentDirMarker())
	assert.Equal(t, `.\`, Windows.CurrentDirMarker())
	assert.True(t, Windows.IsSeparator('\\'))
	assert.False(t, Posix.IsSeparator('\\'))

	style, err := ParseStyle("Windows")
	require.NoError(t, err)
	assert.Equal(t, Windows, style)

	style, err = ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, LocalStyle(), style)

	_, err = ParseStyle("amiga")
	assert.Error(t, err)
}
