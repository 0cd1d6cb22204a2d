package completion

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
)

func TestReadMissingDirectoryLogsOnlyAtV1(t *testing.T) {
	for _, verbosity := range []int{0, 1} {
		var lines []string
		log := funcr.New(func(prefix, args string) {
			lines = append(lines, args)
		}, funcr.Options{Verbosity: verbosity})
		reader := NewFSReader(rootFs(t), "/", pathparse.Posix, log)

		entries, err := reader.ReadDirectory(context.Background(), "/root/nope/")
		require.Error(t, err)
		assert.Empty(t, entries)

		if verbosity == 0 {
			assert.Empty(t, lines, "a missing directory is not worth an error log")
			continue
		}
		require.Len(t, lines, 1)
		assert.True(t, strings.Contains(lines[0], "directory read failed"), lines[0])
	}
}

func TestReadDirectorySortsAndResolvesRelative(t *testing.T) {
	reader := NewFSReader(rootFs(t), "/root", pathparse.Posix, funcr.New(func(string, string) {}, funcr.Options{}))
	entries, err := reader.ReadDirectory(context.Background(), "dir2/")
	require.NoError(t, err)
	assert.Equal(t, []DirEntry{{Name: "c"}, {Name: "dir3", IsDir: true}}, entries)
}
