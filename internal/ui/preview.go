package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/format/table"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

const (
	previewReadLimit = 64 * 1024
	previewMaxLines  = 500
	previewTabWidth  = 4
)

type previewData struct {
	target       string
	label        string
	isDir        bool
	hidden       bool
	meta         string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int
}

type previewLoadedMsg struct {
	target string
	seq    int
	meta   string
	lines  []string
	err    error
}

var filePreviewFn = loadFilePreview

// ensurePreview starts loading the preview for the entry at rel unless it is
// already showing.
func (m *Model) ensurePreview(rel string, isDir bool) tea.Cmd {
	hidden := m.session != nil && m.session.ShowHidden()
	if p := m.preview; p != nil && p.target == rel && p.hidden == hidden && !p.loading {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	label := tree.Base(rel)
	if isDir {
		label += "/"
	}
	m.preview = &previewData{
		target:  rel,
		label:   label,
		isDir:   isDir,
		hidden:  hidden,
		loading: true,
		seq:     seq,
	}
	snapshot := m.trees.Tree()
	if isDir {
		return func() tea.Msg {
			lines, meta := directoryPreview(snapshot, rel, hidden)
			return previewLoadedMsg{target: rel, seq: seq, lines: lines, meta: meta}
		}
	}
	fs, abs := m.fs, snapshot.AbsPath(rel)
	return func() tea.Msg {
		lines, meta, err := filePreviewFn(fs, abs)
		return previewLoadedMsg{target: rel, seq: seq, lines: lines, meta: meta, err: err}
	}
}

func (m *Model) activePreview() *previewData {
	if m.mode != ModeBrowse {
		return nil
	}
	return m.preview
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok || m.preview == nil {
		return nil
	}
	data := m.preview
	if data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	data.meta = update.meta
	data.scrollOffset = 0
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
	} else {
		data.err = ""
		data.lines = update.lines
	}
	return nil
}

func directoryPreview(src browse.Source, rel string, showHidden bool) ([]string, string) {
	entries := browse.List(src, rel, showHidden)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		te, ok := e.TreeEntry()
		if !ok {
			continue
		}
		size := ""
		if !te.IsDir {
			size = humanize.Bytes(uint64(te.Size))
		}
		rows = append(rows, []string{browse.RowLabel(e), size})
	}
	meta := humanize.Comma(int64(len(rows))) + " entries"
	if len(rows) == 1 {
		meta = "1 entry"
	}
	if len(rows) == 0 {
		return []string{"(empty directory)"}, meta
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}), meta
}

// loadFilePreview reads the head of a file. Binary content is reported
// rather than shown.
func loadFilePreview(fs afero.Fs, abs string) ([]string, string, error) {
	if fs == nil {
		return nil, "", errors.New("no filesystem")
	}
	info, err := fs.Stat(abs)
	if err != nil {
		return nil, "", err
	}
	meta := fmt.Sprintf("%s  modified %s", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	f, err := fs.Open(abs)
	if err != nil {
		return nil, meta, err
	}
	defer f.Close()

	buf := make([]byte, previewReadLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, meta, err
	}
	data := buf[:n]
	if bytes.IndexByte(data, 0) >= 0 {
		return []string{"(binary file)"}, meta, nil
	}
	if len(data) == 0 {
		return []string{"(empty file)"}, meta, nil
	}
	return previewLines(string(data)), meta, nil
}

func previewLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	raw := strings.Split(text, "\n")
	if len(raw) > previewMaxLines {
		raw = raw[:previewMaxLines]
	}
	tab := strings.Repeat(" ", previewTabWidth)
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = strings.ReplaceAll(line, "\t", tab)
		lines[i] = ansi.Strip(strings.ToValidUTF8(line, "?"))
	}
	return lines
}
