package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/tmux"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

const testRoot = "/proj"

var testFiles = map[string]string{
	"README.md":         "hello\nworld\n",
	"main.go":           "package main\n\nfunc main() {}\n",
	".env":              "TOKEN=x\n",
	"bin.dat":           "\x00\x01\x02",
	"cmd/app/main.go":   "package main\n",
	"docs/guide.md":     "# Guide\n",
	"docs/reference.md": "# Reference\n",
}

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range testFiles {
		if err := afero.WriteFile(fs, testRoot+"/"+name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func scanTestTree(t *testing.T, fs afero.Fs) *tree.Tree {
	t.Helper()
	snapshot, err := tree.Scan(context.Background(), fs, testRoot, tree.ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return snapshot
}

func newBrowseHarness(t *testing.T, mutate func(*Options)) *Harness {
	t.Helper()
	fs := newTestFs(t)
	opts := Options{
		Mode:       ModeBrowse,
		Fs:         fs,
		Tree:       scanTestTree(t, fs),
		Editor:     "vi",
		SocketPath: "/tmp/tmux.sock",
		Width:      120,
		Height:     20,
	}
	if mutate != nil {
		mutate(&opts)
	}
	h := NewHarness(NewModel(opts))
	h.processCmd(tea.Batch(h.Model().takePending()...))
	return h
}

func newPathHarness(t *testing.T, mutate func(*Options)) *Harness {
	t.Helper()
	fs := newTestFs(t)
	opts := Options{
		Mode:       ModePath,
		Fs:         fs,
		Tree:       scanTestTree(t, fs),
		PathStyle:  pathparse.Posix,
		Editor:     "vi",
		SocketPath: "/tmp/tmux.sock",
		Width:      80,
		Height:     20,
	}
	if mutate != nil {
		mutate(&opts)
	}
	h := NewHarness(NewModel(opts))
	h.processCmd(h.Model().requestCompletion())
	return h
}

func typeText(h *Harness, text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressKey(h *Harness, k tea.KeyType) {
	h.Send(tea.KeyMsg{Type: k})
}

type openCall struct {
	dir   string
	path  string
	place tmux.Placement
}

func stubOpenFile(t *testing.T, err error) *[]openCall {
	t.Helper()
	calls := &[]openCall{}
	prev := openFileFn
	openFileFn = func(socket, editor, dir, path string, place tmux.Placement) error {
		*calls = append(*calls, openCall{dir: dir, path: path, place: place})
		return err
	}
	t.Cleanup(func() { openFileFn = prev })
	return calls
}

func rowLabels(m *Model) []string {
	var labels []string
	for _, e := range m.session.Filtered() {
		labels = append(labels, browse.RowLabel(e))
	}
	return labels
}

func TestNewModelListsRootDirectoriesFirst(t *testing.T) {
	h := newBrowseHarness(t, nil)
	got := strings.Join(rowLabels(h.Model()), ",")
	if !strings.HasPrefix(got, "cmd/,docs/,") {
		t.Fatalf("expected directories first, got %s", got)
	}
	if strings.Contains(got, ".env") {
		t.Fatalf("hidden file listed by default: %s", got)
	}
	if h.Model().Mode() != ModeBrowse {
		t.Fatalf("unexpected mode %v", h.Model().Mode())
	}
}

func TestNewModelRevealsStartFile(t *testing.T) {
	h := newBrowseHarness(t, func(o *Options) {
		o.StartDir = "docs"
		o.Reveal = "reference.md"
	})
	m := h.Model()
	if m.session.CurrentPath() != "docs" {
		t.Fatalf("expected docs, got %q", m.session.CurrentPath())
	}
	e, ok := m.session.SelectedEntry()
	if !ok || e.DisplayName() != "reference.md" {
		t.Fatalf("expected reference.md selected, got %+v", e)
	}
	if m.preview == nil || m.preview.target != "docs/reference.md" {
		t.Fatalf("expected preview for the revealed file, got %+v", m.preview)
	}
}

func TestNewModelWithoutTree(t *testing.T) {
	m := NewModel(Options{Mode: ModeBrowse})
	if len(m.session.Filtered()) != 0 {
		t.Fatalf("expected empty listing")
	}
	if view := m.View(); !strings.Contains(view, "(empty directory)") {
		t.Fatalf("expected empty state in view, got %q", view)
	}
}

func TestModeString(t *testing.T) {
	if ModeBrowse.String() != "browse" || ModePath.String() != "path" {
		t.Fatalf("unexpected mode names")
	}
}
