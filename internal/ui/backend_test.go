package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/backend"
)

func TestBackendEventRefreshesBrowseListing(t *testing.T) {
	h := newBrowseHarness(t, func(o *Options) { o.StartDir = "docs" })
	m := h.Model()
	m.session.SetSelectedIndex(2)

	fs := newTestFs(t)
	if err := afero.WriteFile(fs, "/proj/docs/faq.md", []byte("q"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTree, Data: scanTestTree(t, fs)}})

	got := strings.Join(rowLabels(m), ",")
	if got != "parent directory,faq.md,guide.md,reference.md" {
		t.Fatalf("unexpected listing after refresh: %s", got)
	}
	if e, _ := m.session.SelectedEntry(); e.DisplayName() != "reference.md" {
		t.Fatalf("selection should follow reference.md, got %s", e.DisplayName())
	}
	if m.trees.Version() != 1 {
		t.Fatalf("expected store version 1, got %d", m.trees.Version())
	}
}

func TestBackendEventClimbsWhenDirectoryVanishes(t *testing.T) {
	h := newBrowseHarness(t, func(o *Options) { o.StartDir = "cmd/app" })
	fs := newTestFs(t)
	if err := fs.RemoveAll("/proj/cmd"); err != nil {
		t.Fatal(err)
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTree, Data: scanTestTree(t, fs)}})
	if cur := h.Model().session.CurrentPath(); cur != "" {
		t.Fatalf("expected to climb to the root, got %q", cur)
	}
}

func TestBackendErrorShowsInStatusLine(t *testing.T) {
	h := newBrowseHarness(t, nil)
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTree, Err: errors.New("scan failed")}})
	if !strings.Contains(h.View(), "Watch: scan failed") {
		t.Fatalf("expected watch error in view:\n%s", h.View())
	}
	if h.Model().trees.LastError() == nil {
		t.Fatalf("expected error recorded in the store")
	}
}

func TestBackendEventRefreshesCompletion(t *testing.T) {
	h := newPathHarness(t, func(o *Options) { o.PathQuery = "docs/" })
	m := h.Model()
	if err := afero.WriteFile(m.fs, "/proj/docs/faq.md", []byte("q"), 0o644); err != nil {
		t.Fatal(err)
	}
	before := m.completion.Generation()
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindTree, Data: scanTestTree(t, m.fs)}})
	if m.completion.Generation() != before+1 {
		t.Fatalf("expected a new completion request")
	}
	if got := strings.Join(candidateNames(m), ","); got != "./,faq.md,guide.md,reference.md" {
		t.Fatalf("unexpected candidates %s", got)
	}
}

func TestBackendDoneStopsWaiting(t *testing.T) {
	h := newBrowseHarness(t, nil)
	h.Send(backendDoneMsg{})
	if h.Model().backend != nil {
		t.Fatalf("expected watcher to be released")
	}
}
