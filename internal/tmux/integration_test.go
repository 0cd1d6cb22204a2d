package tmux_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-popup-files/internal/testutil"
	"github.com/atomicstack/tmux-popup-files/internal/tmux"
)

func TestOpenFileAgainstRealServer(t *testing.T) {
	socket := testutil.StartTmuxServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes file.txt")
	if err := os.WriteFile(path, []byte("hello from the popup\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	origin, err := tmux.CurrentPane(socket)
	if err != nil {
		t.Fatalf("current pane: %v", err)
	}
	if !strings.HasPrefix(origin, "%") {
		t.Fatalf("unexpected pane id %q", origin)
	}

	if err := tmux.OpenFile(socket, "tail -n +1 -f", dir, path, tmux.PlaceWindow); err != nil {
		t.Fatalf("open: %v", err)
	}
	windows := testutil.Tmux(t, socket, "list-windows", "-t", testutil.SessionName, "-F", "#{window_index}")
	if n := len(strings.Fields(windows)); n != 2 {
		t.Fatalf("expected 2 windows, got %d (%q)", n, windows)
	}
	target := testutil.SessionName + ":1"
	testutil.WaitForPane(t, socket, target, "hello from the popup", 3*time.Second)
	if cwd := testutil.Tmux(t, socket, "display-message", "-p", "-t", target, "#{pane_current_path}"); filepath.Base(cwd) != filepath.Base(dir) {
		t.Fatalf("expected pane to start in %s, got %s", dir, cwd)
	}

	if err := tmux.OpenFile(socket, "tail -n +1 -f", dir, path, tmux.PlaceSplitRight); err != nil {
		t.Fatalf("split: %v", err)
	}
	panes := testutil.Tmux(t, socket, "list-panes", "-t", target, "-F", "#{pane_id}")
	if n := len(strings.Fields(panes)); n != 2 {
		t.Fatalf("expected 2 panes after split, got %d", n)
	}

	if err := tmux.SelectPane(socket, origin); err != nil {
		t.Fatalf("select pane: %v", err)
	}
}

func TestOpenDirectoryAgainstRealServer(t *testing.T) {
	socket := testutil.StartTmuxServer(t)
	dir := t.TempDir()
	if err := tmux.OpenDirectory(socket, dir); err != nil {
		t.Fatalf("open directory: %v", err)
	}
	windows := testutil.Tmux(t, socket, "list-windows", "-t", testutil.SessionName, "-F", "#{window_index}")
	if n := len(strings.Fields(windows)); n != 2 {
		t.Fatalf("expected 2 windows, got %d", n)
	}
}

func TestSelectPaneReportsUnknownPane(t *testing.T) {
	socket := testutil.StartTmuxServer(t)
	if err := tmux.SelectPane(socket, "%999"); err == nil {
		t.Fatalf("expected error for unknown pane")
	}
}
