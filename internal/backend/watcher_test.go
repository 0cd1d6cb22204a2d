package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

func osScanner(root string) Scanner {
	fs := afero.NewOsFs()
	return func(ctx context.Context) (*tree.Tree, error) {
		return tree.Scan(ctx, fs, root, tree.ScanOptions{})
	}
}

func initialTree(t *testing.T, root string) *tree.Tree {
	t.Helper()
	tr, err := osScanner(root)(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return tr
}

func waitForTree(t *testing.T, w *Watcher, want string) *tree.Tree {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events closed before %q appeared", want)
			}
			if evt.Err != nil {
				continue
			}
			tr, ok := evt.Data.(*tree.Tree)
			if !ok {
				t.Fatalf("unexpected payload %T", evt.Data)
			}
			if _, found := tr.Lookup(want); found {
				return tr
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestWatcherPollingPicksUpNewFiles(t *testing.T) {
	root := t.TempDir()
	w := NewWatcher(initialTree(t, root), osScanner(root), WithForcePoll(true), WithPollInterval(20*time.Millisecond))
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if !w.IsPolling() {
		t.Fatalf("expected polling mode")
	}

	if err := os.WriteFile(filepath.Join(root, "new.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tr := waitForTree(t, w, "new.txt")
	if tr.Root() != root {
		t.Fatalf("unexpected root %q", tr.Root())
	}
}

func TestWatcherFsnotifyFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w := NewWatcher(initialTree(t, root), osScanner(root), WithDebounce(10*time.Millisecond))
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if w.IsPolling() {
		t.Skip("fsnotify unavailable on this platform")
	}

	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitForTree(t, w, "sub")

	if err := os.WriteFile(filepath.Join(root, "sub", "inner.go"), []byte("package x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForTree(t, w, "sub/inner.go")
}

func TestWatcherSkipsUnchangedSnapshots(t *testing.T) {
	root := t.TempDir()
	var scans atomic.Int32
	base := osScanner(root)
	scan := func(ctx context.Context) (*tree.Tree, error) {
		scans.Add(1)
		return base(ctx)
	}
	w := NewWatcher(initialTree(t, root), scan, WithForcePoll(true), WithPollInterval(10*time.Millisecond))

	deadline := time.Now().Add(2 * time.Second)
	for scans.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed channel after Wait")
	}
}

func TestWatcherReportsScanErrors(t *testing.T) {
	root := t.TempDir()
	boom := errors.New("scan failed")
	scan := func(context.Context) (*tree.Tree, error) { return nil, boom }
	w := NewWatcher(initialTree(t, root), scan, WithForcePoll(true), WithPollInterval(10*time.Millisecond))
	defer func() {
		w.Stop()
		w.Wait()
	}()

	select {
	case evt := <-w.Events():
		if !errors.Is(evt.Err, boom) || evt.Kind != KindTree {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for error event")
	}
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.trigger(func() { calls.Add(1) })
	}
	time.Sleep(120 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call, got %d", got)
	}

	d.trigger(func() { calls.Add(1) })
	d.cancel()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("cancelled trigger fired, got %d calls", got)
	}

	var immediate *debouncer
	immediate.trigger(func() { calls.Add(1) })
	if got := calls.Load(); got != 2 {
		t.Fatalf("nil debouncer should run inline, got %d", got)
	}
}
