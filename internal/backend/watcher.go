package backend

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTree Kind = iota
)

const (
	DefaultDebounce     = 200 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

// Event conveys an updated snapshot or an error from a rescan.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Scanner rebuilds the tree snapshot.
type Scanner func(ctx context.Context) (*tree.Tree, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long filesystem events must stay quiet before a
// rescan.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounceDelay = d }
}

// WithPollInterval sets the rescan interval used in polling mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll skips fsnotify and always polls.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// WithLogger sets the logger for watch failures.
func WithLogger(log logr.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// Watcher rescans the tree when its directories change and publishes the new
// snapshot. It uses fsnotify when available and falls back to polling.
type Watcher struct {
	root          string
	scan          Scanner
	debounceDelay time.Duration
	pollInterval  time.Duration
	forcePoll     bool
	log           logr.Logger

	ctx    context.Context
	cancel context.CancelFunc

	fsw       *fsnotify.Watcher
	watched   map[string]struct{}
	debouncer *debouncer
	rescan    chan struct{}
	last      uint64

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching the directories of initial. Snapshots that
// differ from the previous one are published on Events.
func NewWatcher(initial *tree.Tree, scan Scanner, opts ...Option) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:          initial.Root(),
		scan:          scan,
		debounceDelay: DefaultDebounce,
		pollInterval:  DefaultPollInterval,
		ctx:           ctx,
		cancel:        cancel,
		watched:       make(map[string]struct{}),
		rescan:        make(chan struct{}, 1),
		last:          fingerprint(initial),
		events:        make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = newDebouncer(w.debounceDelay)

	if !w.forcePoll {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			w.log.Error(err, "fsnotify unavailable, polling instead", "root", w.root)
		} else {
			w.fsw = fsw
			if err := w.syncWatches(initial); err != nil {
				w.log.Error(err, "unable to watch root, polling instead", "root", w.root)
				_ = fsw.Close()
				w.fsw = nil
			}
		}
	}

	w.wg.Add(1)
	if w.fsw != nil {
		go w.watchFsnotify()
	} else {
		go w.watchPolling()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	return w.fsw == nil
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
	w.debouncer.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watchFsnotify() {
	defer w.wg.Done()
	defer w.fsw.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.debouncer.trigger(w.requestRescan)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "watch error", "root", w.root)
			if !w.emit(Event{Kind: KindTree, Err: err}) {
				return
			}
		case <-w.rescan:
			if !w.rescanAndEmit() {
				return
			}
		}
	}
}

func (w *Watcher) watchPolling() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !w.rescanAndEmit() {
				return
			}
		}
	}
}

func (w *Watcher) requestRescan() {
	select {
	case w.rescan <- struct{}{}:
	default:
	}
}

// rescanAndEmit reports false once the watcher has been stopped.
func (w *Watcher) rescanAndEmit() bool {
	t, err := w.scan(w.ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}
		return w.emit(Event{Kind: KindTree, Err: err})
	}
	if w.fsw != nil {
		if err := w.syncWatches(t); err != nil {
			w.log.V(1).Info("watch sync incomplete", "error", err.Error())
		}
	}
	fp := fingerprint(t)
	if fp == w.last {
		return true
	}
	w.last = fp
	return w.emit(Event{Kind: KindTree, Data: t})
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

// syncWatches adds a watch for every directory in t and drops watches for
// directories that disappeared. Only a failure on the root is returned.
func (w *Watcher) syncWatches(t *tree.Tree) error {
	want := make(map[string]struct{})
	var rootErr error
	for _, dir := range t.Dirs() {
		abs := t.AbsPath(dir)
		want[abs] = struct{}{}
		if _, ok := w.watched[abs]; ok {
			continue
		}
		if err := w.fsw.Add(abs); err != nil {
			if dir == "" {
				rootErr = err
			}
			w.log.V(1).Info("unable to watch directory", "dir", abs, "error", err.Error())
			delete(want, abs)
			continue
		}
		w.watched[abs] = struct{}{}
	}
	for abs := range w.watched {
		if _, ok := want[abs]; !ok {
			_ = w.fsw.Remove(abs)
			delete(w.watched, abs)
		}
	}
	return rootErr
}

// fingerprint hashes the listing so unchanged rescans can be skipped.
func fingerprint(t *tree.Tree) uint64 {
	h := fnv.New64a()
	for _, dir := range t.Dirs() {
		for _, e := range t.ChildEntries(dir) {
			h.Write([]byte(e.Path))
			h.Write([]byte{0})
			h.Write([]byte(strconv.FormatBool(e.IsDir)))
			h.Write([]byte(strconv.FormatInt(e.Size, 10)))
			h.Write([]byte(strconv.FormatInt(e.ModTime.UnixNano(), 10)))
		}
	}
	return h.Sum64()
}
