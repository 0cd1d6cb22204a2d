package browse

import (
	"strings"

	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

// Option configures a Session at construction.
type Option func(*Session)

// WithShowHidden sets the initial hidden-file visibility.
func WithShowHidden(show bool) Option {
	return func(s *Session) { s.showHidden = show }
}

// WithInitialSelection names a file to select on the first Load. The hint is
// consumed by that Load whether or not it matches.
func WithInitialSelection(name string) Option {
	return func(s *Session) {
		s.initialSelection = name
		s.hasInitial = name != ""
	}
}

// WithOriginalItem records the item that was active before the session
// opened so it can be restored on cancel.
func WithOriginalItem(id string) Option {
	return func(s *Session) { s.originalItem = id }
}

type rootNamer interface {
	RootName() string
}

type dirChecker interface {
	HasDir(dir string) bool
}

// Session is the state machine behind the directory browser. It is not safe
// for concurrent use; the UI loop owns it.
type Session struct {
	src    Source
	collab Collaborator

	current    string
	all        []Entry
	filtered   []Entry
	selected   int
	showHidden bool
	query      string

	initialSelection string
	hasInitial       bool
	originalItem     string

	confirmed bool
	dismissed bool
}

// NewSession builds a session over src. Call Load to populate it.
func NewSession(src Source, collab Collaborator, opts ...Option) *Session {
	if collab == nil {
		collab = Nop{}
	}
	s := &Session{src: src, collab: collab}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load lists dir and selects the pending initial hint or the first entry.
func (s *Session) Load(dir string) {
	s.current = tree.Clean(dir)
	s.all = List(s.src, s.current, s.showHidden)
	s.filtered = filterEntries(s.all, s.query)
	s.selected = 0
	if s.hasInitial {
		if idx := indexOfName(s.filtered, s.initialSelection); idx >= 0 {
			s.selected = idx
		}
		s.hasInitial = false
		s.initialSelection = ""
	}
	events.Browse.Load(s.current, len(s.all), s.showHidden)
	s.selectionChanged()
}

// SetQuery replaces the filter text and clamps the selection.
func (s *Session) SetQuery(q string) {
	s.query = strings.ToLower(q)
	s.filtered = filterEntries(s.all, s.query)
	s.clamp()
	events.Browse.Query(s.current, s.query, len(s.filtered))
	s.selectionChanged()
}

// NavigateToParent moves up one level. It does nothing at the root.
func (s *Session) NavigateToParent() {
	parent, ok := tree.Parent(s.current)
	if !ok {
		return
	}
	s.query = ""
	s.Load(parent)
	notify("refresh", s.collab.Refresh)
}

// NavigateInto enters a directory entry. Files and the parent marker are
// ignored.
func (s *Session) NavigateInto(e Entry) {
	if e.IsParent() || !e.IsDir() {
		return
	}
	path, _ := e.Path()
	s.query = ""
	s.Load(path)
	notify("refresh", s.collab.Refresh)
}

// ToggleHidden flips hidden-file visibility and re-lists the current
// directory.
func (s *Session) ToggleHidden() {
	s.showHidden = !s.showHidden
	s.Load(s.current)
}

// Confirm acts on the filtered entry at index: the parent marker goes up, a
// directory is entered, a file is opened and the session dismissed.
func (s *Session) Confirm(index int, secondary bool) {
	e, ok := s.entryAt(index)
	if !ok {
		return
	}
	switch {
	case e.IsParent():
		s.NavigateToParent()
	case e.IsDir():
		s.NavigateInto(e)
	default:
		target := OpenInPlace
		if secondary {
			target = OpenSplit
		}
		s.open(e, target)
	}
}

// ConfirmSplit opens the file at index in a directional split. Directories
// and the parent marker are ignored.
func (s *Session) ConfirmSplit(index int, dir SplitDirection) {
	e, ok := s.entryAt(index)
	if !ok || e.IsParent() || e.IsDir() {
		return
	}
	s.open(e, dir.target())
}

func (s *Session) open(e Entry, target OpenTarget) {
	path, _ := e.Path()
	s.confirmed = true
	events.Browse.Open(path, target.String())
	notify("open", func() { s.collab.Open(path, target) })
	s.Dismiss()
}

// SetSelectedIndex moves the cursor.
func (s *Session) SetSelectedIndex(i int) {
	s.selected = i
	s.clamp()
	s.selectionChanged()
}

// Dismiss ends the session. Only the first call reaches the collaborator.
func (s *Session) Dismiss() {
	if s.dismissed {
		return
	}
	s.dismissed = true
	ctx := DismissContext{Confirmed: s.confirmed, OriginalItem: s.originalItem}
	events.Browse.Dismiss(ctx.Confirmed, ctx.OriginalItem)
	notify("dismissed", func() { s.collab.Dismissed(ctx) })
}

// Refresh swaps in a new snapshot and re-lists the current directory. The
// query is kept and the selected entry survives when it still exists. When
// the current directory disappeared the session climbs to the nearest
// surviving ancestor.
func (s *Session) Refresh(src Source) {
	var keep string
	if e, ok := s.SelectedEntry(); ok {
		keep, _ = e.Path()
	}
	s.src = src
	if dc, ok := src.(dirChecker); ok {
		for !dc.HasDir(s.current) {
			parent, ok := tree.Parent(s.current)
			if !ok {
				break
			}
			s.current = parent
			s.query = ""
		}
	}
	s.all = List(s.src, s.current, s.showHidden)
	s.filtered = filterEntries(s.all, s.query)
	if idx := indexOfPath(s.filtered, keep); idx >= 0 {
		s.selected = idx
	}
	s.clamp()
	s.selectionChanged()
}

// Placeholder is the prompt hint for the current directory.
func (s *Session) Placeholder() string {
	return "Search in " + s.DisplayPath() + "/"
}

// DisplayPath names the current directory, or the root when at the top.
func (s *Session) DisplayPath() string {
	if s.current != "" {
		return tree.Base(s.current)
	}
	if rn, ok := s.src.(rootNamer); ok {
		return rn.RootName()
	}
	return ""
}

// SeparatorsAfter lists filtered indexes that should be followed by a
// divider row.
func (s *Session) SeparatorsAfter() []int {
	if len(s.filtered) > 0 && s.filtered[0].IsParent() {
		return []int{0}
	}
	return nil
}

func (s *Session) Entries() []Entry {
	return append([]Entry(nil), s.all...)
}

func (s *Session) Filtered() []Entry {
	return append([]Entry(nil), s.filtered...)
}

func (s *Session) Selected() int        { return s.selected }
func (s *Session) CurrentPath() string  { return s.current }
func (s *Session) Query() string        { return s.query }
func (s *Session) ShowHidden() bool     { return s.showHidden }
func (s *Session) Confirmed() bool      { return s.confirmed }
func (s *Session) Dismissed() bool      { return s.dismissed }
func (s *Session) OriginalItem() string { return s.originalItem }

// SelectedEntry returns the filtered entry under the cursor.
func (s *Session) SelectedEntry() (Entry, bool) {
	return s.entryAt(s.selected)
}

func (s *Session) entryAt(i int) (Entry, bool) {
	if i < 0 || i >= len(s.filtered) {
		return Entry{}, false
	}
	return s.filtered[i], true
}

func (s *Session) clamp() {
	switch {
	case len(s.filtered) == 0, s.selected < 0:
		s.selected = 0
	case s.selected >= len(s.filtered):
		s.selected = len(s.filtered) - 1
	}
}

func (s *Session) selectionChanged() {
	e, ok := s.SelectedEntry()
	if !ok || e.IsParent() {
		return
	}
	path, _ := e.Path()
	isDir := e.IsDir()
	notify("selection", func() { s.collab.SelectionChanged(path, isDir) })
}

func filterEntries(all []Entry, query string) []Entry {
	if query == "" {
		return append([]Entry(nil), all...)
	}
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.DisplayName()), query) {
			out = append(out, e)
		}
	}
	return out
}

func indexOfName(entries []Entry, name string) int {
	for i, e := range entries {
		if !e.IsParent() && e.DisplayName() == name {
			return i
		}
	}
	return -1
}

func indexOfPath(entries []Entry, path string) int {
	if path == "" {
		return -1
	}
	for i, e := range entries {
		if p, ok := e.Path(); ok && p == path {
			return i
		}
	}
	return -1
}
