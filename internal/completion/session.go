package completion

import (
	"context"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
)

// Option configures a Session.
type Option func(*Session)

// WithListingRoot is read when the typed path has no directory part.
func WithListingRoot(dir string) Option {
	return func(s *Session) { s.listingRoot = dir }
}

// WithCreatingPath offers the typed name as a candidate when nothing with
// that exact name exists.
func WithCreatingPath(enabled bool) Option {
	return func(s *Session) { s.creating = enabled }
}

// WithPreselect selects the named candidate the first time it shows up.
func WithPreselect(name string) Option {
	return func(s *Session) { s.preselect = name }
}

// WithLogger sets the logger used for read failures and stale results.
func WithLogger(log logr.Logger) Option {
	return func(s *Session) { s.log = log }
}

// Request describes one directory read.
type Request struct {
	Generation uint64
	Query      string
	Parsed     pathparse.Query
	Dir        string
}

// Result carries the candidates computed for a Request.
type Result struct {
	Generation uint64
	Query      string
	Candidates []Candidate
	Err        error
}

// Session tracks the newest completion query and its candidates.
type Session struct {
	reader      DirectoryReader
	style       pathparse.Style
	listingRoot string
	creating    bool
	log         logr.Logger

	mu         sync.Mutex
	preselect  string
	generation uint64
	query      string
	candidates []Candidate
	selected   int
}

// NewSession builds a completion session over reader.
func NewSession(reader DirectoryReader, style pathparse.Style, opts ...Option) *Session {
	s := &Session{reader: reader, style: style}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Style returns the path convention used for parsing and completion.
func (s *Session) Style() pathparse.Style { return s.style }

// Begin starts a new generation for query. Results of earlier generations
// are dropped by Apply.
func (s *Session) Begin(query string) Request {
	parsed := pathparse.Parse(query, s.style)
	dir := parsed.DirectoryPrefix
	if dir == "" {
		dir = s.listingRoot
	}
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()
	events.Completion.Request(gen, query, dir)
	return Request{Generation: gen, Query: query, Parsed: parsed, Dir: dir}
}

// Fetch reads the request's directory and builds its candidates. It is safe
// to call from any goroutine.
func (s *Session) Fetch(ctx context.Context, req Request) Result {
	res := Result{Generation: req.Generation, Query: req.Query}
	if s.reader == nil {
		return res
	}
	entries, err := s.reader.ReadDirectory(ctx, req.Dir)
	if err != nil {
		res.Err = err
		return res
	}
	res.Candidates = s.buildCandidates(req.Parsed, entries)
	return res
}

func (s *Session) buildCandidates(q pathparse.Query, entries []DirEntry) []Candidate {
	var out []Candidate
	if q.DirectoryPrefix != "" && q.PartialName == "" {
		out = append(out, Candidate{Name: s.style.CurrentDirMarker(), IsDir: true, Kind: KindCurrentDir})
	}
	if s.creating && q.PartialName != "" && !containsName(entries, q.PartialName) {
		out = append(out, Candidate{Name: q.PartialName, Kind: KindNewPath})
	}
	partial := strings.ToLower(q.PartialName)
	for _, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Name), partial) {
			out = append(out, Candidate{Name: e.Name, IsDir: e.IsDir, Kind: KindEntry})
		}
	}
	return out
}

func containsName(entries []DirEntry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Apply installs res if it belongs to the newest generation.
func (s *Session) Apply(res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Generation != s.generation {
		events.Completion.Stale(res.Generation, s.generation)
		s.log.V(1).Info("dropping stale completion", "generation", res.Generation, "current", s.generation)
		return false
	}
	s.query = res.Query
	s.candidates = res.Candidates
	s.selected = 0
	if s.preselect != "" {
		for i, c := range s.candidates {
			if c.Kind == KindEntry && c.Name == s.preselect {
				s.selected = i
				s.preselect = ""
				break
			}
		}
	}
	events.Completion.Applied(res.Generation, len(s.candidates))
	return true
}

// Update runs a full read synchronously and returns the new candidates.
func (s *Session) Update(ctx context.Context, query string) []Candidate {
	s.Apply(s.Fetch(ctx, s.Begin(query)))
	return s.Candidates()
}

// Confirm returns the completed path for the candidate at index. The typed
// directory prefix is kept verbatim and directories gain a trailing
// separator. The current-directory row has no completion.
func (s *Session) Confirm(query string, index int) (string, bool) {
	s.mu.Lock()
	if index < 0 || index >= len(s.candidates) {
		s.mu.Unlock()
		return "", false
	}
	c := s.candidates[index]
	s.mu.Unlock()
	if c.Kind == KindCurrentDir {
		return "", false
	}
	q := pathparse.Parse(query, s.style)
	out := q.DirectoryPrefix + c.Name
	if c.IsDir {
		out += s.style.Separator()
	}
	events.Completion.Confirm(query, out)
	return out, true
}

// SetSelectedIndex moves the cursor, clamped to the candidate list.
func (s *Session) SetSelectedIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case len(s.candidates) == 0, i < 0:
		s.selected = 0
	case i >= len(s.candidates):
		s.selected = len(s.candidates) - 1
	default:
		s.selected = i
	}
}

func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedCandidate returns the candidate under the cursor.
func (s *Session) SelectedCandidate() (Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected >= len(s.candidates) {
		return Candidate{}, false
	}
	return s.candidates[s.selected], true
}

func (s *Session) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Candidate(nil), s.candidates...)
}

// Query is the text the installed candidates were computed for.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
