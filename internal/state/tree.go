package state

import "github.com/atomicstack/tmux-popup-files/internal/tree"

// TreeStore holds the newest tree snapshot.
type TreeStore interface {
	Tree() *tree.Tree
	SetTree(*tree.Tree)
	Version() int
	LastError() error
	SetLastError(error)
}

type treeStore struct {
	current *tree.Tree
	version int
	lastErr error
}

func NewTreeStore(initial *tree.Tree) TreeStore {
	return &treeStore{current: initial}
}

func (s *treeStore) Tree() *tree.Tree {
	return s.current
}

// SetTree replaces the snapshot and clears any recorded error.
func (s *treeStore) SetTree(t *tree.Tree) {
	s.current = t
	s.version++
	s.lastErr = nil
}

func (s *treeStore) Version() int {
	return s.version
}

func (s *treeStore) LastError() error {
	return s.lastErr
}

func (s *treeStore) SetLastError(err error) {
	s.lastErr = err
}
