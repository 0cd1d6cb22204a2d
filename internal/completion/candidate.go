// Package completion computes path completions for a partially typed path.
// Directory reads happen off the UI goroutine; a generation counter ensures
// only the newest read is installed.
package completion

// CandidateKind distinguishes real directory entries from synthetic rows.
type CandidateKind int

const (
	// KindEntry is a child of the directory being completed.
	KindEntry CandidateKind = iota
	// KindCurrentDir stands for the directory itself ("./").
	KindCurrentDir
	// KindNewPath is the typed name offered verbatim when creating paths.
	KindNewPath
)

// Candidate is one completion row.
type Candidate struct {
	Name  string
	IsDir bool
	Kind  CandidateKind
}
