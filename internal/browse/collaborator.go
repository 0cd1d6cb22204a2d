package browse

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-files/internal/logging"
)

// OpenTarget says where a confirmed file should be opened.
type OpenTarget int

const (
	OpenInPlace OpenTarget = iota
	OpenSplit
	OpenSplitLeft
	OpenSplitRight
	OpenSplitUp
	OpenSplitDown
)

func (t OpenTarget) String() string {
	switch t {
	case OpenInPlace:
		return "in-place"
	case OpenSplit:
		return "split"
	case OpenSplitLeft:
		return "split-left"
	case OpenSplitRight:
		return "split-right"
	case OpenSplitUp:
		return "split-up"
	case OpenSplitDown:
		return "split-down"
	default:
		return fmt.Sprintf("OpenTarget(%d)", int(t))
	}
}

// SplitDirection selects one of the directional split targets.
type SplitDirection int

const (
	SplitLeft SplitDirection = iota
	SplitRight
	SplitUp
	SplitDown
)

func (d SplitDirection) target() OpenTarget {
	switch d {
	case SplitLeft:
		return OpenSplitLeft
	case SplitRight:
		return OpenSplitRight
	case SplitUp:
		return OpenSplitUp
	default:
		return OpenSplitDown
	}
}

// DismissContext is handed to the collaborator when the session ends.
type DismissContext struct {
	Confirmed    bool
	OriginalItem string
}

// Collaborator receives the side effects of session transitions. Calls are
// fire-and-forget: return values are never inspected and panics are
// recovered.
type Collaborator interface {
	SelectionChanged(path string, isDir bool)
	Open(path string, target OpenTarget)
	Refresh()
	Dismissed(ctx DismissContext)
}

// Nop ignores every notification.
type Nop struct{}

func (Nop) SelectionChanged(string, bool) {}
func (Nop) Open(string, OpenTarget)       {}
func (Nop) Refresh()                      {}
func (Nop) Dismissed(DismissContext)      {}

func notify(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("browse collaborator %s panicked: %v", name, r))
		}
	}()
	fn()
}
