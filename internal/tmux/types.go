package tmux

import (
	"errors"
	"os/exec"
)

// ErrNoTarget is returned when a command needs a pane or path and none was
// supplied or reported by tmux.
var ErrNoTarget = errors.New("tmux: no target")

// Placement selects where OpenFile starts the editor.
type Placement int

const (
	PlaceWindow Placement = iota
	PlaceSplit
	PlaceSplitLeft
	PlaceSplitRight
	PlaceSplitUp
	PlaceSplitDown
)

func (p Placement) String() string {
	switch p {
	case PlaceWindow:
		return "window"
	case PlaceSplit:
		return "split"
	case PlaceSplitLeft:
		return "split-left"
	case PlaceSplitRight:
		return "split-right"
	case PlaceSplitUp:
		return "split-up"
	case PlaceSplitDown:
		return "split-down"
	default:
		return "unknown"
	}
}

var runExecCommand = func(name string, args ...string) commander {
	return realCommander{cmd: exec.Command(name, args...)}
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}
