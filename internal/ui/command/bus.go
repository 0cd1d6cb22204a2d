package command

import (
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Exit tells the UI what to do once an action has finished.
type Exit int

const (
	// Stay keeps the program running.
	Stay Exit = iota
	// ExitOnSuccess quits unless the action failed.
	ExitOnSuccess
	// ExitAlways quits whatever the outcome.
	ExitAlways
)

// Request encapsulates an action invocation.
type Request struct {
	ID    string
	Label string
	Run   func() error
	Info  string
	Exit  Exit
}

// Result is delivered to the model when an action completes.
type Result struct {
	ID    string
	Label string
	Info  string
	Err   error
	Exit  Exit
}

// Quit reports whether the program should exit after this result.
func (r Result) Quit() bool {
	switch r.Exit {
	case ExitAlways:
		return true
	case ExitOnSuccess:
		return r.Err == nil
	default:
		return false
	}
}

// Bus coordinates the execution of side-effecting actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		err := req.Run()
		res := Result{ID: req.ID, Label: req.Label, Info: req.Info, Err: err, Exit: req.Exit}
		if err != nil {
			events.Command.Result(req.ID, req.Label, err.Error())
		} else {
			events.Command.Result(req.ID, req.Label, "ok")
		}
		return res
	}
}
