package dispatcher

import (
	"github.com/atomicstack/tmux-popup-files/internal/backend"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/state"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

type Result struct {
	TreeUpdated bool
	Err         error
}

type Dispatcher struct {
	trees state.TreeStore
}

func New(trees state.TreeStore) *Dispatcher {
	return &Dispatcher{trees: trees}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		d.trees.SetLastError(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindTree:
		if snapshot, ok := evt.Data.(*tree.Tree); ok && snapshot != nil {
			d.trees.SetTree(snapshot)
			events.Tree.Updated(snapshot.Root(), snapshot.Len())
			res.TreeUpdated = true
		}
	}
	return res
}
