package events

import "github.com/atomicstack/tmux-popup-files/internal/logging"

type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Scanned(root string, entries int) {
	logging.Trace("tree.scan", map[string]interface{}{"root": root, "entries": entries})
}

func (TreeTracer) Updated(root string, entries int) {
	logging.Trace("tree.update", map[string]interface{}{"root": root, "entries": entries})
}
