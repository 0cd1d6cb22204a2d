package events

import "github.com/atomicstack/tmux-popup-files/internal/logging"

type BrowseTracer struct{}

var Browse = BrowseTracer{}

func (BrowseTracer) Load(dir string, entries int, showHidden bool) {
	logging.Trace("browse.load", map[string]interface{}{
		"dir":     dir,
		"entries": entries,
		"hidden":  showHidden,
	})
}

func (BrowseTracer) Query(dir, query string, matches int) {
	logging.Trace("browse.query", map[string]interface{}{"dir": dir, "query": query, "matches": matches})
}

func (BrowseTracer) Open(path, target string) {
	logging.Trace("browse.open", map[string]interface{}{"path": path, "target": target})
}

func (BrowseTracer) Dismiss(confirmed bool, original string) {
	logging.Trace("browse.dismiss", map[string]interface{}{"confirmed": confirmed, "original": original})
}
