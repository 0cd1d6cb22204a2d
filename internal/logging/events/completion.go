package events

import "github.com/atomicstack/tmux-popup-files/internal/logging"

type CompletionTracer struct{}

var Completion = CompletionTracer{}

func (CompletionTracer) Request(generation uint64, query, dir string) {
	logging.Trace("completion.request", map[string]interface{}{
		"generation": generation,
		"query":      query,
		"dir":        dir,
	})
}

func (CompletionTracer) Applied(generation uint64, candidates int) {
	logging.Trace("completion.applied", map[string]interface{}{"generation": generation, "candidates": candidates})
}

func (CompletionTracer) Stale(generation, current uint64) {
	logging.Trace("completion.stale", map[string]interface{}{"generation": generation, "current": current})
}

func (CompletionTracer) Confirm(query, result string) {
	logging.Trace("completion.confirm", map[string]interface{}{"query": query, "result": result})
}
