package events

import "github.com/atomicstack/tmux-popup-files/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(mode, output string) {
	logging.Trace("app.exit", map[string]interface{}{"mode": mode, "output": output})
}
