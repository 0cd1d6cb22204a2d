package events

import "github.com/atomicstack/tmux-popup-files/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Confirm(mode, label, query string) {
	logging.Trace("ui.confirm", map[string]interface{}{
		"mode":  mode,
		"label": label,
		"query": query,
	})
}

func (UITracer) Cursor(mode string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"mode": mode, "cursor": cursor})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(mode string) {
	logging.Trace("filter.clear", map[string]interface{}{"mode": mode})
}

func (FilterTracer) WordBackspace(mode, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"mode": mode, "filter": filter})
}

func (FilterTracer) Cursor(mode string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"mode": mode, "cursor": pos})
}

func (FilterTracer) CursorWord(mode string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"mode": mode, "cursor": pos})
}

func (FilterTracer) Append(mode, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"mode": mode, "filter": filter})
}

func (FilterTracer) Backspace(mode, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"mode": mode, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
