package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-files/internal/completion"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
	"github.com/atomicstack/tmux-popup-files/internal/ui/command"
)

var clipboardWriteFn = clipboard.WriteAll

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.busy = false
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
	} else {
		m.errMsg = ""
		if result.Info != "" && (m.verbose || !result.Quit()) {
			m.setInfo(result.Info)
		} else {
			m.forceClearInfo()
		}
		events.Action.Success(result.Info)
	}
	if result.Quit() {
		return m.quit()
	}
	return nil
}

// copySelection puts the absolute path of the selected row on the system
// clipboard.
func (m *Model) copySelection() tea.Cmd {
	abs, ok := m.selectedAbsPath()
	if !ok {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    "copy",
		Label: abs,
		Info:  fmt.Sprintf("Copied %s", abs),
		Exit:  command.Stay,
		Run:   func() error { return clipboardWriteFn(abs) },
	})
}

// selectedAbsPath resolves the row under the cursor to a filesystem path.
// The parent marker stands for the parent directory.
func (m *Model) selectedAbsPath() (string, bool) {
	if m.mode == ModePath {
		c, ok := m.completion.SelectedCandidate()
		if !ok {
			return "", false
		}
		query := m.completion.Query()
		if c.Kind == completion.KindCurrentDir {
			return m.reader.Resolve(pathparse.Parse(query, m.completion.Style()).DirectoryPrefix), true
		}
		text, ok := m.completion.Confirm(query, m.completion.Selected())
		if !ok {
			return "", false
		}
		return m.reader.Resolve(text), true
	}
	e, ok := m.session.SelectedEntry()
	if !ok {
		return "", false
	}
	rel, ok := e.Path()
	if !ok {
		rel, _ = tree.Parent(m.session.CurrentPath())
	}
	return m.trees.Tree().AbsPath(rel), true
}
