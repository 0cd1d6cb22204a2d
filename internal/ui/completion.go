package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-files/internal/completion"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/tmux"
)

type completionLoadedMsg struct {
	result completion.Result
}

// requestCompletion starts a read for the current prompt. Only the newest
// request is installed when several are in flight.
func (m *Model) requestCompletion() tea.Cmd {
	if m.completion == nil {
		return nil
	}
	req := m.completion.Begin(m.prompt.Text)
	ctx, sess := m.ctx, m.completion
	return func() tea.Msg {
		return completionLoadedMsg{result: sess.Fetch(ctx, req)}
	}
}

func (m *Model) handleCompletionLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(completionLoadedMsg)
	if !ok || m.completion == nil {
		return nil
	}
	if !m.completion.Apply(loaded.result) {
		return nil
	}
	m.viewport.Offset = 0
	m.syncViewport()
	return nil
}

// handleTabKey completes the prompt to the selected candidate. On the
// current-directory row it moves on to the next candidate instead.
func (m *Model) handleTabKey() tea.Cmd {
	if m.mode != ModePath {
		return nil
	}
	c, ok := m.completion.SelectedCandidate()
	if !ok {
		return nil
	}
	if c.Kind == completion.KindCurrentDir {
		m.moveCursorWrap(1)
		return nil
	}
	return m.completeTo(m.completion.Selected())
}

func (m *Model) completeTo(index int) tea.Cmd {
	text, ok := m.completion.Confirm(m.completion.Query(), index)
	if !ok {
		return nil
	}
	m.setPromptText(text)
	return m.queryChanged()
}

// confirmPath acts on the selected candidate: directories are completed,
// the current-directory row and files are opened.
func (m *Model) confirmPath(secondary bool) tea.Cmd {
	c, ok := m.completion.SelectedCandidate()
	if !ok {
		m.setInfo("No matches")
		return nil
	}
	query := m.completion.Query()
	events.UI.Confirm(m.mode.String(), candidateLabel(c, m.completion.Style()), query)
	switch {
	case c.Kind == completion.KindCurrentDir:
		dir := pathparse.Parse(query, m.completion.Style()).DirectoryPrefix
		return m.openDirectoryCmd(m.reader.Resolve(dir))
	case c.IsDir && !secondary:
		return m.completeTo(m.completion.Selected())
	case c.IsDir:
		return nil
	}
	text, ok := m.completion.Confirm(query, m.completion.Selected())
	if !ok {
		return nil
	}
	place := tmux.PlaceWindow
	if secondary {
		place = tmux.PlaceSplit
	}
	return m.openCmd(m.reader.Resolve(text), place)
}

// candidateLabel is the row text for c.
func candidateLabel(c completion.Candidate, style pathparse.Style) string {
	switch c.Kind {
	case completion.KindCurrentDir:
		return c.Name + " (this directory)"
	case completion.KindNewPath:
		return c.Name + " (new)"
	}
	if c.IsDir {
		return c.Name + style.Separator()
	}
	return c.Name
}
