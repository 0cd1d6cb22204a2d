package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	uistate "github.com/atomicstack/tmux-popup-files/internal/ui/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.finished {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Dismiss) {
		return m.handleDismissKey()
	}
	if m.busy {
		return nil
	}
	if m.mode == ModeBrowse && (keyMsg.Type == tea.KeyBackspace || keyMsg.Type == tea.KeyCtrlH) && m.prompt.Text == "" {
		m.session.NavigateToParent()
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursorWrap(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursorWrap(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursorBy(-uistate.PageSize(m.rowCount(), m.maxVisibleItems()))
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursorBy(uistate.PageSize(m.rowCount(), m.maxVisibleItems()))
	case key.Matches(keyMsg, m.keys.Home):
		m.setCursor(0)
	case key.Matches(keyMsg, m.keys.End):
		m.setCursor(m.rowCount() - 1)
	case key.Matches(keyMsg, m.keys.Confirm):
		return m.handleEnterKey(false)
	case key.Matches(keyMsg, m.keys.ConfirmSplit):
		return m.handleEnterKey(true)
	case key.Matches(keyMsg, m.keys.SplitLeft):
		m.confirmSplit(browse.SplitLeft)
	case key.Matches(keyMsg, m.keys.SplitRight):
		m.confirmSplit(browse.SplitRight)
	case key.Matches(keyMsg, m.keys.SplitUp):
		m.confirmSplit(browse.SplitUp)
	case key.Matches(keyMsg, m.keys.SplitDown):
		m.confirmSplit(browse.SplitDown)
	case key.Matches(keyMsg, m.keys.Parent):
		m.session.NavigateToParent()
	case key.Matches(keyMsg, m.keys.ToggleHidden):
		m.session.ToggleHidden()
		m.syncViewport()
	case key.Matches(keyMsg, m.keys.Copy):
		return m.copySelection()
	case key.Matches(keyMsg, m.keys.Complete):
		return m.handleTabKey()
	}
	return nil
}

func (m *Model) handleDismissKey() tea.Cmd {
	if m.mode == ModeBrowse && !m.session.Dismissed() {
		m.session.Dismiss()
		return nil
	}
	if m.mode == ModePath && !m.busy {
		return m.dismissCmd()
	}
	return m.quit()
}

func (m *Model) handleEnterKey(secondary bool) tea.Cmd {
	if m.mode == ModePath {
		return m.confirmPath(secondary)
	}
	idx := m.session.Selected()
	if e, ok := m.session.SelectedEntry(); ok {
		events.UI.Confirm(m.mode.String(), browse.RowLabel(e), m.session.Query())
	}
	m.session.Confirm(idx, secondary)
	m.syncViewport()
	return nil
}

func (m *Model) confirmSplit(dir browse.SplitDirection) {
	m.session.ConfirmSplit(m.session.Selected(), dir)
}

func (m *Model) rowCount() int {
	if m.mode == ModePath {
		return len(m.completion.Candidates())
	}
	return len(m.session.Filtered())
}

func (m *Model) cursorIndex() int {
	if m.mode == ModePath {
		return m.completion.Selected()
	}
	return m.session.Selected()
}

func (m *Model) setCursor(i int) {
	if m.rowCount() == 0 {
		return
	}
	if i == m.cursorIndex() {
		return
	}
	if m.mode == ModePath {
		m.completion.SetSelectedIndex(i)
	} else {
		m.session.SetSelectedIndex(i)
	}
	events.UI.Cursor(m.mode.String(), m.cursorIndex())
	m.syncViewport()
}

func (m *Model) moveCursorWrap(delta int) {
	m.setCursor(uistate.Wrap(m.cursorIndex(), m.rowCount(), delta))
}

func (m *Model) moveCursorBy(delta int) {
	m.setCursor(uistate.MoveBy(m.cursorIndex(), m.rowCount(), delta))
}

// syncViewport keeps the cursor row on screen. Browse rows include the
// divider that follows the parent marker.
func (m *Model) syncViewport() {
	rows := m.listRows()
	m.viewport.Ensure(cursorRow(rows, m.cursorIndex()), len(rows), m.maxVisibleItems())
}
