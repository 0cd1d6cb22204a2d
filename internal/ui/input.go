package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.prompt.CursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput applies prompt editing keys. It reports whether the key
// was consumed and returns the follow-up for a changed query.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	mode := m.mode.String()
	before := m.prompt.CursorPos()
	switch msg.String() {
	case "ctrl+u":
		if !m.prompt.Clear() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cleared(mode)
		return true, m.queryChanged()
	case "ctrl+w":
		if !m.prompt.DeleteWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.WordBackspace(mode, m.prompt.Text)
		return true, m.queryChanged()
	case "ctrl+a":
		if !m.prompt.MoveStart() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(mode, m.prompt.Cursor)
		return true, nil
	case "ctrl+e":
		if !m.prompt.MoveEnd() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(mode, m.prompt.Cursor)
		return true, nil
	case "alt+b":
		if !m.prompt.MoveWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(mode, m.prompt.Cursor)
		return true, nil
	case "alt+f":
		if !m.prompt.MoveWordForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(mode, m.prompt.Cursor)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.prompt.DeleteRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Backspace(mode, m.prompt.Text)
		return true, m.queryChanged()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return true, m.appendToPrompt(string(msg.Runes))
	case tea.KeySpace:
		return true, m.appendToPrompt(" ")
	case tea.KeyLeft:
		if !m.prompt.MoveRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(mode, m.prompt.Cursor)
		return true, nil
	case tea.KeyRight:
		if !m.prompt.MoveRuneForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(mode, m.prompt.Cursor)
		return true, nil
	}
	return false, nil
}

func (m *Model) appendToPrompt(text string) tea.Cmd {
	before := m.prompt.CursorPos()
	if !m.prompt.Insert(text) {
		return nil
	}
	m.noteFilterCursorChange(before)
	events.Filter.Append(m.mode.String(), m.prompt.Text)
	return m.queryChanged()
}

// queryChanged pushes the prompt text into the active engine.
func (m *Model) queryChanged() tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if m.mode == ModePath {
		return m.requestCompletion()
	}
	m.session.SetQuery(m.prompt.Text)
	m.syncViewport()
	return nil
}

// setPromptText replaces the prompt without notifying the engine.
func (m *Model) setPromptText(text string) {
	before := m.prompt.CursorPos()
	m.prompt.SetEnd(text)
	m.noteFilterCursorChange(before)
}

func (m *Model) placeholder() string {
	if m.mode == ModePath {
		return "(type a path)"
	}
	return m.session.Placeholder()
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.prompt.Text
	if text == "" {
		runes := []rune(m.placeholder())
		var caretRune, rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(caretRune) + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := m.prompt.CursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
