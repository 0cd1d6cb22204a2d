package state

import "unicode"

// Prompt is a single-line text field with a rune-indexed cursor. Word
// motions stop at runes reported by Boundary, or at spaces when Boundary is
// nil.
type Prompt struct {
	Text     string
	Cursor   int
	Boundary func(rune) bool
}

// Set replaces the text and clamps the cursor.
func (p *Prompt) Set(text string, cursor int) {
	p.Text = text
	n := len([]rune(text))
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n {
		cursor = n
	}
	p.Cursor = cursor
}

// SetEnd replaces the text and parks the cursor after it.
func (p *Prompt) SetEnd(text string) {
	p.Set(text, len([]rune(text)))
}

// CursorPos returns the clamped rune offset of the cursor.
func (p *Prompt) CursorPos() int {
	runes := []rune(p.Text)
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > len(runes) {
		return len(runes)
	}
	return p.Cursor
}

// Clear empties the prompt. It reports false when already empty.
func (p *Prompt) Clear() bool {
	if p.Text == "" {
		return false
	}
	p.Set("", 0)
	return true
}

// Insert inserts text at the cursor.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Text)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := p.wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.Set(string(updated), i)
	return true
}

// MoveStart moves the cursor to the start.
func (p *Prompt) MoveStart() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (p *Prompt) MoveEnd() bool {
	end := len([]rune(p.Text))
	if p.CursorPos() == end {
		return false
	}
	p.Cursor = end
	return true
}

// MoveWordBackward moves the cursor to the start of the previous word.
func (p *Prompt) MoveWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := p.wordStart(runes, pos)
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

// MoveWordForward moves the cursor past the next word.
func (p *Prompt) MoveWordForward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !p.isBoundary(runes[i]) {
		i++
	}
	for i < len(runes) && p.isBoundary(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

// MoveRuneBackward moves the cursor one rune left.
func (p *Prompt) MoveRuneBackward() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = p.CursorPos() - 1
	return true
}

// MoveRuneForward moves the cursor one rune right.
func (p *Prompt) MoveRuneForward() bool {
	pos := p.CursorPos()
	if pos >= len([]rune(p.Text)) {
		return false
	}
	p.Cursor = pos + 1
	return true
}

func (p *Prompt) wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && p.isBoundary(runes[i-1]) {
		i--
	}
	for i > 0 && !p.isBoundary(runes[i-1]) {
		i--
	}
	return i
}

func (p *Prompt) isBoundary(r rune) bool {
	if p.Boundary != nil {
		return p.Boundary(r)
	}
	return unicode.IsSpace(r)
}
