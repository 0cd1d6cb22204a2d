package state

import (
	"strings"
	"testing"
)

func TestPromptInsertAndDelete(t *testing.T) {
	var p Prompt
	if !p.Insert("ab") {
		t.Fatal("expected insert to succeed")
	}
	if p.Text != "ab" || p.Cursor != 2 {
		t.Fatalf("unexpected prompt state %q/%d", p.Text, p.Cursor)
	}

	p.Cursor = 1
	if !p.Insert("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if p.Text != "azb" || p.Cursor != 2 {
		t.Fatalf("unexpected prompt state %q/%d", p.Text, p.Cursor)
	}

	if !p.DeleteRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if p.Text != "ab" || p.Cursor != 1 {
		t.Fatalf("unexpected prompt state after delete %q/%d", p.Text, p.Cursor)
	}

	p.SetEnd("abc def")
	if !p.DeleteWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if p.Text != "abc " {
		t.Fatalf("expected trailing word removed, got %q", p.Text)
	}

	p.Set("abc", 0)
	if p.DeleteRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if p.Insert("") {
		t.Fatal("expected empty insert to be ignored")
	}
	if !p.Clear() || p.Clear() {
		t.Fatal("clear should succeed once")
	}
}

func TestPromptCursorNavigation(t *testing.T) {
	var p Prompt
	p.SetEnd("one two three")
	if !p.MoveWordBackward() || p.Cursor != 8 {
		t.Fatalf("expected cursor at 8, got %d", p.Cursor)
	}
	if !p.MoveWordBackward() || p.Cursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", p.Cursor)
	}
	if !p.MoveWordForward() || p.Cursor != 8 {
		t.Fatalf("expected cursor at 8, got %d", p.Cursor)
	}
	if !p.MoveStart() || p.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", p.Cursor)
	}
	if p.MoveRuneBackward() {
		t.Fatal("expected no movement at start")
	}
	if !p.MoveRuneForward() || p.Cursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", p.Cursor)
	}
	if !p.MoveEnd() || p.MoveEnd() {
		t.Fatal("expected a single move to end")
	}
	if p.MoveRuneForward() || p.MoveWordForward() {
		t.Fatal("expected no movement past end")
	}
}

func TestPromptPathBoundaries(t *testing.T) {
	p := Prompt{Boundary: func(r rune) bool { return r == '/' }}
	p.SetEnd("/srv/app/main.go")
	if !p.DeleteWordBackward() || p.Text != "/srv/app/" {
		t.Fatalf("expected last component removed, got %q", p.Text)
	}
	if !p.DeleteWordBackward() || p.Text != "/srv/" {
		t.Fatalf("expected trailing separator and component removed, got %q", p.Text)
	}
	if !p.MoveWordBackward() || p.Cursor != 1 {
		t.Fatalf("expected cursor after root separator, got %d", p.Cursor)
	}
}

func TestPromptHandlesMultibyte(t *testing.T) {
	var p Prompt
	p.SetEnd("héllo")
	if p.CursorPos() != 5 {
		t.Fatalf("expected rune cursor 5, got %d", p.CursorPos())
	}
	p.Cursor = 2
	p.DeleteRuneBackward()
	if p.Text != "hllo" {
		t.Fatalf("expected é removed, got %q", p.Text)
	}
	p.Set(strings.Repeat("x", 3), 10)
	if p.Cursor != 3 {
		t.Fatalf("expected clamp to 3, got %d", p.Cursor)
	}
}
