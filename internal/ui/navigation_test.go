package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-files/internal/tmux"
)

func TestFilterThenEnterOpensFile(t *testing.T) {
	calls := stubOpenFile(t, nil)
	h := newBrowseHarness(t, nil)

	typeText(h, "main")
	if got := rowLabels(h.Model()); len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected only main.go, got %v", got)
	}
	pressKey(h, tea.KeyEnter)

	if len(*calls) != 1 {
		t.Fatalf("expected one open call, got %d", len(*calls))
	}
	call := (*calls)[0]
	if call.path != "/proj/main.go" || call.dir != "/proj" || call.place != tmux.PlaceWindow {
		t.Fatalf("unexpected open call %+v", call)
	}
	if !h.Quit() {
		t.Fatalf("expected program to quit after a successful open")
	}
}

func TestEnterDirectoryThenBackspaceReturnsToParent(t *testing.T) {
	h := newBrowseHarness(t, nil)
	m := h.Model()

	typeText(h, "cmd")
	pressKey(h, tea.KeyEnter)
	if m.session.CurrentPath() != "cmd" {
		t.Fatalf("expected to enter cmd, got %q", m.session.CurrentPath())
	}
	if m.prompt.Text != "" {
		t.Fatalf("expected prompt cleared on navigation, got %q", m.prompt.Text)
	}
	if got := rowLabels(m); len(got) != 2 || got[0] != "parent directory" || got[1] != "app/" {
		t.Fatalf("unexpected listing %v", got)
	}

	pressKey(h, tea.KeyBackspace)
	if m.session.CurrentPath() != "" {
		t.Fatalf("expected root after backspace, got %q", m.session.CurrentPath())
	}
}

func TestParentKeyAndParentMarker(t *testing.T) {
	h := newBrowseHarness(t, func(o *Options) { o.StartDir = "cmd/app" })
	m := h.Model()

	h.Send(tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	if m.session.CurrentPath() != "cmd" {
		t.Fatalf("expected cmd after alt+up, got %q", m.session.CurrentPath())
	}
	m.session.SetSelectedIndex(0)
	pressKey(h, tea.KeyEnter)
	if m.session.CurrentPath() != "" {
		t.Fatalf("expected root after confirming the parent marker, got %q", m.session.CurrentPath())
	}
}

func TestSplitKeysChoosePlacement(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want tmux.Placement
	}{
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, tmux.PlaceSplit},
		{"ctrl+v", tea.KeyMsg{Type: tea.KeyCtrlV}, tmux.PlaceSplitRight},
		{"ctrl+x", tea.KeyMsg{Type: tea.KeyCtrlX}, tmux.PlaceSplitDown},
		{"alt+h", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h"), Alt: true}, tmux.PlaceSplitLeft},
		{"alt+k", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k"), Alt: true}, tmux.PlaceSplitUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := stubOpenFile(t, nil)
			h := newBrowseHarness(t, nil)
			typeText(h, "README")
			h.Send(tc.msg)
			if len(*calls) != 1 || (*calls)[0].place != tc.want {
				t.Fatalf("expected %v, got %+v", tc.want, *calls)
			}
		})
	}
}

func TestSplitKeyIgnoresDirectories(t *testing.T) {
	calls := stubOpenFile(t, nil)
	h := newBrowseHarness(t, nil)
	typeText(h, "docs")
	pressKey(h, tea.KeyCtrlV)
	if len(*calls) != 0 {
		t.Fatalf("directories should not open in a split, got %+v", *calls)
	}
	if h.Quit() {
		t.Fatalf("unexpected quit")
	}
}

func TestOpenFailureKeepsPopupOpen(t *testing.T) {
	stubOpenFile(t, errors.New("no server running"))
	h := newBrowseHarness(t, nil)
	typeText(h, "main.go")
	pressKey(h, tea.KeyEnter)

	if h.Quit() {
		t.Fatalf("failed open should not quit")
	}
	m := h.Model()
	if m.busy {
		t.Fatalf("busy flag not cleared")
	}
	if !strings.Contains(h.View(), "Error: no server running") {
		t.Fatalf("expected error in view, got %q", h.View())
	}

	pressKey(h, tea.KeyEsc)
	if !h.Quit() {
		t.Fatalf("expected esc to quit once the session is dismissed")
	}
}

func TestPrintModeRecordsOutput(t *testing.T) {
	calls := stubOpenFile(t, nil)
	h := newBrowseHarness(t, func(o *Options) { o.Print = true })
	typeText(h, "guide")
	if len(h.Model().session.Filtered()) != 0 {
		t.Fatalf("guide.md lives in docs, root filter should be empty")
	}
	pressKey(h, tea.KeyCtrlU)
	typeText(h, "README")
	pressKey(h, tea.KeyEnter)

	if got := h.Model().Output(); got != "/proj/README.md" {
		t.Fatalf("unexpected output %q", got)
	}
	if len(*calls) != 0 {
		t.Fatalf("print mode should not open files")
	}
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}

func TestEscRestoresOriginalPane(t *testing.T) {
	var restored []string
	prev := selectPaneFn
	selectPaneFn = func(socket, pane string) error {
		restored = append(restored, pane)
		return nil
	}
	t.Cleanup(func() { selectPaneFn = prev })

	h := newBrowseHarness(t, func(o *Options) { o.OriginalPane = "%3" })
	pressKey(h, tea.KeyEsc)

	if len(restored) != 1 || restored[0] != "%3" {
		t.Fatalf("expected pane %%3 restored, got %v", restored)
	}
	if !h.Quit() {
		t.Fatalf("expected quit after dismiss")
	}
	if h.Model().Output() != "" {
		t.Fatalf("dismiss should not produce output")
	}
}

func TestEscWithoutOriginalPaneQuits(t *testing.T) {
	h := newBrowseHarness(t, nil)
	pressKey(h, tea.KeyEsc)
	if !h.Quit() || !h.Model().session.Dismissed() {
		t.Fatalf("expected dismissed session and quit")
	}
}

func TestCursorWrapsAndPages(t *testing.T) {
	h := newBrowseHarness(t, nil)
	m := h.Model()
	total := len(m.session.Filtered())

	pressKey(h, tea.KeyUp)
	if m.session.Selected() != total-1 {
		t.Fatalf("expected wrap to %d, got %d", total-1, m.session.Selected())
	}
	pressKey(h, tea.KeyDown)
	if m.session.Selected() != 0 {
		t.Fatalf("expected wrap to 0, got %d", m.session.Selected())
	}
	pressKey(h, tea.KeyEnd)
	if m.session.Selected() != total-1 {
		t.Fatalf("expected end, got %d", m.session.Selected())
	}
	pressKey(h, tea.KeyHome)
	if m.session.Selected() != 0 {
		t.Fatalf("expected home, got %d", m.session.Selected())
	}
	pressKey(h, tea.KeyPgDown)
	if m.session.Selected() != total-1 {
		t.Fatalf("expected page down to clamp at %d, got %d", total-1, m.session.Selected())
	}
}

func TestToggleHiddenShowsDotfiles(t *testing.T) {
	h := newBrowseHarness(t, nil)
	pressKey(h, tea.KeyCtrlT)
	if !strings.Contains(strings.Join(rowLabels(h.Model()), ","), ".env") {
		t.Fatalf("expected .env after toggling hidden files")
	}
	if !strings.Contains(h.View(), "[hidden]") {
		t.Fatalf("expected hidden marker in header")
	}
}

func TestCopyWritesAbsolutePath(t *testing.T) {
	var copied string
	prev := clipboardWriteFn
	clipboardWriteFn = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteFn = prev })

	h := newBrowseHarness(t, nil)
	typeText(h, "docs")
	pressKey(h, tea.KeyCtrlY)
	if copied != "/proj/docs" {
		t.Fatalf("unexpected clipboard contents %q", copied)
	}
	if h.Quit() {
		t.Fatalf("copy should keep the popup open")
	}
	if !strings.Contains(h.View(), "Copied /proj/docs") {
		t.Fatalf("expected copy confirmation in view")
	}
}
