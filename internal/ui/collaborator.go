package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/tmux"
	"github.com/atomicstack/tmux-popup-files/internal/ui/command"
)

var (
	openFileFn      = tmux.OpenFile
	openDirectoryFn = tmux.OpenDirectory
	selectPaneFn    = tmux.SelectPane
)

// uiCollaborator turns browse session notifications into queued commands.
type uiCollaborator struct {
	m *Model
}

func (c *uiCollaborator) SelectionChanged(path string, isDir bool) {
	c.m.queue(c.m.ensurePreview(path, isDir))
}

func (c *uiCollaborator) Open(path string, target browse.OpenTarget) {
	abs := c.m.trees.Tree().AbsPath(path)
	c.m.queue(c.m.openCmd(abs, placementFor(target)))
}

func (c *uiCollaborator) Refresh() {
	c.m.setPromptText("")
	c.m.viewport.Offset = 0
	c.m.syncViewport()
}

func (c *uiCollaborator) Dismissed(ctx browse.DismissContext) {
	if ctx.Confirmed {
		return
	}
	c.m.queue(c.m.dismissCmd())
}

func placementFor(target browse.OpenTarget) tmux.Placement {
	switch target {
	case browse.OpenSplit:
		return tmux.PlaceSplit
	case browse.OpenSplitLeft:
		return tmux.PlaceSplitLeft
	case browse.OpenSplitRight:
		return tmux.PlaceSplitRight
	case browse.OpenSplitUp:
		return tmux.PlaceSplitUp
	case browse.OpenSplitDown:
		return tmux.PlaceSplitDown
	default:
		return tmux.PlaceWindow
	}
}

// openCmd opens abs in the editor, or records it for printing.
func (m *Model) openCmd(abs string, place tmux.Placement) tea.Cmd {
	if m.printOnly {
		m.output = abs
		return m.quit()
	}
	m.busy = true
	socket, editor := m.socketPath, m.editor
	return m.bus.Execute(command.Request{
		ID:    "open:" + place.String(),
		Label: abs,
		Info:  fmt.Sprintf("Opened %s", filepath.Base(abs)),
		Exit:  command.ExitOnSuccess,
		Run: func() error {
			return openFileFn(socket, editor, filepath.Dir(abs), abs, place)
		},
	})
}

func (m *Model) openDirectoryCmd(abs string) tea.Cmd {
	if m.printOnly {
		m.output = abs
		return m.quit()
	}
	m.busy = true
	socket := m.socketPath
	return m.bus.Execute(command.Request{
		ID:    "open:directory",
		Label: abs,
		Info:  fmt.Sprintf("Opened %s", abs),
		Exit:  command.ExitOnSuccess,
		Run:   func() error { return openDirectoryFn(socket, abs) },
	})
}

// dismissCmd refocuses the pane that was active before the popup and
// quits.
func (m *Model) dismissCmd() tea.Cmd {
	if m.originPane == "" {
		return m.quit()
	}
	m.busy = true
	socket, pane := m.socketPath, m.originPane
	return m.bus.Execute(command.Request{
		ID:    "restore",
		Label: pane,
		Exit:  command.ExitAlways,
		Run:   func() error { return selectPaneFn(socket, pane) },
	})
}
