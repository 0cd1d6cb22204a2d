package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/backend"
	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/completion"
	"github.com/atomicstack/tmux-popup-files/internal/data/dispatcher"
	"github.com/atomicstack/tmux-popup-files/internal/logging"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/state"
	"github.com/atomicstack/tmux-popup-files/internal/theme"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
	"github.com/atomicstack/tmux-popup-files/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-files/internal/ui/state"
)

// Mode selects which engine drives the popup.
type Mode int

const (
	ModeBrowse Mode = iota
	ModePath
)

func (m Mode) String() string {
	if m == ModePath {
		return "path"
	}
	return "browse"
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries everything NewModel needs. Zero values are usable: a nil
// Tree browses an empty root and a nil Fs reads nothing.
type Options struct {
	Mode         Mode
	Fs           afero.Fs
	Tree         *tree.Tree
	StartDir     string
	Reveal       string
	PathQuery    string
	Preselect    string
	ShowHidden   bool
	CreatePaths  bool
	PathStyle    pathparse.Style
	Editor       string
	Print        bool
	SocketPath   string
	OriginalPane string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Watcher      *backend.Watcher
}

// Model implements the Bubble Tea model for the file popup.
type Model struct {
	mode        Mode
	fs          afero.Fs
	ctx         context.Context
	cancel      context.CancelFunc
	editor      string
	printOnly   bool
	socketPath  string
	originPane  string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	keys        keyMap

	prompt            uistate.Prompt
	viewport          uistate.Viewport
	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool

	trees      state.TreeStore
	dispatcher *dispatcher.Dispatcher
	session    *browse.Session
	completion *completion.Session
	reader     *completion.FSReader
	pending    []tea.Cmd

	preview    *previewData
	previewSeq int

	backend        *backend.Watcher
	backendLastErr string

	busy       bool
	errMsg     string
	infoMsg    string
	infoExpire time.Time
	output     string
	finished   bool

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds the model and loads the starting directory or query.
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	trees := state.NewTreeStore(opts.Tree)
	m := &Model{
		mode:       opts.Mode,
		fs:         opts.Fs,
		ctx:        ctx,
		cancel:     cancel,
		editor:     opts.Editor,
		printOnly:  opts.Print,
		socketPath: opts.SocketPath,
		originPane: opts.OriginalPane,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		keys:       defaultKeyMap(opts.Mode),
		trees:      trees,
		dispatcher: dispatcher.New(trees),
		backend:    opts.Watcher,
		bus:        command.New(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c

	switch opts.Mode {
	case ModePath:
		root := ""
		if opts.Tree != nil {
			root = opts.Tree.Root()
		}
		style := opts.PathStyle
		m.prompt.Boundary = func(r rune) bool { return r == ' ' || style.IsSeparator(r) }
		m.reader = completion.NewFSReader(opts.Fs, root, style, logging.Logger())
		m.completion = completion.NewSession(m.reader, style,
			completion.WithListingRoot(root),
			completion.WithCreatingPath(opts.CreatePaths),
			completion.WithPreselect(opts.Preselect),
			completion.WithLogger(logging.Logger()),
		)
		m.prompt.SetEnd(opts.PathQuery)
	default:
		m.session = browse.NewSession(trees.Tree(), &uiCollaborator{m: m},
			browse.WithShowHidden(opts.ShowHidden),
			browse.WithInitialSelection(opts.Reveal),
			browse.WithOriginalItem(opts.OriginalPane),
		)
		m.session.Load(opts.StartDir)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := m.takePending()
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.mode == ModePath {
		cmds = append(cmds, m.requestCompletion())
	}
	m.cursorFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Output is the path chosen in print mode, or empty.
func (m *Model) Output() string {
	return m.output
}

// Mode reports which engine drives the model.
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(command.Result{}):      m.handleActionResultMsg,
		reflect.TypeOf(previewLoadedMsg{}):    m.handlePreviewLoadedMsg,
		reflect.TypeOf(completionLoadedMsg{}): m.handleCompletionLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.takePending()...)
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.cursorFocused {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) takePending() []tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return cmds
}

// quit cancels outstanding reads and ends the program.
func (m *Model) quit() tea.Cmd {
	m.finished = true
	m.cancel()
	return tea.Quit
}
