package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/atomicstack/tmux-popup-files/internal/backend"
	"github.com/atomicstack/tmux-popup-files/internal/logging"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/tmux"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
	"github.com/atomicstack/tmux-popup-files/internal/ui"
)

const (
	ModeBrowse = "browse"
	ModePath   = "path"
)

// Config describes user-provided application options.
type Config struct {
	Root        string
	Mode        string
	PathHint    string
	ShowHidden  bool
	Ignore      []string
	MaxDepth    int
	Editor      string
	Print       bool
	CreatePaths bool
	PathStyle   string
	SocketPath  string
	Width       int
	Height      int
	ShowFooter  bool
	Watch       bool
	Verbose     bool
}

var (
	newFs       = afero.NewOsFs
	currentPane = tmux.CurrentPane
	stdout      io.Writer = os.Stdout
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	fs := newFs()
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return err
	}
	style := pathparse.LocalStyle()
	if cfg.PathStyle != "" {
		if style, err = pathparse.ParseStyle(cfg.PathStyle); err != nil {
			return err
		}
	}

	scanOpts := tree.ScanOptions{Ignore: cfg.Ignore, MaxDepth: cfg.MaxDepth, Logger: logging.Logger()}
	snapshot, err := tree.Scan(context.Background(), fs, root, scanOpts)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	events.Tree.Scanned(root, snapshot.Len())

	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	pane, err := currentPane(socketPath)
	if err != nil {
		// Outside tmux there is nothing to restore on cancel.
		logging.Logger().V(1).Info("no active pane", "error", err.Error())
		pane = ""
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		scan := func(ctx context.Context) (*tree.Tree, error) {
			return tree.Scan(ctx, fs, root, scanOpts)
		}
		watcher = backend.NewWatcher(snapshot, scan, backend.WithLogger(logging.Logger()))
		defer func() {
			watcher.Stop()
			watcher.Wait()
		}()
	}

	opts := ui.Options{
		Mode:         uiMode(cfg.Mode),
		Fs:           fs,
		Tree:         snapshot,
		ShowHidden:   cfg.ShowHidden,
		CreatePaths:  cfg.CreatePaths,
		PathStyle:    style,
		Editor:       cfg.Editor,
		Print:        cfg.Print,
		SocketPath:   socketPath,
		OriginalPane: pane,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		Watcher:      watcher,
	}
	applyPathHint(&opts, snapshot, cfg.PathHint)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Print {
		// stdout carries the result, so draw on the terminal directly.
		if tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
			defer tty.Close()
			programOpts = append(programOpts, tea.WithOutput(tty))
		} else {
			programOpts = append(programOpts, tea.WithOutput(os.Stderr))
		}
	}

	model := ui.NewModel(opts)
	program := tea.NewProgram(model, programOpts...)
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok && m.Output() != "" {
		events.App.Exit(cfg.Mode, m.Output())
		if _, err := fmt.Fprintln(stdout, m.Output()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	return abs, nil
}

func uiMode(mode string) ui.Mode {
	if mode == ModePath {
		return ui.ModePath
	}
	return ui.ModeBrowse
}

// applyPathHint turns the start path into a directory and reveal hint for
// browse mode, or the initial query and preselected name for path mode.
func applyPathHint(opts *ui.Options, t *tree.Tree, hint string) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return
	}
	if opts.Mode == ui.ModePath {
		opts.PathQuery = hint
		q := pathparse.Parse(hint, opts.PathStyle)
		if q.PartialName == "" {
			return
		}
		// an existing file lists its directory with the file selected
		if rel, ok := relHint(t, hint); ok {
			if e, found := t.Lookup(rel); found && !e.IsDir {
				opts.PathQuery = q.DirectoryPrefix
				opts.Preselect = q.PartialName
			}
		}
		return
	}
	rel, ok := relHint(t, hint)
	if !ok {
		return
	}
	if t.HasDir(rel) {
		opts.StartDir = rel
		return
	}
	if parent, ok := tree.Parent(rel); ok && t.HasDir(parent) {
		opts.StartDir = parent
		opts.Reveal = tree.Base(rel)
	}
}

func relHint(t *tree.Tree, hint string) (string, bool) {
	abs := hint
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(t.Root(), hint)
	}
	return t.RelPath(abs)
}
