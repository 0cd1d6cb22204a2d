package tmux

import (
	"fmt"
	"strings"
)

// OpenFile starts editor on path in a new window or a split of the current
// window. dir becomes the working directory of the new pane.
func OpenFile(socketPath, editor, dir, path string, place Placement) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoTarget
	}
	if strings.TrimSpace(editor) == "" {
		editor = "vi"
	}
	args := placementArgs(place)
	if dir != "" {
		args = append(args, "-c", dir)
	}
	args = append(args, editor+" "+shellQuote(path))
	return run(socketPath, args...)
}

// OpenDirectory opens a new window whose shell starts in dir.
func OpenDirectory(socketPath, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return ErrNoTarget
	}
	return run(socketPath, "new-window", "-c", dir)
}

// CurrentPane reports the id of the active pane, e.g. "%3".
func CurrentPane(socketPath string) (string, error) {
	out, err := output(socketPath, "display-message", "-p", "#{pane_id}")
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", ErrNoTarget
	}
	return id, nil
}

// SelectPane focuses the pane with the given id.
func SelectPane(socketPath, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ErrNoTarget
	}
	return run(socketPath, "select-pane", "-t", trimmed)
}

func placementArgs(place Placement) []string {
	switch place {
	case PlaceSplit, PlaceSplitDown:
		return []string{"split-window", "-v"}
	case PlaceSplitUp:
		return []string{"split-window", "-v", "-b"}
	case PlaceSplitRight:
		return []string{"split-window", "-h"}
	case PlaceSplitLeft:
		return []string{"split-window", "-h", "-b"}
	default:
		return []string{"new-window"}
	}
}

// shellQuote wraps s in single quotes for the shell tmux hands the command to.
func shellQuote(s string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", `'\''`))
}
