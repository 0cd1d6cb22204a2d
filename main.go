package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/atomicstack/tmux-popup-files/internal/app"
	"github.com/atomicstack/tmux-popup-files/internal/config"
	"github.com/atomicstack/tmux-popup-files/internal/logging"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		logging.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Sync()
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records what the popup is about to show and where.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"mode":   cfg.App.Mode,
		"ignore": cfg.App.Ignore,
	}
	if root, err := filepath.Abs(cfg.App.Root); err == nil {
		payload["root"] = root
	} else {
		payload["rootError"] = err.Error()
	}
	if style, err := pathparse.ParseStyle(cfg.App.PathStyle); err == nil {
		payload["pathStyle"] = style.String()
	} else {
		payload["pathStyleError"] = err.Error()
	}
	if tty, ok := terminalSize(); ok {
		payload["terminal"] = tty
	}
	return payload
}

type terminalInfo struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// terminalSize reports the first of stdin and stderr that is a terminal.
// Stdout is skipped since print mode hands it to the caller.
func terminalSize() (terminalInfo, bool) {
	for _, f := range []*os.File{os.Stdin, os.Stderr} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		width, height, err := term.GetSize(fd)
		if err != nil {
			continue
		}
		return terminalInfo{Source: f.Name(), Width: width, Height: height}, true
	}
	return terminalInfo{}, false
}
