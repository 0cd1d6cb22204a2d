// Package ui contains the Bubble Tea program behind the file popup.
//
// The Model owns one of two engines, chosen at start:
//   - browse mode drives a browse.Session over the scanned tree. The session
//     reports selection changes, opens and dismissals through uiCollaborator,
//     which turns them into queued tea.Cmd values.
//   - path mode drives a completion.Session. Every prompt edit starts a new
//     generation whose directory read runs as a tea.Cmd; results from older
//     generations are dropped when they arrive.
//
// Messages are routed through a typed handler registry. Side effects that
// talk to tmux or the clipboard run through the command bus and report back
// as command.Result. When watching is enabled a backend.Watcher streams new
// tree snapshots, which the dispatcher installs before the active engine is
// refreshed.
package ui
