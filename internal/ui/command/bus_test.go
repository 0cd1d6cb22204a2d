package command

import (
	"errors"
	"testing"
)

func TestExecuteRunsAction(t *testing.T) {
	calls := 0
	cmd := New().Execute(Request{ID: "open", Label: "a.go", Info: "Opened a.go", Exit: ExitOnSuccess, Run: func() error {
		calls++
		return nil
	}})
	if calls != 0 {
		t.Fatalf("action ran before the command was executed")
	}
	res, ok := cmd().(Result)
	if !ok {
		t.Fatalf("expected Result message")
	}
	if calls != 1 || res.Err != nil || res.Info != "Opened a.go" || !res.Quit() {
		t.Fatalf("unexpected result %+v (calls=%d)", res, calls)
	}
}

func TestExecuteReportsFailure(t *testing.T) {
	boom := errors.New("no server")
	res := New().Execute(Request{ID: "open", Exit: ExitOnSuccess, Run: func() error { return boom }})().(Result)
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected error to propagate, got %v", res.Err)
	}
	if res.Quit() {
		t.Fatalf("failed ExitOnSuccess action should not quit")
	}
	if !(Result{Err: boom, Exit: ExitAlways}).Quit() {
		t.Fatalf("ExitAlways should quit on failure")
	}
	if (Result{Exit: Stay}).Quit() {
		t.Fatalf("Stay should never quit")
	}
}

func TestExecuteSkipsNilAction(t *testing.T) {
	if msg := New().Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
