//go:build !windows

package dispatcher

import (
	"errors"
	"testing"
	"time"
)

func TestCommandStartsNewSession(t *testing.T) {
	d := New(nil)
	cmd := d.Command("true")
	if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setsid {
		t.Fatalf("expected Setsid to be requested")
	}
	if cmd.Args[0] != unixShell || cmd.Args[1] != "-c" {
		t.Fatalf("expected platform shell, got %v", cmd.Args)
	}
}

func TestExecuteEchoReturnsImmediately(t *testing.T) {
	d := New(nil)
	if err := d.Execute("echo hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecuteDoesNotWaitForChild(t *testing.T) {
	d := New(nil)
	started := time.Now()
	if err := d.Execute("sleep 5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("expected Execute to return without waiting, took %s", elapsed)
	}
}

func TestExecuteFailingCommandStillSucceeds(t *testing.T) {
	d := New(nil)
	if err := d.Execute("exit 3"); err != nil {
		t.Fatalf("expected fire-and-forget success, got %v", err)
	}
}

func TestExecuteMissingShellIsDispatchError(t *testing.T) {
	d := New(nil, WithShell("/nonexistent/popup-launcher-shell", "-c"))
	err := d.Execute("echo hi")
	var derr *DispatchError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DispatchError, got %v", err)
	}
	if derr.Err == nil || derr.Command != "echo hi" {
		t.Fatalf("expected underlying start error for echo hi, got %#v", derr)
	}
}
