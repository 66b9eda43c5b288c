//go:build !windows

package dispatcher

import "syscall"

const unixShell = "/bin/sh"

func defaultShell() []string {
	return []string{unixShell, "-c"}
}

// detachedAttr places the child in a new session so it survives the
// launcher exiting and does not receive the terminal's signals.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
