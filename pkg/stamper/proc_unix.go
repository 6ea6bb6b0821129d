//go:build unix

package stamper

import (
	"errors"
	"os"
	"syscall"
)

// processAlive reports whether a process with the given pid exists.
// Signal 0 performs the existence check without delivering anything; EPERM
// means the process exists but belongs to someone else, which still counts
// as alive.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
