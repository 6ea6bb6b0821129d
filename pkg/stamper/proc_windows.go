//go:build windows

package stamper

import "os"

// processAlive reports whether a process with the given pid exists.
// On Windows, FindProcess opens a real handle and fails when the process
// is gone.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
