//go:build !windows

package process

import "syscall"

// TerminateTree sends SIGKILL to the process group led by pid. Non-positive
// pids are ignored: 0 and negatives would target the caller's own group.
func TerminateTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
