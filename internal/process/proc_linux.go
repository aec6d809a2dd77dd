// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package process

import (
	"os"
	"strconv"
	"strings"
	"syscall"
)

// isActivePid reports whether pid is a running, non-zombie process.
// kill(pid, 0) alone cannot distinguish a zombie (exited but unreaped)
// from a live process, since the pid slot still exists either way —
// original_source/bakufu/process.py relies on psutil's status() for
// this, which on Linux reads the same /proc/<pid>/stat state field.
func isActivePid(pid int) bool {
	if err := syscall.Kill(pid, 0); err != nil {
		return false
	}

	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		// the process vanished between the kill probe and the read
		return false
	}

	// Fields: pid (comm) state ...; comm may itself contain spaces or
	// parens, so split on the last ')' rather than by field index.
	idx := strings.LastIndexByte(string(data), ')')
	if idx < 0 || idx+2 >= len(data) {
		return false
	}
	state := data[idx+2]
	return state != 'Z' && state != 'X'
}

// inheritableFiles enumerates the supervisor's own open descriptors
// beyond stdio so a use_sockets Process can hand them to its child as
// ExtraFiles, approximating close_fds=False: the child inherits
// whatever listening sockets the caller pre-opened.
func inheritableFiles() []*os.File {
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		return nil
	}

	var files []*os.File
	for _, e := range entries {
		fd, err := strconv.Atoi(e.Name())
		if err != nil || fd <= 2 {
			continue
		}
		files = append(files, os.NewFile(uintptr(fd), e.Name()))
	}
	return files
}
