// Package pathutil resolves command names to executable paths.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Resolve maps a command name to the executable file that would run for it.
//
// Names containing a path separator bypass the PATH search and are accepted
// verbatim when they point at an executable regular file. Bare names are
// searched for in each $PATH entry in order; the first hit wins. Returns ""
// when nothing matches. PATH is re-read on every call.
func Resolve(name string) string {
	if strings.Contains(name, "/") {
		if isExecutable(name) {
			return name
		}
		return ""
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate
		}
	}
	return ""
}

// isExecutable reports whether path is a regular file the current process
// may execute.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
