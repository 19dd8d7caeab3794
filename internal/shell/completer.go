package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/okarlsson/gosh/internal/commands"
)

// Completer provides tab completion for the shell: command names on the
// first word, filesystem paths afterwards.
type Completer struct{}

// NewCompleter creates the readline completer.
func NewCompleter() readline.AutoCompleter {
	return &Completer{}
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	words := strings.Fields(lineStr)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(lineStr, " ")) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return completeCommand(prefix)
	}

	lastSpace := strings.LastIndex(lineStr, " ")
	partial := ""
	if lastSpace < len(lineStr)-1 {
		partial = lineStr[lastSpace+1:]
	}
	return completePath(partial)
}

// CommandCandidates enumerates the command names matching prefix: builtins
// first, then executables found on PATH, deduplicated. Every call rescans,
// so the enumeration restarts from scratch each time it is consumed.
func CommandCandidates(prefix string) []string {
	seen := make(map[string]bool)
	var matches []string

	for _, name := range commands.Names() {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}

	var executables []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			info, err := e.Info()
			if err != nil || !info.Mode().IsRegular() || info.Mode()&0111 == 0 {
				continue
			}
			seen[name] = true
			executables = append(executables, name)
		}
	}
	sort.Strings(executables)

	return append(matches, executables...)
}

func completeCommand(prefix string) ([][]rune, int) {
	matches := CommandCandidates(prefix)

	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):] + " ")
	}
	return result, len(prefix)
}

// completePath returns matching file and directory names for the partial
// path being typed.
func completePath(partial string) ([][]rune, int) {
	searchDir := "."
	searchPrefix := partial

	if strings.HasSuffix(partial, "/") {
		searchDir = filepath.Clean(partial)
		searchPrefix = ""
	} else if strings.Contains(partial, "/") {
		searchDir = filepath.Dir(partial)
		searchPrefix = filepath.Base(partial)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, 0
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, searchPrefix) {
			continue
		}
		if e.IsDir() {
			matches = append(matches, name+"/")
		} else {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	result := make([][]rune, len(matches))
	for i, m := range matches {
		suffix := m[len(searchPrefix):]
		if !strings.HasSuffix(suffix, "/") {
			suffix += " "
		}
		result[i] = []rune(suffix)
	}
	return result, len(searchPrefix)
}
