package commands

import (
	"context"
	"io"
	"sort"

	"github.com/okarlsson/gosh/internal/session"
)

// ExecutionEnv carries the standard streams a command runs against. The REPL
// substitutes redirect targets here instead of rebinding the process's own
// stdio, so the shell's descriptors survive every builtin unchanged.
type ExecutionEnv struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type Command struct {
	Run         func(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error
	Name        string
	Description string
	Usage       string
}

var Registry = make(map[string]*Command)

func Register(cmd *Command) {
	Registry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := Registry[name]
	return cmd, ok
}

func IsBuiltin(name string) bool {
	_, ok := Registry[name]
	return ok
}

// Names returns every registered builtin name, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExitError asks the REPL to terminate the shell with Code. Builtins return
// it instead of calling os.Exit so that redirect cleanup still runs.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit"
}
