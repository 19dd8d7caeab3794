package commands

import (
	"context"
	"fmt"

	"github.com/okarlsson/gosh/internal/pathutil"
	"github.com/okarlsson/gosh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "type",
		Description: "Describe how a command name would be interpreted",
		Usage:       "type <name>...\n\nExamples:\n  type echo    echo is a shell builtin\n  type ls      ls is /usr/bin/ls",
		Run:         typeCmd,
	})
}

func typeCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	for _, name := range args {
		if IsBuiltin(name) {
			fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
			continue
		}
		if path := pathutil.Resolve(name); path != "" {
			fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
			continue
		}
		fmt.Fprintf(env.Stdout, "%s: not found\n", name)
	}
	return nil
}
