package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/okarlsson/gosh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "echo",
		Description: "Output arguments to standard output",
		Usage:       "echo [string]...\n\nExamples:\n  echo hello world\n  echo 'single  quoted'",
		Run:         echo,
	})
}

func echo(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return nil
}
