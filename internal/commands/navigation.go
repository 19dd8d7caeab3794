package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/okarlsson/gosh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "pwd",
		Description: "Print current working directory",
		Usage:       "pwd",
		Run:         pwd,
	})
	Register(&Command{
		Name:        "cd",
		Description: "Change directory",
		Usage:       "cd [path]\n\nSpecial paths:\n  ~            Home directory\n  ..           Parent directory\n  .            Current directory",
		Run:         cd,
	})
	Register(&Command{
		Name:        "exit",
		Description: "Exit the shell",
		Usage:       "exit [code]",
		Run:         exitCmd,
	})
}

func pwd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(env.Stderr, "pwd: %v\n", err)
		return nil
	}
	fmt.Fprintln(env.Stdout, dir)
	return nil
}

func cd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if len(args) == 0 {
		return nil
	}

	target := args[0]
	if target == "~" {
		home := os.Getenv("HOME")
		if home == "" {
			fmt.Fprintln(env.Stderr, "cd: HOME not set")
			return nil
		}
		target = home
	}

	// os.Chdir resolves both absolute and cwd-relative targets.
	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %s: No such file or directory\n", args[0])
	}
	return nil
}

func exitCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if len(args) == 0 {
		return &ExitError{}
	}

	code, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(env.Stderr, "exit: %s: numeric argument required\n", args[0])
		return &ExitError{Code: 2}
	}
	return &ExitError{Code: code}
}
