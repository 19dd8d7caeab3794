package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/okarlsson/gosh/internal/commands"
	"github.com/okarlsson/gosh/internal/pathutil"
	"github.com/okarlsson/gosh/internal/session"
)

// RunBuiltin executes a builtin in-process. Redirections are applied to the
// builtin's execution environment, never to the shell's own stdio, and the
// opened targets are closed on every exit path. An ExitError from the
// builtin propagates to the caller; other errors are reported and swallowed.
func RunBuiltin(ctx context.Context, sess *session.Session, cmd *commands.Command, args []string, rd Redirections) error {
	env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	closers, err := applyRedirections(rd, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		return nil
	}
	defer closeAll(closers)

	if err := cmd.Run(ctx, sess, env, args); err != nil {
		var exit *commands.ExitError
		if errors.As(err, &exit) {
			return err
		}
		fmt.Fprintf(env.Stderr, "%s: %v\n", cmd.Name, err)
	}
	return nil
}

// RunExternal resolves argv[0] and runs it as a child process, waiting for
// it to finish. The child's exit status is discarded. Redirect targets are
// handed to the child; the shell's stdio is untouched.
func RunExternal(ctx context.Context, argv []string, rd Redirections) {
	path := pathutil.Resolve(argv[0])
	if path == "" {
		fmt.Fprintf(os.Stdout, "%s: command not found\n", argv[0])
		return
	}

	env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	closers, err := applyRedirections(rd, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		return
	}
	defer closeAll(closers)

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  env.Stdin,
		Stdout: env.Stdout,
		Stderr: env.Stderr,
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "exec: %v\n", err)
		}
	}
}
