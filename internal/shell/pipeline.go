package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/okarlsson/gosh/internal/commands"
	"github.com/okarlsson/gosh/internal/pathutil"
	"github.com/okarlsson/gosh/internal/session"
)

// RunPipeline executes words split on "|" as a pipeline of N commands wired
// through N-1 pipes. Builtin stages run in-process on goroutines, external
// stages as child processes; either kind may appear at any position. A
// redirection extracted from the line is applied to the final stage. All N
// stages are reaped before returning, and no pipe end stays open in the
// shell afterwards.
func RunPipeline(ctx context.Context, sess *session.Session, words []string, rd Redirections) error {
	segments := SplitByPipe(words)
	for _, seg := range segments {
		if len(seg) == 0 {
			return fmt.Errorf("syntax error near unexpected token `|'")
		}
	}

	n := len(segments)
	envs := make([]*commands.ExecutionEnv, n)
	for i := range envs {
		envs[i] = &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	}

	// Pipe ends the parent still holds after forking every stage. Ends
	// lent to an in-process stage are closed by that stage's goroutine
	// instead, so each fd is closed exactly once.
	var parentEnds []*os.File
	stageEnds := make([][]*os.File, n)

	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			for _, f := range parentEnds {
				f.Close()
			}
			return fmt.Errorf("pipe: %w", err)
		}
		parentEnds = append(parentEnds, pr, pw)
		envs[i].Stdout = pw
		envs[i+1].Stdin = pr
	}

	closers, err := applyRedirections(rd, envs[n-1])
	if err != nil {
		for _, f := range parentEnds {
			f.Close()
		}
		return fmt.Errorf("open: %w", err)
	}

	takeEnds := func(i int) {
		var kept []*os.File
		for _, f := range parentEnds {
			if f == envs[i].Stdin || f == envs[i].Stdout {
				stageEnds[i] = append(stageEnds[i], f)
			} else {
				kept = append(kept, f)
			}
		}
		parentEnds = kept
	}

	var wg sync.WaitGroup
	var procs []*exec.Cmd

	runInProcess := func(i int, run func(env *commands.ExecutionEnv)) {
		takeEnds(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				for _, f := range stageEnds[i] {
					f.Close()
				}
			}()
			run(envs[i])
		}()
	}

	for i, seg := range segments {
		seg := seg
		if cmd, ok := commands.Get(seg[0]); ok {
			runInProcess(i, func(env *commands.ExecutionEnv) {
				// A pipeline stage runs in its own context; even an
				// exit builtin only ends the stage, not the shell.
				_ = cmd.Run(ctx, sess, env, seg[1:])
			})
			continue
		}

		path := pathutil.Resolve(seg[0])
		if path == "" {
			runInProcess(i, func(env *commands.ExecutionEnv) {
				fmt.Fprintf(env.Stdout, "%s: command not found\n", seg[0])
			})
			continue
		}

		cmd := &exec.Cmd{
			Path:   path,
			Args:   seg,
			Stdin:  envs[i].Stdin,
			Stdout: envs[i].Stdout,
			Stderr: envs[i].Stderr,
		}
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "exec: %v\n", err)
			continue
		}
		procs = append(procs, cmd)
	}

	// Close the parent's remaining pipe ends so EOF propagates between
	// children, then reap every stage in any order.
	for _, f := range parentEnds {
		f.Close()
	}
	for _, cmd := range procs {
		_ = cmd.Wait()
	}
	wg.Wait()

	closeAll(closers)
	return nil
}
