package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/okarlsson/gosh/internal/commands"
	"github.com/okarlsson/gosh/internal/config"
	"github.com/okarlsson/gosh/internal/session"
)

// Shell is the read-parse-execute loop.
type Shell struct {
	Session *session.Session
	RL      *readline.Instance
	in      *bufio.Reader
	history []string
}

// New creates a Shell. When interactive, the line editor owns the prompt,
// history file, and tab completion; otherwise lines come from a plain
// buffered reader so the shell stays drivable from pipes and tests.
func New(sess *session.Session, cfg *config.Config, interactive bool) (*Shell, error) {
	sh := &Shell{Session: sess}

	if interactive {
		if dir, err := config.ConfigDir(); err == nil {
			os.MkdirAll(dir, 0700)
		}
		historyPath, _ := config.HistoryPath()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:            "$ ",
			HistoryFile:       historyPath,
			HistoryLimit:      cfg.HistorySize,
			HistorySearchFold: true,
			AutoComplete:      NewCompleter(),
			InterruptPrompt:   "^C",
			EOFPrompt:         "exit",
		})
		if err != nil {
			return nil, err
		}
		sh.RL = rl
	} else {
		sh.in = bufio.NewReader(os.Stdin)
	}

	// Hand history access to the builtins.
	sess.HistoryGetter = sh.GetHistory
	sess.HistoryLoader = sh.LoadHistoryFile

	return sh, nil
}

// Run starts the REPL loop and returns the shell's exit status. EOF and the
// exit builtin end the loop; nothing else does.
func (sh *Shell) Run() int {
	if sh.RL != nil {
		defer sh.RL.Close()
	}

	ctx := context.Background()

	for {
		line, err := sh.readLine()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return 0 // EOF ends the shell cleanly
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "exit 0" {
			return 0
		}

		sh.history = append(sh.history, line)

		if expanded, wasAlias := expandAlias(line, sh.Session.Aliases); wasAlias {
			line = expanded
		}

		if err := sh.dispatch(ctx, line); err != nil {
			var exit *commands.ExitError
			if errors.As(err, &exit) {
				return exit.Code
			}
			fmt.Printf("gosh: %v\n", err)
		}
	}
}

func (sh *Shell) readLine() (string, error) {
	if sh.RL != nil {
		return sh.RL.Readline()
	}

	fmt.Fprint(os.Stdout, "$ ")
	line, err := sh.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// dispatch runs one non-empty input line: tokenize, pull out the
// redirection, then hand off to the pipeline, a builtin, or an external.
func (sh *Shell) dispatch(ctx context.Context, line string) error {
	words := Tokenize(line)
	if len(words) == 0 {
		return nil
	}

	residual, rd := ExtractRedirections(words)

	if len(residual) == 0 {
		// A bare redirection still creates or truncates its target.
		env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
		closers, err := applyRedirections(rd, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open: %v\n", err)
			return nil
		}
		closeAll(closers)
		return nil
	}

	if HasPipe(residual) {
		return RunPipeline(ctx, sh.Session, residual, rd)
	}

	if cmd, ok := commands.Get(residual[0]); ok {
		return RunBuiltin(ctx, sh.Session, cmd, residual[1:], rd)
	}

	RunExternal(ctx, residual, rd)
	return nil
}

// GetHistory returns a copy of every line entered so far, oldest first.
func (sh *Shell) GetHistory() []string {
	return append([]string(nil), sh.history...)
}

// LoadHistoryFile reads entries from path into the in-memory history and,
// when interactive, the line editor's history.
func (sh *Shell) LoadHistoryFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sh.history = append(sh.history, line)
		if sh.RL != nil {
			sh.RL.SaveHistory(line)
		}
	}
	return nil
}

// expandAlias substitutes the first word of line when it names an alias.
func expandAlias(line string, aliases map[string]string) (string, bool) {
	name, rest, _ := strings.Cut(line, " ")
	expansion, ok := aliases[name]
	if !ok {
		return line, false
	}
	if rest != "" {
		return expansion + " " + rest, true
	}
	return expansion, true
}
