package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/okarlsson/gosh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "history",
		Description: "Show or manage command history",
		Usage:       "history [-r file] [-w file] [-a file] [n]\n\nOptions:\n  -r file   Read history entries from file\n  -w file   Write all history entries to file\n  -a file   Append entries added since the last write to file\n\nWith a numeric argument n, only the last n entries are shown.",
		Run:         history,
	})
}

func history(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	readFile := fs.StringP("read", "r", "", "read history entries from file")
	writeFile := fs.StringP("write", "w", "", "write history entries to file")
	appendFile := fs.StringP("append", "a", "", "append new history entries to file")
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *readFile != "" {
		if s.HistoryLoader == nil {
			return fmt.Errorf("history not available")
		}
		if err := s.HistoryLoader(*readFile); err != nil {
			return fmt.Errorf("-r %s: %w", *readFile, err)
		}
		return nil
	}

	if s.HistoryGetter == nil {
		return fmt.Errorf("history not available")
	}
	hist := s.HistoryGetter()

	if *writeFile != "" {
		if err := writeHistory(*writeFile, hist, false); err != nil {
			return fmt.Errorf("-w %s: %w", *writeFile, err)
		}
		s.HistoryAppendMark = len(hist)
		return nil
	}

	if *appendFile != "" {
		mark := s.HistoryAppendMark
		if mark > len(hist) {
			mark = len(hist)
		}
		if err := writeHistory(*appendFile, hist[mark:], true); err != nil {
			return fmt.Errorf("-a %s: %w", *appendFile, err)
		}
		s.HistoryAppendMark = len(hist)
		return nil
	}

	start := 0
	if rest := fs.Args(); len(rest) == 1 {
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%s: numeric argument required", rest[0])
		}
		if n < len(hist) {
			start = len(hist) - n
		}
	}

	for i := start; i < len(hist); i++ {
		fmt.Fprintf(env.Stdout, " %d %s\n", i+1, hist[i])
	}
	return nil
}

func writeHistory(path string, entries []string, appendMode bool) error {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(entries) == 0 {
		return nil
	}
	_, err = f.WriteString(strings.Join(entries, "\n") + "\n")
	return err
}
