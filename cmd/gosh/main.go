package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/okarlsson/gosh/internal/config"
	"github.com/okarlsson/gosh/internal/session"
	"github.com/okarlsson/gosh/internal/shell"

	// Register builtins
	_ "github.com/okarlsson/gosh/internal/commands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
		os.Exit(1)
	}

	sess := session.New()
	sess.HomeDir = os.Getenv("HOME")
	for k, v := range cfg.Aliases {
		sess.Aliases[k] = v
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	sh, err := shell.New(sess, cfg, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gosh: failed to start shell: %v\n", err)
		os.Exit(1)
	}

	os.Exit(sh.Run())
}
