package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/okarlsson/gosh/internal/commands"
	"github.com/okarlsson/gosh/internal/session"
)

func runBuiltin(t *testing.T, name string, args []string) (stdout, stderr string) {
	t.Helper()

	cmd, ok := commands.Get(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}

	var out, errBuf bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errBuf}
	if err := cmd.Run(context.Background(), session.New(), env, args); err != nil {
		t.Fatalf("%s %v: %v", name, args, err)
	}
	return out.String(), errBuf.String()
}

func TestEcho(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"joins args with single spaces", []string{"hello", "world"}, "hello world\n"},
		{"single arg", []string{"hi"}, "hi\n"},
		{"no args prints just a newline", nil, "\n"},
		{"preserves inner whitespace of one arg", []string{"hello   world"}, "hello   world\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _ := runBuiltin(t, "echo", tt.args)
			if stdout != tt.expected {
				t.Errorf("echo %v = %q, want %q", tt.args, stdout, tt.expected)
			}
		})
	}
}
