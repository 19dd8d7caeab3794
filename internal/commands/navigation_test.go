package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okarlsson/gosh/internal/commands"
	"github.com/okarlsson/gosh/internal/session"
)

func TestPwd(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	stdout, _ := runBuiltin(t, "pwd", nil)
	if stdout != wd+"\n" {
		t.Errorf("pwd = %q, want %q", stdout, wd+"\n")
	}
}

func TestCd(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	t.Run("absolute path", func(t *testing.T) {
		dir := t.TempDir()
		_, stderr := runBuiltin(t, "cd", []string{dir})
		if stderr != "" {
			t.Fatalf("cd %s wrote %q to stderr", dir, stderr)
		}
		wd, _ := os.Getwd()
		if resolved, _ := filepath.EvalSymlinks(dir); wd != dir && wd != resolved {
			t.Errorf("cwd = %q, want %q", wd, dir)
		}
	})

	t.Run("relative path", func(t *testing.T) {
		base := t.TempDir()
		if err := os.Mkdir(filepath.Join(base, "sub"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(base); err != nil {
			t.Fatal(err)
		}

		_, stderr := runBuiltin(t, "cd", []string{"sub"})
		if stderr != "" {
			t.Fatalf("cd sub wrote %q to stderr", stderr)
		}
		wd, _ := os.Getwd()
		if filepath.Base(wd) != "sub" {
			t.Errorf("cwd = %q, want .../sub", wd)
		}
	})

	t.Run("no argument is a no-op", func(t *testing.T) {
		before, _ := os.Getwd()
		stdout, stderr := runBuiltin(t, "cd", nil)
		after, _ := os.Getwd()
		if before != after || stdout != "" || stderr != "" {
			t.Errorf("cd with no args changed state: cwd %q -> %q, out %q, err %q", before, after, stdout, stderr)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, stderr := runBuiltin(t, "cd", []string{"/no/such/dir"})
		if stderr != "cd: /no/such/dir: No such file or directory\n" {
			t.Errorf("cd error = %q", stderr)
		}
	})

	t.Run("tilde goes home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		_, stderr := runBuiltin(t, "cd", []string{"~"})
		if stderr != "" {
			t.Fatalf("cd ~ wrote %q to stderr", stderr)
		}
		wd, _ := os.Getwd()
		if resolved, _ := filepath.EvalSymlinks(home); wd != home && wd != resolved {
			t.Errorf("cwd = %q, want %q", wd, home)
		}
	})

	t.Run("tilde without HOME", func(t *testing.T) {
		t.Setenv("HOME", "")

		_, stderr := runBuiltin(t, "cd", []string{"~"})
		if stderr != "cd: HOME not set\n" {
			t.Errorf("cd ~ error = %q", stderr)
		}
	})
}

func TestExit(t *testing.T) {
	cmd, ok := commands.Get("exit")
	if !ok {
		t.Fatal("exit not registered")
	}

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no argument", nil, 0},
		{"explicit zero", []string{"0"}, 0},
		{"nonzero code", []string{"7"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			env := &commands.ExecutionEnv{Stdout: &out, Stderr: &out}
			err := cmd.Run(context.Background(), session.New(), env, tt.args)

			var exitErr *commands.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("exit %v returned %v, want ExitError", tt.args, err)
			}
			if exitErr.Code != tt.code {
				t.Errorf("exit %v code = %d, want %d", tt.args, exitErr.Code, tt.code)
			}
		})
	}

	t.Run("non-numeric argument", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errBuf}
		err := cmd.Run(context.Background(), session.New(), env, []string{"abc"})

		var exitErr *commands.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 2 {
			t.Fatalf("exit abc returned %v, want ExitError with code 2", err)
		}
		if !strings.Contains(errBuf.String(), "numeric argument required") {
			t.Errorf("exit abc stderr = %q", errBuf.String())
		}
	})
}
