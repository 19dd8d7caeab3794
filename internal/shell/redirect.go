package shell

import (
	"io"
	"os"
	"strings"

	"github.com/okarlsson/gosh/internal/commands"
)

// Redirect names the file target for one standard stream.
type Redirect struct {
	Path   string
	Append bool
}

// Redirections holds the redirect targets extracted from a command line.
type Redirections struct {
	Stdout *Redirect
	Stderr *Redirect
}

// redirectOps in longest-match order, so that ">>f" never parses as ">"
// with target ">f".
var redirectOps = []struct {
	op     string
	stderr bool
	app    bool
}{
	{"2>>", true, true},
	{"1>>", false, true},
	{">>", false, true},
	{"2>", true, false},
	{"1>", false, false},
	{">", false, false},
}

// ExtractRedirections scans words left to right for the first redirection
// and removes it, returning the residual words. An operator may be a word of
// its own ("> file") or carry its target attached (">file"). A standalone
// operator with no following word is left in place and ends the scan. Only
// the first redirection on a line is extracted.
func ExtractRedirections(words []string) ([]string, Redirections) {
	var rd Redirections

	for i, w := range words {
		for _, o := range redirectOps {
			if w == o.op {
				if i+1 >= len(words) {
					return words, rd
				}
				rd.set(o.stderr, words[i+1], o.app)
				residual := append([]string{}, words[:i]...)
				return append(residual, words[i+2:]...), rd
			}
		}
		for _, o := range redirectOps {
			if strings.HasPrefix(w, o.op) && len(w) > len(o.op) {
				rd.set(o.stderr, w[len(o.op):], o.app)
				residual := append([]string{}, words[:i]...)
				return append(residual, words[i+1:]...), rd
			}
		}
	}
	return words, rd
}

func (rd *Redirections) set(stderr bool, path string, app bool) {
	r := &Redirect{Path: path, Append: app}
	if stderr {
		rd.Stderr = r
	} else {
		rd.Stdout = r
	}
}

// openRedirect opens the target file: truncating or appending, created 0666.
func openRedirect(r *Redirect) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if r.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(r.Path, flags, 0o666)
}

// applyRedirections binds the redirect targets into env, leaving the shell's
// own stdio untouched. The returned closers must be closed on every exit
// path from the command they were opened for.
func applyRedirections(rd Redirections, env *commands.ExecutionEnv) ([]io.Closer, error) {
	var closers []io.Closer

	if rd.Stdout != nil {
		f, err := openRedirect(rd.Stdout)
		if err != nil {
			return nil, err
		}
		closers = append(closers, f)
		env.Stdout = f
	}

	if rd.Stderr != nil {
		f, err := openRedirect(rd.Stderr)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, f)
		env.Stderr = f
	}

	return closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
