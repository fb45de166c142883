package shell

import (
	"os"

	"github.com/spf13/afero"
)

// redirPlan holds the files a command's redirection operators resolved
// to. A nil field leaves the corresponding standard stream alone. The
// plan is built once per command segment and consumed by the launcher;
// it is never applied to the shell's own streams.
type redirPlan struct {
	In  afero.File // becomes the command's stdin (stream 0)
	Out afero.File // becomes the command's stdout (stream 1)
}

// Close releases every descriptor the plan still holds.
func (p *redirPlan) Close() {
	if p == nil {
		return
	}
	if p.In != nil {
		p.In.Close()
	}
	if p.Out != nil {
		p.Out.Close()
	}
}

// resolveRedirects scans args for the first unquoted < and the first
// unquoted > or >>, opens the named files, and returns a new argument
// vector with the operators and their filenames stripped. The caller
// owns the returned plan. On error, any descriptor opened before the
// failure has already been closed.
func resolveRedirects(fs afero.Fs, args []token) ([]token, *redirPlan, error) {
	plan := &redirPlan{}
	out := make([]token, 0, len(args))

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok.Quoted {
			out = append(out, tok)
			continue
		}

		switch tok.Text {
		case "<":
			if plan.In != nil {
				// Only the first < is honored.
				out = append(out, tok)
				continue
			}
			if i+1 >= len(args) {
				plan.Close()
				return nil, nil, syntaxf("expected file name after '<'")
			}

			name := args[i+1].Text
			fd, err := fs.Open(name)
			if err != nil {
				plan.Close()
				return nil, nil, &OpenError{Path: name, Err: err}
			}
			plan.In = fd
			i++

		case ">", ">>":
			if plan.Out != nil {
				out = append(out, tok)
				continue
			}
			if i+1 >= len(args) {
				plan.Close()
				return nil, nil, syntaxf("expected file name after '%s'", tok.Text)
			}

			flag := os.O_WRONLY | os.O_CREATE
			if tok.Text == ">" {
				flag |= os.O_TRUNC
			} else {
				flag |= os.O_APPEND
			}

			name := args[i+1].Text
			fd, err := fs.OpenFile(name, flag, 0644)
			if err != nil {
				plan.Close()
				return nil, nil, &OpenError{Path: name, Err: err}
			}
			plan.Out = fd
			i++

		default:
			out = append(out, tok)
		}
	}

	return out, plan, nil
}
