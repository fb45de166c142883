package shell

import (
	"errors"
	"fmt"
)

// ErrExit is returned by the exit builtin to end the read-eval loop.
var ErrExit = errors.New("exit")

// ErrSyntax marks a malformed command line, e.g. a redirection
// operator with no filename after it.
var ErrSyntax = errors.New("syntax error")

func syntaxf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrSyntax}, args...)...)
}

// OpenError reports a redirection target that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
