// Package shell implements a line-oriented command interpreter: a
// quoting-aware tokenizer, wildcard expansion, <, > and >> redirection,
// a single-stage pipeline, and a small builtin table.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/minsh-project/minsh/core/config"
)

var errColor = color.New(color.FgRed)

// Shell is one interpreter instance. It fully processes one line at a
// time, waiting for every spawned child before reading the next.
type Shell struct {
	// Interactive enables the readline prompt and the welcome and
	// goodbye messages.
	Interactive bool

	cfg    *config.Config
	fs     afero.Fs
	input  io.Reader
	stdout io.Writer
	stderr io.Writer

	builtins map[string]*BuiltinCommand
}

// New builds a shell reading commands from input. Launched commands
// inherit input, stdout and stderr unless redirected or piped.
func New(cfg *config.Config, fs afero.Fs, input io.Reader, stdout, stderr io.Writer) *Shell {
	return &Shell{
		cfg:      cfg,
		fs:       fs,
		input:    input,
		stdout:   stdout,
		stderr:   stderr,
		builtins: builtinTable(),
	}
}

// Run reads and executes commands until end-of-file or the exit
// builtin. The returned error is a fatal input failure, never a
// command failure.
func (s *Shell) Run() error {
	if !s.Interactive {
		return s.runBatch()
	}

	if s.cfg.Welcome != "" {
		fmt.Fprintln(s.stdout, s.cfg.Welcome)
	}
	if err := s.runInteractive(); err != nil {
		return err
	}
	if s.cfg.Goodbye != "" {
		fmt.Fprintln(s.stdout, s.cfg.Goodbye)
	}

	return nil
}

func (s *Shell) runInteractive() error {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.input),
		Stdout: s.stdout,
		Stderr: s.stderr,

		FuncIsTerminal: func() bool {
			return true
		},
	}
	if err := cfg.Init(); err != nil {
		return err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Line abandoned.

		case err != nil:
			return fmt.Errorf("read error: %w", err)
		}

		if err := s.Execute(line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			s.report(err)
		}
	}
}

func (s *Shell) runBatch() error {
	scanner := bufio.NewScanner(s.input)
	for scanner.Scan() {
		if err := s.Execute(scanner.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			s.report(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	return nil
}

// Execute runs one input line to completion, children included. The
// only error worth ending the loop over is ErrExit; everything else is
// scoped to the line that caused it.
func (s *Shell) Execute(line string) error {
	args := tokenize(line)
	if len(args) == 0 {
		return nil // Blank line or comment.
	}

	if builtin, ok := s.builtins[args[0].Text]; ok {
		return builtin.Invoke(s, texts(args))
	}

	args = expandWildcards(s.fs, args)
	s.launch(args)

	return nil
}

// prompt expands \w in the configured prompt, shortening the home
// directory to ~ the way interactive shells do.
func (s *Shell) prompt() string {
	prompt := s.cfg.Prompt
	if !strings.Contains(prompt, `\w`) {
		return prompt
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}
	if home := os.Getenv("HOME"); home != "" && strings.HasPrefix(wd, home) {
		wd = "~" + strings.TrimPrefix(wd, home)
	}

	return strings.ReplaceAll(prompt, `\w`, wd)
}

func (s *Shell) report(err error) {
	fmt.Fprintf(s.stderr, "%s %v\n", errColor.Sprint("minsh:"), err)
}

func (s *Shell) reportf(format string, args ...interface{}) {
	s.report(fmt.Errorf(format, args...))
}
