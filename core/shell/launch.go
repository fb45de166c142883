package shell

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// findPipe returns the index of the first unquoted | token, or -1.
// Only the first pipe is honored; any later | travels to the right
// command as a literal argument. This is a documented limitation.
func findPipe(args []token) int {
	for i, tok := range args {
		if !tok.Quoted && tok.Text == "|" {
			return i
		}
	}

	return -1
}

// launch runs one external command line, including the optional
// single-stage pipeline. Failures are reported on the shell's stderr
// and are never fatal; the read-eval loop always continues.
func (s *Shell) launch(args []token) {
	pipeAt := findPipe(args)
	if pipeAt < 0 {
		s.runSingle(args)
		return
	}

	left, right := args[:pipeAt], args[pipeAt+1:]
	if len(left) == 0 || len(right) == 0 {
		s.reportf("usage: cmd | cmd")
		return
	}

	s.runPipeline(left, right)
}

// command builds an exec.Cmd for one segment. The pipe ends, when
// present, win over the redirection plan, which wins over the shell's
// own streams. The bindings take effect in the child only, so a failed
// launch can never disturb the shell's descriptors.
func (s *Shell) command(argv []token, plan *redirPlan, stdin io.Reader, stdout io.Writer) *exec.Cmd {
	words := texts(argv)
	cmd := exec.Command(words[0], words[1:]...)

	cmd.Stdin = s.input
	if plan.In != nil {
		cmd.Stdin = plan.In
	}
	if stdin != nil {
		cmd.Stdin = stdin
	}

	cmd.Stdout = s.stdout
	if plan.Out != nil {
		cmd.Stdout = plan.Out
	}
	if stdout != nil {
		cmd.Stdout = stdout
	}

	cmd.Stderr = s.stderr

	return cmd
}

func (s *Shell) runSingle(args []token) {
	argv, plan, err := resolveRedirects(s.fs, args)
	if err != nil {
		s.report(err)
		return
	}
	defer plan.Close()

	if len(argv) == 0 {
		s.reportf("expected a command")
		return
	}

	cmd := s.command(argv, plan, nil, nil)
	if err := cmd.Run(); err != nil {
		s.reportRunError(argv[0].Text, err)
	}
}

func (s *Shell) runPipeline(left, right []token) {
	leftArgs, leftPlan, err := resolveRedirects(s.fs, left)
	if err != nil {
		s.report(err)
		return
	}
	defer leftPlan.Close()

	rightArgs, rightPlan, err := resolveRedirects(s.fs, right)
	if err != nil {
		s.report(err)
		return
	}
	defer rightPlan.Close()

	if len(leftArgs) == 0 || len(rightArgs) == 0 {
		s.reportf("usage: cmd | cmd")
		return
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		s.report(err)
		return
	}

	head := s.command(leftArgs, leftPlan, nil, pw)
	tail := s.command(rightArgs, rightPlan, pr, nil)

	if err := head.Start(); err != nil {
		pw.Close()
		pr.Close()
		s.reportRunError(leftArgs[0].Text, err)
		return
	}
	if err := tail.Start(); err != nil {
		// Drop the shell's write end first so the running head sees a
		// broken pipe instead of blocking forever.
		pw.Close()
		pr.Close()
		s.reportRunError(rightArgs[0].Text, err)
		head.Wait()
		return
	}

	// Both children hold their own pipe ends now. The shell must close
	// its copies, or the reader would never see end-of-stream.
	pw.Close()
	pr.Close()

	if err := head.Wait(); err != nil {
		s.reportRunError(leftArgs[0].Text, err)
	}
	if err := tail.Wait(); err != nil {
		s.reportRunError(rightArgs[0].Text, err)
	}
}

// reportRunError maps the errors out of exec.Cmd onto the shell's
// diagnostics. A nonzero child exit is not reported at all: the child
// ran, and its own stderr is sufficient.
func (s *Shell) reportRunError(name string, err error) {
	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &exitErr):
		// Terminal state reached, nothing to add.
	case errors.Is(err, exec.ErrNotFound):
		s.reportf("%s: command not found", name)
	default:
		s.report(err)
	}
}
