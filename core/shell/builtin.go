package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	getopt "github.com/pborman/getopt/v2"
)

// BuiltinFunc runs a builtin with its arguments, command name already
// stripped. Returning ErrExit ends the read-eval loop; any other error
// is reported and the loop continues.
type BuiltinFunc func(s *Shell, args []string) error

// BuiltinCommand is one entry in the builtin table.
type BuiltinCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ParseFlags runs the arguments through getopt so the builtin gets
	// a --help flag. Builtins like cd and exit take their arguments
	// verbatim, a leading dash included.
	ParseFlags bool

	Run BuiltinFunc
}

// PrintHelp writes help for the command to the given writer.
func (b *BuiltinCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, b.Use)
	fmt.Fprintln(w, b.Short)
}

// Invoke parses flags when requested and runs the builtin. args is the
// full argument vector, name included.
func (b *BuiltinCommand) Invoke(s *Shell, args []string) error {
	if !b.ParseFlags {
		return b.Run(s, args[1:])
	}

	// A fresh set per invocation; getopt sets are single use.
	opts := getopt.New()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		b.PrintHelp(s.stderr)
		return nil
	}
	if *showHelp {
		b.PrintHelp(s.stdout)
		return nil
	}

	return b.Run(s, opts.Args())
}

// builtinTable builds the fixed name to handler mapping consulted by
// the dispatcher before any external launch.
func builtinTable() map[string]*BuiltinCommand {
	return map[string]*BuiltinCommand{
		"cd": {
			Use:   "cd [path]",
			Short: "Change the working directory.",
			Run:   builtinCd,
		},
		"pwd": {
			Use:        "pwd",
			Short:      "Print the name of the current working directory.",
			ParseFlags: true,
			Run:        builtinPwd,
		},
		"which": {
			Use:        "which NAME",
			Short:      "Locate a command.",
			ParseFlags: true,
			Run:        builtinWhich,
		},
		"exit": {
			Use:   "exit [args...]",
			Short: "Echo any arguments and leave the shell.",
			Run:   builtinExit,
		},
	}
}

func builtinCd(s *Shell, args []string) error {
	var target string
	switch len(args) {
	case 0:
		target = os.Getenv("HOME")
	case 1:
		target = args[0]
	default:
		return fmt.Errorf("cd: too many arguments")
	}

	switch {
	case target == "~":
		target = os.Getenv("HOME")
	case strings.HasPrefix(target, "~/"):
		target = filepath.Join(os.Getenv("HOME"), target[2:])
	}
	if target == "" {
		return fmt.Errorf("cd: HOME not set")
	}

	if err := os.Chdir(target); err != nil {
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("cd: %s: no such file or directory", target)
		case os.IsPermission(err):
			return fmt.Errorf("cd: %s: permission denied", target)
		default:
			return fmt.Errorf("cd: %s: %v", target, err)
		}
	}

	return nil
}

func builtinPwd(s *Shell, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("pwd: too many arguments")
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("pwd: %v", err)
	}
	fmt.Fprintln(s.stdout, wd)

	return nil
}

func builtinWhich(s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("which: expected one argument")
	}
	name := args[0]

	// Builtins shadow anything on disk.
	if _, ok := s.builtins[name]; ok {
		fmt.Fprintf(s.stdout, "%s: shell built-in command\n", name)
		return nil
	}

	for _, dir := range s.cfg.WhichPath {
		candidate := filepath.Join(dir, name)
		info, err := s.fs.Stat(candidate)
		if err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0 {
			fmt.Fprintln(s.stdout, candidate)
			return nil
		}
	}

	return fmt.Errorf("%s: command not found", name)
}

func builtinExit(s *Shell, args []string) error {
	// Trailing arguments are echoed before leaving.
	fmt.Fprintln(s.stdout, strings.Join(args, " "))

	return ErrExit
}
