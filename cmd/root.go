package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/minsh-project/minsh/core/config"
	"github.com/minsh-project/minsh/core/shell"
)

var cfgPath string

// loadConfig loads the configuration, falling back to the built-in
// defaults when no config file exists so the shell can run bare.
func loadConfig(osFs afero.Fs) *config.Config {
	cfg, err := config.Load(osFs, cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default()
	}
	if err != nil {
		log.Printf("ignoring bad config %q: %v", cfgPath, err)
		return config.Default()
	}

	return cfg
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "minsh [script]",
	Short: "A small line-oriented command interpreter.",
	Long: `minsh reads commands one line at a time and executes them,
supporting double-quoted arguments, <, > and >> redirection and a
single-stage pipeline. With a script argument it runs in batch mode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		osFs := afero.NewOsFs()
		cfg := loadConfig(osFs)

		interactive := isatty.IsTerminal(os.Stdin.Fd())
		input := cmd.InOrStdin()

		// Batch mode: the script replaces standard input.
		if len(args) == 1 {
			script, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer script.Close()

			input = script
			interactive = false
		}

		sh := shell.New(cfg, osFs, input, cmd.OutOrStdout(), cmd.ErrOrStderr())
		sh.Interactive = interactive

		return sh.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
