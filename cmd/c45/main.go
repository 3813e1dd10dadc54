// Command c45 grows C4.5-style decision trees from CSV files and tests them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/c45/pkg/config"
	"github.com/YuminosukeSato/c45/pkg/errors"
	"github.com/YuminosukeSato/c45/pkg/log"
)

// Exit codes.
const (
	exitConfig = 1
	exitInput  = 2
	exitFit    = 3
	exitOutput = 4
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// cobra usage errors
	return exitConfig
}

// guarded runs fn and reports a panic inside it as a fit failure.
func guarded(operation string, fn func() error) error {
	err := errors.SafeExecute(operation, fn)
	var pe *errors.PanicError
	if errors.As(err, &pe) {
		return fail(exitFit, err)
	}
	return err
}

type rootCmdConfig struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func main() {
	cmd := cliParser()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func cliParser() *cobra.Command {
	root := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "c45",
		Short: "c45 grows C4.5-style decision trees",
		Long:  `A tool to grow decision trees from CSV data, print them as rules, and test them against held-out data`,
		// errors are printed once by main
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fail(exitConfig, err)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = root.logLevel
			}
			if err := log.SetupLogger(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
				return fail(exitConfig, err)
			}
			root.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&root.configPath, "config", "c", "", "path to a YAML file with run settings")
	rootCmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.AddCommand(versionCmd(), growCmd(root), testCmd(root))
	return rootCmd
}
