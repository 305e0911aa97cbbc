// Copyright 2021 Jonathan Amsterdam.

// Command parsec parses JSON documents, markdown titles and token streams
// with the grammars of the parsec module.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jba/parsec/internal/env"
	"github.com/jba/parsec/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "parsec:", err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands.
type app struct {
	log        logging.Logger
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewLogger(io.Discard)}
	rootCmd := &cobra.Command{
		Use:           "parsec",
		Short:         "Parse JSON, markdown titles and tokens with parser combinators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, env.ConfigFlag, "", "file of flag values (YAML, JSON or TOML)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(newJSONCmd(a))
	rootCmd.AddCommand(newTitleCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := (env.Flags{ConfigFile: a.configFile}).Apply(cmd); err != nil {
		return err
	}
	a.log = logging.NewLogger(cmd.ErrOrStderr())
	if err := a.log.SetLevel(a.logLevel); err != nil {
		return errors.Wrap(err, "--log-level")
	}
	if err := a.log.SetFormat(a.logFormat); err != nil {
		return errors.Wrap(err, "--log-format")
	}
	a.log.WithField("command", cmd.Name()).Debug("starting")
	return nil
}
