// Copyright 2021 Jonathan Amsterdam.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jba/parsec"
	"github.com/jba/parsec/jsonparser"
	"github.com/jba/parsec/markdown"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	prompt      = "parsec> "
	historyFile = ".parsec_history"
)

func newReplCmd(a *app) *cobra.Command {
	var grammar, history string

	home, _ := os.UserHomeDir()

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively",
		Long: `Read lines with line editing, parse each with the chosen grammar and
print the result or where the parse failed. Type :quit or Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, err := evaluator(grammar)
			if err != nil {
				return err
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			if history != "" {
				if f, err := os.Open(history); err == nil {
					n, _ := ln.ReadHistory(f)
					f.Close()
					a.log.Debugf("read %d history entries from %s", n, history)
				}
				defer func() {
					if f, err := os.Create(history); err == nil {
						_, _ = ln.WriteHistory(f)
						_ = f.Close()
					}
				}()
			}
			return repl(ln, cmd.OutOrStdout(), eval, ln.AppendHistory)
		},
	}

	cmd.Flags().StringVar(&grammar, "grammar", "json", "grammar for each line: json or title")
	cmd.Flags().StringVar(&history, "history", filepath.Join(home, historyFile), "history file; empty for none")
	return cmd
}

type prompter interface {
	Prompt(string) (string, error)
}

// repl prompts for lines until end of input or :quit. Each non-blank line
// is passed to remember and then evaluated.
func repl(p prompter, w io.Writer, eval func(string) (string, error), remember func(string)) error {
	for {
		line, err := p.Prompt(prompt)
		if err == io.EOF || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit":
			return nil
		}
		remember(line)
		out, err := eval(line)
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			continue
		}
		fmt.Fprintln(w, out)
	}
}

// evaluator returns a function that parses a line with grammar and formats
// the result as compact JSON.
func evaluator(grammar string) (func(string) (string, error), error) {
	var parse func(string) (any, error)
	switch grammar {
	case "json":
		parse = jsonparser.Decode
	case "title":
		parse = func(s string) (any, error) {
			return markdown.TitleParser().Run(parsec.OfString(s))
		}
	default:
		return nil, errors.Errorf("unknown grammar %q (want json or title)", grammar)
	}
	return func(line string) (string, error) {
		v, err := parse(line)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}, nil
}
