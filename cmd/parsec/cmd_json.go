// Copyright 2021 Jonathan Amsterdam.

package main

import (
	"time"
	"unicode/utf8"

	"github.com/jba/parsec/internal/logging"
	"github.com/jba/parsec/jsonparser"
	"github.com/spf13/cobra"
)

func newJSONCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json [file]",
		Short: "Parse a JSON document and print it re-encoded",
		Long: `Parse a JSON document from file, or standard input, with the combinator
grammar and print it as JSON or YAML. Object keys keep their input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			start := time.Now()
			v, err := jsonparser.Decode(src)
			a.log.WithFields(logging.Fields{
				"input":   name,
				"runes":   utf8.RuneCountInString(src),
				"elapsed": time.Since(start).String(),
			}).Debug("parsed json")
			if err != nil {
				return a.rejected(name, err)
			}
			return encode(cmd.OutOrStdout(), output, v)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}
