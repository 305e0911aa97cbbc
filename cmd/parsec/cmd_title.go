// Copyright 2021 Jonathan Amsterdam.

package main

import (
	"github.com/jba/parsec"
	"github.com/jba/parsec/markdown"
	"github.com/spf13/cobra"
)

func newTitleCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "title [file]",
		Short: "Parse a markdown title",
		Long: `Parse a sharp ("## Title") or underlined markdown title and print its
level, text and form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			t, err := markdown.TitleParser().Run(parsec.OfString(src))
			if err != nil {
				return a.rejected(name, err)
			}
			a.log.WithField("level", t.Level).Debugf("parsed %s title", t.TypeOption)
			return encode(cmd.OutOrStdout(), output, t)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}
