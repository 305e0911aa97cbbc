// Copyright 2021 Jonathan Amsterdam.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jba/parsec/genlex"
	"github.com/jba/parsec/jsonparser"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	var keywords []string

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Split input into tokens and print them as a table",
		Long: `Split input into numbers, strings, identifiers and keywords with the
generic lexer. The keywords default to those of JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			lx := genlex.New(keywords...)
			a.log.WithField("keywords", lx.Keywords()).Debug("lexer")
			toks, err := lx.Scan(src)
			if err != nil {
				return a.rejected(name, err)
			}
			a.log.Debugf("%d tokens", len(toks))
			generateTableTokens(cmd.OutOrStdout(), toks).Render()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keywords", jsonparser.Keywords(), "keywords of the lexer")
	return cmd
}

func generateTableTokens(w io.Writer, toks []genlex.Positioned) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Offset", "Kind", "Text", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, t := range toks {
		table.Append([]string{strconv.Itoa(t.Offset), t.Kind.String(), t.Text, fmt.Sprint(t.Value)})
	}
	return table
}
