// Copyright 2021 Jonathan Amsterdam.

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jba/parsec"
	"github.com/jba/parsec/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const stdinName = "stdin"

// readInput returns the contents of the file named by args, or of standard
// input if there is none or it is "-", along with a name for messages.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", errors.Wrap(err, "reading standard input")
		}
		return string(data), stdinName, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", errors.Wrapf(err, "reading %s", args[0])
	}
	return string(data), args[0], nil
}

// encode writes v to w in format, which is "json" or "yaml".
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// rejected logs a failed parse of the input called name and returns the
// error to report.
func (a *app) rejected(name string, err error) error {
	var rerr *parsec.RejectError
	if errors.As(err, &rerr) {
		a.log.WithFields(logging.Fields{
			"input":    name,
			"offset":   rerr.Index,
			"consumed": rerr.Consumed,
		}).Error("parse failed")
	}
	return errors.Wrap(err, name)
}
