package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfvjson"
)

func newParseCmd(a *app) *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "parse [value]",
		Short: "Parse a field value and print it",
		Long: `Parse a field value and print its JSON form.

The value is taken from the argument, or read from stdin where every line is
one field line. Lines are combined with ", " before parsing.

Examples:
  sfv parse 'sugar, tea;q=0.8, rum'
  sfv parse --type item --canonical '1.50'`,
		Args: cobra.MaximumNArgs(1),
	}
	fieldType := addTypeFlag(cmd, "list")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical serialization instead of JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ft, err := fieldType()
		if err != nil {
			return err
		}
		input, err := readValue(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		f, err := a.parse(input, ft)
		if err != nil {
			return err
		}

		var out string
		if canonical {
			out, err = sfv.Serialize(f, ft)
		} else {
			var data []byte
			data, err = sfvjson.Marshal(f)
			out = string(data)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return cmd
}

// parse parses input with the configured limits, logging the failure
// position when it does not.
func (a *app) parse(input string, ft sfv.FieldType) (sfv.Field, error) {
	f, err := sfv.ParseWithLimits(input, ft, a.limits())
	if err != nil {
		entry := a.log.WithField("type", ft.String())
		var pe *sfv.ParseError
		if errors.As(err, &pe) {
			entry = entry.WithFields(logrus.Fields{
				"offset": pe.Offset,
				"kind":   pe.Kind.String(),
				"near":   pe.Context,
			})
		}
		entry.Error(err)
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"type":  ft.String(),
		"bytes": len(input),
	}).Debug("parsed field")
	return f, nil
}
