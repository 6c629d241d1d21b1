package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfv"
	"github.com/forcebit/structured-fields-rfc9651-go/pkg/sfvjson"
)

func newSerializeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Serialize the JSON form of a field value",
		Long: `Read the JSON form of a field value from file, or stdin when no file is
given, and print its serialization.

Example:
  echo '[[1,[]],[{"__type":"token","value":"a"},[]]]' | sfv serialize`,
		Args: cobra.MaximumNArgs(1),
	}
	fieldType := addTypeFlag(cmd, "list")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ft, err := fieldType()
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		f, err := sfvjson.Unmarshal(data, ft)
		if err != nil {
			return err
		}
		out, err := sfv.Serialize(f, ft)
		if err != nil {
			var se *sfv.SerializeError
			if errors.As(err, &se) {
				a.log.WithField("kind", se.Kind.String()).Error(se.Message)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return cmd
}
