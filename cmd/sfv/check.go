package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [value]",
		Short: "Report whether a field value parses",
		Long: `Parse a field value and exit non-zero if it is invalid.
Nothing is printed on success. Failures are logged with their byte offset.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
	}
	fieldType := addTypeFlag(cmd, "list")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ft, err := fieldType()
		if err != nil {
			a.log.Error(err)
			return err
		}
		input, err := readValue(args, cmd.InOrStdin())
		if err != nil {
			a.log.Error(err)
			return err
		}
		_, err = a.parse(input, ft)
		return err
	}
	return cmd
}
