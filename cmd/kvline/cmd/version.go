package cmd

import (
	"fmt"

	"github.com/0xalexb/kvline"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), kvline.VersionString())

			return err //nolint:wrapcheck // write errors are reported as is.
		},
	}
}
