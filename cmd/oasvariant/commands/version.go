package commands

import (
	"github.com/erraggy/oasvariant"
	"github.com/erraggy/oasvariant/internal/cliutil"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliutil.Writef(cmd.OutOrStdout(), "oasvariant %s (commit %s, built %s)\n",
				oasvariant.Version(), oasvariant.Commit(), oasvariant.BuildTime())
			return nil
		},
	}
}
