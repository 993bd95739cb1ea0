package commands

import (
	"github.com/erraggy/oasvariant/internal/mcpserver"
	"github.com/spf13/cobra"
)

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the passes and the build as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context(),
				mcpserver.WithLogger(a.logger),
				mcpserver.WithConverter(newConverter(a.logger)),
			)
		},
	}
}
