package cli

import (
	beatmcp "beatline-cli/internal/mcp"
	"beatline-cli/internal/store"

	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run a stdio MCP server exposing the workspace to agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve the workspace dir without keeping the DB open; each
			// tool call loads fresh state so CLI edits stay visible.
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return beatmcp.Serve(store.Store{Dir: s.Dir})
		},
	}
	return cmd
}
