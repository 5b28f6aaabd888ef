package cli

import (
	"beatline-cli/internal/outline"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show local Beatline DB status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			nodes := 0
			blocks := 0
			for _, doc := range db.Documents {
				for _, blk := range doc.Blocks {
					blocks++
					nodes += outline.CountNodes(blk.Tree)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":               s.Dir,
					"workspace":         app.Workspace,
					"currentDocumentId": db.CurrentDocumentID,
					"documents":         len(db.Documents),
					"blocks":            blocks,
					"nodes":             nodes,
					"entities":          len(db.Entities),
				},
			})
		},
	}
	return cmd
}
