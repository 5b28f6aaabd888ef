package cli

import (
	"beatline-cli/internal/scan"

	"github.com/spf13/cobra"
)

func newScanCmd(app *App) *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find entity mentions across a document's outlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := docID
			if id == "" {
				id = db.CurrentDocumentID
			}
			doc, ok := db.FindDocument(id)
			if !ok {
				return writeErr(cmd, errNotFound("document", id))
			}

			usages := scan.Document(*doc, db.Entities, styleFor(app, doc.StyleID))
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"documentId": doc.ID,
				"usages":     usages,
			}})
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "Document id (default: current document)")
	return cmd
}
