package cli

import (
	"fmt"

	"beatline-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var docID string
	var toDir string
	var exportFormat string
	var overwrite bool
	var all bool
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a document as markdown or plain text",
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

			opt := publish.RenderOptions{
				Style:           styleFor(app, doc.StyleID),
				ExpandCollapsed: all,
			}

			if stdout {
				var body string
				switch exportFormat {
				case "", "markdown", "md":
					body = publish.RenderDocumentMarkdown(*doc, opt)
				case "text", "txt":
					body = publish.RenderDocumentText(*doc, opt)
				default:
					return writeErr(cmd, fmt.Errorf("unknown export format: %s", exportFormat))
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			res, err := publish.WriteDocument(*doc, toDir, publish.WriteOptions{
				RenderOptions: opt,
				Format:        exportFormat,
				Overwrite:     overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "Document id (default: current document)")
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&exportFormat, "export-format", "markdown", "Export format (markdown|text)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing export file")
	cmd.Flags().BoolVar(&all, "all", false, "Include rows hidden by collapsed ancestors")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the rendered document instead of writing a file")
	return cmd
}
