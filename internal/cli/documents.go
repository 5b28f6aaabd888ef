package cli

import (
	"errors"
	"strings"
	"time"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDocumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Document commands",
	}
	cmd.AddCommand(newDocumentsCreateCmd(app))
	cmd.AddCommand(newDocumentsListCmd(app))
	cmd.AddCommand(newDocumentsShowCmd(app))
	cmd.AddCommand(newDocumentsRenameCmd(app))
	cmd.AddCommand(newDocumentsArchiveCmd(app))
	cmd.AddCommand(newDocumentsUseCmd(app))
	return cmd
}

func newDocumentsCreateCmd(app *App) *cobra.Command {
	var title string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document with one empty outline block",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now().UTC()
			doc := model.Document{
				ID:        s.NextID(db, "doc"),
				Title:     strings.TrimSpace(title),
				Blocks:    []model.HierarchyBlockData{{ID: store.NewBlockID(), Tree: []model.HierarchyNode{}}},
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Documents = append(db.Documents, doc)
			if use || db.CurrentDocumentID == "" {
				db.CurrentDocumentID = doc.ID
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().BoolVar(&use, "use", false, "Also set as current document")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newDocumentsListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				ID        string    `json:"id"`
				Title     string    `json:"title"`
				Blocks    int       `json:"blocks"`
				Nodes     int       `json:"nodes"`
				Archived  bool      `json:"archived,omitempty"`
				UpdatedAt time.Time `json:"updatedAt"`
			}
			rows := []row{}
			for _, d := range db.Documents {
				if d.Archived && !includeArchived {
					continue
				}
				nodes := 0
				for _, blk := range d.Blocks {
					nodes += outline.CountNodes(blk.Tree)
				}
				rows = append(rows, row{
					ID:        d.ID,
					Title:     d.Title,
					Blocks:    len(d.Blocks),
					Nodes:     nodes,
					Archived:  d.Archived,
					UpdatedAt: d.UpdatedAt,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived documents")
	return cmd
}

func newDocumentsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [document-id]",
		Short: "Show a document with its full outline trees (default: current document)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := db.CurrentDocumentID
			if len(args) == 1 {
				id = args[0]
			}
			doc, ok := db.FindDocument(id)
			if !ok {
				return writeErr(cmd, errNotFound("document", id))
			}
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}
	return cmd
}

func newDocumentsRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <document-id> <title>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			title := strings.TrimSpace(args[1])
			if title == "" {
				return writeErr(cmd, errors.New("missing title"))
			}
			doc.Title = title
			doc.UpdatedAt = time.Now().UTC()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}
	return cmd
}

func newDocumentsArchiveCmd(app *App) *cobra.Command {
	var unarchive bool

	cmd := &cobra.Command{
		Use:   "archive <document-id>",
		Short: "Archive a document (hidden from lists, never deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			doc.Archived = !unarchive
			doc.UpdatedAt = time.Now().UTC()
			if db.CurrentDocumentID == doc.ID && doc.Archived {
				db.CurrentDocumentID = ""
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc})
		},
	}

	cmd.Flags().BoolVar(&unarchive, "unarchive", false, "Restore instead of archive")
	return cmd
}

func newDocumentsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <document-id>",
		Short: "Set the current document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("document", args[0]))
			}
			db.CurrentDocumentID = doc.ID
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentDocumentId": doc.ID}})
		},
	}
	return cmd
}
