package cli

import (
	"errors"
	"strings"
	"time"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/store"
	"beatline-cli/internal/style"

	"github.com/spf13/cobra"
)

// blockTarget is the shared --doc/--block addressing for node commands.
// Empty doc means the current document; empty block means its first block.
type blockTarget struct {
	DocID   string
	BlockID string
}

func (t *blockTarget) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.DocID, "doc", "", "Document id (default: current document)")
	cmd.Flags().StringVar(&t.BlockID, "block", "", "Outline block id (default: first block)")
}

func resolveBlock(db *store.DB, t blockTarget) (*model.Document, *model.HierarchyBlockData, error) {
	docID := t.DocID
	if docID == "" {
		docID = db.CurrentDocumentID
	}
	if docID == "" {
		return nil, nil, errors.New("no current document; run `beatline documents create --title ... --use` (or pass --doc)")
	}
	doc, ok := db.FindDocument(docID)
	if !ok {
		return nil, nil, errNotFound("document", docID)
	}
	if t.BlockID != "" {
		for i := range doc.Blocks {
			if doc.Blocks[i].ID == t.BlockID {
				return doc, &doc.Blocks[i], nil
			}
		}
		return nil, nil, errNotFound("block", t.BlockID)
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = append(doc.Blocks, model.HierarchyBlockData{ID: store.NewBlockID(), Tree: []model.HierarchyNode{}})
	}
	return doc, &doc.Blocks[0], nil
}

func saveBlock(s store.Store, db *store.DB, doc *model.Document, blk *model.HierarchyBlockData, tree []model.HierarchyNode) error {
	blk.Tree = tree
	doc.UpdatedAt = time.Now().UTC()
	return s.Save(db)
}

func newNodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Outline node commands",
	}
	cmd.AddCommand(newNodesAddCmd(app))
	cmd.AddCommand(newNodesShowCmd(app))
	cmd.AddCommand(newNodesUpdateCmd(app))
	cmd.AddCommand(newNodesRemoveCmd(app))
	cmd.AddCommand(newNodesMoveCmd(app))
	cmd.AddCommand(newNodesIndentCmd(app))
	cmd.AddCommand(newNodesOutdentCmd(app))
	cmd.AddCommand(newNodesCollapseCmd(app))
	return cmd
}

func newNodesAddCmd(app *App) *cobra.Command {
	var target blockTarget
	var parentID string
	var index int
	var typ string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a node (top level by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, blk, err := resolveBlock(db, target)
			if err != nil {
				return writeErr(cmd, err)
			}

			var pid *string
			if parentID != "" {
				if outline.FindNode(blk.Tree, parentID) == nil {
					return writeErr(cmd, errNotFound("node", parentID))
				}
				pid = &parentID
			}

			node := outline.NewNode(pid, model.NodeType(typ), strings.TrimSpace(args[0]))
			tree := outline.InsertNode(blk.Tree, node, pid, index)
			if err := saveBlock(s, db, doc, blk, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": node})
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent node id (default: top level)")
	cmd.Flags().IntVar(&index, "index", 1<<30, "Insert position among siblings (default: append)")
	cmd.Flags().StringVar(&typ, "type", string(model.NodeDefault), "Node type (default|body|container|data|action|reference|link)")
	return cmd
}

func newNodesShowCmd(app *App) *cobra.Command {
	var target blockTarget
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the flattened outline with numbering prefixes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, blk, err := resolveBlock(db, target)
			if err != nil {
				return writeErr(cmd, err)
			}

			flat := outline.Flatten(blk.Tree)
			if all {
				flat = outline.FlattenAll(blk.Tree)
			}
			indexes := outline.NumberIndexes(flat)
			cfg := styleFor(app, doc.StyleID)

			type row struct {
				model.FlatNode
				Prefix   string `json:"prefix"`
				Location string `json:"location"`
			}
			rows := make([]row, len(flat))
			for i := range flat {
				p := style.FormatPrefix(flat[i].Depth, indexes[i], cfg)
				rows[i] = row{
					FlatNode: flat[i],
					Prefix:   p.String(),
					Location: style.Location(indexes[i], cfg),
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"documentId": doc.ID,
				"blockId":    blk.ID,
				"rows":       rows,
			}})
		},
	}

	target.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Include rows hidden by collapsed ancestors")
	return cmd
}

func newNodesUpdateCmd(app *App) *cobra.Command {
	var target blockTarget
	var label, typ string

	cmd := &cobra.Command{
		Use:   "update <node-id>",
		Short: "Patch a node's label or type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, blk, err := resolveBlock(db, target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if outline.FindNode(blk.Tree, args[0]) == nil {
				return writeErr(cmd, errNotFound("node", args[0]))
			}

			upd := outline.NodeUpdate{}
			if cmd.Flags().Changed("label") {
				upd.Label = &label
			}
			if cmd.Flags().Changed("type") {
				t := model.NodeType(typ)
				upd.Type = &t
			}
			tree := outline.UpdateNode(blk.Tree, args[0], upd)
			if err := saveBlock(s, db, doc, blk, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": outline.FindNode(blk.Tree, args[0])})
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&typ, "type", "", "New node type")
	return cmd
}

func newNodesRemoveCmd(app *App) *cobra.Command {
	var target blockTarget

	cmd := &cobra.Command{
		Use:   "remove <node-id>",
		Short: "Remove a node and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, blk, err := resolveBlock(db, target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if outline.FindNode(blk.Tree, args[0]) == nil {
				return writeErr(cmd, errNotFound("node", args[0]))
			}
			tree := outline.DeleteNode(blk.Tree, args[0])
			if err := saveBlock(s, db, doc, blk, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}

	target.register(cmd)
	return cmd
}

func newNodesMoveCmd(app *App) *cobra.Command {
	var target blockTarget
	var parentID string
	var toRoot bool
	var index int

	cmd := &cobra.Command{
		Use:   "move <node-id>",
		Short: "Move a node (and subtree) to a new parent/position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, blk, err := resolveBlock(db, target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if outline.FindNode(blk.Tree, args[0]) == nil {
				return writeErr(cmd, errNotFound("node", args[0]))
			}

			var pid *string
			if !toRoot {
				if parentID == "" {
					return writeErr(cmd, errors.New("missing --parent (or pass --root)"))
				}
				pid = &parentID
			}
			tree := outline.MoveNode(blk.Tree, args[0], pid, index)
			if err := saveBlock(s, db, doc, blk, tree); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": outline.FindNode(blk.Tree, args[0])})
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&parentID, "parent", "", "New parent node id")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move to the top level")
	cmd.Flags().IntVar(&index, "index", 1<<30, "Position among new siblings (default: append)")
	return cmd
}

func newNodesIndentCmd(app *App) *cobra.Command {
	var target blockTarget
	cmd := &cobra.Command{
		Use:   "indent <node-id>",
		Short: "Indent a node under its preceding sibling",
		Args:  cobra.ExactArgs(1),
		RunE:  nodeStructuralRunE(app, &target, outline.IndentNode),
	}
	target.register(cmd)
	return cmd
}

func newNodesOutdentCmd(app *App) *cobra.Command {
	var target blockTarget
	cmd := &cobra.Command{
		Use:   "outdent <node-id>",
		Short: "Outdent a node to its parent's level",
		Args:  cobra.ExactArgs(1),
		RunE:  nodeStructuralRunE(app, &target, outline.OutdentNode),
	}
	target.register(cmd)
	return cmd
}

func newNodesCollapseCmd(app *App) *cobra.Command {
	var target blockTarget
	cmd := &cobra.Command{
		Use:   "collapse <node-id>",
		Short: "Toggle a node's collapsed state",
		Args:  cobra.ExactArgs(1),
		RunE:  nodeStructuralRunE(app, &target, outline.ToggleCollapse),
	}
	target.register(cmd)
	return cmd
}

func nodeStructuralRunE(app *App, target *blockTarget, op func([]model.HierarchyNode, string) []model.HierarchyNode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, s, err := loadDB(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		doc, blk, err := resolveBlock(db, *target)
		if err != nil {
			return writeErr(cmd, err)
		}
		if outline.FindNode(blk.Tree, args[0]) == nil {
			return writeErr(cmd, errNotFound("node", args[0]))
		}
		tree := op(blk.Tree, args[0])
		if err := saveBlock(s, db, doc, blk, tree); err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, map[string]any{"data": outline.FindNode(blk.Tree, args[0])})
	}
}
