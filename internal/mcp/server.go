// Package mcp exposes Beatline documents over the Model Context Protocol so
// agents can read outlines and inject generated sections. Write access goes
// through the same import contract as paste: label/depth items only, never
// raw tree mutation.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"beatline-cli/internal/outline"
	"beatline-cli/internal/parse"
	"beatline-cli/internal/publish"
	"beatline-cli/internal/scan"
	"beatline-cli/internal/store"
	"beatline-cli/internal/style"
)

// Serve runs a stdio MCP server over the given workspace store. Blocks
// until the client disconnects.
func Serve(s store.Store) error {
	srv := server.NewMCPServer(
		"beatline-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	srv.AddTool(listDocumentsTool(), listDocumentsHandler(s))
	srv.AddTool(getOutlineTool(), getOutlineHandler(s))
	srv.AddTool(importOutlineTool(), importOutlineHandler(s))
	srv.AddTool(scanEntitiesTool(), scanEntitiesHandler(s))

	return server.ServeStdio(srv)
}

func styleFor(s store.Store, docStyleID string) style.Config {
	custom, _ := style.LoadSheet(filepath.Join(s.Dir, "styles.yaml"))
	id := docStyleID
	if id == "" {
		if cfg, err := store.LoadConfig(); err == nil {
			id = cfg.DefaultStyleID
		}
	}
	if id == "" {
		id = style.DefaultPreset
	}
	return style.Resolve(id, custom)
}

// --- list_documents ---

func listDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("List documents in the workspace with their ids and titles."),
	)
}

func listDocumentsHandler(s store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		db, err := s.Load()
		if err != nil {
			return toolError(err)
		}
		if len(db.Documents) == 0 {
			return mcp.NewToolResultText("No documents."), nil
		}
		var sb strings.Builder
		for _, d := range db.Documents {
			marker := " "
			if d.ID == db.CurrentDocumentID {
				marker = "*"
			}
			archived := ""
			if d.Archived {
				archived = " (archived)"
			}
			fmt.Fprintf(&sb, "%s %s  %s%s\n", marker, d.ID, d.Title, archived)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_outline ---

func getOutlineTool() mcp.Tool {
	return mcp.NewTool("get_outline",
		mcp.WithDescription("Read a document's outline as numbered plain text. Collapsed sections are included."),
		mcp.WithString("document_id",
			mcp.Description("Document id. Omit for the current document."),
		),
	)
}

func getOutlineHandler(s store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		db, err := s.Load()
		if err != nil {
			return toolError(err)
		}
		id := req.GetString("document_id", "")
		if id == "" {
			id = db.CurrentDocumentID
		}
		doc, ok := db.FindDocument(id)
		if !ok {
			return toolError(fmt.Errorf("document not found: %s", id))
		}
		body := publish.RenderDocumentText(*doc, publish.RenderOptions{
			Style:           styleFor(s, doc.StyleID),
			ExpandCollapsed: true,
		})
		return mcp.NewToolResultText(body), nil
	}
}

// --- import_outline ---

func importOutlineTool() mcp.Tool {
	return mcp.NewTool("import_outline",
		mcp.WithDescription("Insert generated outline content into a document. Text goes through the same smart-paste pipeline as manual import (markdown or prefixed/indented text)."),
		mcp.WithString("text",
			mcp.Description("Outline text to import"),
			mcp.Required(),
		),
		mcp.WithString("document_id",
			mcp.Description("Document id. Omit for the current document."),
		),
		mcp.WithString("parent_node_id",
			mcp.Description("Insert under this node. Omit for the top level."),
		),
	)
}

func importOutlineHandler(s store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		if strings.TrimSpace(text) == "" {
			return toolError(fmt.Errorf("text is required"))
		}

		db, err := s.Load()
		if err != nil {
			return toolError(err)
		}
		id := req.GetString("document_id", "")
		if id == "" {
			id = db.CurrentDocumentID
		}
		doc, ok := db.FindDocument(id)
		if !ok {
			return toolError(fmt.Errorf("document not found: %s", id))
		}
		if len(doc.Blocks) == 0 {
			return toolError(fmt.Errorf("document has no outline block: %s", id))
		}
		blk := &doc.Blocks[0]

		var pid *string
		if p := req.GetString("parent_node_id", ""); p != "" {
			if outline.FindNode(blk.Tree, p) == nil {
				return toolError(fmt.Errorf("node not found: %s", p))
			}
			pid = &p
		}

		items := parse.Items(text)
		blk.Tree = outline.ImportInto(blk.Tree, pid, 1<<30, items)
		doc.UpdatedAt = time.Now().UTC()
		if err := s.Save(db); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Imported %d items into %s.", len(items), doc.ID)), nil
	}
}

// --- scan_entities ---

func scanEntitiesTool() mcp.Tool {
	return mcp.NewTool("scan_entities",
		mcp.WithDescription("Find registered entity mentions (people, places, dates, terms) across a document, with outline locations."),
		mcp.WithString("document_id",
			mcp.Description("Document id. Omit for the current document."),
		),
	)
}

func scanEntitiesHandler(s store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		db, err := s.Load()
		if err != nil {
			return toolError(err)
		}
		id := req.GetString("document_id", "")
		if id == "" {
			id = db.CurrentDocumentID
		}
		doc, ok := db.FindDocument(id)
		if !ok {
			return toolError(fmt.Errorf("document not found: %s", id))
		}
		usages := scan.Document(*doc, db.Entities, styleFor(s, doc.StyleID))
		if len(usages) == 0 {
			return mcp.NewToolResultText("No mentions found."), nil
		}
		var sb strings.Builder
		for _, u := range usages {
			loc := u.Location
			if loc == "" {
				loc = "-"
			}
			fmt.Fprintf(&sb, "%-8s %s (%s) in %q\n", loc, u.EntityName, u.EntityKind, u.Label)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
