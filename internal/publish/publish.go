package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"beatline-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Format    string // "markdown" or "text"
	Overwrite bool
}

type WriteResult struct {
	Written string `json:"written"`
}

// WriteDocument renders the document and writes it under toDir as
// <document-id>.md (or .txt). Existing files are only replaced with
// Overwrite set.
func WriteDocument(doc model.Document, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	var body, ext string
	switch opt.Format {
	case "", "markdown", "md":
		body = RenderDocumentMarkdown(doc, opt.RenderOptions)
		ext = ".md"
	case "text", "txt":
		body = RenderDocumentText(doc, opt.RenderOptions)
		ext = ".txt"
	default:
		return WriteResult{}, errors.New("unknown export format: " + opt.Format)
	}

	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(toDir, doc.ID+ext)
	if !opt.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return WriteResult{}, errors.New("file exists (use --overwrite): " + outPath)
		}
	}
	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: outPath}, nil
}
