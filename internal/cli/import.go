package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/parse"
	"beatline-cli/internal/watcher"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var target blockTarget
	var parentID string
	var index int
	var fromClipboard bool
	var dryRun bool
	var strip bool
	var plain bool
	var watch bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Smart-paste text into the outline (stdin when no file)",
		Long: strings.TrimSpace(`
Import converts pasted or piped text into outline nodes. Markdown is parsed
structurally; plain text goes through prefix/date/indentation heuristics and
falls back to a flat list when nothing outline-shaped is detected.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && len(args) == 0 {
				return writeErr(cmd, errors.New("--watch requires a file argument"))
			}

			read := func() (string, error) {
				switch {
				case fromClipboard:
					return clipboard.ReadAll()
				case len(args) == 1:
					b, err := os.ReadFile(args[0])
					return string(b), err
				default:
					b, err := io.ReadAll(cmd.InOrStdin())
					return string(b), err
				}
			}

			text, err := read()
			if err != nil {
				return writeErr(cmd, err)
			}

			if dryRun {
				a := parse.Analyze(text)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"hasOutlinePatterns": a.HasOutlinePatterns,
					"isLikelyMarkdown":   parse.IsLikelyMarkdown(text),
					"items":              importItems(text, strip, plain),
				}})
			}

			apply := func(text string) (map[string]any, error) {
				db, s, err := loadDB(app)
				if err != nil {
					return nil, err
				}
				doc, blk, err := resolveBlock(db, target)
				if err != nil {
					return nil, err
				}

				var pid *string
				if parentID != "" {
					if outline.FindNode(blk.Tree, parentID) == nil {
						return nil, errNotFound("node", parentID)
					}
					pid = &parentID
				}

				items := importItems(text, strip, plain)
				tree := outline.ImportInto(blk.Tree, pid, index, items)
				if err := saveBlock(s, db, doc, blk, tree); err != nil {
					return nil, err
				}
				return map[string]any{
					"documentId": doc.ID,
					"blockId":    blk.ID,
					"imported":   len(items),
				}, nil
			}

			if !watch {
				res, err := apply(text)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}

			// Watch mode: re-import the whole file on every settled change.
			// Each pass appends; writers wanting replacement should target a
			// dedicated block and clear it between passes.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = watcher.WatchFile(ctx, args[0], debounce, func(b []byte) {
				if res, err := apply(string(b)); err == nil {
					_ = writeOut(cmd, app, map[string]any{"data": res})
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&parentID, "parent", "", "Import under this node (default: top level)")
	cmd.Flags().IntVar(&index, "index", 1<<30, "Insert position among siblings (default: append)")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read from the system clipboard")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze and print items without applying")
	cmd.Flags().BoolVar(&strip, "strip", false, "Strip detected prefixes and import as a flat list")
	cmd.Flags().BoolVar(&plain, "plain", false, "Skip markdown detection; use the text heuristics")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-import when the file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Watch debounce interval (default 500ms)")
	return cmd
}

func importItems(text string, strip, plain bool) []model.ImportItem {
	if strip {
		items := []model.ImportItem{}
		for _, line := range parse.StripPrefixes(text) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			items = append(items, model.ImportItem{Label: line, Depth: 0})
		}
		return items
	}
	if plain {
		a := parse.Analyze(text)
		if a.HasOutlinePatterns {
			return parse.ParseHierarchy(a)
		}
		items := []model.ImportItem{}
		for _, ln := range a.Lines {
			if ln.Blank {
				continue
			}
			items = append(items, model.ImportItem{Label: ln.Text, Depth: 0})
		}
		return items
	}
	return parse.Items(text)
}
