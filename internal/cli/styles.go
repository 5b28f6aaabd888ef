package cli

import (
	"path/filepath"
	"time"

	"beatline-cli/internal/store"
	"beatline-cli/internal/style"

	"github.com/spf13/cobra"
)

func newStylesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Outline numbering styles",
	}
	cmd.AddCommand(newStylesListCmd(app))
	cmd.AddCommand(newStylesShowCmd(app))
	cmd.AddCommand(newStylesSetCmd(app))
	return cmd
}

func loadCustomStyles(app *App) []style.Definition {
	// Force dir resolution so styles.yaml is looked up in the right place.
	if app.Dir == "" {
		_, _, _ = loadDB(app)
	}
	custom, _ := style.LoadSheet(filepath.Join(app.Dir, "styles.yaml"))
	return custom
}

func newStylesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in presets and custom styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := loadCustomStyles(app)
			customIDs := make([]string, 0, len(custom))
			for _, d := range custom {
				customIDs = append(customIDs, d.ID)
			}
			cfg, _ := store.LoadConfig()
			def := style.DefaultPreset
			if cfg != nil && cfg.DefaultStyleID != "" {
				def = cfg.DefaultStyleID
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"presets": style.PresetIDs(),
				"custom":  customIDs,
				"default": def,
			}})
		},
	}
	return cmd
}

func newStylesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <style-id>",
		Short: "Show a style's per-level formats with sample prefixes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := style.Resolve(args[0], loadCustomStyles(app))

			// Sample: third item at each of the first six depths.
			type level struct {
				Depth  int              `json:"depth"`
				Style  style.LevelStyle `json:"style"`
				Sample string           `json:"sample"`
			}
			levels := make([]level, 6)
			path := []int{}
			for d := 0; d < 6; d++ {
				path = append(path, 3)
				levels[d] = level{
					Depth:  d,
					Style:  cfg.LevelAt(d),
					Sample: style.FormatPrefix(d, path, cfg).String(),
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"id":     args[0],
				"levels": levels,
			}})
		},
	}
	return cmd
}

func newStylesSetCmd(app *App) *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "set <style-id>",
		Short: "Set the numbering style for a document, or the global default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if docID == "" {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				cfg.DefaultStyleID = args[0]
				if err := store.SaveConfig(cfg); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"defaultStyleId": args[0]}})
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(docID)
			if !ok {
				return writeErr(cmd, errNotFound("document", docID))
			}
			doc.StyleID = args[0]
			doc.UpdatedAt = time.Now().UTC()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"documentId": doc.ID,
				"styleId":    doc.StyleID,
			}})
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "Set for this document instead of globally")
	return cmd
}
