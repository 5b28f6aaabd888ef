package cli

import (
	"strings"

	"beatline-cli/internal/model"

	"github.com/spf13/cobra"
)

func newEntitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Entity registry (people, places, dates, terms) for scanning",
	}
	cmd.AddCommand(newEntitiesAddCmd(app))
	cmd.AddCommand(newEntitiesListCmd(app))
	cmd.AddCommand(newEntitiesRemoveCmd(app))
	return cmd
}

func newEntitiesAddCmd(app *App) *cobra.Command {
	var name, kind string
	var aliases []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e := model.Entity{
				ID:      s.NextID(db, "ent"),
				Name:    strings.TrimSpace(name),
				Kind:    model.EntityKind(kind),
				Aliases: aliases,
			}
			db.Entities = append(db.Entities, e)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Entity name")
	cmd.Flags().StringVar(&kind, "kind", string(model.EntityTerm), "Entity kind (person|place|date|term)")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "Alias (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEntitiesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Entities})
		},
	}
	return cmd
}

func newEntitiesRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <entity-id>",
		Short: "Remove an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			kept := db.Entities[:0]
			found := false
			for _, e := range db.Entities {
				if e.ID == args[0] {
					found = true
					continue
				}
				kept = append(kept, e)
			}
			if !found {
				return writeErr(cmd, errNotFound("entity", args[0]))
			}
			db.Entities = kept
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}
	return cmd
}
