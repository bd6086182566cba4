package client

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-fit-sync/models"
)

func (a *App) putCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "put <entity_type> <entity_id> <json>",
		Short: "Create or update a row locally",
		Long: `Write a row to the local store and journal the change. Nothing is sent
until the next sync.

Examples:
  fitsync put workout_logs w-2026-05-01 '{"distance_km": 10}'
  fitsync put training_plans p1 '{"weeks": 8}' --owner athlete-1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			write := models.LocalWrite{
				EntityType: models.EntityType(args[0]),
				EntityID:   args[1],
				OwnerID:    owner,
				Fields:     json.RawMessage(args[2]),
			}

			view, err := a.session.rows.Write(cmd.Context(), a.session.userID, write)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SAVED %s (pending)\n", view.Row.Key())
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner of the row, defaults to the current user")

	return cmd
}

func (a *App) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity_type> <entity_id>",
		Short: "Print the local state of a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := models.RowKey{EntityType: models.EntityType(args[0]), EntityID: args[1]}

			view, err := a.session.rows.Read(cmd.Context(), a.session.userID, key)
			if err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}

			return writeJSON(cmd.OutOrStdout(), newRowOutput(view))
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls <entity_type>",
		Aliases: []string{"list"},
		Short:   "List the local rows of an entity type",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.session.rows.List(cmd.Context(), a.session.userID, models.EntityType(args[0]))
			if err != nil {
				return fmt.Errorf("ls %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "no rows")
				return nil
			}
			for _, view := range views {
				fmt.Fprintf(out, "%-40s %-10s v%-4d %s\n", view.Row.Key(), view.State, view.Row.RowVersion, view.Row.OwnerID)
			}
			return nil
		},
	}
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <entity_type> <entity_id>",
		Aliases: []string{"delete"},
		Short:   "Delete a row locally",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := models.RowKey{EntityType: models.EntityType(args[0]), EntityID: args[1]}

			if _, err := a.session.rows.Delete(cmd.Context(), a.session.userID, key); err != nil {
				return fmt.Errorf("rm %s: %w", key, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "DELETED %s (pending)\n", key)
			return nil
		},
	}
}

type rowOutput struct {
	EntityType     models.EntityType `json:"entity_type"`
	EntityID       string            `json:"entity_id"`
	OwnerID        string            `json:"owner_id"`
	State          models.RowState   `json:"state"`
	RowVersion     int64             `json:"row_version"`
	BasedOnVersion int64             `json:"based_on_version,omitempty"`
	Fields         json.RawMessage   `json:"fields,omitempty"`
}

func newRowOutput(view models.RowView) rowOutput {
	out := rowOutput{
		EntityType: view.Row.EntityType,
		EntityID:   view.Row.EntityID,
		OwnerID:    view.Row.OwnerID,
		State:      view.State,
		RowVersion: view.Row.RowVersion,
		Fields:     view.Row.Fields,
	}
	if view.IsPending() {
		out.BasedOnVersion = view.BasedOnVersion
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
