package cmd

import (
	"fmt"
	"text/tabwriter"

	"laohotel/config"

	"github.com/spf13/cobra"
)

var roomsAvailableOnly bool

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the room inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.AppConfig
		store, err := openStorage(ctx, cfg)
		if err != nil {
			return fmt.Errorf("rooms: %w", err)
		}
		defer store.close()

		if err := store.rooms.Seed(ctx, cfg.RoomNumbers); err != nil {
			return fmt.Errorf("rooms: seed: %w", err)
		}
		rooms, err := store.rooms.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("rooms: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROOM\tSTATUS\tFROM\tTO\tNOTE")
		for _, r := range rooms {
			if roomsAvailableOnly && !r.IsAvailable() {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.RoomNumber, r.Status, r.ReserveStartDate, r.ReserveEndDate, r.Note)
		}
		return w.Flush()
	},
}

func init() {
	roomsCmd.Flags().BoolVar(&roomsAvailableOnly, "available", false, "Only show rooms that can be booked")
}
