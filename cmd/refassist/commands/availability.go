package commands

import (
	"log/slog"
	"os"

	"refassist-backend/lib/roster"
	"refassist-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var availabilityStart, availabilityEnd *string

func init() {
	availabilityStart = availabilityCmd.Flags().StringP("start-date", "s", "", "Start of the window (MM/DD/YYYY).")
	availabilityEnd = availabilityCmd.Flags().StringP("end-date", "e", "", "End of the window (MM/DD/YYYY).")
	rootCmd.AddCommand(availabilityCmd)
}

var availabilityCmd = &cobra.Command{
	Use:   "availability -s <start-date> -e <end-date>",
	Short: "Prints the referee pool's declared availability for the window.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		start, end, err := requiredWindow(*availabilityStart, *availabilityEnd)
		if err != nil {
			serviceutil.Fatal("invalid window", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		referees, err := roster.LoadReferees(cfg.Roster.RefereeCSV)
		if err != nil {
			serviceutil.Fatal("failed to load referee roster", err)
		}

		client := newAssignrClient(cfg)

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Referee", "Date", "Availability"})

		for _, referee := range referees {
			slots, err := client.Availability(ctx, referee.ID, start, end)
			if err != nil {
				serviceutil.Fatal("failed to fetch availability", err)
			}
			if len(slots) == 0 {
				slog.WarnContext(ctx, "referee is not available", "referee", referee.Name)
				continue
			}
			for _, slot := range slots {
				tw.AppendRow(table.Row{referee.Name, slot.Date, slot.Window})
			}
		}

		tw.Render()
	},
}
