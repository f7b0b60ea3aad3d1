package commands

import (
	"refassist-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var misconductStart, misconductEnd *string

func init() {
	misconductStart = misconductCmd.Flags().StringP("start-date", "s", "", "Start of the reporting window (MM/DD/YYYY), defaults to a week before the end date.")
	misconductEnd = misconductCmd.Flags().StringP("end-date", "e", "", "End of the reporting window (MM/DD/YYYY), defaults to today.")
	rootCmd.AddCommand(misconductCmd)
}

var misconductCmd = &cobra.Command{
	Use:   "misconduct [-s <start-date>] [-e <end-date>]",
	Short: "Mails only the misconduct digest for the reporting window.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		start, end, err := reportWindow(*misconductStart, *misconductEnd)
		if err != nil {
			serviceutil.Fatal("invalid reporting window", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		assignors, coaches := loadDirectories(cfg)
		client := newAssignrClient(cfg)

		bundle, err := client.Reports(ctx, start, end, assignors, coaches)
		if err != nil {
			serviceutil.Fatal("failed to fetch game reports", err)
		}

		sendMisconductDigest(ctx, newMailer(cfg), cfg, start, end, bundle.Misconducts)
	},
}
