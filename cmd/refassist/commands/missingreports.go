package commands

import (
	"context"
	"log/slog"
	"sort"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/mailer"
	"refassist-backend/lib/render"
	"refassist-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	missingStart, missingEnd, missingGameType *string
	missingRefereeReminder                    *bool
)

func init() {
	missingStart = missingReportsCmd.Flags().StringP("start-date", "s", "", "Start of the reporting window (MM/DD/YYYY), defaults to a week before the end date.")
	missingEnd = missingReportsCmd.Flags().StringP("end-date", "e", "", "End of the reporting window (MM/DD/YYYY), defaults to today.")
	missingGameType = missingReportsCmd.Flags().StringP("game-type", "g", "Coastal", "Game type to check for missing reports.")
	missingRefereeReminder = missingReportsCmd.Flags().BoolP("referee-reminder", "r", false, "Also mail a reminder to each delinquent game's crew and assignor.")
	rootCmd.AddCommand(missingReportsCmd)
}

// reportMissing reports whether the game still needs attention: no
// submitted report or a roster missing from it. Cancelled games are
// never delinquent.
func reportMissing(game assignr.Game) bool {
	if game.Cancelled {
		return false
	}
	return game.ReportURL == "" || !game.HomeRoster || !game.AwayRoster
}

func reminderRecipients(game assignr.Game) []string {
	var recipients []string
	for _, official := range game.Referees {
		recipients = append(recipients, official.EmailAddresses...)
	}
	recipients = append(recipients, game.Assignor.EmailAddresses...)
	return recipients
}

func sendRefereeReminders(ctx context.Context, mail mailer.Client, games []assignr.Game) {
	for _, game := range games {
		recipients := reminderRecipients(game)
		if len(recipients) == 0 {
			slog.WarnContext(ctx, "no one to remind for game", "game", game.ID)
			continue
		}
		body, err := render.MissingRefereeReport(game)
		if err != nil {
			serviceutil.Fatal("failed to render referee reminder", err)
		}
		subject := "Game Report Reminder: " + game.Date
		if err := mail.SendHTML(ctx, subject, body, recipients); err != nil {
			slog.ErrorContext(ctx, "failed to send referee reminder", "game", game.ID, "err", err)
		}
	}
}

var missingReportsCmd = &cobra.Command{
	Use:   "missing-reports [-s <start-date>] [-e <end-date>] [-g <game-type>] [-r]",
	Short: "Mails the digest of games whose report or rosters were never submitted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		slog.InfoContext(ctx, "starting missing game report")

		start, end, err := reportWindow(*missingStart, *missingEnd)
		if err != nil {
			serviceutil.Fatal("invalid reporting window", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client := newAssignrClient(cfg)
		if err := client.LoadDirectory(ctx); err != nil {
			serviceutil.Fatal("failed to load user directory", err)
		}

		games, err := client.GamesByType(ctx, start, end, *missingGameType)
		if err != nil {
			serviceutil.Fatal("failed to fetch games", err)
		}
		if err := client.MatchReports(ctx, start, end, games); err != nil {
			serviceutil.Fatal("failed to match games to reports", err)
		}

		var missing []assignr.Game
		for _, game := range games {
			if reportMissing(game) {
				missing = append(missing, game)
			}
		}
		sort.Slice(missing, func(i, j int) bool {
			if missing[i].StartTime != missing[j].StartTime {
				return missing[i].StartTime < missing[j].StartTime
			}
			return missing[i].ID < missing[j].ID
		})

		mail := newMailer(cfg)
		if *missingRefereeReminder {
			sendRefereeReminders(ctx, mail, missing)
		}

		body, err := render.MissingReports(missing)
		if err != nil {
			serviceutil.Fatal("failed to render missing report digest", err)
		}
		err = mail.SendHTML(ctx,
			render.WindowSubject("Game Reports Needing Attention", start, end),
			body,
			mailer.ParseRecipients(ctx, cfg.MissingReportsEmail))
		if err != nil {
			serviceutil.Fatal("failed to send missing report digest", err)
		}
		slog.InfoContext(ctx, "completed missing game report", "missing", len(missing))
	},
}
