package commands

import (
	"context"
	"log/slog"
	"time"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/mailer"
	"refassist-backend/lib/render"
	"refassist-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var gameReportStart, gameReportEnd *string

func init() {
	gameReportStart = gameReportCmd.Flags().StringP("start-date", "s", "", "Start of the reporting window (MM/DD/YYYY), defaults to a week before the end date.")
	gameReportEnd = gameReportCmd.Flags().StringP("end-date", "e", "", "End of the reporting window (MM/DD/YYYY), defaults to today.")
	rootCmd.AddCommand(gameReportCmd)
}

func sendMisconductDigest(ctx context.Context, mail mailer.Client, cfg Config, start, end time.Time, reports []assignr.GameReport) {
	body, err := render.Misconducts(start, end, reports)
	if err != nil {
		serviceutil.Fatal("failed to render misconduct digest", err)
	}
	err = mail.SendHTML(ctx,
		render.WindowSubject("Misconduct", start, end),
		body,
		mailer.ParseRecipients(ctx, cfg.MisconductsEmail))
	if err != nil {
		slog.ErrorContext(ctx, "failed to send misconduct digest", "err", err)
		return
	}
	slog.InfoContext(ctx, "completed misconduct report", "reports", len(reports))
}

func sendAdministratorDigest(ctx context.Context, mail mailer.Client, cfg Config, start, end time.Time, reports []assignr.GameReport) {
	body, err := render.Administrator(start, end, reports)
	if err != nil {
		serviceutil.Fatal("failed to render administrator digest", err)
	}
	err = mail.SendHTML(ctx,
		render.WindowSubject("Administrator Game Reports", start, end),
		body,
		mailer.ParseRecipients(ctx, cfg.AdminEmail))
	if err != nil {
		slog.ErrorContext(ctx, "failed to send administrator digest", "err", err)
		return
	}
	slog.InfoContext(ctx, "completed administrator report", "reports", len(reports))
}

func sendAssignorReports(ctx context.Context, mail mailer.Client, start, end time.Time, reports []assignr.GameReport) {
	for _, report := range reports {
		if len(report.Assignors) == 0 {
			slog.WarnContext(ctx, "no assignor on file for report", "league", report.League)
			continue
		}
		body, err := render.Assignor(start, end, report)
		if err != nil {
			serviceutil.Fatal("failed to render assignor report", err)
		}
		err = mail.SendHTML(ctx,
			render.WindowSubject("Game Reports Needing Attention", start, end),
			body,
			mailer.ParseRecipients(ctx, report.Assignors[0].Email))
		if err != nil {
			slog.ErrorContext(ctx, "failed to send assignor report", "league", report.League, "err", err)
		}
	}
	slog.InfoContext(ctx, "completed assignors report", "reports", len(reports))
}

var gameReportCmd = &cobra.Command{
	Use:   "game-report [-s <start-date>] [-e <end-date>]",
	Short: "Mails the misconduct, administrator and assignor digests for the reporting window.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		start, end, err := reportWindow(*gameReportStart, *gameReportEnd)
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

		mail := newMailer(cfg)
		sendMisconductDigest(ctx, mail, cfg, start, end, bundle.Misconducts)
		sendAdministratorDigest(ctx, mail, cfg, start, end, bundle.AdminReports)
		sendAssignorReports(ctx, mail, start, end, bundle.AssignorReports)
	},
}
