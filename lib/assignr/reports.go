package assignr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"refassist-backend/lib/reportform"
	"refassist-backend/lib/roster"

	"go.opentelemetry.io/otel/codes"
)

// Reports fetches the window's game report submissions and partitions
// them into the bundle's buckets: misconducts, reports flagged for
// administrator review and reports whose assignments were answered as
// wrong. Misconduct and assignor reports carry the league's assignors;
// a league absent from the directory abandons the rest of that page.
func (c *Client) Reports(
	ctx context.Context,
	start, end time.Time,
	assignors roster.AssignorDirectory,
	coaches roster.CoachDirectory,
) (ReportBundle, error) {
	ctx, span := tracer.Start(ctx, "client:Reports")
	defer span.End()

	bundle := ReportBundle{}

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return bundle, err
	}

	endpoint := fmt.Sprintf("form/templates/%d/submissions", reportTemplateID)
	var envelope submissionsEnvelope
	err := paginate(ctx, c, endpoint, searchParams(start, end), &envelope,
		func(e *submissionsEnvelope) int { return e.Page.Pages },
		func(e *submissionsEnvelope) {
			c.processSubmissionsPage(ctx, e.Embedded.FormSubmissions, assignors, coaches, &bundle)
		})
	if err != nil {
		span.RecordError(err)
		return bundle, err
	}
	return bundle, nil
}

// processSubmissionsPage folds one page of submissions into the
// bundle. The first unprocessable submission abandons the rest of the
// page, reports already bucketed stay.
func (c *Client) processSubmissionsPage(
	ctx context.Context,
	submissions []submissionResource,
	assignors roster.AssignorDirectory,
	coaches roster.CoachDirectory,
	bundle *ReportBundle,
) {
	for _, submission := range submissions {
		processed, err := reportform.Process(submission.formValues())
		if err != nil {
			slog.ErrorContext(ctx, "unprocessable game report", "err", err)
			return
		}

		report := GameReport{
			Report:    processed,
			HomeCoach: coaches.CoachName(processed.AgeGroup, processed.Gender, processed.HomeTeam),
			AwayCoach: coaches.CoachName(processed.AgeGroup, processed.Gender, processed.AwayTeam),
		}

		if report.AdminReview {
			bundle.AdminReports = append(bundle.AdminReports, report)
		}
		if report.Misconduct || report.NeedsAssignorAttention() {
			contacts, ok := assignors[report.League]
			if !ok {
				slog.ErrorContext(ctx, "league missing from assignor directory", "league", report.League)
				return
			}
			report.Assignors = contacts
		}
		if report.Misconduct {
			bundle.Misconducts = append(bundle.Misconducts, report)
		}
		if report.NeedsAssignorAttention() {
			bundle.AssignorReports = append(bundle.AssignorReports, report)
		}
	}
}

// MatchReports annotates the games map with the report submitted for
// each game: the report's webview link and whether each team's roster
// was uploaded. Games without a submission keep their zero fields.
func (c *Client) MatchReports(ctx context.Context, start, end time.Time, games map[int64]Game) error {
	ctx, span := tracer.Start(ctx, "client:MatchReports")
	defer span.End()

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return err
	}

	endpoint := fmt.Sprintf("form/templates/%d/submissions", reportTemplateID)
	var envelope submissionsEnvelope
	err := paginate(ctx, c, endpoint, searchParams(start, end), &envelope,
		func(e *submissionsEnvelope) int { return e.Page.Pages },
		func(e *submissionsEnvelope) {
			for _, submission := range e.Embedded.FormSubmissions {
				game, ok := games[submission.Embedded.Game.ID]
				if !ok {
					continue
				}
				values := submission.formValues()
				game.ReportURL = submission.Links.GameReportWebview.Href
				game.HomeRoster = values.HasUpload(".uploadHomeTeamRoster.0.url")
				game.AwayRoster = values.HasUpload(".uploadAwayTeamRoster.0.url")
				games[submission.Embedded.Game.ID] = game
			}
		})
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
