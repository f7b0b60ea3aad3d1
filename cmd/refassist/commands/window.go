package commands

import (
	"fmt"
	"log/slog"
	"time"

	"refassist-backend/lib/timeutil"
)

// reportWindow resolves the -s/-e flags into a date window. The end
// date defaults to today and the start date to a week before the end,
// matching the weekly cron cadence.
func reportWindow(startFlag, endFlag string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endFlag == "" {
		now := timeutil.Now()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timeutil.Location)
		slog.Info("no end date provided, defaulting to today", "end", timeutil.FormatHuman(end))
	} else {
		end, err = timeutil.ParseFlagDate(endFlag)
		if err != nil {
			return start, end, fmt.Errorf("end date %q is invalid, want MM/DD/YYYY", endFlag)
		}
	}

	if startFlag == "" {
		start = end.AddDate(0, 0, -7)
		slog.Info("no start date provided, defaulting to a week before the end date",
			"start", timeutil.FormatHuman(start))
	} else {
		start, err = timeutil.ParseFlagDate(startFlag)
		if err != nil {
			return start, end, fmt.Errorf("start date %q is invalid, want MM/DD/YYYY", startFlag)
		}
	}

	if start.After(end) {
		return start, end, fmt.Errorf("start date %s is after end date %s",
			timeutil.FormatHuman(start), timeutil.FormatHuman(end))
	}
	return start, end, nil
}

// requiredWindow resolves the -s/-e flags when both must be given.
func requiredWindow(startFlag, endFlag string) (time.Time, time.Time, error) {
	var start, end time.Time
	if startFlag == "" || endFlag == "" {
		return start, end, fmt.Errorf("both a start date and an end date are required, format MM/DD/YYYY")
	}
	return reportWindow(startFlag, endFlag)
}
