// Package render builds the html bodies of the report emails from
// embedded templates.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/timeutil"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatDate": timeutil.FormatHuman,
	"formatTime": func(t time.Time) string {
		return t.Format("03:04 PM")
	},
}

var templates = template.Must(
	template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl"))

func render(name string, content any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WindowSubject builds the subject line of a windowed report email.
func WindowSubject(prefix string, start, end time.Time) string {
	return fmt.Sprintf("%s: %s - %s",
		prefix, timeutil.FormatHuman(start), timeutil.FormatHuman(end))
}

type windowContent struct {
	Start   time.Time
	End     time.Time
	Reports []assignr.GameReport
}

// Misconducts renders the misconduct digest for the window.
func Misconducts(start, end time.Time, reports []assignr.GameReport) (string, error) {
	return render("misconduct.html.tmpl", windowContent{
		Start:   start,
		End:     end,
		Reports: reports,
	})
}

// Administrator renders the digest of reports flagged for
// administrator review.
func Administrator(start, end time.Time, reports []assignr.GameReport) (string, error) {
	return render("administrator.html.tmpl", windowContent{
		Start:   start,
		End:     end,
		Reports: reports,
	})
}

type assignorContent struct {
	Start  time.Time
	End    time.Time
	Report assignr.GameReport
}

// Assignor renders a single report whose assignments were answered as
// wrong, sent to the league's assignor.
func Assignor(start, end time.Time, report assignr.GameReport) (string, error) {
	return render("assignor.html.tmpl", assignorContent{
		Start:  start,
		End:    end,
		Report: report,
	})
}

type missingContent struct {
	Reports []assignr.Game
}

// MissingReports renders the digest of games whose report or rosters
// are missing.
func MissingReports(games []assignr.Game) (string, error) {
	return render("missing_report.html.tmpl", missingContent{Reports: games})
}

// MissingRefereeReport renders the reminder sent to a single game's
// referee crew.
func MissingRefereeReport(game assignr.Game) (string, error) {
	return render("missing_referee_report.html.tmpl", game)
}
