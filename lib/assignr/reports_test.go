package assignr

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"refassist-backend/lib/roster"

	"github.com/stretchr/testify/require"
)

func submissionJSON(gameID int64, author string, extraValues string) string {
	values := `
		{"key":".startTime","value":"2024-04-05T08:00:00-04:00"},
		{"key":".homeTeam","value":"Rapids"},
		{"key":".awayTeam","value":"United"},
		{"key":".ageGroup","value":"Grade 5/6"},
		{"key":".gender","value":"Boys"},
		{"key":".league","value":"Coastal"},
		{"key":".homeTeamScore","value":"3"},
		{"key":".awayTeamScore","value":"1"},
		{"key":".officials.0.name","value":"Sam Whistle"},
		{"key":".officials.0.position","value":"Referee"}`
	if extraValues != "" {
		values += "," + extraValues
	}
	return fmt.Sprintf(`{
		"author_name":%q,
		"_embedded":{
			"game":{"id":%d},
			"values":[%s]
		},
		"_links":{"game_report_webview":{"href":"https://app.example/reports/%d"}}
	}`, author, gameID, values, gameID)
}

func testDirectories() (roster.AssignorDirectory, roster.CoachDirectory) {
	assignors := roster.AssignorDirectory{
		"Coastal": {{Name: "Pat White", Email: "<Pat White>pat@example.org"}},
	}
	coaches := roster.CoachDirectory{
		"Grade 5/6": {"Boys": {"Rapids": "Pat Coach"}},
	}
	return assignors, coaches
}

func TestReportsPartition(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/form/templates/1002/submissions", func(w http.ResponseWriter, r *http.Request) {
		clean := submissionJSON(100, "Sam Referee", "")
		misconduct := submissionJSON(101, "Alex Flag",
			`{"key":".misconductCheckbox","value":"true"},
			{"key":".misconductGrid.0.name","value":"Rough Player"},
			{"key":".misconductGrid.0.offense","value":"SFP"}`)
		adminAndWrong := submissionJSON(102, "Riley Center",
			`{"key":".adminReview","value":"true"},
			{"key":".correctAssignments","value":"false"}`)
		writeJSON(w, fmt.Sprintf(
			`{"page":{"pages":1},"_embedded":{"form_submissions":[%s,%s,%s]}}`,
			clean, misconduct, adminAndWrong))
	})
	client := newTestClient(t, auth, mux)
	seedDirectory(client)

	assignors, coaches := testDirectories()
	bundle, err := client.Reports(context.Background(), time.Now(), time.Now(), assignors, coaches)
	require.NoError(t, err)

	require.Len(t, bundle.Misconducts, 1)
	require.Len(t, bundle.AdminReports, 1)
	require.Len(t, bundle.AssignorReports, 1)

	misconduct := bundle.Misconducts[0]
	require.Equal(t, "Alex Flag", misconduct.Author)
	require.Equal(t, "Pat Coach", misconduct.HomeCoach)
	require.Equal(t, roster.UnknownCoach, misconduct.AwayCoach)
	require.Equal(t, assignors["Coastal"], misconduct.Assignors)
	require.Len(t, misconduct.MisconductGrid, 1)
	require.Equal(t, "Rough Player", misconduct.MisconductGrid[0].Name)
	require.Equal(t, "SFP", misconduct.MisconductGrid[0].Offense)
	// officials always come padded to a full crew
	require.Len(t, misconduct.Officials, 3)

	require.Equal(t, "Riley Center", bundle.AdminReports[0].Author)
	require.Equal(t, "Riley Center", bundle.AssignorReports[0].Author)
	require.Equal(t, assignors["Coastal"], bundle.AssignorReports[0].Assignors)
}

func TestReportsPageContainment(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/form/templates/1002/submissions", func(w http.ResponseWriter, r *http.Request) {
		good := submissionJSON(100, "Sam Referee", `{"key":".adminReview","value":"true"}`)
		// no .startTime
		bad := `{"author_name":"Broken","_embedded":{"game":{"id":101},"values":[
			{"key":".homeTeam","value":"Rapids"}
		]},"_links":{}}`
		afterBad := submissionJSON(102, "Riley Center", `{"key":".adminReview","value":"true"}`)
		writeJSON(w, fmt.Sprintf(
			`{"page":{"pages":1},"_embedded":{"form_submissions":[%s,%s,%s]}}`,
			good, bad, afterBad))
	})
	client := newTestClient(t, auth, mux)
	seedDirectory(client)

	assignors, coaches := testDirectories()
	bundle, err := client.Reports(context.Background(), time.Now(), time.Now(), assignors, coaches)
	require.NoError(t, err)

	// the submission before the malformed one survives, the rest of
	// the page is abandoned
	require.Len(t, bundle.AdminReports, 1)
	require.Equal(t, "Sam Referee", bundle.AdminReports[0].Author)
}

func TestReportsUnknownLeague(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/form/templates/1002/submissions", func(w http.ResponseWriter, r *http.Request) {
		misconduct := submissionJSON(100, "Sam Referee",
			`{"key":".misconductCheckbox","value":"true"},
			{"key":".adminReview","value":"true"}`)
		afterBad := submissionJSON(101, "Riley Center", `{"key":".adminReview","value":"true"}`)
		writeJSON(w, fmt.Sprintf(
			`{"page":{"pages":1},"_embedded":{"form_submissions":[%s,%s]}}`,
			misconduct, afterBad))
	})
	client := newTestClient(t, auth, mux)
	seedDirectory(client)

	coaches := roster.CoachDirectory{}
	bundle, err := client.Reports(context.Background(), time.Now(), time.Now(), roster.AssignorDirectory{}, coaches)
	require.NoError(t, err)

	// the admin bucket was filled before the league lookup failed
	require.Len(t, bundle.AdminReports, 1)
	require.Empty(t, bundle.Misconducts)
}

func TestReportsPartialFailure(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/form/templates/1002/submissions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		good := submissionJSON(100, "Sam Referee", `{"key":".adminReview","value":"true"}`)
		writeJSON(w, fmt.Sprintf(
			`{"page":{"pages":2},"_embedded":{"form_submissions":[%s]}}`, good))
	})
	client := newTestClient(t, auth, mux)
	seedDirectory(client)

	assignors, coaches := testDirectories()
	bundle, err := client.Reports(context.Background(), time.Now(), time.Now(), assignors, coaches)
	require.NoError(t, err)
	require.Len(t, bundle.AdminReports, 1)
}

func TestMatchReports(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/form/templates/1002/submissions", func(w http.ResponseWriter, r *http.Request) {
		matched := submissionJSON(100, "Sam Referee",
			`{"key":".uploadHomeTeamRoster.0.url","value":"https://files.example/home.pdf"},
			{"key":".uploadAwayTeamRoster.0.url","value":[]}`)
		unmatched := submissionJSON(999, "Riley Center", "")
		writeJSON(w, fmt.Sprintf(
			`{"page":{"pages":1},"_embedded":{"form_submissions":[%s,%s]}}`,
			matched, unmatched))
	})
	client := newTestClient(t, auth, mux)
	seedDirectory(client)

	games := map[int64]Game{
		100: {ID: 100, HomeTeam: "Rapids"},
		200: {ID: 200, HomeTeam: "United"},
	}
	err := client.MatchReports(context.Background(), time.Now(), time.Now(), games)
	require.NoError(t, err)

	require.Equal(t, "https://app.example/reports/100", games[100].ReportURL)
	require.True(t, games[100].HomeRoster)
	require.False(t, games[100].AwayRoster)
	require.Equal(t, "Rapids", games[100].HomeTeam)

	// games without a submission keep their zero matching fields
	require.Empty(t, games[200].ReportURL)
	require.False(t, games[200].HomeRoster)
}

func TestAvailability(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/42/availability", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "42", r.URL.Query().Get("user_id"))
		writeJSON(w, `{"_embedded":{"availability":[
			{"date":"2024-04-05","all_day":"true"},
			{"date":"2024-04-06","all_day":"false","start_time":"8:00 AM","end_time":"12:00 PM"}
		]}}`)
	})
	client := newTestClient(t, auth, mux)

	slots, err := client.Availability(context.Background(), "42", time.Now(), time.Now())
	require.NoError(t, err)
	require.Equal(t, []AvailabilitySlot{
		{Date: "2024-04-05", Window: AllDay},
		{Date: "2024-04-06", Window: "8:00 AM - 12:00 PM"},
	}, slots)
}

func TestAvailabilityNotFound(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/42/availability", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, auth, mux)

	slots, err := client.Availability(context.Background(), "42", time.Now(), time.Now())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestAvailabilityServerError(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/42/availability", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, auth, mux)

	slots, err := client.Availability(context.Background(), "42", time.Now(), time.Now())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestAvailabilityMissingAllDay(t *testing.T) {
	auth := &fakeAuth{token: "tok123"}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/42/availability", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"_embedded":{"availability":[
			{"date":"2024-04-05","all_day":"true"},
			{"date":"2024-04-06"},
			{"date":"2024-04-07","all_day":"true"}
		]}}`)
	})
	client := newTestClient(t, auth, mux)

	slots, err := client.Availability(context.Background(), "42", time.Now(), time.Now())
	require.NoError(t, err)
	// the slots before the malformed entry are kept
	require.Equal(t, []AvailabilitySlot{
		{Date: "2024-04-05", Window: AllDay},
	}, slots)
}
