package render

import (
	"testing"
	"time"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/reportform"

	"github.com/stretchr/testify/require"
)

var window = struct {
	start time.Time
	end   time.Time
}{
	start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	end:   time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC),
}

func sampleReport() assignr.GameReport {
	return assignr.GameReport{
		Report: reportform.Report{
			HomeTeam:      "Rapids",
			AwayTeam:      "United",
			AgeGroup:      "Grade 5/6",
			Gender:        "Boys",
			League:        "Coastal",
			HomeTeamScore: "3",
			AwayTeamScore: "1",
			StartTime:     time.Date(2024, 4, 5, 8, 0, 0, 0, time.UTC),
			Author:        "Sam Referee",
			Officials: []reportform.Official{
				{Name: "Sam Referee", Position: "Referee"},
				{Name: reportform.NotAssigned, Position: reportform.AsstReferee},
				{Name: reportform.NotAssigned, Position: reportform.AsstReferee},
			},
			MisconductGrid: []reportform.MisconductEntry{
				{Name: "Rough Player", Team: "United", Minute: "33", Offense: "SFP", Disposition: "sendOff"},
			},
		},
		HomeCoach: "Pat Coach",
		AwayCoach: "Unknown",
	}
}

func TestWindowSubject(t *testing.T) {
	subject := WindowSubject("Misconduct", window.start, window.end)
	require.Equal(t, "Misconduct: 04/01/2024 - 04/07/2024", subject)
}

func TestMisconducts(t *testing.T) {
	body, err := Misconducts(window.start, window.end, []assignr.GameReport{sampleReport()})
	require.NoError(t, err)
	require.Contains(t, body, "04/01/2024 - 04/07/2024")
	require.Contains(t, body, "Rapids vs United")
	require.Contains(t, body, "08:00 AM")
	require.Contains(t, body, "Rough Player")
	require.Contains(t, body, "Pat Coach")
	require.Contains(t, body, "Not Assigned")
}

func TestMisconductsEmpty(t *testing.T) {
	body, err := Misconducts(window.start, window.end, nil)
	require.NoError(t, err)
	require.Contains(t, body, "No misconduct was reported")
}

func TestAdministrator(t *testing.T) {
	body, err := Administrator(window.start, window.end, []assignr.GameReport{sampleReport()})
	require.NoError(t, err)
	require.Contains(t, body, "Administrator Game Reports")
	require.Contains(t, body, "Sam Referee")
}

func TestAssignor(t *testing.T) {
	body, err := Assignor(window.start, window.end, sampleReport())
	require.NoError(t, err)
	require.Contains(t, body, "were not correct")
	require.Contains(t, body, "Rapids vs United")
}

func TestMissingReports(t *testing.T) {
	games := []assignr.Game{
		{
			ID:       100,
			Date:     "04/05/2024",
			Time:     "08:00 AM",
			HomeTeam: "Rapids",
			AwayTeam: "United",
			League:   "Coastal",
			Venue:    "Riverside Park",
		},
		{
			ID:         101,
			Date:       "04/06/2024",
			HomeTeam:   "City",
			AwayTeam:   "Rovers",
			ReportURL:  "https://app.example/reports/101",
			HomeRoster: true,
		},
	}

	body, err := MissingReports(games)
	require.NoError(t, err)
	require.Contains(t, body, "Rapids")
	require.Contains(t, body, "MISSING")
	require.Contains(t, body, `href="https://app.example/reports/101"`)
}

func TestMissingRefereeReport(t *testing.T) {
	body, err := MissingRefereeReport(assignr.Game{
		Date:     "04/05/2024",
		Time:     "08:00 AM",
		HomeTeam: "Rapids",
		AwayTeam: "United",
		AgeGroup: "Grade 5/6",
		Gender:   "Boys",
		League:   "Coastal",
		Venue:    "Riverside Park",
		SubVenue: "Field 2",
	})
	require.NoError(t, err)
	require.Contains(t, body, "04/05/2024")
	require.Contains(t, body, "Riverside Park - Field 2")
}
