package commands

import (
	"testing"

	"refassist-backend/lib/assignr"

	"github.com/stretchr/testify/require"
)

func TestReportMissing(t *testing.T) {
	complete := assignr.Game{
		ReportURL:  "https://app.example/reports/100",
		HomeRoster: true,
		AwayRoster: true,
	}
	require.False(t, reportMissing(complete))

	noReport := complete
	noReport.ReportURL = ""
	require.True(t, reportMissing(noReport))

	noAwayRoster := complete
	noAwayRoster.AwayRoster = false
	require.True(t, reportMissing(noAwayRoster))

	cancelled := assignr.Game{Cancelled: true}
	require.False(t, reportMissing(cancelled))
}

func TestReminderRecipients(t *testing.T) {
	game := assignr.Game{
		Referees: []assignr.GameOfficial{
			{EmailAddresses: []string{"sam@example.org"}},
			{},
			{EmailAddresses: []string{"alex@example.org", "alt@example.org"}},
		},
		Assignor: assignr.Contact{EmailAddresses: []string{"pat@example.org"}},
	}
	require.Equal(t, []string{
		"sam@example.org", "alex@example.org", "alt@example.org", "pat@example.org",
	}, reminderRecipients(game))

	require.Empty(t, reminderRecipients(assignr.Game{}))
}

func TestCrewNames(t *testing.T) {
	officials := []assignr.GameOfficial{
		{FirstName: "Sam", LastName: "Whistle"},
		{},
		{FirstName: "Alex", LastName: "Flag"},
	}
	require.Equal(t, "Sam Whistle, Alex Flag", crewNames(officials))
}
