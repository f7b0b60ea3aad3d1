package assignr

import (
	"refassist-backend/lib/reportform"
	"refassist-backend/lib/roster"
)

// Contact is a person from the site's user directory.
type Contact struct {
	FirstName      string
	LastName       string
	EmailAddresses []string
}

// GameOfficial is one officiating assignment on a game. The contact
// fields stay zero when the assignment's official cannot be resolved
// against the user directory, the slot itself is always reported.
type GameOfficial struct {
	Accepted       bool
	Position       string
	FirstName      string
	LastName       string
	EmailAddresses []string
}

// Game is a normalized game record. A payload missing any required
// field degrades to a record carrying only the ID.
type Game struct {
	ID         int64
	Date       string
	Time       string
	StartTime  string
	HomeTeam   string
	AwayTeam   string
	AgeGroup   string
	League     string
	Venue      string
	SubVenue   string
	Gender     string
	GameType   string
	Cancelled  bool
	Referees   []GameOfficial
	Assignor   Contact
	ReportURL  string
	HomeRoster bool
	AwayRoster bool
}

// RefereeInfo is a single user fetched through the absolute resource
// link embedded in other payloads. Fields absent from the payload
// decode to their zero values.
type RefereeInfo struct {
	FirstName      string
	LastName       string
	EmailAddresses []string
	Official       bool
	Assignor       bool
	Manager        bool
	Active         bool
}

// Assignor is an active assignor with their primary email address.
type Assignor struct {
	FirstName string
	LastName  string
	Email     string
}

// GameReport is a processed report form enriched with the coach and
// assignor directories.
type GameReport struct {
	reportform.Report
	HomeCoach string
	AwayCoach string
	Assignors []roster.Contact
}

// ReportBundle partitions a window's report forms by who needs to act
// on them. A report can land in more than one bucket.
type ReportBundle struct {
	Misconducts     []GameReport
	AdminReports    []GameReport
	AssignorReports []GameReport
}

// AvailabilitySlot is one day of a referee's declared availability.
// Window is either a start and end time or "ALL DAY".
type AvailabilitySlot struct {
	Date   string
	Window string
}
