package timeutil

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force the timezone to be eastern because the leagues this
// tooling serves schedule everything in eastern time and the
// servers running the reports do not always live there.
func Now() time.Time {
	return time.Now().In(Location)
}

const (
	// the date format accepted on the command line
	FlagLayout = "01/02/2006"
	// the date format the scheduling service expects in
	// search[start_date]/search[end_date] parameters
	UpstreamLayout = "2006-01-02"
)

func ParseFlagDate(value string) (time.Time, error) {
	return time.ParseInLocation(FlagLayout, value, Location)
}

func FormatUpstream(t time.Time) string {
	return t.Format(UpstreamLayout)
}

func FormatHuman(t time.Time) string {
	return t.Format(FlagLayout)
}
