// Package reportform reconstitutes the flat dotted-key payloads the
// scheduling service stores for a submitted game report form (keys like
// ".officials.0.position" or ".misconductGrid.1.offense") into structured
// records the report emails can be built from.
package reportform

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	NotAssigned  = "Not Assigned"
	AsstReferee  = "Asst. Referee"
	maxOfficials = 3
)

const (
	KeyStartTime  = ".startTime"
	KeyAuthorName = ".author_name"

	keyHomeTeam           = ".homeTeam"
	keyAwayTeam           = ".awayTeam"
	keyAgeGroup           = ".ageGroup"
	keyGender             = ".gender"
	keyLeague             = ".league"
	keyEjections          = ".ejections"
	keyMisconduct         = ".misconductCheckbox"
	keyAdminReview        = ".adminReview"
	keyAssignmentsCorrect = ".correctAssignments"
	keyHomeTeamScore      = ".homeTeamScore"
	keyAwayTeamScore      = ".awayTeamScore"
	keyNarrative          = ".narrative"
)

var (
	officialPositionPattern = regexp.MustCompile(`\.officials\.\d+\.position`)
	misconductNamePattern   = regexp.MustCompile(`\.misconductGrid\.\d+\.name`)
)

// Values is one form submission flattened into its raw key/value pairs.
// Values are strings for answered fields, nil for unanswered ones and
// []any for upload fields.
type Values map[string]any

func (v Values) Lookup(key string) (string, bool) {
	raw, ok := v[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// String returns the answer for key, or "" when the key is absent,
// unanswered or not a text field.
func (v Values) String(key string) string {
	s, _ := v.Lookup(key)
	return s
}

// Bool interprets an answer as a checkbox value. Absent and unanswered
// keys are false.
func (v Values) Bool(key string) bool {
	return ParseBool(v.String(key))
}

// HasUpload reports whether an upload field holds a file. The service
// stores either a URL string or a list of attachments, with an empty
// list meaning nothing was uploaded.
func (v Values) HasUpload(key string) bool {
	raw, ok := v[key]
	if !ok || raw == nil {
		return false
	}
	if list, isList := raw.([]any); isList {
		return len(list) > 0
	}
	return true
}

func ParseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "t", "y", "yes":
		return true
	}
	return false
}

// MatchCount counts the keys of the payload matching pattern. It is how
// the number of rows in a repeated form section (officials, misconduct
// grid) is discovered.
func MatchCount(v Values, pattern *regexp.Regexp) int {
	count := 0
	for key := range v {
		if pattern.MatchString(key) {
			count++
		}
	}
	return count
}

// Official is one officiating slot of a submitted report form.
type Official struct {
	Name     string
	Position string
}

// Officials returns exactly three officiating slots. Games are assumed
// to carry one Referee and two Assistant Referees, so missing slots are
// synthesized as "Not Assigned" assistant referees and extra rows past
// the third are ignored.
func Officials(v Values) []Official {
	count := MatchCount(v, officialPositionPattern)
	if count > maxOfficials {
		count = maxOfficials
	}

	officials := make([]Official, 0, maxOfficials)
	for i := 0; i < count; i++ {
		officials = append(officials, Official{
			Name:     v.String(fmt.Sprintf(".officials.%d.name", i)),
			Position: v.String(fmt.Sprintf(".officials.%d.position", i)),
		})
	}
	for len(officials) < maxOfficials {
		officials = append(officials, Official{
			Name:     NotAssigned,
			Position: AsstReferee,
		})
	}
	return officials
}

// MisconductEntry is one row of the misconduct grid.
type MisconductEntry struct {
	Name        string
	Role        string
	Team        string
	Minute      string
	Offense     string
	Description string
	PassNumber  string
	Disposition string
}

func Misconducts(v Values) []MisconductEntry {
	count := MatchCount(v, misconductNamePattern)

	entries := make([]MisconductEntry, 0, count)
	for i := 0; i < count; i++ {
		prefix := fmt.Sprintf(".misconductGrid.%d.", i)
		entries = append(entries, MisconductEntry{
			Name:        v.String(prefix + "name"),
			Role:        v.String(prefix + "role"),
			Team:        v.String(prefix + "team"),
			Minute:      v.String(prefix + "minute"),
			Offense:     v.String(prefix + "offense"),
			Description: v.String(prefix + "description"),
			PassNumber:  v.String(prefix + "passIdNumber"),
			Disposition: v.String(prefix + "cautionSendOff"),
		})
	}
	return entries
}

// Report is one fully processed game report form.
type Report struct {
	AdminReview bool
	Misconduct  bool
	// nil when the submitter did not answer the question
	AssignmentsCorrect *bool
	Ejections          bool
	HomeTeamScore      string
	AwayTeamScore      string
	HomeTeam           string
	AwayTeam           string
	AgeGroup           string
	Gender             string
	League             string
	StartTime          time.Time
	Narrative          string
	Author             string
	Officials          []Official
	MisconductGrid     []MisconductEntry
}

// NeedsAssignorAttention reports whether the submitter explicitly
// answered that the assignments were wrong.
func (r Report) NeedsAssignorAttention() bool {
	return r.AssignmentsCorrect != nil && !*r.AssignmentsCorrect
}

// Process builds a Report from one flattened submission. The start time
// is the only hard requirement, everything else degrades to a zero
// value; a missing or unparseable start time fails the whole submission
// with an error naming the key.
func Process(v Values) (Report, error) {
	rawStart, ok := v.Lookup(KeyStartTime)
	if !ok {
		return Report{}, fmt.Errorf("key %s missing", KeyStartTime)
	}
	startTime, err := parseStartTime(rawStart)
	if err != nil {
		return Report{}, fmt.Errorf("key %s unparseable: %w", KeyStartTime, err)
	}

	report := Report{
		AdminReview:    v.Bool(keyAdminReview),
		Misconduct:     v.Bool(keyMisconduct),
		Ejections:      v.Bool(keyEjections),
		HomeTeamScore:  v.String(keyHomeTeamScore),
		AwayTeamScore:  v.String(keyAwayTeamScore),
		HomeTeam:       v.String(keyHomeTeam),
		AwayTeam:       v.String(keyAwayTeam),
		AgeGroup:       v.String(keyAgeGroup),
		Gender:         v.String(keyGender),
		League:         v.String(keyLeague),
		StartTime:      startTime,
		Narrative:      v.String(keyNarrative),
		Author:         v.String(KeyAuthorName),
		Officials:      Officials(v),
		MisconductGrid: Misconducts(v),
	}
	if answer, ok := v.Lookup(keyAssignmentsCorrect); ok {
		correct := ParseBool(answer)
		report.AssignmentsCorrect = &correct
	}
	return report, nil
}

func parseStartTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
