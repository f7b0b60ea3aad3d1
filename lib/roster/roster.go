// Package roster loads the club-maintained directories the report
// pipeline joins against: assignors per league, coaches per team and
// the referee pool tracked for availability checks.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Contact is a person with an addressable email. Email carries the
// display name in front of the address so it can be dropped straight
// into a recipient list.
type Contact struct {
	Name  string
	Email string
}

// AssignorDirectory maps a league name to the assignors responsible
// for it.
type AssignorDirectory map[string][]Contact

// ReadAssignors parses assignor rows of the form
// league,last_name,first_name,email. Rows with fewer columns fail the
// whole read since a partial directory would silently drop reports.
func ReadAssignors(r io.Reader) (AssignorDirectory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	directory := AssignorDirectory{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("assignor row has %d columns, want 4: %v", len(row), row)
		}
		league, last, first, email := row[0], row[1], row[2], row[3]
		name := fmt.Sprintf("%s %s", first, last)
		directory[league] = append(directory[league], Contact{
			Name:  name,
			Email: fmt.Sprintf("<%s>%s", name, email),
		})
	}
	return directory, nil
}

func LoadAssignors(path string) (AssignorDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAssignors(f)
}

// UnknownCoach is reported when a team has no coach on file.
const UnknownCoach = "Unknown"

// CoachDirectory maps age group, gender and team to the coach's name.
type CoachDirectory map[string]map[string]map[string]string

// CoachName looks up the coach for a team, falling back to
// UnknownCoach when any level of the directory is missing.
func (d CoachDirectory) CoachName(ageGroup, gender, team string) string {
	byGender, ok := d[ageGroup]
	if !ok {
		return UnknownCoach
	}
	byTeam, ok := byGender[gender]
	if !ok {
		return UnknownCoach
	}
	coach, ok := byTeam[team]
	if !ok {
		return UnknownCoach
	}
	return coach
}

// ReadCoaches parses coach rows of the form
// age_group,gender,team,coach_name. Only rows whose age group mentions
// a grade are kept, which filters out the header and section rows the
// club leaves in its export.
func ReadCoaches(r io.Reader) (CoachDirectory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	directory := CoachDirectory{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 4 || !strings.Contains(strings.ToLower(row[0]), "grade") {
			continue
		}
		ageGroup, gender, team, coach := row[0], row[1], row[2], row[3]
		if directory[ageGroup] == nil {
			directory[ageGroup] = map[string]map[string]string{}
		}
		if directory[ageGroup][gender] == nil {
			directory[ageGroup][gender] = map[string]string{}
		}
		directory[ageGroup][gender][team] = coach
	}
	return directory, nil
}

func LoadCoaches(path string) (CoachDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCoaches(f)
}

// Referee is one member of the referee pool, identified by the
// scheduling service's user id.
type Referee struct {
	Name string
	ID   string
}

// ReadReferees parses referee rows of the form first_name,last_name,id.
func ReadReferees(r io.Reader) ([]Referee, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var referees []Referee
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("referee row has %d columns, want 3: %v", len(row), row)
		}
		referees = append(referees, Referee{
			Name: fmt.Sprintf("%s %s", row[0], row[1]),
			ID:   row[2],
		})
	}
	return referees, nil
}

func LoadReferees(path string) ([]Referee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReferees(f)
}
