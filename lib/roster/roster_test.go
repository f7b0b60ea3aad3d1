package roster

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestReadAssignors(t *testing.T) {
	input := strings.Join([]string{
		"Coastal,White,Pat,pwhite@example.org",
		"Coastal,Stone,Jordan,jstone@example.org",
		"Inland,Reyes,Casey,creyes@example.org",
	}, "\n")

	directory, err := ReadAssignors(strings.NewReader(input))
	require.NoError(t, err)

	expected := AssignorDirectory{
		"Coastal": {
			{Name: "Pat White", Email: "<Pat White>pwhite@example.org"},
			{Name: "Jordan Stone", Email: "<Jordan Stone>jstone@example.org"},
		},
		"Inland": {
			{Name: "Casey Reyes", Email: "<Casey Reyes>creyes@example.org"},
		},
	}
	require.Empty(t, cmp.Diff(expected, directory))
}

func TestReadAssignorsShortRow(t *testing.T) {
	_, err := ReadAssignors(strings.NewReader("Coastal,White,Pat"))
	require.Error(t, err)
}

func TestReadCoaches(t *testing.T) {
	input := strings.Join([]string{
		"Age Group,Gender,Team,Coach",
		"Grade 5/6,Boys,Rapids,Pat Coach",
		"Grade 5/6,Girls,Rapids,Sam Coach",
		"Grade 7/8,Boys,United,Riley Coach",
		"Notes,,,",
	}, "\n")

	directory, err := ReadCoaches(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, "Pat Coach", directory.CoachName("Grade 5/6", "Boys", "Rapids"))
	require.Equal(t, "Sam Coach", directory.CoachName("Grade 5/6", "Girls", "Rapids"))
	require.Equal(t, "Riley Coach", directory.CoachName("Grade 7/8", "Boys", "United"))
}

func TestCoachNameUnknown(t *testing.T) {
	directory := CoachDirectory{
		"Grade 5/6": {"Boys": {"Rapids": "Pat Coach"}},
	}

	require.Equal(t, UnknownCoach, directory.CoachName("Grade 9/10", "Boys", "Rapids"))
	require.Equal(t, UnknownCoach, directory.CoachName("Grade 5/6", "Girls", "Rapids"))
	require.Equal(t, UnknownCoach, directory.CoachName("Grade 5/6", "Boys", "United"))
	require.Equal(t, UnknownCoach, CoachDirectory{}.CoachName("Grade 5/6", "Boys", "Rapids"))
}

func TestReadReferees(t *testing.T) {
	input := strings.Join([]string{
		"Sam,Whistle,101",
		"Alex,Flag,102",
	}, "\n")

	referees, err := ReadReferees(strings.NewReader(input))
	require.NoError(t, err)

	expected := []Referee{
		{Name: "Sam Whistle", ID: "101"},
		{Name: "Alex Flag", ID: "102"},
	}
	require.Empty(t, cmp.Diff(expected, referees))
}

func TestLoadAssignorsMissingFile(t *testing.T) {
	_, err := LoadAssignors("does-not-exist.csv")
	require.Error(t, err)
}
