package timeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlagDate(t *testing.T) {
	parsed, err := ParseFlagDate("01/05/2024")
	require.NoError(t, err)
	require.Equal(t, 2024, parsed.Year())
	require.Equal(t, 1, int(parsed.Month()))
	require.Equal(t, 5, parsed.Day())
	require.Equal(t, Location, parsed.Location())

	_, err = ParseFlagDate("2024-01-05")
	require.Error(t, err)
}

func TestFormatUpstream(t *testing.T) {
	parsed, err := ParseFlagDate("04/05/2024")
	require.NoError(t, err)
	require.Equal(t, "2024-04-05", FormatUpstream(parsed))
	require.Equal(t, "04/05/2024", FormatHuman(parsed))
}
