package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"8":        "08:00",
		"08":       "08:00",
		"8:5":      "08:05",
		"08:30":    "08:30",
		"23:59:59": "23:59",
		" 7:45 ":   "07:45",
	}
	for in, want := range cases {
		got, err := NormalizeClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "24", "12:60", "ab:cd", "1:2:3:4", "08:30:zz", "08:30:60", "08:30:"} {
		_, err := NormalizeClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got)

	got, err = NormalizeDate("2025-06-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got)

	_, err = NormalizeDate("01/06/2025")
	assert.Error(t, err)
}
