package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "nunez", NormalizeQuery("  Nuñez "))
	assert.Equal(t, "club atletico san martin", NormalizeQuery("Club   Atlético\tSan Martín"))
	assert.Equal(t, "", NormalizeQuery("   "))
	assert.Equal(t, "padel", NormalizeQuery("PÁDEL"))
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{
		"2026-09-05T20:00:00Z",
		"2026-09-05T20:00:00-03:00",
		"2026-09-05T20:00:00",
		"2026-09-05 20:00:00",
		"2026-09-05",
	} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2026, got.Year(), s)
		assert.Equal(t, time.September, got.Month(), s)
	}

	_, err := ParseTime("05/09/2026")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	_, err = ParseTime("")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
