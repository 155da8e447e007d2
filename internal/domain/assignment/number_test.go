package assignment

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	at := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "ASG-20240601-", DayPrefix(at))
	assert.Equal(t, "ASG-20240601-001", FormatNumber(at, 1))
	assert.Equal(t, "ASG-20240601-042", FormatNumber(at, 42))
	assert.Equal(t, "ASG-20240601-1000", FormatNumber(at, 1000))
}

func TestFormatNumber_UsaDiaUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	at := time.Date(2024, 6, 1, 21, 0, 0, 0, bogota) // 2024-06-02 02:00 UTC
	assert.Equal(t, "ASG-20240602-", DayPrefix(at))
}

func TestParseNumber(t *testing.T) {
	day, seq, err := ParseNumber("ASG-20240601-007")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, 7, seq)

	for _, bad := range []string{"", "ASG-2024-001", "XYZ-20240601-001", "ASG-20240601-01", "ASG-20240601-abc", "ASG-20240601-000"} {
		_, _, err := ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestNumbers_OrdenablesPorFecha(t *testing.T) {
	d1 := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := []string{FormatNumber(d2, 2), FormatNumber(d1, 9), FormatNumber(d2, 1)}
	sort.Strings(got)
	assert.Equal(t, []string{"ASG-20240531-009", "ASG-20240601-001", "ASG-20240601-002"}, got)
}
