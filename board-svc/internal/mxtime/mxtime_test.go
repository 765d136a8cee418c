package mxtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestLocalParts(t *testing.T) {
	parts := LocalParts(mustParse(t, "2024-03-04T14:00:00Z"))

	assert.Equal(t, "2024-03-04", parts.Date)
	assert.Equal(t, 8, parts.Hour)
	assert.Equal(t, "2024-03", parts.YearMonth)
}

func TestLocalParts_CrossesDateLine(t *testing.T) {
	// 05:59 UTC is 23:59 of the previous day in UTC-6.
	parts := LocalParts(mustParse(t, "2024-03-05T05:59:00Z"))

	assert.Equal(t, "2024-03-04", parts.Date)
	assert.Equal(t, 23, parts.Hour)
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-03-06 is a Wednesday, 2024-03-10 a Sunday.
	assert.Equal(t, 2, WeekdayIndex(mustParse(t, "2024-03-06T18:00:00Z")))
	assert.Equal(t, 6, WeekdayIndex(mustParse(t, "2024-03-10T18:00:00Z")))
	assert.Equal(t, 0, WeekdayIndex(mustParse(t, "2024-03-04T18:00:00Z")))
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(mustParse(t, "2024-03-06T18:00:00Z"))

	assert.Equal(t, []string{
		"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07",
		"2024-03-08", "2024-03-09", "2024-03-10",
	}, dates)
}

func TestOperatingParts(t *testing.T) {
	date, hour := OperatingParts(mustParse(t, "2024-03-04T14:00:00Z"))
	assert.Equal(t, "2024-03-04", date)
	assert.Equal(t, 8, hour)

	// Local midnight closes the previous operating day as hour 24.
	date, hour = OperatingParts(mustParse(t, "2024-03-05T06:30:00Z"))
	assert.Equal(t, "2024-03-04", date)
	assert.Equal(t, 24, hour)
}

func TestFormatLocal(t *testing.T) {
	assert.Equal(t, "04/03/24, 08:00", FormatLocal(mustParse(t, "2024-03-04T14:00:00Z")))
}
