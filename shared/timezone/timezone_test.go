package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/shared/timezone"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestParseDate(t *testing.T) {
	date, err := timezone.ParseDate("2024-01-02")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), date)

	_, err = timezone.ParseDate("02/01/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 0, timezone.DaysBetween(day(2), day(2)))
	assert.Equal(t, 2, timezone.DaysBetween(day(2), day(4)))
	assert.Equal(t, -1, timezone.DaysBetween(day(3), day(2)))
	assert.Equal(t, 1, timezone.DaysBetween(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)))
}

func TestToday_FixedClock(t *testing.T) {
	at := time.Date(2024, 1, 3, 12, 0, 0, 0, timezone.GetLocation())
	today := timezone.Today(timezone.FixedClock{At: at})

	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), today)
}

func TestFormat(t *testing.T) {
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, timezone.GetLocation())

	assert.Equal(t, "January 2, 2024", timezone.Format(at, "January 2, 2006"))
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "January 4, 2024", timezone.FormatDate(date, "January 2, 2006"))
}
