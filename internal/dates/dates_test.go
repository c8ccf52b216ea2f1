package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupdocs/internal/dates"
)

func TestFolderDate(t *testing.T) {
	p := dates.NewParser(time.UTC)

	got, ok := p.FolderDate("1. Apr 20, 2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC), got)

	got, ok = p.FolderDate("12. Oct 3 2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC), got)

	got, ok = p.FolderDate("Swift. Meetup. Sep 7, 2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.September, 7, 0, 0, 0, 0, time.UTC), got)
}

func TestFolderDate_noDate(t *testing.T) {
	p := dates.NewParser(nil)

	for _, name := range []string{"Talk1", "Apr 20, 2025", "1. Someday", "1. April 20, 2025", ""} {
		_, ok := p.FolderDate(name)
		assert.False(t, ok, name)
	}
}

func TestFolderDate_usesParserLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	p := dates.NewParser(kolkata)

	got, ok := p.FolderDate("1. Oct 1, 2025")

	require.True(t, ok)
	assert.Equal(t, kolkata, got.Location())
	assert.Equal(t, int64(1759257000), got.Unix())
}

func TestConfigDate(t *testing.T) {
	p := dates.NewParser(time.UTC)

	got, err := p.ConfigDate("October 11, 2025")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestConfigDate_malformed(t *testing.T) {
	p := dates.NewParser(time.UTC)

	_, err := p.ConfigDate("Oct 11 2025")

	var perr *dates.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Oct 11 2025", perr.Value)
}

func TestAgendaTime(t *testing.T) {
	p := dates.NewParser(time.UTC)

	got, err := p.AgendaTime("October 11, 2025", "10:15 AM ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 11, 10, 15, 0, 0, time.UTC), got)

	got, err = p.AgendaTime("October 11, 2025", " 02:30 pm")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 11, 14, 30, 0, 0, time.UTC), got)

	got, err = p.AgendaTime("October 11, 2025", "9:05 AM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 11, 9, 5, 0, 0, time.UTC), got)
}

func TestAgendaTime_malformed(t *testing.T) {
	p := dates.NewParser(time.UTC)

	for _, clock := range []string{"10:15", "noon", "25:00 PM", ""} {
		_, err := p.AgendaTime("October 11, 2025", clock)
		var perr *dates.ParseError
		assert.ErrorAs(t, err, &perr, clock)
	}
}
