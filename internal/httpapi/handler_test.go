package httpapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	y, m, d, err := parseDate("1995-05-16")
	require.NoError(t, err)
	assert.Equal(t, 1995, y)
	assert.Equal(t, 5, m)
	assert.Equal(t, 16, d)
}

func TestParseDate_Invalid(t *testing.T) {
	_, _, _, err := parseDate("16-05-1995")
	assert.Error(t, err)
}

func TestParseTime_HourMinute(t *testing.T) {
	h, m, s, err := parseTime("18:38")
	require.NoError(t, err)
	assert.Equal(t, 18, h)
	assert.Equal(t, 38, m)
	assert.Equal(t, 0, s)
}

func TestParseTime_HourMinuteSecond(t *testing.T) {
	h, m, s, err := parseTime("06:05:09")
	require.NoError(t, err)
	assert.Equal(t, 6, h)
	assert.Equal(t, 5, m)
	assert.Equal(t, 9, s)
}

func TestParseTime_Invalid(t *testing.T) {
	_, _, _, err := parseTime("not-a-time")
	assert.Error(t, err)
}

func TestParseOptionalDate_EmptyUsesFallback(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := parseOptionalDate("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)
}

func TestParseOptionalDate_Explicit(t *testing.T) {
	got, err := parseOptionalDate("2026-03-05", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 5, got.Day())
}
