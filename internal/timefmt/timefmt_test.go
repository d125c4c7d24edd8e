package timefmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	for _, s := range []int{0, 1, 59, 60, 3599, 3600, 3661, 86399, 86400, 90061, 1000000} {
		c := Decompose(s)
		assert.Equal(t, s, c.Days*86400+c.Hours*3600+c.Minutes*60+c.Seconds, "seconds %d", s)
		assert.True(t, c.Hours >= 0 && c.Hours <= 23, "hours %d", c.Hours)
		assert.True(t, c.Minutes >= 0 && c.Minutes <= 59, "minutes %d", c.Minutes)
		assert.True(t, c.Seconds >= 0 && c.Seconds <= 59, "seconds %d", c.Seconds)
	}

	c := Decompose(90061)
	assert.Equal(t, Components{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, c)
	assert.Equal(t, 25, c.TotalHours())
	assert.Equal(t, 1501, c.TotalMinutes())
}

func TestRender(t *testing.T) {
	cases := []struct {
		seconds    int
		format     Format
		doubleZero bool
		want       string
	}{
		{3661, HMS, false, "1:01:01"},
		{3661, DHMS, false, "0:01:01:01"},
		{0, MS, false, "0:00"},
		{90061, DHMS, false, "1:01:01:01"},
		{90061, HMS, false, "25:01:01"},
		{90061, MS, false, "1501:01"},
		{90061, HM, false, "25:01"},
		{90061, DHM, false, "1:01:01"},
		{90061, DH, false, "1:01"},
		{59, DHMS, true, "00:00:00:59"},
		{59, HMS, true, "00:00:59"},
		{59, HM, true, "00:00"},
		{59, MS, true, "00:59"},
		{59, DHM, true, "00:00:00"},
		{59, DH, true, "00:00"},
		{3661, HMS, true, "1:01:01"},
		{86400, DH, true, "1:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Render(tc.seconds, tc.format, tc.doubleZero),
			"Render(%d, %s, %v)", tc.seconds, tc.format, tc.doubleZero)
	}
}

func TestRenderAuto(t *testing.T) {
	assert.Equal(t, "", Render(0, Auto, false))
	assert.Equal(t, "00:05", Render(5, Auto, false))
	assert.Equal(t, "01:00", Render(60, Auto, false))
	assert.Equal(t, "01:01:01", Render(3661, Auto, false))
	assert.Equal(t, "1:00:00:00", Render(86400, Auto, false))
	assert.Equal(t, "00:05", Render(5, Auto, true))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "00:00:00:00", Placeholder(DHMS))
	assert.Equal(t, "00:00:00", Placeholder(DHM))
	assert.Equal(t, "00:00:00", Placeholder(HMS))
	assert.Equal(t, "00:00", Placeholder(MS))
	assert.Equal(t, "00:00", Placeholder(HM))
	assert.Equal(t, "00:00", Placeholder(DH))
	assert.Equal(t, "00:00:00", Placeholder(Auto))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("hms")
	require.NoError(t, err)
	assert.Equal(t, HMS, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Auto, f)

	f, err = ParseFormat("auto")
	require.NoError(t, err)
	assert.Equal(t, Auto, f)

	_, err = ParseFormat("YMD")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	var g Format
	require.NoError(t, g.UnmarshalText([]byte("DH")))
	assert.Equal(t, DH, g)
	text, err := g.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DH", string(text))
}
