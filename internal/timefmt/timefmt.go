package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Format selects which time components a countdown shows.
type Format int

const (
	Auto Format = iota
	DHMS
	HMS
	MS
	HM
	DHM
	DH
)

var ErrUnknownFormat = errors.New("unknown display format")

var formatNames = map[Format]string{
	Auto: "AUTO",
	DHMS: "DHMS",
	HMS:  "HMS",
	MS:   "MS",
	HM:   "HM",
	DHM:  "DHM",
	DH:   "DH",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts a format name in any case. The empty string is Auto.
func ParseFormat(s string) (Format, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Auto, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatNames[f]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Components is a number of seconds split into calendar-free units.
type Components struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func Decompose(seconds int) Components {
	if seconds < 0 {
		seconds = 0
	}
	var c Components
	c.Days = seconds / 86400
	seconds %= 86400
	c.Hours = seconds / 3600
	seconds %= 3600
	c.Minutes = seconds / 60
	c.Seconds = seconds % 60
	return c
}

func (c Components) TotalHours() int {
	return c.Days*24 + c.Hours
}

func (c Components) TotalMinutes() int {
	return c.TotalHours()*60 + c.Minutes
}

// Placeholder is what a countdown shows before its first tick.
func Placeholder(f Format) string {
	switch f {
	case DHMS:
		return "00:00:00:00"
	case DHM, HMS:
		return "00:00:00"
	case MS, HM, DH:
		return "00:00"
	default:
		return "00:00:00"
	}
}

// Render formats seconds for display. With showDoubleZero the leading field
// of an explicit format reads "00" instead of "0" when it is zero.
func Render(seconds int, f Format, showDoubleZero bool) string {
	c := Decompose(seconds)

	lead := func(v int) string {
		if showDoubleZero && v == 0 {
			return "00"
		}
		return strconv.Itoa(v)
	}

	switch f {
	case DHMS:
		return fmt.Sprintf("%s:%02d:%02d:%02d", lead(c.Days), c.Hours, c.Minutes, c.Seconds)
	case HMS:
		return fmt.Sprintf("%s:%02d:%02d", lead(c.TotalHours()), c.Minutes, c.Seconds)
	case MS:
		return fmt.Sprintf("%s:%02d", lead(c.TotalMinutes()), c.Seconds)
	case HM:
		return fmt.Sprintf("%s:%02d", lead(c.TotalHours()), c.Minutes)
	case DHM:
		return fmt.Sprintf("%s:%02d:%02d", lead(c.Days), c.Hours, c.Minutes)
	case DH:
		return fmt.Sprintf("%s:%02d", lead(c.Days), c.Hours)
	}

	switch {
	case c.Days != 0:
		return fmt.Sprintf("%d:%02d:%02d:%02d", c.Days, c.Hours, c.Minutes, c.Seconds)
	case c.Hours != 0:
		return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	case c.Minutes != 0, c.Seconds != 0:
		return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
	}
	return ""
}
