// Package birth resolves a local birth date and wall-clock time into the
// UTC instant and Julian Date a chart is cast for.
package birth

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	// Zone data for hosts without a system zoneinfo database.
	_ "time/tzdata"

	"github.com/litescript/ls-devas/internal/astro"
)

// Accepted UTC offset range in hours.
const (
	MinOffsetHours = -12.0
	MaxOffsetHours = 14.0
)

// ErrUnknownZone is wrapped when an IANA zone name cannot be loaded.
var ErrUnknownZone = errors.New("unknown time zone")

// Input is a birth moment as entered by the user. Exactly one of Offset or
// Zone is used; Zone wins when both are set.
type Input struct {
	Date   string   // YYYY-MM-DD, proleptic Julian before 1582-10-15
	Time   string   // HH:MM or HH:MM:SS(.fff), local wall clock
	Offset *float64 // hours east of UTC
	Zone   string   // IANA name, e.g. Asia/Kolkata
}

// Moment is a resolved birth instant.
type Moment struct {
	Local  string        // the wall clock as entered
	UTC    time.Time     // same instant in UTC
	JD     float64       // Julian Date of UTC
	Offset time.Duration // local minus UTC
}

var (
	dateRe = regexp.MustCompile(`^(-?\d{1,4})-(\d{1,2})-(\d{1,2})$`)
	timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}(?:\.\d+)?))?$`)
)

// Resolve converts the local wall clock to UTC.
func Resolve(in Input) (Moment, error) {
	year, month, day, err := ParseDate(in.Date)
	if err != nil {
		return Moment{}, err
	}
	hour, minute, second, err := ParseClock(in.Time)
	if err != nil {
		return Moment{}, err
	}

	// Validates against the calendar in force on that date
	localJD, err := astro.JulianDate(year, month, day, hour, minute, second)
	if err != nil {
		return Moment{}, err
	}

	loc := time.UTC
	switch {
	case in.Zone != "":
		loc, err = time.LoadLocation(in.Zone)
		if err != nil {
			return Moment{}, &astro.InputError{Field: "timezone", Value: in.Zone, Err: fmt.Errorf("%w: %v", ErrUnknownZone, err)}
		}
	case in.Offset != nil:
		if err := ValidateOffset(*in.Offset); err != nil {
			return Moment{}, err
		}
		secs := int(math.Round(*in.Offset * 3600))
		loc = time.FixedZone(formatOffset(secs), secs)
	}

	m := Moment{Local: strings.TrimSpace(in.Date) + " " + strings.TrimSpace(in.Time)}

	// Go times are proleptic Gregorian, so Julian calendar labels are first
	// relabelled through their JD. Zone rules that far back are LMT anyway.
	wall := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if localJD < gregorianStartJD {
		g := astro.TimeOf(localJD - second/86400).Round(time.Minute)
		wall = time.Date(g.Year(), g.Month(), g.Day(), g.Hour(), g.Minute(), 0, 0, loc)
	}
	wall = wall.Add(time.Duration(math.Round(second * float64(time.Second))))

	_, offSecs := wall.Zone()
	m.Offset = time.Duration(offSecs) * time.Second
	m.UTC = wall.UTC()
	m.JD = astro.JulianDateOf(m.UTC)
	return m, nil
}

// gregorianStartJD is 1582-10-15 00:00.
const gregorianStartJD = 2299160.5

func formatOffset(secs int) string {
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, secs/3600, secs%3600/60)
}

// ValidateOffset checks a UTC offset in hours.
func ValidateOffset(hours float64) error {
	if math.IsNaN(hours) || hours < MinOffsetHours || hours > MaxOffsetHours {
		return &astro.InputError{Field: "offset", Value: hours, Err: astro.ErrInvalidTime}
	}
	return nil
}

// ParseOffset parses "5.5", "-5", "+05:30" or "-03:00" into hours.
func ParseOffset(s string) (float64, error) {
	s = strings.TrimSpace(s)
	bad := &astro.InputError{Field: "offset", Value: s, Err: astro.ErrInvalidTime}

	var hours float64
	if h, m, ok := strings.Cut(s, ":"); ok {
		hh, err := strconv.Atoi(strings.TrimPrefix(h, "+"))
		if err != nil {
			return 0, bad
		}
		mm, err := strconv.Atoi(m)
		if err != nil || mm < 0 || mm > 59 {
			return 0, bad
		}
		hours = math.Abs(float64(hh)) + float64(mm)/60
		if strings.HasPrefix(h, "-") {
			hours = -hours
		}
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, bad
		}
		hours = v
	}

	if err := ValidateOffset(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// ParseDate parses YYYY-MM-DD. Range checks happen in astro.JulianDate.
func ParseDate(s string) (year, month, day int, err error) {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, &astro.InputError{Field: "date", Value: s, Err: astro.ErrInvalidDate}
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	return year, month, day, nil
}

// ParseClock parses HH:MM or HH:MM:SS with optional fractional seconds.
func ParseClock(s string) (hour, minute int, second float64, err error) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, &astro.InputError{Field: "time", Value: s, Err: astro.ErrInvalidTime}
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		second, _ = strconv.ParseFloat(m[3], 64)
	}
	return hour, minute, second, nil
}
