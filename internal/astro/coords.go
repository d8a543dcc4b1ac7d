package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of 2000-01-01 12:00 UTC, the epoch of every
// linear element rate in this package.
const J2000 = 2451545.0

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Validate reports whether the observer can be used for an ascendant.
func (o Observer) Validate() error {
	if math.IsNaN(o.LatDeg) || math.IsInf(o.LatDeg, 0) || o.LatDeg < -90 || o.LatDeg > 90 {
		return inputErr("latitude", o.LatDeg, ErrInvalidCoordinate)
	}
	if math.Abs(o.LatDeg) == 90 {
		return inputErr("latitude", o.LatDeg, ErrPolarLatitude)
	}
	if math.IsNaN(o.LonDeg) || math.IsInf(o.LonDeg, 0) {
		return inputErr("longitude", o.LonDeg, ErrInvalidCoordinate)
	}
	return nil
}

// JulianDate converts a UTC calendar date and time of day to a Julian Date.
// Dates before 1582-10-15 are read as proleptic Julian calendar dates, later
// ones as Gregorian. The ten dates dropped by the reform are rejected.
func JulianDate(year, month, day, hour, minute int, second float64) (float64, error) {
	if err := validateDate(year, month, day); err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, inputErr("hour", hour, ErrInvalidTime)
	}
	if minute < 0 || minute > 59 {
		return 0, inputErr("minute", minute, ErrInvalidTime)
	}
	if math.IsNaN(second) || second < 0 || second >= 60 {
		return 0, inputErr("second", second, ErrInvalidTime)
	}
	return julianDate(year, month, day, hour, minute, second), nil
}

// unixEpochJD is the Julian Date of 1970-01-01 00:00 UTC.
const unixEpochJD = 2440587.5

// JulianDateOf returns the Julian Date of the instant t. Go times are
// proleptic Gregorian, so this agrees with JulianDate only from 1582-10-15 on.
func JulianDateOf(t time.Time) float64 {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + secs/86400
}

// TimeOf returns the UTC instant of Julian Date jd, to the microsecond.
func TimeOf(jd float64) time.Time {
	us := math.Round((jd - unixEpochJD) * 86400e6)
	return time.UnixMicro(int64(us)).UTC()
}

// DaysSinceJ2000 returns the day number d used by the element tables.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}

// julianDate is the unchecked Meeus conversion.
func julianDate(year, month, day, hour, minute int, second float64) float64 {
	y := float64(year)
	m := float64(month)

	// January and February count as months 13 and 14 of the previous year
	if month <= 2 {
		y--
		m += 12
	}

	// Gregorian correction only from the reform onward
	b := 0.0
	if isGregorian(year, month, day) {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}

	jd := b + float64(day) +
		math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) -
		1524.5
	jd += (float64(hour) + float64(minute)/60 + second/3600) / 24
	return jd
}

func isGregorian(year, month, day int) bool {
	switch {
	case year != 1582:
		return year > 1582
	case month != 10:
		return month > 10
	default:
		return day >= 15
	}
}

func validateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return inputErr("month", month, ErrInvalidDate)
	}
	if year == 1582 && month == 10 && day > 4 && day < 15 {
		return inputErr("day", day, ErrInvalidDate)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return inputErr("day", day, ErrInvalidDate)
	}
	return nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// isLeapYear applies the Julian rule before the reform year and the
// Gregorian rule after it. 1582 itself is not a leap year either way.
func isLeapYear(year int) bool {
	if year < 1582 {
		return mod(year, 4) == 0
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// mod is a floored modulo so proleptic negative years behave.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// GreenwichMeanSiderealTime returns GMST in degrees for day number d.
func GreenwichMeanSiderealTime(d float64) float64 {
	return Rev(280.46061837 + 360.98564736629*d)
}

// localSiderealTime returns the sidereal angle fed to the ascendant formula.
// The extra 90 degrees is part of the chart convention.
func localSiderealTime(d, lonDeg float64) float64 {
	return Rev(GreenwichMeanSiderealTime(d) + lonDeg + 90)
}

// Obliquity returns the obliquity of the ecliptic in degrees for day number d.
func Obliquity(d float64) float64 {
	return 23.439281 - 0.0000004*d
}

// Ascendant returns the tropical ecliptic longitude rising on the eastern
// horizon for the observer at Julian Date jd.
func Ascendant(jd, latDeg, lonDeg float64) (float64, error) {
	obs := Observer{LatDeg: latDeg, LonDeg: lonDeg}
	if err := obs.Validate(); err != nil {
		return 0, err
	}

	d := DaysSinceJ2000(jd)
	lst := degToRad(localSiderealTime(d, lonDeg))
	eps := degToRad(Obliquity(d))
	lat := degToRad(latDeg)

	y := math.Sin(lst)
	x := math.Cos(lst)*math.Cos(eps) - math.Sin(eps)*math.Tan(lat)
	return Rev(radToDeg(math.Atan2(y, x))), nil
}
