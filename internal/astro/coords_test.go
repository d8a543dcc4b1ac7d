package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name                           string
		year, month, day, hour, minute int
		second                         float64
		expected                       float64
	}{
		{"J2000 epoch", 2000, 1, 1, 12, 0, 0, 2451545.0},
		{"Unix epoch", 1970, 1, 1, 0, 0, 0, 2440587.5},
		{"Known date 2024-01-01 00:00 UTC", 2024, 1, 1, 0, 0, 0, 2460310.5},
		{"Chart instant 1990-04-15 09:00", 1990, 4, 15, 9, 0, 0, 2447996.875},
		{"Last Julian calendar day", 1582, 10, 4, 0, 0, 0, 2299159.5},
		{"First Gregorian calendar day", 1582, 10, 15, 0, 0, 0, 2299160.5},
		{"Julian leap day", 1000, 2, 29, 0, 0, 0, 2086366.5},
		{"Day zero", -4712, 1, 1, 12, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JulianDate(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.second)
			if err != nil {
				t.Fatalf("JulianDate() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("JulianDate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestJulianDate_CalendarSwitch(t *testing.T) {
	before, err := JulianDate(1582, 10, 4, 12, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	after, err := JulianDate(1582, 10, 15, 12, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Ten calendar days vanish but only one day elapses
	if after-before != 1 {
		t.Errorf("JD gap across the reform = %v, want 1", after-before)
	}

	// Without the Gregorian correction the 15th would land ten days later
	unchecked := math.Floor(365.25*(1582+4716)) + math.Floor(30.6001*11) + 15 - 1524.5 + 0.5
	if unchecked-after != 10 {
		t.Errorf("Gregorian correction = %v, want 10", unchecked-after)
	}
}

func TestJulianDate_Monotonic(t *testing.T) {
	prev := math.Inf(-1)
	start := time.Date(1582, 10, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i++ {
		ts := start.Add(time.Duration(i) * 97 * time.Hour)
		jd, err := JulianDate(ts.Year(), int(ts.Month()), ts.Day(), ts.Hour(), ts.Minute(), 0)
		if err != nil {
			t.Fatalf("%v: %v", ts, err)
		}
		if jd <= prev {
			t.Fatalf("JD not increasing at %v: %v <= %v", ts, jd, prev)
		}
		prev = jd
	}
}

func TestJulianDate_InvalidInput(t *testing.T) {
	tests := []struct {
		name                           string
		year, month, day, hour, minute int
		second                         float64
		wantErr                        error
		wantField                      string
	}{
		{"month zero", 2020, 0, 1, 0, 0, 0, ErrInvalidDate, "month"},
		{"month thirteen", 2020, 13, 1, 0, 0, 0, ErrInvalidDate, "month"},
		{"day zero", 2020, 5, 0, 0, 0, 0, ErrInvalidDate, "day"},
		{"April 31", 2021, 4, 31, 0, 0, 0, ErrInvalidDate, "day"},
		{"Gregorian 1900 not leap", 1900, 2, 29, 0, 0, 0, ErrInvalidDate, "day"},
		{"dropped reform day", 1582, 10, 10, 0, 0, 0, ErrInvalidDate, "day"},
		{"hour 24", 2020, 1, 1, 24, 0, 0, ErrInvalidTime, "hour"},
		{"minute 60", 2020, 1, 1, 0, 60, 0, ErrInvalidTime, "minute"},
		{"second 60", 2020, 1, 1, 0, 0, 60, ErrInvalidTime, "second"},
		{"negative second", 2020, 1, 1, 0, 0, -1, ErrInvalidTime, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JulianDate(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.second)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var inErr *InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("error %T is not *InputError", err)
			}
			if inErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", inErr.Field, tt.wantField)
			}
		})
	}
}

func TestJulianDate_LeapDays(t *testing.T) {
	valid := [][3]int{{2000, 2, 29}, {2024, 2, 29}, {1500, 2, 29}, {1200, 2, 29}}
	for _, d := range valid {
		if _, err := JulianDate(d[0], d[1], d[2], 0, 0, 0); err != nil {
			t.Errorf("%v: unexpected error %v", d, err)
		}
	}
}

func TestJulianDateOf(t *testing.T) {
	ts := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := JulianDateOf(ts); got != J2000 {
		t.Errorf("JulianDateOf(J2000) = %v, want %v", got, J2000)
	}

	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2000, 1, 1, 17, 30, 0, 0, ist)
	if got := JulianDateOf(local); got != J2000 {
		t.Errorf("JulianDateOf(IST) = %v, want %v", got, J2000)
	}

	half := time.Date(2000, 1, 1, 12, 0, 30, 500_000_000, time.UTC)
	want := J2000 + 30.5/86400
	if got := JulianDateOf(half); math.Abs(got-want) > 1e-8 {
		t.Errorf("JulianDateOf(sub-second) = %v, want %v", got, want)
	}
}

func TestTimeOf(t *testing.T) {
	tests := []struct {
		jd   float64
		want time.Time
	}{
		{J2000, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)},
		{2447996.875, time.Date(1990, 4, 15, 9, 0, 0, 0, time.UTC)},
		{2440587.5, time.Unix(0, 0).UTC()},
	}

	for _, tt := range tests {
		got := TimeOf(tt.jd)
		if !got.Equal(tt.want) {
			t.Errorf("TimeOf(%v) = %v, want %v", tt.jd, got, tt.want)
		}
		if back := JulianDateOf(got); back != tt.jd {
			t.Errorf("JulianDateOf(TimeOf(%v)) = %v", tt.jd, back)
		}
	}

	// Before the reform the same instant carries a different calendar label
	jd, _ := JulianDate(1582, 10, 4, 0, 0, 0)
	if got := TimeOf(jd); got.Day() != 14 {
		t.Errorf("TimeOf(1582-10-04 Julian) = %v, want Gregorian 14th", got)
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	gmst := GreenwichMeanSiderealTime(0)

	if math.Abs(gmst-280.46061837) > 1e-9 {
		t.Errorf("GMST at J2000 = %v, want 280.46061837", gmst)
	}

	for d := -40000.0; d <= 40000; d += 1234.567 {
		g := GreenwichMeanSiderealTime(d)
		if g < 0 || g >= 360 {
			t.Errorf("GMST(%v) out of range: %v", d, g)
		}
	}
}

func TestLocalSiderealTime(t *testing.T) {
	d := 8931.0
	gmst := GreenwichMeanSiderealTime(d)

	// The chart convention adds a quarter turn
	lst0 := localSiderealTime(d, 0)
	if math.Abs(lst0-Rev(gmst+90)) > 1e-9 {
		t.Errorf("LST at lon=0 = %v, want %v", lst0, Rev(gmst+90))
	}

	for lon := -180.0; lon <= 180; lon += 30 {
		lst := localSiderealTime(d, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestAscendant(t *testing.T) {
	tests := []struct {
		name     string
		jd       float64
		lat, lon float64
		expected float64
	}{
		{"J2000 at null island", 2451545.0, 0, 0, 11.377875134122926},
		{"Delhi 1990", 2447996.875, 28.6139, 77.2090, 149.77219620937444},
		{"Sydney 1990", 2447996.875, -33.8688, 151.2093, 235.2333546140594},
		{"Greenwich 2024", 2460310.5, 51.4779, -0.0015, 187.16124141180333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ascendant(tt.jd, tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("Ascendant() error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Ascendant() = %.12f, want %.12f", got, tt.expected)
			}
		})
	}
}

func TestAscendant_Range(t *testing.T) {
	for jd := 2415020.5; jd < 2488070.5; jd += 731.3 {
		for lat := -89.5; lat <= 89.5; lat += 11.9 {
			for lon := -180.0; lon <= 180; lon += 45 {
				asc, err := Ascendant(jd, lat, lon)
				if err != nil {
					t.Fatalf("Ascendant(%v, %v, %v) error: %v", jd, lat, lon, err)
				}
				if asc < 0 || asc >= 360 {
					t.Fatalf("Ascendant(%v, %v, %v) = %v out of range", jd, lat, lon, asc)
				}
			}
		}
	}
}

func TestAscendant_RejectsPoles(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		_, err := Ascendant(J2000, lat, 0)
		if !errors.Is(err, ErrPolarLatitude) {
			t.Errorf("Ascendant(lat=%v) error = %v, want ErrPolarLatitude", lat, err)
		}
	}

	for _, obs := range []Observer{
		{LatDeg: 91},
		{LatDeg: math.NaN()},
		{LatDeg: 10, LonDeg: math.Inf(1)},
	} {
		_, err := Ascendant(J2000, obs.LatDeg, obs.LonDeg)
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Ascendant(%+v) error = %v, want ErrInvalidCoordinate", obs, err)
		}
	}
}
