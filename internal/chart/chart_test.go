package chart

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/ephem"
)

// 1990-04-15 09:00 UTC in New Delhi.
var (
	refJD  = 2447996.875
	refObs = &astro.Observer{LatDeg: 28.6139, LonDeg: 77.2090, Name: "New Delhi"}
)

func TestCompute_Reference(t *testing.T) {
	c, err := Compute(ephem.NewKeplerProvider(), refJD, refObs)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if c.D != -3548.125 {
		t.Errorf("D = %v", c.D)
	}
	if !c.Time.Equal(time.Date(1990, 4, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Time = %v", c.Time)
	}
	if math.Abs(c.Ayanamsa-23.71734634938969) > 1e-9 {
		t.Errorf("Ayanamsa = %v", c.Ayanamsa)
	}

	want := []Position{
		{Body: astro.Sun, Sidereal: 359.95517739996, Sign: 11, Nakshatra: 26, Pada: 4, Navamsa: 11},
		{Body: astro.Moon, Sidereal: 238.66963265361062, Sign: 7, Nakshatra: 17, Pada: 4, Navamsa: 11},
		{Body: astro.Mercury, Sidereal: 19.442002914093234, Sign: 0, Nakshatra: 1, Pada: 2, Navamsa: 5},
		{Body: astro.Venus, Sidereal: 313.96229770520574, Sign: 10, Nakshatra: 23, Pada: 3, Navamsa: 10},
		{Body: astro.Mars, Sidereal: 300.92745909848065, Sign: 10, Nakshatra: 22, Pada: 3, Navamsa: 6},
		{Body: astro.Jupiter, Sidereal: 70.64014133549922, Sign: 2, Nakshatra: 5, Pada: 2, Navamsa: 9},
		{Body: astro.Saturn, Sidereal: 271.28294606735926, Sign: 9, Nakshatra: 20, Pada: 2, Navamsa: 9},
		{Body: astro.Rahu, Sidereal: 289.29218472504783, Sign: 9, Nakshatra: 21, Pada: 3, Navamsa: 2, Retrograde: true},
		{Body: astro.Ketu, Sidereal: 109.29218472504783, Sign: 3, Nakshatra: 8, Pada: 1, Navamsa: 8, Retrograde: true},
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(Position{}, "Tropical", "Speed", "SignDegree"),
		cmpopts.EquateApprox(0, 1e-9),
	}
	if diff := cmp.Diff(want, c.Positions, opts); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	if c.Ascendant == nil {
		t.Fatal("Ascendant missing with observer set")
	}
	if math.Abs(c.Ascendant.Tropical-149.77219620937444) > 1e-9 {
		t.Errorf("Ascendant.Tropical = %v", c.Ascendant.Tropical)
	}
	if math.Abs(c.Ascendant.Sidereal-126.05484985998476) > 1e-9 {
		t.Errorf("Ascendant.Sidereal = %v", c.Ascendant.Sidereal)
	}
	if c.Ascendant.Sign != 4 || c.Ascendant.Nakshatra != 9 || c.Ascendant.Pada != 2 {
		t.Errorf("Ascendant = %+v", c.Ascendant)
	}
}

func TestCompute_DerivedKeys(t *testing.T) {
	tests := []struct {
		name       string
		jd         float64
		atmakaraka astro.Body
		karakamsa  int
		twelfth    int
		ishta      astro.Body
		aditya     int
		tithi      int
		paksha     Paksha
		elongation float64
	}{
		{"1990 chart, ketu in twelfth navamsa", refJD, astro.Saturn, 4, 3, astro.Ketu, 11, 20, Krishna, 238.7144552536506},
		{"J2000, first of two in twelfth", astro.J2000, astro.Mercury, 8, 7, astro.Jupiter, 8, 26, Krishna, 304.4149053022255},
		{"twelfth empty so ruler", 2451552.0, astro.Jupiter, 7, 6, astro.Venus, 8, 2, Shukla, 20.585837107659245},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compute(ephem.NewKeplerProvider(), tt.jd, nil)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if c.Atmakaraka != tt.atmakaraka {
				t.Errorf("Atmakaraka = %v, want %v", c.Atmakaraka, tt.atmakaraka)
			}
			if c.Karakamsa != tt.karakamsa || c.TwelfthSign != tt.twelfth {
				t.Errorf("Karakamsa/Twelfth = %d/%d, want %d/%d", c.Karakamsa, c.TwelfthSign, tt.karakamsa, tt.twelfth)
			}
			if c.IshtaPlanet != tt.ishta {
				t.Errorf("IshtaPlanet = %v, want %v", c.IshtaPlanet, tt.ishta)
			}
			if c.AdityaIndex != tt.aditya {
				t.Errorf("AdityaIndex = %d, want %d", c.AdityaIndex, tt.aditya)
			}
			if c.Phase.Tithi != tt.tithi || c.Phase.Paksha != tt.paksha {
				t.Errorf("Phase = %+v", c.Phase)
			}
			if math.Abs(c.Phase.Elongation-tt.elongation) > 1e-9 {
				t.Errorf("Elongation = %v, want %v", c.Phase.Elongation, tt.elongation)
			}
			if c.Ascendant != nil || c.Observer != nil {
				t.Error("Ascendant set without observer")
			}
		})
	}
}

func TestCompute_RejectsBadObserver(t *testing.T) {
	p := ephem.NewKeplerProvider()
	for _, obs := range []*astro.Observer{
		{LatDeg: 90},
		{LatDeg: -90},
		{LatDeg: math.NaN()},
		{LatDeg: 10, LonDeg: math.Inf(-1)},
	} {
		_, err := Compute(p, refJD, obs)
		var inErr *astro.InputError
		if !errors.As(err, &inErr) {
			t.Errorf("Compute(%+v) error = %v, want *InputError", obs, err)
		}
	}
}

func TestCompute_CopiesObserver(t *testing.T) {
	obs := &astro.Observer{LatDeg: 12, LonDeg: 77}
	c, err := Compute(ephem.NewKeplerProvider(), refJD, obs)
	if err != nil {
		t.Fatal(err)
	}
	obs.LatDeg = 0
	if c.Observer.LatDeg != 12 {
		t.Error("chart observer aliased caller's value")
	}
}

func TestAt(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(1990, 4, 15, 14, 30, 0, 0, ist)

	c, err := At(ephem.NewKeplerProvider(), local, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.JD != refJD {
		t.Errorf("JD = %v, want %v", c.JD, refJD)
	}
	if c.Time.Location() != time.UTC {
		t.Errorf("Time not UTC: %v", c.Time)
	}
	if c.Provider != "Kepler" {
		t.Errorf("Provider = %q", c.Provider)
	}

	pos, ok := c.Position(astro.Moon)
	if !ok || pos.Body != astro.Moon {
		t.Fatalf("Position(Moon) = %+v, %v", pos, ok)
	}
	if _, ok := c.Position(astro.Body(50)); ok {
		t.Error("Position(invalid) found")
	}
}

func TestCompute_InvariantsOverTime(t *testing.T) {
	p := ephem.NewKeplerProvider()
	obs := &astro.Observer{LatDeg: -33.87, LonDeg: 151.21}
	for jd := 2415020.5; jd < 2488070.5; jd += 397.3 {
		c, err := Compute(p, jd, obs)
		if err != nil {
			t.Fatalf("Compute(%v) error: %v", jd, err)
		}
		for _, pos := range c.Positions {
			if pos.Sign < 0 || pos.Sign > 11 || pos.Nakshatra < 0 || pos.Nakshatra > 26 || pos.Pada < 1 || pos.Pada > 4 {
				t.Fatalf("jd %v %v: indices out of range %+v", jd, pos.Body, pos)
			}
			if pos.SignDegree < 0 || pos.SignDegree >= 30 {
				t.Fatalf("jd %v %v: sign degree %v", jd, pos.Body, pos.SignDegree)
			}
		}
		rahu := c.Positions[astro.Rahu]
		ketu := c.Positions[astro.Ketu]
		if math.Abs(math.Abs(astro.Wrap180(ketu.Sidereal-rahu.Sidereal))-180) > 1e-9 {
			t.Fatalf("jd %v: nodes not opposite", jd)
		}
		if (c.Phase.Elongation < 180) != c.Phase.Paksha.Bright() {
			t.Fatalf("jd %v: paksha disagrees with elongation", jd)
		}
		if c.Atmakaraka == astro.Ketu {
			t.Fatalf("jd %v: Ketu chosen as atmakaraka", jd)
		}
	}
}
