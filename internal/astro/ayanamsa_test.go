package astro

import (
	"math"
	"testing"
)

func TestAyanamsa(t *testing.T) {
	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"J2000", J2000, 23.853},
		{"1990-04-15 09:00", 2447996.875, 23.71734634938969},
		{"one Julian century later", J2000 + 36525, 23.853 + 100*50.2719/3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ayanamsa(tt.jd)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ayanamsa(%v) = %.12f, want %.12f", tt.jd, got, tt.want)
			}
		})
	}
}

func TestAyanamsa_Increasing(t *testing.T) {
	prev := math.Inf(-1)
	for jd := 2299160.5; jd < 2488070.5; jd += 3652.5 {
		a := Ayanamsa(jd)
		if a <= prev {
			t.Fatalf("Ayanamsa not increasing at %v", jd)
		}
		prev = a
	}
}

func TestSidereal(t *testing.T) {
	jd := 2447996.875
	tests := []struct {
		tropical float64
		want     float64
	}{
		{23.672523749349693, 359.95517739996},
		{262.3869790030003, 238.66963265361062},
		{313.0095310744375, 289.29218472504783},
		{10, 360 + 10 - 23.71734634938969},
	}

	for _, tt := range tests {
		got := Sidereal(tt.tropical, jd)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Sidereal(%v) = %.12f, want %.12f", tt.tropical, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Sidereal(%v) = %v out of range", tt.tropical, got)
		}
	}
}
