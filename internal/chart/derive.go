package chart

import (
	"math"

	"github.com/litescript/ls-devas/internal/astro"
)

// Zodiac division widths in degrees.
const (
	SignSpan      = 30.0
	NakshatraSpan = 360.0 / 27
	PadaSpan      = 360.0 / 108
	TithiSpan     = 12.0
)

// SignNames are the twelve signs in zodiac order.
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// NakshatraNames are the 27 lunar mansions starting at 0 degrees sidereal.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// signRulers maps each sign to its traditional lord.
var signRulers = [12]astro.Body{
	astro.Mars, astro.Venus, astro.Mercury, astro.Moon, astro.Sun, astro.Mercury,
	astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn, astro.Saturn, astro.Jupiter,
}

// clamp keeps an index inside [lo, hi] when rounding lands on an edge.
func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// SignOf returns the sign index 0..11 of a longitude.
func SignOf(lon float64) int {
	return clamp(int(math.Floor(astro.Rev(lon)/SignSpan)), 0, 11)
}

// SignDegree returns the degrees elapsed within the sign, in [0, 30).
func SignDegree(lon float64) float64 {
	l := astro.Rev(lon)
	return l - float64(SignOf(l))*SignSpan
}

// NakshatraOf returns the nakshatra index 0..26 and pada 1..4 of a longitude.
func NakshatraOf(lon float64) (nakshatra, pada int) {
	l := astro.Rev(lon)
	nakshatra = clamp(int(math.Floor(l/NakshatraSpan)), 0, 26)
	rem := l - float64(nakshatra)*NakshatraSpan
	pada = clamp(int(math.Floor(rem/PadaSpan))+1, 1, 4)
	return nakshatra, pada
}

// NavamsaOf returns the ninth-harmonic sign of a longitude.
func NavamsaOf(lon float64) int {
	return SignOf(astro.Rev(lon * 9))
}

// RulerOf returns the lord of a sign index. Out-of-range indices wrap.
func RulerOf(sign int) astro.Body {
	return signRulers[((sign%12)+12)%12]
}

// Paksha is the lunar fortnight.
type Paksha int

const (
	Shukla  Paksha = iota // bright, waxing
	Krishna               // dark, waning
)

// String returns the paksha name.
func (p Paksha) String() string {
	switch p {
	case Shukla:
		return "Shukla"
	case Krishna:
		return "Krishna"
	default:
		return "unknown"
	}
}

// Bright reports whether the Moon is waxing.
func (p Paksha) Bright() bool {
	return p == Shukla
}

// MarshalText implements encoding.TextMarshaler.
func (p Paksha) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Phase describes the Sun-Moon relationship.
type Phase struct {
	Elongation float64 `json:"elongation"` // Moon minus Sun, [0, 360)
	Paksha     Paksha  `json:"paksha"`
	Tithi      int     `json:"tithi"` // 1..30
}

// PhaseOf derives paksha and tithi from the Sun and Moon longitudes. Either
// zodiac may be used as long as both agree.
func PhaseOf(sunLon, moonLon float64) Phase {
	elong := astro.Rev(moonLon - sunLon)
	paksha := Krishna
	if elong < 180 {
		paksha = Shukla
	}
	return Phase{
		Elongation: elong,
		Paksha:     paksha,
		Tithi:      clamp(int(math.Floor(elong/TithiSpan))+1, 1, 30),
	}
}

// karakaDegree is the degree counted toward atmakaraka selection, taken from
// the tropical longitude. Retrograde bodies count backwards through the sign.
func karakaDegree(p Position) float64 {
	deg := SignDegree(p.Tropical)
	if p.Retrograde {
		return SignSpan - deg
	}
	return deg
}

// KarakaNavamsa is the navamsa sign used for the karakamsa and ishta keys.
// Like the karaka degree it is read from the tropical longitude, so it can
// differ from the sidereal Position.Navamsa shown in tables.
func KarakaNavamsa(p Position) int {
	return NavamsaOf(p.Tropical)
}

// Atmakaraka returns the body with the highest karaka degree among all
// bodies except Ketu. Ties keep the earlier body in canonical order.
func Atmakaraka(positions []Position) astro.Body {
	best := astro.Sun
	bestDeg := math.Inf(-1)
	for _, p := range positions {
		if p.Body == astro.Ketu {
			continue
		}
		if deg := karakaDegree(p); deg > bestDeg {
			best, bestDeg = p.Body, deg
		}
	}
	return best
}

// IshtaPlanet returns the first body whose karaka navamsa is the given sign,
// or the sign's ruler when none is there.
func IshtaPlanet(positions []Position, twelfth int) astro.Body {
	for _, p := range positions {
		if KarakaNavamsa(p) == twelfth {
			return p.Body
		}
	}
	return RulerOf(twelfth)
}
