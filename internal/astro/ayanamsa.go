package astro

// Lahiri-style linear ayanamsa.
const (
	ayanamsaAtJ2000   = 23.853
	ayanamsaPerYear   = 50.2719 / 3600
	daysPerJulianYear = 365.25
)

// Ayanamsa returns the tropical-to-sidereal offset in degrees at Julian
// Date jd.
func Ayanamsa(jd float64) float64 {
	years := DaysSinceJ2000(jd) / daysPerJulianYear
	return ayanamsaAtJ2000 + years*ayanamsaPerYear
}

// Sidereal converts a tropical longitude to the sidereal zodiac at jd.
func Sidereal(tropical, jd float64) float64 {
	return Rev(tropical - Ayanamsa(jd))
}
