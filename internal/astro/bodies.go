package astro

import "strings"

// Body is one of the nine chart bodies.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Rahu
	Ketu
)

// Bodies lists every chart body in canonical order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu}

var bodyNames = [...]string{"sun", "moon", "mercury", "venus", "mars", "jupiter", "saturn", "rahu", "ketu"}

// String returns the lowercase body name.
func (b Body) String() string {
	if b < Sun || b > Ketu {
		return "unknown"
	}
	return bodyNames[b]
}

// Valid reports whether b is one of the nine chart bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Ketu
}

// MarshalText implements encoding.TextMarshaler.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, &InvalidBodyError{Name: b.String()}
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody parses a body name, case-insensitively.
func ParseBody(name string) (Body, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range bodyNames {
		if s == n {
			return Body(i), nil
		}
	}
	return 0, &InvalidBodyError{Name: name}
}

// EclipticLongitude returns the tropical geocentric longitude of a body at
// day number d, in [0, 360).
func EclipticLongitude(d float64, b Body) (float64, error) {
	switch b {
	case Sun:
		return SunLongitude(d), nil
	case Moon:
		return MoonLongitude(d), nil
	case Rahu:
		return RahuLongitude(d), nil
	case Ketu:
		return KetuLongitude(d), nil
	case Mercury, Venus, Mars, Jupiter, Saturn:
		return PlanetLongitude(d, b)
	default:
		return 0, &InvalidBodyError{Name: b.String()}
	}
}

// SpeedStep is the finite-difference step, in days, used by Speed.
const SpeedStep = 0.01

// Speed returns the apparent motion of a body in degrees per day and
// whether it is retrograde. The difference is wrapped before dividing so a
// crossing of 0 degrees does not read as a 360 degree jump.
func Speed(d float64, b Body) (float64, bool, error) {
	l1, err := EclipticLongitude(d, b)
	if err != nil {
		return 0, false, err
	}
	l2, err := EclipticLongitude(d+SpeedStep, b)
	if err != nil {
		return 0, false, err
	}
	speed := Wrap180(l2-l1) / SpeedStep
	return speed, speed < 0, nil
}
