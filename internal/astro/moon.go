package astro

// lunarTerm is one periodic perturbation: amplitude in arcseconds times the
// sine of a combination of the fundamental arguments.
type lunarTerm struct {
	amp float64
	arg func(a lunarArgs) float64
}

// lunarArgs holds the fundamental arguments in degrees.
type lunarArgs struct {
	L0   float64 // Moon mean longitude
	M    float64 // Moon mean anomaly
	MSun float64 // Sun mean anomaly
	F    float64 // argument of latitude
	D    float64 // mean elongation
}

// lunarTerms is a truncated lunar theory. The literals are fixed.
var lunarTerms = []lunarTerm{
	{22640, func(a lunarArgs) float64 { return a.M }},
	{769, func(a lunarArgs) float64 { return 2 * a.M }},
	{-4586, func(a lunarArgs) float64 { return a.M - 2*a.D }},
	{2370, func(a lunarArgs) float64 { return 2 * a.D }},
	{-668, func(a lunarArgs) float64 { return a.MSun }},
	{-412, func(a lunarArgs) float64 { return 2 * a.F }},
	{-125, func(a lunarArgs) float64 { return a.D }},
	{-212, func(a lunarArgs) float64 { return 2*a.M - 2*a.D }},
	{-206, func(a lunarArgs) float64 { return a.M + a.MSun - 2*a.D }},
	{192, func(a lunarArgs) float64 { return a.M + 2*a.D }},
	{-165, func(a lunarArgs) float64 { return a.MSun - 2*a.D }},
	{148, func(a lunarArgs) float64 { return a.L0 - a.MSun }},
	{-110, func(a lunarArgs) float64 { return a.M + a.MSun }},
	{-55, func(a lunarArgs) float64 { return 2*a.F - 2*a.D }},
}

// moonArgs evaluates the secular polynomials at T Julian centuries.
func moonArgs(T float64) lunarArgs {
	T2 := T * T
	return lunarArgs{
		L0:   218.31617 + 481267.88088*T - 4.06*T2/3600,
		M:    134.96292 + 477198.86753*T + 33.25*T2/3600,
		MSun: 357.52543 + 35999.04944*T - 0.58*T2/3600,
		F:    93.27283 + 483202.01873*T - 11.56*T2/3600,
		D:    297.85027 + 445267.11135*T - 5.15*T2/3600,
	}
}

// MoonLongitude returns the Moon's tropical geocentric ecliptic longitude in
// degrees for day number d.
func MoonLongitude(d float64) float64 {
	args := moonArgs(d / 36525)

	var sum float64
	for _, term := range lunarTerms {
		sum += term.amp * sinDeg(term.arg(args))
	}

	return Rev(args.L0 + sum/3600)
}

// RahuLongitude returns the mean ascending lunar node for day number d.
func RahuLongitude(d float64) float64 {
	return Rev(125.1228 - 0.0529538083*d)
}

// KetuLongitude returns the descending node, always opposite Rahu.
func KetuLongitude(d float64) float64 {
	return Rev(RahuLongitude(d) + 180)
}
