package ephem

import (
	"strings"

	"github.com/litescript/ls-devas/internal/astro"
)

// BodyInfo contains display and lookup information for a chart body.
type BodyInfo struct {
	Body     astro.Body
	Name     string   // English name
	Sanskrit string   // Graha name
	Abbrev   string   // Two-letter chart abbreviation
	Glyph    string   // Astronomical symbol
	Aliases  []string // Alternative names accepted on input
}

// Catalog lists every chart body in canonical order.
var Catalog = []BodyInfo{
	{Body: astro.Sun, Name: "Sun", Sanskrit: "Surya", Abbrev: "Su", Glyph: "☉", Aliases: []string{"Ravi"}},
	{Body: astro.Moon, Name: "Moon", Sanskrit: "Chandra", Abbrev: "Mo", Glyph: "☽", Aliases: []string{"Soma"}},
	{Body: astro.Mercury, Name: "Mercury", Sanskrit: "Budha", Abbrev: "Me", Glyph: "☿"},
	{Body: astro.Venus, Name: "Venus", Sanskrit: "Shukra", Abbrev: "Ve", Glyph: "♀", Aliases: []string{"Sukra"}},
	{Body: astro.Mars, Name: "Mars", Sanskrit: "Mangala", Abbrev: "Ma", Glyph: "♂", Aliases: []string{"Kuja"}},
	{Body: astro.Jupiter, Name: "Jupiter", Sanskrit: "Guru", Abbrev: "Ju", Glyph: "♃", Aliases: []string{"Brihaspati"}},
	{Body: astro.Saturn, Name: "Saturn", Sanskrit: "Shani", Abbrev: "Sa", Glyph: "♄", Aliases: []string{"Sani"}},
	{Body: astro.Rahu, Name: "Rahu", Sanskrit: "Rahu", Abbrev: "Ra", Glyph: "☊", Aliases: []string{"North Node"}},
	{Body: astro.Ketu, Name: "Ketu", Sanskrit: "Ketu", Abbrev: "Ke", Glyph: "☋", Aliases: []string{"South Node"}},
}

// BodiesByID maps bodies to their catalog entry.
var BodiesByID = func() map[astro.Body]BodyInfo {
	m := make(map[astro.Body]BodyInfo, len(Catalog))
	for _, b := range Catalog {
		m[b.Body] = b
	}
	return m
}()

// BodiesByName maps lowercase names, Sanskrit names, abbreviations and
// aliases to catalog entries.
var BodiesByName = func() map[string]BodyInfo {
	m := make(map[string]BodyInfo, len(Catalog)*4)
	for _, b := range Catalog {
		m[normalizeName(b.Name)] = b
		m[normalizeName(b.Sanskrit)] = b
		m[normalizeName(b.Abbrev)] = b
		for _, alias := range b.Aliases {
			m[normalizeName(alias)] = b
		}
	}
	return m
}()

// normalizeName lowercases and trims a name for matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetBodyInfo returns the catalog entry for a body.
func GetBodyInfo(b astro.Body) (BodyInfo, bool) {
	info, ok := BodiesByID[b]
	return info, ok
}

// GetBodyByName resolves any accepted spelling of a body name.
func GetBodyByName(name string) (astro.Body, error) {
	if info, ok := BodiesByName[normalizeName(name)]; ok {
		return info.Body, nil
	}
	return 0, &astro.InvalidBodyError{Name: name}
}
