package devas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/ephem"
)

func TestLoad_Embedded(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, tables, again, "tables decoded more than once")

	assert.Len(t, tables.Adityas, 12)
	assert.Len(t, tables.Rashis, 12)
	assert.Len(t, tables.NakshatraDeities, 27)
	assert.Equal(t, "Dhata", tables.Adityas[0].Name)
	assert.Equal(t, "Vishnu", tables.Adityas[11].Name)
	assert.Equal(t, "Mesha", tables.Rashi(0))
	assert.Equal(t, "Pushan", tables.NakshatraDeity(26))
}

func TestDeity(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	want := map[astro.Body]string{
		astro.Sun:     "Shiva or Rama",
		astro.Moon:    "Parvati or Krishna",
		astro.Mars:    "Skanda (Kartikeya) or Narasimha",
		astro.Mercury: "Vishnu",
		astro.Jupiter: "Brahma or Guru forms",
		astro.Venus:   "Lakshmi",
		astro.Saturn:  "Shani or Ayyappa",
		astro.Rahu:    "Durga",
		astro.Ketu:    "Ganesha",
	}
	for body, deity := range want {
		got, err := tables.Deity(body)
		require.NoError(t, err)
		assert.Equal(t, deity, got, body.String())
		assert.NotEmpty(t, tables.Description(deity))
	}

	_, err = tables.Deity(astro.Body(30))
	var bodyErr *astro.InvalidBodyError
	assert.ErrorAs(t, err, &bodyErr)
}

func TestLookupBounds(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	_, err = tables.Aditya(12)
	assert.Error(t, err)
	_, err = tables.Aditya(-1)
	assert.Error(t, err)
	assert.Empty(t, tables.Rashi(12))
	assert.Empty(t, tables.NakshatraDeity(-1))
	assert.Empty(t, tables.Description("Zeus"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("deities: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, err = Parse([]byte("deities:\n  sun: Surya\nadityas: []\n"))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "no description for deity \"Surya\"")
	assert.Contains(t, msg, "no deity for moon")
	assert.Contains(t, msg, "want 12 adityas, got 0")
	assert.Contains(t, msg, "want 27 nakshatra deities")
}

func TestNewReading(t *testing.T) {
	tests := []struct {
		name      string
		jd        float64
		ishta     astro.Body
		deva      string
		aditya    string
		nakshatra string
		nakDeity  string
	}{
		{"1990 chart", 2447996.875, astro.Ketu, "Ganesha", "Vishnu", "Jyeshtha", "Indra"},
		{"J2000", astro.J2000, astro.Jupiter, "Brahma or Guru forms", "Bhaga", "Swati", "Vayu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := chart.Compute(ephem.NewKeplerProvider(), tt.jd, nil)
			require.NoError(t, err)

			r, err := NewReading(c, "Asha")
			require.NoError(t, err)

			assert.Equal(t, "Asha", r.Name)
			assert.Equal(t, tt.ishta, r.IshtaPlanet)
			assert.Equal(t, tt.deva, r.IshtaDeva)
			assert.True(t, strings.Contains(r.IshtaText, tt.deva), "text should name %s", tt.deva)
			assert.Equal(t, tt.aditya, r.Aditya.Name)
			assert.Equal(t, c.AdityaIndex, r.AdityaIndex)
			assert.Equal(t, tt.nakshatra, r.MoonNakshatra)
			assert.Equal(t, tt.nakDeity, r.NakshatraDeity)
		})
	}
}
