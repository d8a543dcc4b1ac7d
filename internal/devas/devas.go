// Package devas maps chart keys to the static deva tables shipped with the
// binary.
package devas

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-devas/internal/astro"
)

//go:embed devas.yaml
var devasYAML []byte

// Aditya is one of the twelve solar devas.
type Aditya struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Tables holds every lookup table. Treat it as read-only.
type Tables struct {
	Deities          map[string]string `yaml:"deities"`      // body name -> deity
	Descriptions     map[string]string `yaml:"descriptions"` // deity -> text
	Adityas          []Aditya          `yaml:"adityas"`
	Rashis           []string          `yaml:"rashis"`
	NakshatraDeities []string          `yaml:"nakshatra_deities"`
}

var loadEmbedded = sync.OnceValues(func() (*Tables, error) {
	return Parse(devasYAML)
})

// Load returns the embedded tables, decoding them on first use.
func Load() (*Tables, error) {
	return loadEmbedded()
}

// Parse decodes and validates a tables document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse deva tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every body, sign and nakshatra has an entry.
func (t *Tables) Validate() error {
	var errs []error
	for _, b := range astro.Bodies {
		deity, ok := t.Deities[b.String()]
		if !ok {
			errs = append(errs, fmt.Errorf("no deity for %s", b))
			continue
		}
		if _, ok := t.Descriptions[deity]; !ok {
			errs = append(errs, fmt.Errorf("no description for deity %q", deity))
		}
	}
	if len(t.Adityas) != 12 {
		errs = append(errs, fmt.Errorf("want 12 adityas, got %d", len(t.Adityas)))
	}
	if len(t.Rashis) != 12 {
		errs = append(errs, fmt.Errorf("want 12 rashis, got %d", len(t.Rashis)))
	}
	if len(t.NakshatraDeities) != 27 {
		errs = append(errs, fmt.Errorf("want 27 nakshatra deities, got %d", len(t.NakshatraDeities)))
	}
	return errors.Join(errs...)
}

// Deity returns the presiding deity of a body.
func (t *Tables) Deity(b astro.Body) (string, error) {
	deity, ok := t.Deities[b.String()]
	if !ok {
		return "", &astro.InvalidBodyError{Name: b.String()}
	}
	return deity, nil
}

// Description returns the reading text for a deity, or "" if none.
func (t *Tables) Description(deity string) string {
	return t.Descriptions[deity]
}

// Aditya returns the Aditya for a sign index 0..11.
func (t *Tables) Aditya(sign int) (Aditya, error) {
	if sign < 0 || sign >= len(t.Adityas) {
		return Aditya{}, fmt.Errorf("aditya index %d out of range", sign)
	}
	return t.Adityas[sign], nil
}

// Rashi returns the Sanskrit name of a sign index, or "" if out of range.
func (t *Tables) Rashi(sign int) string {
	if sign < 0 || sign >= len(t.Rashis) {
		return ""
	}
	return t.Rashis[sign]
}

// NakshatraDeity returns the presiding deity of a nakshatra index, or "".
func (t *Tables) NakshatraDeity(n int) string {
	if n < 0 || n >= len(t.NakshatraDeities) {
		return ""
	}
	return t.NakshatraDeities[n]
}
