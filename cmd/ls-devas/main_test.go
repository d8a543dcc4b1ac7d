package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/config"
)

// 1990-04-15 14:30 in New Delhi.
var refTime = time.Date(1990, 4, 15, 9, 0, 0, 0, time.UTC)

func testApp(t *testing.T) *app {
	t.Helper()
	for _, k := range []string{config.EnvLat, config.EnvLon, config.EnvTimezone, config.EnvLogLevel, config.EnvZodiac} {
		t.Setenv(k, "")
	}
	a := newApp()
	a.now = func() time.Time { return refTime }
	a.isTerminal = func() bool { return false }
	return a
}

// syncBuffer is a bytes.Buffer safe for the watch goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// execute runs the root command against a config path in a temp dir.
func execute(ctx context.Context, t *testing.T, a *app, cfgPath string, args ...string) (string, string, error) {
	t.Helper()
	if cfgPath == "" {
		cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	}
	var stdout, stderr syncBuffer
	root := newRootCmd(a)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execute(context.Background(), t, testApp(t), "", args...)
	return out, err
}

var delhiArgs = []string{"--date", "1990-04-15", "--time", "14:30", "--tz", "Asia/Kolkata", "--lat", "28.6139", "--lon", "77.209"}

func TestJD(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "J2000",
			args: []string{"--date", "2000-01-01", "--time", "12:00"},
			want: "JD  2451545.000000\nd   0.000000\nUTC 2000-01-01T12:00:00Z\n",
		},
		{
			name: "with offset",
			args: []string{"--date", "1990-04-15", "--time", "14:30", "--offset", "5.5"},
			want: "JD  2447996.875000\nd   -3548.125000\nUTC 1990-04-15T09:00:00Z\n",
		},
		{
			name: "Julian calendar date",
			args: []string{"--date", "1582-10-04", "--time", "00:00"},
			want: "JD  2299159.500000\nd   -152385.500000\nUTC 1582-10-14T00:00:00Z\n",
		},
		{
			name: "now",
			args: nil,
			want: "JD  2447996.875000\nd   -3548.125000\nUTC 1990-04-15T09:00:00Z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"jd"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestJD_InvalidDate(t *testing.T) {
	_, err := run(t, "jd", "--date", "2021-04-31")
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrInvalidDate), "got %v", err)

	_, err = run(t, "jd", "--date", "1582-10-10")
	assert.True(t, errors.Is(err, astro.ErrInvalidDate), "dropped reform day: %v", err)
}

func TestChart(t *testing.T) {
	out, err := run(t, append([]string{"chart"}, delhiArgs...)...)
	require.NoError(t, err)

	for _, want := range []string{
		"Local 1990-04-15 14:30 (UTC+05:30)\n",
		"Chart @ 1990-04-15T09:00:00Z  JD 2447996.875000\n",
		"sidereal zodiac, ayanamsa 23°43'02\", Kepler ephemeris\n",
		"Observer at 28.6139, 77.2090\n",
		"Phase       Krishna paksha, tithi 20",
		"Atmakaraka  Saturn, karakamsa Leo, 12th Cancer, ishta Ketu\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "Magha pada 2")
}

func TestChart_Tropical(t *testing.T) {
	out, err := run(t, append([]string{"chart", "--zodiac", "tropical"}, delhiArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "tropical zodiac")

	_, err = run(t, append([]string{"chart", "--zodiac", "draconic"}, delhiArgs...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zodiac must be")
}

func TestChart_JSON(t *testing.T) {
	out, err := run(t, append([]string{"chart", "--json"}, delhiArgs...)...)
	require.NoError(t, err)

	var got struct {
		JD          float64 `json:"jd"`
		IshtaPlanet string  `json:"ishta_planet"`
		Bodies      []struct {
			Body string `json:"body"`
		} `json:"bodies"`
		Ascendant *struct {
			Sign string `json:"sign"`
		} `json:"ascendant"`
		Reading json.RawMessage `json:"reading"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 2447996.875, got.JD)
	assert.Equal(t, "Ketu", got.IshtaPlanet)
	assert.Len(t, got.Bodies, 9)
	require.NotNil(t, got.Ascendant)
	assert.Equal(t, "Leo", got.Ascendant.Sign)
	assert.Nil(t, got.Reading, "chart JSON should not carry a reading")
}

func TestChart_FlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"offset and zone", []string{"--date", "1990-04-15", "--offset", "5.5", "--tz", "Asia/Kolkata"}, nil, "offset"},
		{"latitude alone", []string{"--lat", "28.6"}, nil, "lat"},
		{"unknown zone", []string{"--date", "1990-04-15", "--tz", "Mars/Olympus"}, nil, "unknown time zone"},
		{"bad offset", []string{"--date", "1990-04-15", "--offset", "15"}, astro.ErrInvalidTime, ""},
		{"pole", []string{"--lat", "90", "--lon", "0"}, astro.ErrPolarLatitude, ""},
		{"latitude out of range", []string{"--lat", "95", "--lon", "0"}, astro.ErrInvalidCoordinate, ""},
		{"bad clock", []string{"--date", "1990-04-15", "--time", "25:00"}, astro.ErrInvalidTime, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"chart"}, tt.args...)...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestChart_ObserverFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	lat, lon := 28.6139, 77.2090
	cfg := config.Default()
	cfg.Observer = config.ObserverConfig{Name: "Home", Lat: &lat, Lon: &lon}
	cfg.Timezone = "Asia/Kolkata"
	require.NoError(t, cfg.Save(cfgPath))

	out, _, err := execute(context.Background(), t, testApp(t), cfgPath, "chart", "--date", "1990-04-15", "--time", "14:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Home at 28.6139, 77.2090")
	assert.Contains(t, out, "Chart @ 1990-04-15T09:00:00Z")

	// Flags win over the file
	out, _, err = execute(context.Background(), t, testApp(t), cfgPath,
		"chart", "--date", "1990-04-15", "--time", "09:00", "--offset", "0", "--lat", "-33.8688", "--lon", "151.2093", "--place", "Sydney")
	require.NoError(t, err)
	assert.Contains(t, out, "Sydney at -33.8688, 151.2093")
}

func TestDevas(t *testing.T) {
	out, err := run(t, append([]string{"devas", "--name", "Asha"}, delhiArgs...)...)
	require.NoError(t, err)

	for _, want := range []string{
		"Deva reading for Asha\n",
		"Atmakaraka:     Saturn\n",
		"Ishta devata:   Ganesha\n",
		"Aditya:         Vishnu (12)\n",
		"Moon nakshatra: Jyeshtha, ruled by Indra\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestDevas_JSON(t *testing.T) {
	out, err := run(t, append([]string{"devas", "--json", "--name", "Asha"}, delhiArgs...)...)
	require.NoError(t, err)

	var got struct {
		Reading struct {
			Name      string `json:"name"`
			IshtaDeva string `json:"ishta_deva"`
		} `json:"reading"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Asha", got.Reading.Name)
	assert.Equal(t, "Ganesha", got.Reading.IshtaDeva)
}

func TestTransit(t *testing.T) {
	args := []string{"transit", "sun", "--date", "1990-04-14", "--time", "09:00", "--offset", "0", "--span", "48h", "--step", "24h"}

	out, err := run(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Sun, sidereal zodiac, 3 samples", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1990-04-14 09:00"), lines[1])
	assert.Contains(t, lines[1], "Revati")
	assert.NotContains(t, lines[2], "→")
	assert.Contains(t, lines[3], "→ Aries")
	assert.Contains(t, lines[3], "→ Ashwini")

	out, err = run(t, append(args, "--changes")...)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "1990-04-16 09:00"), lines[2])
}

func TestTransit_Errors(t *testing.T) {
	_, err := run(t, "transit", "pluto")
	var bodyErr *astro.InvalidBodyError
	assert.True(t, errors.As(err, &bodyErr), "error = %v", err)

	_, err = run(t, "transit", "moon", "--step", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step must be positive")

	_, err = run(t, "transit")
	require.Error(t, err)
}

func TestRoot_PrintsChartWhenNotATerminal(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Chart @ 1990-04-15T09:00:00Z")
	assert.NotContains(t, out, "Ascendant", "no observer configured")
}

func TestRoot_LogLevel(t *testing.T) {
	_, stderr, err := execute(context.Background(), t, testApp(t), "", "--log-level", "debug", "jd")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG] config ")

	_, stderr, err = execute(context.Background(), t, testApp(t), "", "jd")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRoot_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("zodiac: draconic\n"), 0o644))

	_, _, err := execute(context.Background(), t, testApp(t), cfgPath, "jd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestWatch_PrintsEvents(t *testing.T) {
	a := testApp(t)

	// Each recomputation lands a day later
	var mu sync.Mutex
	next := refTime
	a.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at := next
		next = next.Add(24 * time.Hour)
		return at
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	root := newRootCmd(a)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--log-level", "debug", "watch", "--interval", "10ms"})

	errCh := make(chan error, 1)
	go func() { errCh <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Pisces → Aries")
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	out := stdout.String()
	assert.Contains(t, out, "Chart @ 1990-04-15T09:00:00Z")
	assert.Contains(t, out, "Watching every 1s")
	assert.Contains(t, out, "SIGN_INGRESS")

	logs := stderr.String()
	assert.Contains(t, logs, "[DEBUG] recomputed chart")
	assert.Regexp(t, `"at": "1990-04-1\dT09:00:00Z", "events": [1-9]`, logs)
}

func TestClampInterval(t *testing.T) {
	assert.Equal(t, time.Second, clampInterval(10*time.Millisecond))
	assert.Equal(t, 5*time.Minute, clampInterval(5*time.Minute))
	assert.Equal(t, 24*time.Hour, clampInterval(48*time.Hour))
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+05:30", formatOffset(5*time.Hour+30*time.Minute))
	assert.Equal(t, "-03:00", formatOffset(-3*time.Hour))
	assert.Equal(t, "+00:00", formatOffset(0))
}
