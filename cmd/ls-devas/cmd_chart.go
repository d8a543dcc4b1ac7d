package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/birth"
	"github.com/litescript/ls-devas/internal/chart"
	"github.com/litescript/ls-devas/internal/config"
	"github.com/litescript/ls-devas/internal/devas"
	"github.com/litescript/ls-devas/internal/ephem"
	"github.com/litescript/ls-devas/internal/report"
)

// momentFlags selects a local date and time and how it maps to UTC.
type momentFlags struct {
	date   string
	clock  string
	offset string
	zone   string
}

func (f *momentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "local date YYYY-MM-DD (default now)")
	cmd.Flags().StringVar(&f.clock, "time", "12:00", "local time HH:MM[:SS]")
	cmd.Flags().StringVar(&f.offset, "offset", "", "UTC offset in hours, e.g. 5.5 or +05:30")
	cmd.Flags().StringVar(&f.zone, "tz", "", "IANA time zone, e.g. Asia/Kolkata")
	cmd.MarkFlagsMutuallyExclusive("offset", "tz")
}

// resolve returns the UTC instant for the flags. An empty date means now.
func (f *momentFlags) resolve(a *app) (birth.Moment, error) {
	if f.date == "" {
		now := a.now().UTC()
		return birth.Moment{
			Local: now.Format("2006-01-02 15:04:05"),
			UTC:   now,
			JD:    astro.JulianDateOf(now),
		}, nil
	}

	in := birth.Input{Date: f.date, Time: f.clock}
	switch {
	case f.offset != "":
		hours, err := birth.ParseOffset(f.offset)
		if err != nil {
			return birth.Moment{}, err
		}
		in.Offset = &hours
	case f.zone != "":
		in.Zone = f.zone
	default:
		in.Zone = a.cfg.Timezone
	}
	return birth.Resolve(in)
}

// siteFlags overrides the configured observer.
type siteFlags struct {
	lat  float64
	lon  float64
	name string
}

func (f *siteFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "observer latitude in degrees, north positive")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "observer longitude in degrees, east positive")
	cmd.Flags().StringVar(&f.name, "place", "", "observer name")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
}

// observer returns the site from the flags, falling back to the config.
func (f *siteFlags) observer(cmd *cobra.Command, cfg *config.Config) (*astro.Observer, error) {
	if !cmd.Flags().Changed("lat") {
		return cfg.GetObserver()
	}
	obs := &astro.Observer{LatDeg: f.lat, LonDeg: f.lon, Name: f.name}
	if err := obs.Validate(); err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	return obs, nil
}

// zodiacFlag picks sidereal or tropical output.
type zodiacFlag struct {
	zodiac string
}

func (f *zodiacFlag) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.zodiac, "zodiac", "", "sidereal or tropical (default from config)")
}

func (f *zodiacFlag) tropical(cfg *config.Config) (bool, error) {
	switch f.zodiac {
	case "":
		return cfg.Tropical(), nil
	case config.ZodiacTropical:
		return true, nil
	case config.ZodiacSidereal:
		return false, nil
	default:
		return false, fmt.Errorf("zodiac must be %q or %q, got %q", config.ZodiacSidereal, config.ZodiacTropical, f.zodiac)
	}
}

func (a *app) jdCmd() *cobra.Command {
	var mf momentFlags
	cmd := &cobra.Command{
		Use:   "jd",
		Short: "Print the Julian Date and day number of a moment",
		Long: `Converts a local date and time to the Julian Date of the same instant in
UTC, and the day number d counted from J2000.0 used by the element tables.
Dates before 1582-10-15 are read in the Julian calendar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mf.resolve(a)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "JD  %.6f\n", m.JD)
			fmt.Fprintf(w, "d   %.6f\n", astro.DaysSinceJ2000(m.JD))
			fmt.Fprintf(w, "UTC %s\n", m.UTC.Format(time.RFC3339))
			return nil
		},
	}
	mf.bind(cmd)
	return cmd
}

// castFlags are the inputs shared by chart and devas.
type castFlags struct {
	moment momentFlags
	site   siteFlags
	json   bool
}

func (f *castFlags) bind(cmd *cobra.Command) {
	f.moment.bind(cmd)
	f.site.bind(cmd)
	cmd.Flags().BoolVar(&f.json, "json", false, "write JSON instead of text")
}

func (f *castFlags) cast(cmd *cobra.Command, a *app) (birth.Moment, *chart.Chart, error) {
	m, err := f.moment.resolve(a)
	if err != nil {
		return birth.Moment{}, nil, err
	}
	obs, err := f.site.observer(cmd, a.cfg)
	if err != nil {
		return birth.Moment{}, nil, err
	}
	c, err := a.newManager(obs).Compute(m.UTC)
	if err != nil {
		return birth.Moment{}, nil, err
	}
	a.logger.Debug("cast chart for %s (JD %.6f)", m.Local, c.JD)
	return m, c, nil
}

func writeLocal(w io.Writer, m birth.Moment) {
	fmt.Fprintf(w, "Local %s (UTC%s)\n", m.Local, formatOffset(m.Offset))
}

func formatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d.Hours()), int(d.Minutes())%60)
}

func (a *app) chartCmd() *cobra.Command {
	var (
		cf castFlags
		zf zodiacFlag
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the chart for a moment",
		Long: `Prints every body's longitude, sign, nakshatra, pada, navamsa and speed,
followed by the ascendant (when a site is known), paksha and tithi, and the
atmakaraka and ishta planet.

Example:
  ls-devas chart --date 1990-04-15 --time 14:30 --tz Asia/Kolkata --lat 28.6139 --lon 77.209`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tropical, err := zf.tropical(a.cfg)
			if err != nil {
				return err
			}
			m, c, err := cf.cast(cmd, a)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cf.json {
				return report.ExportChart(c, nil).WriteJSON(w)
			}
			writeLocal(w, m)
			report.WriteChartTable(w, c, tropical)
			return nil
		},
	}
	cf.bind(cmd)
	zf.bind(cmd)
	return cmd
}

func (a *app) devasCmd() *cobra.Command {
	var (
		cf   castFlags
		name string
	)
	cmd := &cobra.Command{
		Use:   "devas",
		Short: "Map a chart to its ishta devata, Aditya and nakshatra deity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := cf.cast(cmd, a)
			if err != nil {
				return err
			}
			r, err := devas.NewReading(c, name)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cf.json {
				return report.ExportChart(c, r).WriteJSON(w)
			}
			report.WriteReading(w, r)
			return nil
		},
	}
	cf.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "name shown on the reading")
	return cmd
}

func (a *app) transitCmd() *cobra.Command {
	var (
		mf          momentFlags
		zf          zodiacFlag
		span        time.Duration
		step        time.Duration
		changesOnly bool
	)
	cmd := &cobra.Command{
		Use:   "transit <body>",
		Short: "Track one body's longitude over a span of time",
		Long: `Samples a body from the given moment forward and prints its longitude and
speed at every step. Sign and nakshatra changes are marked.

Example:
  ls-devas transit mercury --span 720h --step 24h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ephem.GetBodyByName(args[0])
			if err != nil {
				return err
			}
			tropical, err := zf.tropical(a.cfg)
			if err != nil {
				return err
			}
			m, err := mf.resolve(a)
			if err != nil {
				return err
			}
			path, err := ephem.GetPath(a.provider, body, m.UTC, m.UTC.Add(span), step)
			if err != nil {
				return err
			}
			writeTransit(cmd.OutOrStdout(), path, tropical, changesOnly)
			return nil
		},
	}
	mf.bind(cmd)
	zf.bind(cmd)
	cmd.Flags().DurationVar(&span, "span", 30*24*time.Hour, "how far forward to sample")
	cmd.Flags().DurationVar(&step, "step", 24*time.Hour, "sampling interval")
	cmd.Flags().BoolVar(&changesOnly, "changes", false, "print only samples where the sign or nakshatra changed")
	return cmd
}

// writeTransit prints one line per sample, marking ingresses and stations.
func writeTransit(w io.Writer, p ephem.Path, tropical, changesOnly bool) {
	if len(p.Points) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}
	fmt.Fprintf(w, "%s, %s zodiac, %d samples\n", report.BodyName(p.Body), report.ZodiacLabel(tropical), len(p.Points))

	prevSign, prevNak := -1, -1
	prevRetro := p.Points[0].Retrograde
	for i, pt := range p.Points {
		lon := pt.Longitude
		if !tropical {
			lon = astro.Sidereal(lon, astro.JulianDateOf(pt.Time))
		}
		sign := chart.SignOf(lon)
		nak, pada := chart.NakshatraOf(lon)

		var marks []string
		if i > 0 && sign != prevSign {
			marks = append(marks, "→ "+chart.SignNames[sign])
		}
		if i > 0 && nak != prevNak {
			marks = append(marks, "→ "+chart.NakshatraNames[nak])
		}
		if i > 0 && pt.Retrograde != prevRetro {
			if pt.Retrograde {
				marks = append(marks, "stationary retrograde")
			} else {
				marks = append(marks, "stationary direct")
			}
		}
		prevSign, prevNak, prevRetro = sign, nak, pt.Retrograde

		if changesOnly && i > 0 && len(marks) == 0 {
			continue
		}

		retro := " "
		if pt.Retrograde {
			retro = "R"
		}
		line := fmt.Sprintf("%s  %-15s %-17s %d  %+9.4f %s",
			pt.Time.UTC().Format("2006-01-02 15:04"),
			report.FormatLongitude(lon),
			chart.NakshatraNames[nak],
			pada,
			pt.Speed,
			retro,
		)
		for _, mk := range marks {
			line += "  " + mk
		}
		fmt.Fprintln(w, line)
	}
}

