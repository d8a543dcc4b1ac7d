// Command ls-devas casts sidereal charts and maps them to their presiding devas.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/config"
	"github.com/litescript/ls-devas/internal/ephem"
	"github.com/litescript/ls-devas/internal/logging"
	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
	"github.com/litescript/ls-devas/internal/ui"
	"github.com/litescript/ls-devas/internal/version"
)

// app carries what every subcommand shares once the root has run.
type app struct {
	cfgPath  string
	logLevel string

	cfg      *config.Config
	logger   *logging.Logger
	provider ephem.Provider

	now        func() time.Time
	isTerminal func() bool
}

func newApp() *app {
	return &app{
		provider: ephem.NewKeplerProvider(),
		now:      time.Now,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ls-devas",
		Short: "Sidereal charts and their devas",
		Long: `ls-devas computes geocentric longitudes of the Sun, Moon, planets and lunar
nodes, shifts them into the sidereal zodiac and derives sign, nakshatra,
pada, paksha, ascendant and the chart's ishta devata.

Run without a subcommand to open the chart browser on a terminal, or to
print the current chart when output is redirected.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.isTerminal() {
				return a.runTUI(cmd.Context(), ui.Options{
					Step:     a.cfg.GetUIStep(),
					Tropical: a.cfg.Tropical(),
				}, nil)
			}
			obs, err := a.cfg.GetObserver()
			if err != nil {
				return err
			}
			return a.printChart(cmd.OutOrStdout(), a.now(), obs, a.cfg.Tropical())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(
		a.jdCmd(),
		a.chartCmd(),
		a.devasCmd(),
		a.transitCmd(),
		a.watchCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup loads the config and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.GetLogLevel()
	if a.logLevel != "" {
		level = logging.ParseLevel(a.logLevel)
	}
	a.logger = logging.New(level)
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.Debug("config %s, log level %s", a.cfgPath, level)
	return nil
}

// newManager builds session state around the configured provider.
func (a *app) newManager(obs *astro.Observer) *state.Manager {
	cfg := state.DefaultConfig()
	cfg.Provider = a.provider
	cfg.Observer = obs
	if n := a.cfg.Watch.MaxEvents; n > 0 {
		cfg.MaxEvents = n
	}
	cfg.RefreshInterval = a.cfg.GetWatchInterval()
	return state.NewManager(cfg)
}

func (a *app) printChart(w io.Writer, t time.Time, obs *astro.Observer, tropical bool) error {
	mgr := a.newManager(obs)
	c, err := mgr.Compute(t)
	if err != nil {
		return err
	}
	a.logger.Debug("chart for %s in %s", c.Time.Format(time.RFC3339), mgr.Snapshot().ComputeDuration)
	report.WriteChartTable(w, c, tropical)
	return nil
}
