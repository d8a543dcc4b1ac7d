package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-devas/internal/config"
	"github.com/litescript/ls-devas/internal/report"
	"github.com/litescript/ls-devas/internal/state"
)

const (
	minWatchInterval = time.Second
	maxWatchInterval = 24 * time.Hour
)

func (a *app) watchCmd() *cobra.Command {
	var (
		site     siteFlags
		zf       zodiacFlag
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the current chart on an interval and print what changes",
		Long: `Prints the chart for now, then recomputes it every interval and prints
sign ingresses, nakshatra changes, stations and paksha changes as they
happen. Edits to the config file are picked up without a restart.
Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tropical, err := zf.tropical(a.cfg)
			if err != nil {
				return err
			}
			obs, err := site.observer(cmd, a.cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.GetWatchInterval()
			}

			mgr := a.newManager(obs)
			mgr.SetRefreshInterval(clampInterval(interval))
			return a.runWatch(cmd.Context(), cmd.OutOrStdout(), mgr, tropical, !cmd.Flags().Changed("lat"))
		},
	}
	site.bind(cmd)
	zf.bind(cmd)
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "time between recomputations")
	return cmd
}

func clampInterval(d time.Duration) time.Duration {
	switch {
	case d < minWatchInterval:
		return minWatchInterval
	case d > maxWatchInterval:
		return maxWatchInterval
	default:
		return d
	}
}

// runWatch prints the chart for now and then the events between successive
// charts until ctx ends. When followConfig is set, observer changes in the
// config file replace the current site.
func (a *app) runWatch(ctx context.Context, w io.Writer, mgr *state.Manager, tropical, followConfig bool) error {
	c, err := mgr.Compute(a.now())
	if err != nil {
		return err
	}
	report.WriteChartTable(w, c, tropical)
	fmt.Fprintf(w, "\nWatching every %s, interrupt to stop\n", mgr.RefreshInterval())

	reloads := make(chan *config.Config, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := config.Watch(gctx, a.cfgPath, func(cfg *config.Config, err error) {
			if err != nil {
				a.logger.Warn("config reload: %v", err)
				return
			}
			select {
			case reloads <- cfg:
			default:
				// Drop a stale pending reload in favour of this one
				select {
				case <-reloads:
				default:
				}
				reloads <- cfg
			}
		})
		if err != nil {
			// A missing config directory only disables reloading
			a.logger.Warn("not watching config: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(mgr.RefreshInterval())
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				a.logger.Debug("watch loop shutting down")
				return nil

			case cfg := <-reloads:
				a.cfg = cfg
				a.logger.SetLevel(cfg.GetLogLevel())
				if followConfig {
					obs, err := cfg.GetObserver()
					if err != nil {
						a.logger.Warn("config observer: %v", err)
					} else if err := mgr.SetObserver(obs); err != nil {
						a.logger.Warn("config observer: %v", err)
					}
				}
				a.logger.Infow("config reloaded", "log_level", cfg.GetLogLevel().String(), "follow_observer", followConfig)

			case <-ticker.C:
				prev := mgr.Snapshot().Chart
				next, err := mgr.Compute(a.now())
				if err != nil {
					a.logger.Error("compute failed: %v", err)
					continue
				}
				events := state.DetectEvents(prev, next)
				if len(events) > 0 {
					report.WriteEvents(w, events)
				}
				a.logger.Debugw("recomputed chart", "at", next.Time.Format(time.RFC3339), "events", len(events))
			}
		}
	})

	return g.Wait()
}
