package main

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-devas/internal/astro"
	"github.com/litescript/ls-devas/internal/ui"
)

// liveRefresh is how often a live TUI chart moves to the wall clock.
const liveRefresh = 5 * time.Second

func (a *app) tuiCmd() *cobra.Command {
	var (
		mf   momentFlags
		site siteFlags
		zf   zodiacFlag
		name string
		step time.Duration
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse charts interactively",
		Long: `Opens the chart browser. Without --date the chart follows the present;
with it, the chart opens at that moment. Arrow keys step through time,
+ and - change the step, n returns to now and s switches the zodiac.`,
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
			opts := ui.Options{
				Name:     name,
				Step:     a.cfg.GetUIStep(),
				Tropical: tropical,
			}
			if cmd.Flags().Changed("step") {
				opts.Step = step
			}
			if mf.date != "" {
				m, err := mf.resolve(a)
				if err != nil {
					return err
				}
				opts.At = m.UTC
			}
			return a.runTUI(cmd.Context(), opts, obs)
		},
	}
	mf.bind(cmd)
	site.bind(cmd)
	zf.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "name shown on the devas view")
	cmd.Flags().DurationVar(&step, "step", time.Hour, "initial time step for the arrow keys")
	return cmd
}

// runTUI runs the program alongside the loop that feeds it the wall clock.
// A nil observer falls back to the config.
func (a *app) runTUI(ctx context.Context, opts ui.Options, obs *astro.Observer) error {
	if obs == nil {
		var err error
		if obs, err = a.cfg.GetObserver(); err != nil {
			return err
		}
	}

	// Log lines would tear the alternate screen
	a.logger.SetOutput(io.Discard)

	mgr := a.newManager(obs)
	p := tea.NewProgram(ui.New(mgr, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(liveRefresh)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case t := <-ticker.C:
				p.Send(ui.NowMsg(t))
			}
		}
	})

	return g.Wait()
}
