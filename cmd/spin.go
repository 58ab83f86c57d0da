package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ouaf/widgets/config"
	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/pkg/frame"
	"github.com/ouaf/widgets/pkg/spin"
	"github.com/spf13/cobra"
)

func newSpinCmd(tuningPath *string) *cobra.Command {
	var (
		runs  int
		fps   int
		trace bool
	)

	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Play the badge spin animation",
		Long: `Clicks a badge the given number of times, waiting for each run to settle,
and reports the turns and direction of every run. With --trace every frame's
phase and angle is printed.`,
		Example: `  # Two runs, one in each direction, with a frame trace
  widgets spin --runs 2 --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning, err := LoadTuning(*tuningPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = config.NewAppConfig(newPreferences()).GetSpinFPS()
			}
			return playSpin(cmd.Context(), cmd.OutOrStdout(), tuning.Spin, fps, runs, trace)
		},
	}

	cmd.Flags().IntVarP(&runs, "runs", "n", 1, "Number of clicks")
	cmd.Flags().IntVar(&fps, "fps", frame.DefaultFPS, "Frame rate (default from preferences)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every frame")

	return cmd
}

// playSpin runs a frame loop with one bound badge and clicks it runs times.
func playSpin(ctx context.Context, w io.Writer, opts spin.Options, fps, runs int, trace bool) error {
	doc := dom.NewDocument()
	wrapper := doc.Body.AppendChild(doc.CreateElement("a")).AddClass(spin.TriggerClass)
	badge := wrapper.AppendChild(doc.CreateElement("img")).AddClass(spin.TargetClass)

	loop := frame.NewLoop(fps)
	settled := make(chan spin.State, 1)
	// Reported from a task so the frame batch that settled has fully run.
	opts.OnIdle = func(_ spin.Rotator, st spin.State) {
		loop.Post(func() { settled <- st })
	}
	c := spin.NewController(loop, opts)
	_, unbind := spin.Bind(doc, c)
	defer unbind()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan error, 1)
	go func() { stopped <- loop.Run(ctx) }()

	for i := 1; i <= runs; i++ {
		start := time.Now()
		var sample frame.FrameFunc
		sample = func(now time.Time) {
			st := c.State(badge)
			fmt.Fprintf(w, "  %7.1fms  %-8s %9.2f\n", float64(now.Sub(start))/float64(time.Millisecond), st.Phase, badge.Rotation())
			if st.Spinning {
				loop.RequestFrame(sample)
			}
		}
		loop.Post(func() {
			wrapper.Click()
			if trace {
				loop.RequestFrame(sample)
			}
		})

		select {
		case st := <-settled:
			fmt.Fprintf(w, "run %d: %d turns in %s, resting at %g, next direction %+d\n",
				i, st.Turns, time.Since(start).Round(time.Millisecond), badge.Rotation(), st.Direction)
		case err := <-stopped:
			return err
		}
	}

	cancel()
	<-stopped
	return nil
}
