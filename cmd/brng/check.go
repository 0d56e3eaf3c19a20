package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/prand"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [ENGINE...]",
		Short: "Check that engines retrace their own output when stepped backwards",
		RunE:  CheckCmdFunc,
	}
	addSeedFlags(cmd.Flags())
	cmd.Flags().IntP("steps", "n", 100000, "number of steps in each direction")
	return cmd
}

func setupZerolog(cmd *cobra.Command) {
	if jsonLog {
		zlog.Logger = zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
	} else {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}
	if debugLog {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// CheckCmdFunc implements a Cobra command that steps every given engine, or
// every registered one, forwards and back again, and fails if any engine
// does not retrace its output.
func CheckCmdFunc(cmd *cobra.Command, args []string) error {
	setupZerolog(cmd)

	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return err
	}
	if steps <= 0 {
		return errors.Errorf("invalid number of steps %d", steps)
	}
	p, err := seedParams(cmd.Flags())
	if err != nil {
		return err
	}
	options, err := p.StreamOptions()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = engine.Drivers()
	}
	cfgs := make([]engine.Config, len(names))
	for i, name := range names {
		cfgs[i] = engine.Config{Name: name, Options: options}
	}
	sources, err := engine.SourcesFromConfigs(cfgs)
	if err != nil {
		return err
	}

	failed := 0
	for _, name := range names {
		start := time.Now()
		if err := retrace(sources[name], steps); err != nil {
			failed++
			zlog.Error().Err(err).Str("engine", name).Msg("check failed")
			continue
		}
		zlog.Info().
			Str("engine", name).
			Int("steps", steps).
			Dur("elapsed", time.Since(start)).
			Msg("check passed")
	}

	if failed > 0 {
		return errors.Errorf("%d of %d engines failed", failed, len(names))
	}
	return nil
}

// retrace steps src forwards, backwards over the same values and forwards
// again by discarding.
func retrace(src engine.Source, steps int) error {
	forward := make([]uint64, steps)
	for i := range forward {
		v := src.Next()
		if v < src.Min() || v > src.Max() {
			return errors.Errorf("value %d at step %d is outside [%d, %d]", v, i, src.Min(), src.Max())
		}
		forward[i] = v
	}

	for i := steps - 1; i >= 0; i-- {
		if v := src.Prev(); v != forward[i] {
			return errors.Errorf("stepping back to %d returned %d, want %d", i, v, forward[i])
		}
	}

	src.Discard(uint64(steps - 1))
	if v := src.Next(); v != forward[steps-1] {
		return errors.Errorf("discarding %d values then stepping returned %d, want %d", steps-1, v, forward[steps-1])
	}
	zlog.Debug().Uint64("last", forward[steps-1]).Msg("retraced")
	return nil
}

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [ENGINE...]",
		Short: "Measure the speed of engines in both directions",
		RunE:  BenchCmdFunc,
	}
	cmd.Flags().IntP("steps", "n", 1000000, "number of steps in each direction")
	cmd.Flags().Bool("parallel", false, "step one engine per CPU concurrently")
	return cmd
}

var sink uint64

// BenchCmdFunc implements a Cobra command that prints the time per step of
// every given engine, or every registered one.
func BenchCmdFunc(cmd *cobra.Command, args []string) error {
	setupZerolog(cmd)

	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return err
	}
	if steps <= 0 {
		return errors.Errorf("invalid number of steps %d", steps)
	}
	parallel, err := cmd.Flags().GetBool("parallel")
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = engine.Drivers()
	}

	procs := 1
	if parallel {
		procs = runtime.GOMAXPROCS(0)
	}
	zlog.Debug().Int("engines", len(names)).Int("steps", steps).Int("procs", procs).Msg("benchmarking")

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ENGINE\tNEXT ns/op\tPREV ns/op\t")
	for _, name := range names {
		container, err := prand.NewSeeded(name, procs, uint64(time.Now().UnixNano()))
		if err != nil {
			return errors.Wrapf(err, "failed to create engine %s", name)
		}
		next, prev := bench(container, steps)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t\n", name, next, prev)
	}
	return w.Flush()
}

// bench steps every source of c concurrently and returns the wall time per
// step forwards and backwards in nanoseconds.
func bench(c *prand.Container, steps int) (next, prev float64) {
	run := func(step func(engine.Source) uint64) float64 {
		var wg sync.WaitGroup
		start := time.Now()
		for i := 0; i < c.Len(); i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				src := c.Get(i)
				defer c.Return(i)

				var acc uint64
				for j := 0; j < steps; j++ {
					acc += step(src)
				}
				atomic.AddUint64(&sink, acc)
			}(i)
		}
		wg.Wait()
		return float64(time.Since(start).Nanoseconds()) / float64(steps*c.Len())
	}

	next = run(func(src engine.Source) uint64 { return src.Next() })
	prev = run(func(src engine.Source) uint64 { return src.Prev() })
	return next, prev
}
