package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/uoon-dev/sancho/internal/logging"
	"github.com/uoon-dev/sancho/internal/sheet"
	"github.com/uoon-dev/sancho/internal/trace"
)

type replayFlags struct {
	edge       string
	open       bool
	width      float64
	height     float64
	honorClose bool
	plot       string
	scenario   bool
}

// replayOutput is what one input file produced
type replayOutput struct {
	path   string
	events []trace.Event
	edge   sheet.Edge
	body   bytes.Buffer
	failed bool
}

func newReplayCmd() *cobra.Command {
	flags := replayFlags{}

	replayCmd := &cobra.Command{
		Use:   "replay [files...]",
		Short: "Replay recorded gesture traces",
		Long: `Replay recorded gesture traces through the sheet and print every animation
target it produces as JSON lines.

With --scenario the inputs are YAML scenarios carrying their own starting
conditions and expectations; each is reported as PASS or FAIL.

Multiple files are replayed concurrently and printed in the order given.

Examples:
  sancho replay drag.jsonl                        # left sheet, open
  sancho replay --edge bottom --height 300 a.jsonl
  sancho replay --plot timeline.svg drag.jsonl
  sancho replay --scenario testdata/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.plot != "" && len(args) != 1 {
				return errors.New("--plot takes exactly one input file")
			}

			logger := stderrLogger(cmd, cmd.ErrOrStderr())
			ctx := logging.WithContext(cmd.Context(), logger)
			return runReplay(ctx, cmd, flags, args)
		},
	}

	replayCmd.Flags().StringVar(&flags.edge, "edge", "left", "edge the sheet is anchored to")
	replayCmd.Flags().BoolVar(&flags.open, "open", true, "initial open state")
	replayCmd.Flags().Float64Var(&flags.width, "width", 0, "panel width measured before the first record (0: unmeasured)")
	replayCmd.Flags().Float64Var(&flags.height, "height", 0, "panel height measured before the first record (0: unmeasured)")
	replayCmd.Flags().BoolVar(&flags.honorClose, "honor-close", true, "flip the sheet closed when it requests a close")
	replayCmd.Flags().StringVar(&flags.plot, "plot", "", "write an SVG timeline to this file")
	replayCmd.Flags().BoolVar(&flags.scenario, "scenario", false, "treat inputs as YAML scenarios")
	return replayCmd
}

func runReplay(ctx context.Context, cmd *cobra.Command, flags replayFlags, paths []string) error {
	opts := trace.DefaultOptions()
	if !flags.scenario {
		edge, err := sheet.ParseEdge(flags.edge)
		if err != nil {
			return err
		}
		opts.Edge = edge
		opts.Open = flags.open
		opts.Extent = sheet.Extent{Width: flags.width, Height: flags.height}
		opts.HonorClose = flags.honorClose
	}

	outputs := make([]*replayOutput, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				out *replayOutput
				err error
			)
			if flags.scenario {
				out, err = replayScenario(gctx, path)
			} else {
				out, err = replayTrace(gctx, path, opts)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	var failed []string
	for _, out := range outputs {
		if len(outputs) > 1 && !flags.scenario {
			fmt.Fprintf(stdout, "# %s\n", out.path)
		}
		if _, err := out.body.WriteTo(stdout); err != nil {
			return err
		}
		if out.failed {
			failed = append(failed, out.path)
		}
	}

	if flags.plot != "" {
		if err := writePlot(flags.plot, outputs[0]); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d scenario(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func replayTrace(ctx context.Context, path string, opts trace.Options) (*replayOutput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := trace.Decode(f)
	if err != nil {
		return nil, err
	}

	collector := &trace.Collector{}
	r := trace.NewReplayer(ctx, opts)
	r.AddEventHandler(collector)
	if err := r.Run(records); err != nil {
		return nil, err
	}

	out := &replayOutput{path: path, edge: opts.Edge, events: collector.Events()}
	if err := trace.EncodeEvents(&out.body, out.events); err != nil {
		return nil, err
	}

	res := r.Result()
	logging.FromContext(ctx).Debug().
		Str("file", path).
		Int("records", len(records)).
		Int("events", res.Events).
		Bool("closed", res.Closed()).
		Msg("trace replayed")
	return out, nil
}

func replayScenario(ctx context.Context, path string) (*replayOutput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := trace.LoadScenario(f)
	if err != nil {
		return nil, err
	}
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}

	collector := &trace.Collector{}
	res, err := s.Run(ctx, collector)
	if err != nil {
		return nil, err
	}

	out := &replayOutput{path: path, edge: opts.Edge, events: collector.Events()}
	name := s.Name
	if name == "" {
		name = path
	}
	if failures := s.Check(res); len(failures) > 0 {
		out.failed = true
		fmt.Fprintf(&out.body, "FAIL %s\n", name)
		for _, msg := range failures {
			fmt.Fprintf(&out.body, "    %s\n", msg)
		}
	} else {
		fmt.Fprintf(&out.body, "PASS %s\n", name)
	}
	return out, nil
}

func writePlot(path string, out *replayOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot: %w", err)
	}
	if err := trace.Plot(f, out.edge, out.events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
