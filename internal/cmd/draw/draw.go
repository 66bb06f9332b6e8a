// Package draw builds the headless draw command.
package draw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/louisbranch/luckydraw/internal/draw"
	entrypoint "github.com/louisbranch/luckydraw/internal/platform/cmd"
	"github.com/louisbranch/luckydraw/internal/platform/config"
	"github.com/louisbranch/luckydraw/internal/platform/logging"
	"github.com/louisbranch/luckydraw/internal/random"
)

// DefaultMaxRange matches the web service default.
const DefaultMaxRange = 1_000_000

// Options holds the parsed command flags.
type Options struct {
	Start    string
	End      string
	Winners  string
	Seed     int64
	HasSeed  bool
	JSON     bool
	MaxRange int
	LogLevel string
}

// NewCommand returns the root draw command.
func NewCommand() *cobra.Command {
	var opts Options
	cmd := &cobra.Command{
		Use:           "draw",
		Short:         "Draw distinct winning numbers from an inclusive range",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.HasSeed = cmd.Flags().Changed("seed")
			closer, err := logging.Install(logging.Config{Level: opts.LogLevel, Format: logging.FormatText})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			return entrypoint.RunWithTelemetry(context.Background(), entrypoint.ServiceDraw, func(context.Context) error {
				return Run(out, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Start, "start", "", "first number of the range")
	cmd.Flags().StringVar(&opts.End, "end", "", "last number of the range")
	cmd.Flags().StringVar(&opts.Winners, "winners", "", "how many winners to draw")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed for a reproducible draw")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the result as JSON")
	cmd.Flags().IntVar(&opts.MaxRange, "max-range", DefaultMaxRange, "largest accepted range size")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

// Run validates opts, draws and prints the winners to out.
func Run(out io.Writer, opts Options) error {
	limits := draw.Limits{MaxRange: opts.MaxRange}
	req, err := draw.Validate(draw.Input{
		Start:        opts.Start,
		End:          opts.End,
		WinnersCount: opts.Winners,
	}, limits)
	if err != nil {
		return err
	}

	src := random.NewSource()
	if opts.HasSeed {
		src = draw.NewSource(opts.Seed)
	}
	result, err := draw.Draw(req, limits, src)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"start":         req.Start,
		"end":           req.End,
		"winners_count": req.WinnersCount,
		"seeded":        opts.HasSeed,
	}).Debug("draw complete")

	if opts.JSON {
		enc := json.NewEncoder(out)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}
	numbers := make([]string, len(result.Winners))
	for i, n := range result.Winners {
		numbers[i] = strconv.Itoa(n)
	}
	if _, err := fmt.Fprintln(out, strings.Join(numbers, " ")); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ExitCode maps a command error onto a process exit code.
func ExitCode(err error) int {
	var verr *draw.ValidationError
	if errors.As(err, &verr) {
		return config.ExitUsage
	}
	return config.ExitFailure
}
