package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"natmerge/logutil"
	"natmerge/natsort"
)

func newTraceCommand(cfgFile *string) *cobra.Command {
	var (
		length int
		seed   int64
		out    string
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Sort a small random input and dump every step as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(*cfgFile); err != nil {
				return err
			}
			if length < 0 {
				return errors.Errorf("invalid length %d: must not be negative", length)
			}
			w := cmd.OutOrStdout()
			if out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return errors.Wrapf(err, "create %s", out)
				}
				defer file.Close()
				w = file
			}
			return runTrace(cmd.Context(), generateRandomData(length, 1, 100, seed), w)
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 30, "number of values")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

// runTrace writes one JSON object per trace event of sorting data.
func runTrace(ctx context.Context, data []float64, w io.Writer) error {
	writer := bufio.NewWriter(w)
	encoder := json.NewEncoder(writer)

	var encodeErr error
	events := 0
	tracer := natsort.TracerFunc[float64](func(ev natsort.Event[float64]) {
		if encodeErr == nil {
			encodeErr = encoder.Encode(ev)
			events++
		}
	})

	logger := logutil.GetGlobalLogger()
	res, err := natsort.New[float64](
		natsort.WithTracer[float64](tracer),
		natsort.WithLogger(logger),
	).SortContext(ctx, data)
	if err != nil {
		return err
	}
	if encodeErr != nil {
		return errors.Wrap(encodeErr, "encode trace event")
	}
	logger.Info("trace written",
		zap.Int("length", len(data)),
		zap.Int("events", events),
		zap.Int("runs", res.Runs),
		zap.Int("rounds", res.Rounds))
	return errors.Wrap(writer.Flush(), "flush trace")
}
