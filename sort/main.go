package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"natmerge/logutil"
	"natmerge/natsort"
	"natmerge/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgFile string
		lengths []int
		seed    int64
	)
	root := &cobra.Command{
		Use:          "sort",
		Short:        "Benchmark natural merge sort against top-down merge sort",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("length") {
				cfg.Bench.Lengths = lengths
			}
			if cmd.Flags().Changed("seed") {
				cfg.Bench.Seed = seed
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			return runBench(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "cfg", "", "toml configuration file")
	root.Flags().IntSliceVarP(&lengths, "length", "n", nil, "dataset lengths, overrides the configuration")
	root.Flags().Int64Var(&seed, "seed", 0, "random seed, overrides the configuration")
	root.AddCommand(newTraceCommand(&cfgFile))
	return root
}

// loadConfig parses the configuration and installs the logger it names.
func loadConfig(name string) (*Config, error) {
	cfg, err := parseConfigFromFile(name)
	if err != nil {
		return nil, err
	}
	if _, err := logutil.SetupLogger(&cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

type bench struct {
	cfg             *Config
	store           *store.Store
	pools           *pools
	natural         *natsort.Sorter[float64]
	parallelNatural *natsort.Sorter[float64]
	logger          *zap.Logger
	out             io.Writer
}

func runBench(ctx context.Context, cfg *Config, out io.Writer) error {
	logger := logutil.GetGlobalLogger()
	logger.Info("starting benchmark",
		zap.Int("cpus", runtime.NumCPU()),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Ints("lengths", cfg.Bench.Lengths),
		zap.String("store", cfg.Store.Backend))

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := newPools(cfg.Bench.Workers)
	if err != nil {
		return err
	}
	defer p.release()

	b := &bench{
		cfg:             cfg,
		store:           st,
		pools:           p,
		natural:         natsort.New[float64](natsort.WithLogger(logger)),
		parallelNatural: natsort.New[float64](natsort.WithExecutor(p.ants), natsort.WithLogger(logger)),
		logger:          logger,
		out:             out,
	}
	for _, n := range cfg.Bench.Lengths {
		if err := b.benchLength(ctx, n); err != nil {
			return err
		}
	}
	return b.saveReports()
}

// benchLength runs every algorithm Runs times over one dataset and prints
// a preview of the first algorithm's first run.
func (b *bench) benchLength(ctx context.Context, n int) error {
	genStart := time.Now()
	data, isFileMode, err := b.dataset(n)
	if err != nil {
		return err
	}
	genTime := time.Since(genStart)
	fmt.Fprintf(b.out, "%d values (%s)\n", n, storageName(isFileMode))

	var preview []float64
	var sortTime time.Duration
	valid := true
	for _, algo := range b.cfg.Bench.Algorithms {
		for run := 1; run <= b.cfg.Bench.Runs; run++ {
			result, sorted, err := b.runBenchmark(ctx, algo, data, isFileMode)
			if err != nil {
				return err
			}
			result.TestRun = run
			if err := b.store.PutResult(result); err != nil {
				return err
			}
			b.logger.Info("benchmark run",
				zap.String("algorithm", algo),
				zap.Int("length", n),
				zap.Int("run", run),
				zap.Duration("duration", result.Duration),
				zap.Bool("sorted", result.Sorted))

			if preview == nil {
				preview, sortTime = sorted, result.Duration
			}
			valid = valid && result.Sorted
		}
	}

	if preview != nil {
		fmt.Fprintf(b.out, "  original (first %d): %s\n", b.cfg.Bench.Preview, formatPreview(data, b.cfg.Bench.Preview))
		fmt.Fprintf(b.out, "  sorted   (first %d): %s\n", b.cfg.Bench.Preview, formatPreview(preview, b.cfg.Bench.Preview))
	}
	verdict := "passed"
	if !valid {
		verdict = "FAILED"
	}
	fmt.Fprintf(b.out, "  non-decreasing check: %s\n", verdict)
	fmt.Fprintf(b.out, "  total: %.4fs (generation %.4fs + sort %.4fs)\n",
		(genTime + sortTime).Seconds(), genTime.Seconds(), sortTime.Seconds())
	if !valid {
		return errors.Errorf("an algorithm produced unsorted output for %d values", n)
	}
	return nil
}

// dataset loads the dataset for n from the store or generates and stores
// it. Datasets at or above the file threshold are read back from a text
// file, as a larger-than-cache input would be.
func (b *bench) dataset(n int) ([]float64, bool, error) {
	bc := b.cfg.Bench
	name := fmt.Sprintf("uniform-%d-%g-%g-seed%d", n, bc.Min, bc.Max, bc.Seed)

	data, err := b.store.GetDataset(name)
	if errors.Is(err, store.ErrNotFound) {
		data = generateRandomData(n, bc.Min, bc.Max, bc.Seed)
		err = b.store.PutDataset(name, data)
	}
	if err != nil {
		return nil, false, err
	}

	if bc.FileThreshold <= 0 || n < bc.FileThreshold {
		return data, false, nil
	}
	filename := filepath.Join(bc.DataDir, name+".txt")
	if err := writeDataToFile(data, filename); err != nil {
		return nil, false, err
	}
	defer os.Remove(filename)
	data, err = readDataFromFile(filename)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *bench) saveReports() error {
	results, err := b.store.Results()
	if err != nil {
		return err
	}
	md, err := writeReport(b.cfg.Bench.ReportDir, "benchmark_results.md", func(w io.Writer) error {
		return saveResultsToMarkdown(w, results, b.cfg.Bench.Lengths, b.cfg.Bench.Algorithms)
	})
	if err != nil {
		return err
	}
	js, err := writeReport(b.cfg.Bench.ReportDir, "benchmark_results.json", func(w io.Writer) error {
		return saveResultsToJSON(w, results)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(b.out, "reports written to %s and %s\n", md, js)
	return nil
}

func storageName(isFileMode bool) string {
	if isFileMode {
		return storageFile
	}
	return storageMemory
}
