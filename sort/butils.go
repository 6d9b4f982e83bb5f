package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"natmerge/natsort"
	"natmerge/store"
)

// BenchmarkResult is one timed sort.
type BenchmarkResult = store.Record

const (
	storageMemory = "memory"
	storageFile   = "file"
)

// SystemStats brackets a measurement.
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// generateRandomData returns size values drawn uniformly from [lo, hi]
// and rounded to two decimals. The same seed yields the same data.
func generateRandomData(size int, lo, hi float64, seed int64) []float64 {
	rnd := rand.New(rand.NewSource(seed))
	data := make([]float64, size)
	for i := range data {
		v := lo + rnd.Float64()*(hi-lo)
		data[i] = math.Round(v*100) / 100
	}
	return data
}

// writeDataToFile writes one value per line.
func writeDataToFile(data []float64, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 64*1024)
	buf := make([]byte, 0, 32)
	for _, v := range data {
		buf = strconv.AppendFloat(buf[:0], v, 'f', -1, 64)
		buf = append(buf, '\n')
		if _, err := writer.Write(buf); err != nil {
			return errors.Wrapf(err, "write %s", filename)
		}
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", filename)
	}
	return file.Close()
}

func readDataFromFile(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	var data []float64
	if info, err := file.Stat(); err == nil {
		// roughly "dd.dd\n" per value
		data = make([]float64, 0, info.Size()/6)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, line)
		}
		data = append(data, v)
	}
	return data, errors.Wrapf(scanner.Err(), "read %s", filename)
}

func startStats() *SystemStats {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemStats{startTime: time.Now(), startMem: m}
}

// endStats returns the elapsed time and the bytes allocated since start.
func (s *SystemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// runBenchmark sorts a copy of data with algorithm and checks the output.
func (b *bench) runBenchmark(ctx context.Context, algorithm string, data []float64, isFileMode bool) (BenchmarkResult, []float64, error) {
	result := BenchmarkResult{
		Algorithm:    algorithm,
		DataSize:     len(data),
		StorageType:  storageMemory,
		GoroutineNum: runtime.NumGoroutine(),
	}
	if isFileMode {
		result.StorageType = storageFile
	}

	var sorted []float64
	stats := startStats()
	switch algorithm {
	case algoNatural, algoParallelNatural:
		sorter := b.natural
		if algorithm == algoParallelNatural {
			sorter = b.parallelNatural
		}
		res, err := sorter.SortContext(ctx, data)
		if err != nil {
			return result, nil, errors.Wrapf(err, "%s of %d values", algorithm, len(data))
		}
		sorted, result.Runs, result.Rounds = res.Sorted, res.Runs, res.Rounds
	case algoMerge:
		sorted = mergeSort(data)
	case algoParallelMerge:
		sorted = parallelMergeSort(data, b.pools.semaphore, b.cfg.Bench.Workers)
	default:
		return result, nil, errors.Errorf("unknown algorithm %q", algorithm)
	}
	result.Duration, result.MemoryUsage = stats.endStats()

	result.Sorted = natsort.IsSorted(sorted, lessOrEqual) && natsort.IsPermutation(data, sorted)
	return result, sorted, nil
}

// formatPreview renders the first n values with two decimals.
func formatPreview(data []float64, n int) string {
	n = min(n, len(data))
	parts := make([]string, n)
	for i, v := range data[:n] {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// saveResultsToMarkdown writes per-size tables of every run followed by
// per-algorithm averages.
func saveResultsToMarkdown(w io.Writer, results []BenchmarkResult, lengths []int, algorithms []string) error {
	var builder strings.Builder
	builder.WriteString("# Natural merge sort benchmark\n\n")
	fmt.Fprintf(&builder, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&builder, "CPU cores: %d\n", runtime.NumCPU())
	fmt.Fprintf(&builder, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	for _, size := range lengths {
		rows := filterResults(results, size)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&builder, "## %s - %d values\n\n", rows[0].StorageType, size)
		builder.WriteString("| Algorithm | Run | Duration | Memory | Goroutines | Runs | Rounds | Sorted |\n")
		builder.WriteString("|-----------|-----|----------|--------|------------|------|--------|--------|\n")
		for _, algo := range algorithms {
			for _, r := range rows {
				if r.Algorithm != algo {
					continue
				}
				fmt.Fprintf(&builder, "| %s | %d | %v | %d bytes | %d | %d | %d | %t |\n",
					r.Algorithm, r.TestRun, r.Duration, r.MemoryUsage, r.GoroutineNum, r.Runs, r.Rounds, r.Sorted)
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Averages\n\n")
	for _, size := range lengths {
		rows := filterResults(results, size)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&builder, "### %d values\n\n", size)
		builder.WriteString("| Algorithm | Mean duration | Mean memory |\n")
		builder.WriteString("|-----------|---------------|-------------|\n")
		for _, algo := range algorithms {
			var totalDuration time.Duration
			var totalMemory uint64
			count := 0
			for _, r := range rows {
				if r.Algorithm == algo {
					totalDuration += r.Duration
					totalMemory += r.MemoryUsage
					count++
				}
			}
			if count > 0 {
				fmt.Fprintf(&builder, "| %s | %v | %d bytes |\n",
					algo, totalDuration/time.Duration(count), totalMemory/uint64(count))
			}
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func saveResultsToJSON(w io.Writer, results []BenchmarkResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// writeReport creates name in dir and fills it with write.
func writeReport(dir, name string, write func(w io.Writer) error) (string, error) {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create report %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	if err := write(writer); err != nil {
		return "", errors.Wrapf(err, "write report %s", path)
	}
	if err := writer.Flush(); err != nil {
		return "", errors.Wrapf(err, "flush report %s", path)
	}
	return path, file.Close()
}

func filterResults(results []BenchmarkResult, size int) []BenchmarkResult {
	var out []BenchmarkResult
	for _, r := range results {
		if r.DataSize == size {
			out = append(out, r)
		}
	}
	return out
}
