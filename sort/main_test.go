package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"natmerge/natsort"
	"natmerge/store"
)

func testConfig(t *testing.T) *Config {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Bench.Lengths = []int{0, 1, 50, 3000}
	cfg.Bench.Runs = 2
	cfg.Bench.FileThreshold = 3000
	cfg.Bench.DataDir = dir
	cfg.Bench.ReportDir = dir
	require.NoError(t, cfg.validate())
	return cfg
}

func TestRunBench(t *testing.T) {
	for _, backend := range []string{store.Memory, store.Bolt} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Store = StoreConfig{Backend: backend, Path: filepath.Join(t.TempDir(), "bench.db")}

			var out bytes.Buffer
			require.NoError(t, runBench(context.Background(), cfg, &out))
			require.Contains(t, out.String(), "3000 values (file)")
			require.Contains(t, out.String(), "50 values (memory)")
			require.NotContains(t, out.String(), "FAILED")
			require.Equal(t, 4, strings.Count(out.String(), "non-decreasing check: passed"))

			buf, err := os.ReadFile(filepath.Join(cfg.Bench.ReportDir, "benchmark_results.json"))
			require.NoError(t, err)
			var results []BenchmarkResult
			require.NoError(t, json.Unmarshal(buf, &results))
			require.Len(t, results, len(cfg.Bench.Lengths)*len(allAlgorithms)*cfg.Bench.Runs)
			for _, r := range results {
				require.True(t, r.Sorted, "%s/%d/%d", r.Algorithm, r.DataSize, r.TestRun)
			}

			_, err = os.Stat(filepath.Join(cfg.Bench.ReportDir, "benchmark_results.md"))
			require.NoError(t, err)
		})
	}
}

func TestDatasetIsStored(t *testing.T) {
	cfg := testConfig(t)
	st, err := store.Open(store.Memory, "")
	require.NoError(t, err)
	b := &bench{cfg: cfg, store: st}

	data, isFileMode, err := b.dataset(100)
	require.NoError(t, err)
	require.False(t, isFileMode)

	stored, err := st.GetDataset(fmt.Sprintf("uniform-100-0-100-seed%d", cfg.Bench.Seed))
	require.NoError(t, err)
	require.Equal(t, data, stored)

	data, isFileMode, err = b.dataset(3000)
	require.NoError(t, err)
	require.True(t, isFileMode)
	require.Equal(t, generateRandomData(3000, 0, 100, cfg.Bench.Seed), data)
}

func TestRunBenchCanceled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bench.Algorithms = []string{algoNatural}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runBench(ctx, cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bench.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(fmt.Sprintf(`
[bench]
runs = 1
report-dir = %q
data-dir = %q

[log]
level = "error"
`, dir, dir)), 0644))

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--cfg", cfgFile, "-n", "20,40", "--seed", "7"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "20 values (memory)")
	require.Contains(t, out.String(), "40 values (memory)")

	cmd = newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--cfg", cfgFile, "-n", "-5"})
	require.Error(t, cmd.Execute())
}

func TestRunTrace(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runTrace(context.Background(), []float64{1, 3, 2, 4}, &out))

	var events []natsort.Event[float64]
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, natsort.Event[float64]{Seq: int(ev["seq"].(float64))})
		require.Len(t, ev["tags"], 4)
	}
	require.Len(t, events, 8)
	require.Equal(t, 7, events[7].Seq)
}

func TestTraceCommand(t *testing.T) {
	name := filepath.Join(t.TempDir(), "trace.jsonl")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"trace", "-n", "12", "-o", name})
	require.NoError(t, cmd.Execute())

	buf, err := os.ReadFile(name)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Greater(t, len(lines), 2)
	require.Contains(t, lines[0], `"stage":"initial"`)
	require.Contains(t, lines[len(lines)-1], `"stage":"final"`)
}
