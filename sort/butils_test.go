package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandomData(t *testing.T) {
	data := generateRandomData(1000, 0, 100, 42)
	require.Len(t, data, 1000)
	require.Equal(t, data, generateRandomData(1000, 0, 100, 42))
	require.NotEqual(t, data, generateRandomData(1000, 0, 100, 43))
	for _, v := range data {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 100.0)
		require.Equal(t, math.Round(v*100)/100, v)
	}
	require.Empty(t, generateRandomData(0, 0, 100, 1))
}

func TestDataFileRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.txt")
	data := []float64{12.5, 0, 99.99, -3.25, 1e-7}
	require.NoError(t, writeDataToFile(data, name))

	got, err := readDataFromFile(name)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestReadDataFromFileBadLine(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(name, []byte("1.5\n\nabc\n"), 0644))
	_, err := readDataFromFile(name)
	require.ErrorContains(t, err, ":3")
}

func TestFormatPreview(t *testing.T) {
	require.Equal(t, "[1.00 2.50]", formatPreview([]float64{1, 2.5, 3}, 2))
	require.Equal(t, "[1.00]", formatPreview([]float64{1}, 10))
	require.Equal(t, "[]", formatPreview(nil, 10))
}

func TestSaveResults(t *testing.T) {
	results := []BenchmarkResult{
		{Algorithm: algoNatural, DataSize: 100, StorageType: storageMemory, TestRun: 1, Duration: 2 * time.Millisecond, MemoryUsage: 100, Runs: 30, Rounds: 5, Sorted: true},
		{Algorithm: algoNatural, DataSize: 100, StorageType: storageMemory, TestRun: 2, Duration: 4 * time.Millisecond, MemoryUsage: 300, Runs: 30, Rounds: 5, Sorted: true},
		{Algorithm: algoMerge, DataSize: 100, StorageType: storageMemory, TestRun: 1, Duration: time.Millisecond, MemoryUsage: 50, Sorted: true},
	}

	var md bytes.Buffer
	require.NoError(t, saveResultsToMarkdown(&md, results, []int{100, 200}, []string{algoNatural, algoMerge}))
	out := md.String()
	require.Contains(t, out, "## memory - 100 values")
	require.Contains(t, out, "| natural_mergesort | 2 | 4ms | 300 bytes |")
	require.Contains(t, out, "| natural_mergesort | 3ms | 200 bytes |")
	require.Contains(t, out, "| mergesort | 1ms | 50 bytes |")
	require.NotContains(t, out, "200 values")

	var js bytes.Buffer
	require.NoError(t, saveResultsToJSON(&js, results))
	var decoded []BenchmarkResult
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Equal(t, results, decoded)
}
