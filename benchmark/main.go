// Package main provides a performance benchmarking tool for the Chartkit CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - chartkit binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated datasets and the benchmark cache database
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Series      int
	Datasets    map[string]int // dataset name -> points per series
	Order       []string
	Commands    map[string]string // command -> extra arguments
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Series:      4,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 10_000,
			"large":  100_000,
		},
		Order: []string{"small", "medium", "large"},
		Commands: map[string]string{
			"render":   "--curve monotone",
			"scale":    "",
			"nearest":  "--x 500 --y 0",
			"describe": "",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the benchmark cache using chartkit cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("chartkit", "cache", "clear")
	clearCmd.Env = append(os.Environ(), "CHARTKIT_CACHE_DB_CONNECT="+cacheDBPath(config))
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// cacheDBPath keeps benchmark cache entries out of the user's default cache.
func cacheDBPath(config BenchmarkConfig) string {
	return filepath.Join(config.WorkDir, "benchmark-cache.db")
}

// checkPrerequisites verifies that the chartkit binary exists and generates the datasets.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("chartkit"); err != nil {
		return fmt.Errorf("chartkit binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir: %w", err)
	}
	for _, name := range config.Order {
		if err := generateDataset(datasetPath(config, name), config.Series, config.Datasets[name]); err != nil {
			return fmt.Errorf("cannot generate dataset %s: %w", name, err)
		}
	}
	return nil
}

func datasetPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.WorkDir, name+".json")
}

// generateDataset writes series of phase-shifted sine waves.
func generateDataset(path string, series, points int) error {
	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	type entry struct {
		ID     string  `json:"id"`
		Points []point `json:"points"`
	}

	data := make([]entry, series)
	for s := range series {
		data[s].ID = fmt.Sprintf("wave-%d", s+1)
		data[s].Points = make([]point, points)
		for i := range points {
			x := float64(i)
			data[s].Points[i] = point{X: x, Y: math.Sin(x/50 + float64(s))}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	return json.NewEncoder(file).Encode(data)
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Order), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.Order {
		fmt.Printf("Benchmarking %s (%d series x %d points)\n", name, config.Series, config.Datasets[name])
		for _, command := range []string{"render", "scale", "nearest", "describe"} {
			results = append(results, runBenchmarkSuite(config, name, command, config.Commands[command]))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a chartkit command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, datasetPath(config, dataset), "--cache-backend", cacheBackend}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", cacheDBPath(config))
	}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("chartkit", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "render":
		completionPhrase = "Rendered in"
	case "scale":
		completionPhrase = "Scales fitted in"
	case "describe":
		completionPhrase = "Chart with"
	default:
		completionPhrase = "Narration:"
	}
	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("chartkit_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range []string{"render", "scale", "nearest", "describe"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s (%7d points): No-cache: %s, Cold: %s, Warm: %s\n",
					result.Dataset, config.Datasets[result.Dataset], result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
