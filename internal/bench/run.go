package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/log"
	"github.com/typelite/typelite/internal/version"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// benchConfig represents the configuration for the benchmark tool.
type benchConfig struct {
	DatabasePath string `arg:"positional" help:"Path of the benchmark database (defaults to a temporary file)"`
	Quick        bool   `arg:"--quick" help:"Run the benchmarks with reduced workloads"`
}

func (benchConfig) Version() string {
	return fmt.Sprintf("typelitebench %s\n", version.Version)
}

// Run executes the benchmark workloads against one database and prints
// the results.
func Run(ctx context.Context) error {
	cfg := benchConfig{}
	arg.MustParse(&cfg)

	fmt.Println(version.BenchVersion())
	lg := log.NewLogger(os.Stderr)

	path := cfg.DatabasePath
	if path == "" {
		tmpDir, err := os.MkdirTemp("", "typelitebench_*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmpDir)
		path = filepath.Join(tmpDir, "bench.db")
	}

	conn, err := typelite.Open(path, typelite.WithBusyTimeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("error opening %q: %w", path, err)
	}
	defer conn.Close()

	conf := getDefaultConfig()
	if cfg.Quick {
		conf = getQuickConfig()
	}

	lg.InfoNs(log.NsBench, "starting benchmarks", log.KV{
		"path":  path,
		"quick": cfg.Quick,
	})

	results, err := runBenchmarks(ctx, conn, path, conf)
	if err != nil {
		return err
	}
	printResults(results)

	return nil
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{r.Name, r.TotalReads, r.TotalWrites, r.Duration})
	}

	fmt.Println(tw.Render())
}

// runBenchmarks executes all benchmarks and returns the results.
//
// It recreates the schema before each benchmark.
func runBenchmarks(
	ctx context.Context, conn *typelite.Conn, path string, conf benchmarksConfig,
) ([]benchmarkResult, error) {
	benchs := []func(*typelite.Conn, string, benchmarksConfig) (benchmarkResult, error){
		runBenchmarkSimple,
		runBenchmarkComplex,
		runBenchmarkMany,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := recreateSchema(conn); err != nil {
			return nil, err
		}

		res, err := bench(conn, path, conf)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
