package bench

import (
	"fmt"
	"time"

	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/bench/benchbar"
)

type benchmarkSimpleConfig struct {
	insertXUsers int
}

// runBenchmarkSimple inserts X users reusing one prepared statement and
// then reads all of them back in a single query.
func runBenchmarkSimple(
	conn *typelite.Conn, _ string, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkSimpleConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	ins, err := conn.Prepare(
		"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
	)
	if err != nil {
		return benchmarkResult{}, err
	}
	defer ins.Close()

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	for idx := range conf.insertXUsers {
		if err := ins.Bind(
			time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
		); err != nil {
			return benchmarkResult{}, fmt.Errorf("error when binding: %w", err)
		}
		if err := ins.Execute(); err != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
		}
		if err := ins.Reset(); err != nil {
			return benchmarkResult{}, err
		}

		bar.Inc()
		totalWrites += uint64(conn.Changes())
	}

	bar.Finish()
	bar = benchbar.NewBar("Reading users", 1)

	sel, err := conn.Prepare(
		"SELECT id, created, email, active FROM users ORDER BY id",
	)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	defer sel.Close()

	for {
		hasRow, err := sel.Step()
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when stepping: %w", err)
		}
		if !hasRow {
			break
		}

		row := sel.Row()
		_ = row.Int64(0)
		_ = row.Int64(1)
		_ = row.Text(2)
		_ = row.Int32(3)
		totalReads++
	}

	bar.Finish()
	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
