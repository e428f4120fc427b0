package bench

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/bench/benchbar"
)

type benchmarkLargeConfig struct {
	insertXPayloads int
	payloadYBytes   int
}

// runBenchmarkLarge inserts X blob payloads of Y bytes each and reads
// them all back. This simulates a blob-heavy workload.
func runBenchmarkLarge(
	conn *typelite.Conn, _ string, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkLargeConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	ins, err := conn.Prepare("INSERT INTO payloads (tag, data) VALUES (?, ?)")
	if err != nil {
		return benchmarkResult{}, err
	}
	defer ins.Close()

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d payloads of %d bytes", conf.insertXPayloads, conf.payloadYBytes),
		conf.insertXPayloads,
	)

	err = conn.WithTx(func() error {
		for range conf.insertXPayloads {
			id := uuid.New()
			data := bytes.Repeat(id[:], conf.payloadYBytes/len(id)+1)[:conf.payloadYBytes]

			if err := ins.Bind(id.String(), data); err != nil {
				return err
			}
			if err := ins.Execute(); err != nil {
				return err
			}
			if err := ins.Reset(); err != nil {
				return err
			}

			bar.Inc()
			totalWrites += uint64(conn.Changes())
		}
		return nil
	})
	if err != nil {
		return benchmarkResult{}, err
	}
	bar.Finish()

	bar = benchbar.NewBar("Reading payloads", 1)

	sel, err := conn.Prepare("SELECT tag, data FROM payloads ORDER BY id")
	if err != nil {
		return benchmarkResult{}, err
	}
	defer sel.Close()

	for {
		hasRow, err := sel.Step()
		if err != nil {
			return benchmarkResult{}, err
		}
		if !hasRow {
			break
		}

		row := sel.Row()
		data, ok := row.GetBlob(1)
		if !ok || len(data) != conf.payloadYBytes {
			return benchmarkResult{}, fmt.Errorf(
				"payload %s has %d bytes, want %d", row.Text(0), len(data), conf.payloadYBytes,
			)
		}
		totalReads++
	}

	bar.Finish()
	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
