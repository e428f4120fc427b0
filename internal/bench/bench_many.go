package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/bench/benchbar"
)

type benchmarkManyConfig struct {
	insertXUsers     int
	queryUsersYTimes int
	queryConnections int
}

type benchUser struct {
	ID      int64
	Created int64
	Email   string
	Active  int64
}

// runBenchmarkMany inserts X users in a single transaction and then
// queries all users Y times spread over a pool of read connections.
// This simulates a read-heavy workload.
func runBenchmarkMany(
	conn *typelite.Conn, path string, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkManyConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	err := conn.WithTx(func() error {
		ins, err := conn.Prepare(
			"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
		)
		if err != nil {
			return err
		}
		defer ins.Close()

		for idx := range conf.insertXUsers {
			if err := ins.Bind(
				time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
			); err != nil {
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

	bar = benchbar.NewBar(
		fmt.Sprintf("Querying all users %d times", conf.queryUsersYTimes),
		conf.queryUsersYTimes,
	)

	queries := make(chan struct{}, conf.queryUsersYTimes)
	for range conf.queryUsersYTimes {
		queries <- struct{}{}
	}
	close(queries)

	wg := sync.WaitGroup{}
	errChan := make(chan error, conf.queryConnections)

	for range conf.queryConnections {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each worker reads through its own connection.
			rc, err := typelite.Open(
				path, typelite.ReadOnly(),
				typelite.WithBusyTimeout(5*time.Second),
			)
			if err != nil {
				errChan <- err
				return
			}
			defer rc.Close()

			for range queries {
				users, err := typelite.Query[benchUser](
					rc, "SELECT id, created, email, active FROM users ORDER BY id",
				)
				if err != nil {
					errChan <- err
					return
				}

				atomic.AddUint64(&totalReads, uint64(len(users)))
				bar.Inc()
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for e := range errChan {
		if e != nil {
			return benchmarkResult{}, e
		}
	}
	bar.Finish()

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
