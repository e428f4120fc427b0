package bench

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/bench/benchbar"
)

type benchmarkComplexConfig struct {
	insertXUsers              int
	insertYArticlesPerUser    int
	insertZCommentsPerArticle int
}

// runBenchmarkComplex inserts X users, each with Y articles, each with
// Z comments, wiring the foreign keys through the last insert rowid.
// It then reads everything back with a three-way join.
func runBenchmarkComplex(
	conn *typelite.Conn, _ string, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkComplexConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	insUser, err := conn.Prepare(
		"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
	)
	if err != nil {
		return benchmarkResult{}, err
	}
	defer insUser.Close()

	insArticle, err := conn.Prepare(
		"INSERT INTO articles (created, userId, text) VALUES (?, ?, ?)",
	)
	if err != nil {
		return benchmarkResult{}, err
	}
	defer insArticle.Close()

	insComment, err := conn.Prepare(
		"INSERT INTO comments (created, articleId, text) VALUES (?, ?, ?)",
	)
	if err != nil {
		return benchmarkResult{}, err
	}
	defer insComment.Close()

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users with articles and comments", conf.insertXUsers),
		conf.insertXUsers,
	)

	insert := func(stmt *typelite.Stmt, args ...any) (int64, error) {
		if err := stmt.Bind(args...); err != nil {
			return 0, err
		}
		if err := stmt.Execute(); err != nil {
			return 0, err
		}
		if err := stmt.Reset(); err != nil {
			return 0, err
		}
		totalWrites += uint64(conn.Changes())
		return conn.LastInsertRowID(), nil
	}

	err = conn.WithTx(func() error {
		for idx := range conf.insertXUsers {
			userID, err := insert(
				insUser,
				time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
			)
			if err != nil {
				return err
			}

			for range conf.insertYArticlesPerUser {
				articleID, err := insert(
					insArticle, time.Now().Unix(), userID, uuid.NewString(),
				)
				if err != nil {
					return err
				}

				for range conf.insertZCommentsPerArticle {
					if _, err := insert(
						insComment, time.Now().Unix(), articleID, uuid.NewString(),
					); err != nil {
						return err
					}
				}
			}

			bar.Inc()
		}
		return nil
	})
	if err != nil {
		return benchmarkResult{}, err
	}
	bar.Finish()

	bar = benchbar.NewBar("Reading comments with their article and user", 1)

	sel, err := conn.Prepare(`
		SELECT u.email, a.text, c.text
		FROM comments c
		JOIN articles a ON a.id = c.articleId
		JOIN users u ON u.id = a.userId
	`)
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
		_ = row.Text(0)
		_ = row.Text(1)
		_ = row.Text(2)
		totalReads++
	}

	bar.Finish()
	return benchmarkResult{
		Name:        "Complex",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
