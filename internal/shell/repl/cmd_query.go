package repl

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/typelite/typelite/internal/shell/styled"
)

func cmdQuery(r *Repl, input string) {
	start := time.Now()

	stmt, err := r.conn.Prepare(input)
	if err != nil {
		renderError(err)
		return
	}
	defer stmt.Close()

	// Statements that produce no columns (writes, DDL, transaction
	// control) only need one step. Anything with result columns is
	// iterated and rendered row by row, including RETURNING clauses on
	// writes.
	if stmt.ColumnCount() == 0 {
		if err := stmt.Execute(); err != nil {
			renderError(err)
			return
		}

		tw := styled.NewTableWriter()
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", r.conn.Changes(), r.conn.LastInsertRowID()})
		fmt.Println(tw.Render())

		printElapsed(start)
		return
	}

	tw := styled.NewTableWriter()
	header := table.Row{}
	for i := range stmt.ColumnCount() {
		header = append(header, stmt.ColumnName(i))
	}
	tw.AppendHeader(header)

	rows := 0
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			renderError(err)
			return
		}
		if !hasRow {
			break
		}

		snap, err := stmt.Snapshot()
		if err != nil {
			renderError(err)
			return
		}

		out := table.Row{}
		for i := range snap.Len() {
			out = append(out, snap.Value(i).String())
		}
		tw.AppendRow(out)
		rows++
	}

	fmt.Println(tw.Render())
	styled.DimmedColor().Printf("%d row(s) in %s\n", rows, time.Since(start).Round(time.Microsecond))
}

func renderError(err error) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Error"})
	tw.AppendRow(table.Row{err.Error()})
	fmt.Println(tw.Render())
}

func printElapsed(start time.Time) {
	styled.DimmedColor().Printf("done in %s\n", time.Since(start).Round(time.Microsecond))
}
