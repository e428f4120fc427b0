package shell

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/log"
	"github.com/typelite/typelite/internal/shell/config"
	"github.com/typelite/typelite/internal/shell/repl"
	"github.com/typelite/typelite/internal/version"
)

// Run runs the typelite interactive shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.ShellVersion())

	opts := []typelite.Option{
		typelite.WithBusyTimeout(time.Duration(conf.BusyTimeout) * time.Millisecond),
	}
	if conf.ReadOnly {
		opts = append(opts, typelite.ReadOnly())
	}

	lg := log.NewLogger(os.Stderr)
	if conf.Verbose {
		opts = append(opts, typelite.WithLogger(lg.Slogger()))
	}

	conn, err := typelite.Open(conf.DatabasePath, opts...)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", conf.DatabasePath, err)
	}
	defer conn.Close()

	rp := repl.NewRepl(ctx, stop, conf, conn)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			lg.ErrorNs(log.NsShell, "repl stopped", log.KV{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
