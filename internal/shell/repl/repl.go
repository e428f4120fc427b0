package repl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/peterh/liner"
	"github.com/typelite/typelite"
	"github.com/typelite/typelite/internal/shell/config"
)

type Repl struct {
	conf        config.Config
	conn        *typelite.Conn
	ctx         context.Context
	stop        context.CancelFunc
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conf config.Config,
	conn *typelite.Conn,
) Repl {
	return Repl{
		conf:        conf,
		conn:        conn,
		ctx:         ctx,
		stop:        stop,
		historyPath: filepath.Join(os.TempDir(), ".typelite_history"),
	}
}

func (r *Repl) Start() error {
	location := r.conf.DatabasePath
	if location == typelite.InMemory {
		location = "a private in-memory database"
	}

	fmt.Println()
	fmt.Printf("Connected to %s\n", location)
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt()

			if input == "" {
				continue
			}

			if input == "exit" || input == ".exit" || input == ".quit" {
				r.Shutdown()
				return nil
			}

			if input == "clear" || input == ".clear" {
				clearTerminal()
				continue
			}

			if input == "help" || input == ".help" {
				cmdHelp()
				continue
			}

			if handled := r.dispatchDotCmd(input); handled {
				continue
			}

			if strings.HasPrefix(input, ".") {
				fmt.Println("Unknown command, type .help for usage hints")
				continue
			}

			cmdQuery(r, input)
		}
	}
}

// dispatchDotCmd handles the dot commands that translate to plain
// queries against the schema tables. It reports whether the input was
// one of them.
func (r *Repl) dispatchDotCmd(input string) bool {
	fields := strings.Fields(input)

	switch fields[0] {
	case ".tables":
		cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	case ".indexes":
		cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = 'index' ORDER BY name`)
	case ".schema":
		cmdQuery(r, `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL`)
	case ".columns":
		if len(fields) < 2 {
			fmt.Println("Usage: .columns [table_name]")
			return true
		}
		cmdQuery(r, fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdent(fields[1])))
	case ".count":
		if len(fields) < 2 {
			fmt.Println("Usage: .count [table_name]")
			return true
		}
		cmdQuery(r, fmt.Sprintf(`SELECT COUNT(*) AS count FROM %s`, quoteIdent(fields[1])))
	default:
		return false
	}

	return true
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt("typelite> ")
	if err != nil {
		if err == liner.ErrPromptAborted {
			fmt.Println("CTRL+C pressed, exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}

// quoteIdent quotes a user supplied identifier so it can be embedded in
// statements that do not support parameter binding, like PRAGMAs.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// clearTerminal clears the terminal screen in supported operating systems.
func clearTerminal() {
	goos := runtime.GOOS

	if strings.HasPrefix(goos, "windows") {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = os.Stdout
		_ = cmd.Run()
		return
	}

	if strings.HasPrefix(goos, "linux") || strings.HasPrefix(goos, "darwin") {
		cmd := exec.Command("clear")
		cmd.Stdout = os.Stdout
		_ = cmd.Run()
	}
}
