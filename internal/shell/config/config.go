package config

import (
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/typelite/typelite/internal/version"
)

// Config represents the configuration for the typelite shell.
type Config struct {
	DatabasePath string `arg:"positional" help:"Path of the database to open (defaults to a private in-memory database)" default:":memory:"`
	ReadOnly     bool   `arg:"--readonly" help:"Open the database in read-only mode"`
	BusyTimeout  int    `arg:"--busy-timeout" help:"Busy handler timeout in milliseconds" default:"5000"`
	Verbose      bool   `arg:"-v,--verbose" help:"Log prepare and exec calls to stderr"`
}

func (Config) Version() string {
	return fmt.Sprintf("typelite %s\n", version.Version)
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	return cfg
}
