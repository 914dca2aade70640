package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/ragdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-m string   backend API contract: bearer or legacy
//	-s string   session database path
//	-o string   directory for rendered chart pages
//	-l string   log level
//	-nocolor    disable colours
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-s", "-o", "-l"}, "-nocolor")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Contract, "m", cfg.Contract, "backend API contract (bearer or legacy)")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.ChartsDir, "o", cfg.ChartsDir, "directory for chart pages")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.NoColor, "nocolor", cfg.NoColor, "disable colours")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
