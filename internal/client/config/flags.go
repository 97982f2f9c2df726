package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/receiptkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL, e.g. https://receipts.example.com
//	-d string   local data directory
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are looked at; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
