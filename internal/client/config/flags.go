package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags listed
// here are looked at; -c/-config belong to parseFile.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-ui", "-l", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the auth API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local session store")
	fs.StringVar(&cfg.Interface, "ui", cfg.Interface, "interface: repl or tui")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t has whole-second resolution; a finer value from the file stays
	// unless the flag was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
