// Package cmd implements the CLI application to import broker exports and report on them.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/findash/holdings/config"
	"github.com/findash/holdings/logger"
	"github.com/findash/holdings/pipeline"
	"github.com/findash/holdings/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Group is a named group of subcommands.
type Group struct {
	Name     string
	Commands []subcommands.Command
}

// Commands lists every subcommand, by group.
func Commands() []Group {
	return []Group{
		{"exports", []subcommands.Command{&importCmd{}, &filesCmd{}, &importsCmd{}, &restoreCmd{}}},
		{"reports", []subcommands.Command{&reportCmd{}, &summaryCmd{}, &exportCmd{}}},
		{"queries", []subcommands.Command{&datesCmd{}, &holdingsCmd{}, &historyCmd{}, &quoteCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}}},
	}
}

// Register binds the global flags, with defaults from 'cfg', and registers the subcommands.
func Register(c *subcommands.Commander, cfg config.Config) {
	settings = cfg
	flag.StringVar(&settings.DatabasePath, "db", cfg.DatabasePath, "Path to the SQLite database")
	flag.StringVar(&settings.ExportsDir, "exports", cfg.ExportsDir, "Directory of the broker export files")
	flag.StringVar(&settings.ReportsDir, "reports", cfg.ReportsDir, "Directory where report files are written")
	flag.StringVar(&settings.Currency, "currency", cfg.Currency, "Currency of the amounts in the exports")
	flag.StringVar(&settings.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	flag.BoolVar(&settings.LogPretty, "log-pretty", cfg.LogPretty, "Human friendly logs")
	flag.BoolVar(&rawMarkdown, "markdown", false, "Print markdown as is, without terminal styling")

	for _, g := range Commands() {
		for _, cmd := range g.Commands {
			c.Register(cmd, g.Name)
		}
	}
}

// Validate normalizes and validates the settings once the global flags are parsed.
func Validate() error {
	settings.Currency = strings.ToUpper(settings.Currency)
	settings.LogLevel = strings.ToLower(settings.LogLevel)
	return settings.Validate()
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	settings    = config.Default()
	rawMarkdown bool
)

func newLogger() zerolog.Logger {
	return logger.New(logger.Config{Level: settings.LogLevel, Pretty: settings.LogPretty})
}

// openPipeline opens the store and returns a pipeline over it. The store must be closed by
// the caller.
func openPipeline(ctx context.Context) (*pipeline.Pipeline, *store.Store, error) {
	log := newLogger()
	s, err := store.Open(ctx, settings.DatabasePath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open database: %w", err)
	}
	return pipeline.New(s, log, pipeline.WithCurrency(settings.Currency)), s, nil
}

// exportPath resolves 'name' as a path, or as a file of the exports directory.
func exportPath(name string) string {
	if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) && !filepath.IsAbs(name) {
		return filepath.Join(settings.ExportsDir, name)
	}
	return name
}

// printMarkdown prints 'md' styled for the terminal.
func printMarkdown(md string) {
	if rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

// usage prints a usage error and returns the usage exit status.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
