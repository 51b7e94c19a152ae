package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/findash/holdings/config"
	"github.com/findash/holdings/date"
	"github.com/findash/holdings/pipeline"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	portfolio string
	date      string
	json      bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import broker export files into the database" }
func (*importCmd) Usage() string {
	return `findash import [-p <portfolio>] [-d <date>] [-json] <file>...

  Imports valuation export files. A file name that does not exist in the current
  directory is looked up in the exports directory.

  Each file is imported completely or not at all.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", settings.DefaultPortfolio, "Portfolio label of the imported holdings (at most 15 characters)")
	f.StringVar(&c.date, "d", date.Today().String(), "Valuation date of the exports")
	f.BoolVar(&c.json, "json", false, "Print the import results as JSON")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("at least one export file is required")
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	if n := utf8.RuneCountInString(c.portfolio); n == 0 || n > config.MaxPortfolioLength {
		return usage("portfolio label %q must have 1 to %d characters", c.portfolio, config.MaxPortfolioLength)
	}

	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	results := make([]pipeline.ImportResult, 0, f.NArg())
	for _, name := range f.Args() {
		results = append(results, p.Import(ctx, exportPath(name), c.portfolio, on))
	}
	return printResults(results, c.json)
}

// printResults prints import results and returns a failure if any failed.
func printResults(results []pipeline.ImportResult, asJSON bool) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if !r.Success {
			status = subcommands.ExitFailure
		}
		if asJSON {
			if err := enc.Encode(r); err != nil {
				return fail("Error writing result: %v", err)
			}
			continue
		}
		if r.Success {
			fmt.Printf("%s: imported %d records into %q on %s (import %s)\n", r.File, r.Imported, r.Portfolio, r.Date, r.ImportID)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.File, r.Error)
		}
	}
	return status
}
