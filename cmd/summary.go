package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/findash/holdings"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the aggregated holdings as JSON" }
func (*summaryCmd) Usage() string {
	return `findash summary [-d <date>]

  Prints the positions and totals, over all valuation dates or the single date
  given with -d, as a JSON object.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date to aggregate, all dates if empty")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOptionalDate(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	a, err := p.Aggregate(ctx, on)
	if err != nil {
		return fail("Error: %v", err)
	}
	if err := holdings.EncodeAggregation(os.Stdout, a); err != nil {
		return fail("Error writing summary: %v", err)
	}
	return subcommands.ExitSuccess
}
