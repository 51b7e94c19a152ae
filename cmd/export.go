package cmd

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/findash/holdings"
	"github.com/google/subcommands"
)

type exportCmd struct {
	date      string
	output    string
	aggregate bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the stored valuation records as JSONL" }
func (*exportCmd) Usage() string {
	return `findash export [-d <date>] [-aggregate] [-o <file>]

  Writes the stored records, one JSON object per line. The output can be imported
  back with 'findash restore'.

  With -aggregate, writes the aggregated positions and totals instead.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date to export, all dates if empty")
	f.StringVar(&c.output, "o", "", "Output file, the standard output if empty")
	f.BoolVar(&c.aggregate, "aggregate", false, "Export the aggregation instead of the records")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOptionalDate(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	var w io.Writer = os.Stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			return fail("Error creating %q: %v", c.output, err)
		}
		defer out.Close()
		w = out
	}

	if c.aggregate {
		a, err := p.Aggregate(ctx, on)
		if err != nil {
			return fail("Error: %v", err)
		}
		err = holdings.EncodeAggregation(w, a)
		if err != nil {
			return fail("Error writing aggregation: %v", err)
		}
		return subcommands.ExitSuccess
	}

	records, err := s.Records(ctx, on)
	if err != nil {
		return fail("Error: %v", err)
	}
	if err := holdings.EncodeRecords(w, records); err != nil {
		return fail("Error writing records: %v", err)
	}
	return subcommands.ExitSuccess
}
