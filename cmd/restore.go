package cmd

import (
	"context"
	"flag"

	"github.com/findash/holdings/pipeline"
	"github.com/google/subcommands"
)

type restoreCmd struct {
	json bool
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "import records previously written by 'export'" }
func (*restoreCmd) Usage() string {
	return `findash restore [-json] <file.jsonl>...

  Imports the JSONL records written by 'findash export', one import batch per
  portfolio and valuation date.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the import results as JSON")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("at least one records file is required")
	}
	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	var results []pipeline.ImportResult
	for _, name := range f.Args() {
		results = append(results, p.Restore(ctx, name)...)
	}
	return printResults(results, c.json)
}
