package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/findash/holdings"
	"github.com/findash/holdings/hl"
	"github.com/google/subcommands"
)

type filesCmd struct{}

func (*filesCmd) Name() string     { return "files" }
func (*filesCmd) Synopsis() string { return "list the export files of the exports directory" }
func (*filesCmd) Usage() string {
	return `findash files

  Lists the CSV export files of the exports directory, by name.
`
}
func (*filesCmd) SetFlags(f *flag.FlagSet) {}

func (*filesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files, err := hl.Files(settings.ExportsDir)
	if err != nil {
		return fail("Error: %v", err)
	}
	for _, file := range files {
		fmt.Println(file.Name)
	}
	return subcommands.ExitSuccess
}

type importsCmd struct{}

func (*importsCmd) Name() string     { return "imports" }
func (*importsCmd) Synopsis() string { return "list the import batches stored in the database" }
func (*importsCmd) Usage() string {
	return `findash imports

  Lists every stored import: file, portfolio, valuation date and record count.
`
}
func (*importsCmd) SetFlags(f *flag.FlagSet) {}

func (*importsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	imports, err := s.Imports(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	var md strings.Builder
	md.WriteString("| Imported | File | Portfolio | Date | Records |\n")
	md.WriteString("|:---|:---|:---|:---|---:|\n")
	for _, i := range imports {
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %d |\n", i.ImportedAt.Local().Format("2006-01-02 15:04"), i.File, i.Portfolio, i.Date, i.Records)
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}

type datesCmd struct{}

func (*datesCmd) Name() string     { return "dates" }
func (*datesCmd) Synopsis() string { return "list the valuation dates, most recent first" }
func (*datesCmd) Usage() string {
	return `findash dates
`
}
func (*datesCmd) SetFlags(f *flag.FlagSet) {}

func (*datesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	dates, err := p.Dates(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return subcommands.ExitSuccess
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the holding names, sorted" }
func (*holdingsCmd) Usage() string {
	return `findash holdings
`
}
func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	names, err := p.Holdings(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print the value of a holding at each valuation date" }
func (*historyCmd) Usage() string {
	return `findash history <holding>

  Prints the value of the holding, summed over portfolios, at each valuation date.
`
}
func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (*historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("history requires exactly one holding name")
	}
	holding := f.Arg(0)

	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	h, err := p.History(ctx, holding)
	if err != nil {
		return fail("Error: %v", err)
	}
	if h.Len() == 0 {
		return fail("no valuation of %q", holding)
	}
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", holding)
	md.WriteString("| Date | Value |\n|:---|---:|\n")
	for day, value := range h.Values() {
		fmt.Fprintf(&md, "| %s | %s |\n", day, holdings.M(value, settings.Currency))
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
