package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/findash/holdings/date"
	"github.com/findash/holdings/renderer"
	"github.com/google/subcommands"
)

// Report formats.
const (
	formatTerm     = "term"
	formatMarkdown = "md"
	formatPDF      = "pdf"
	formatXLSX     = "xlsx"
)

var reportFormats = []string{formatTerm, formatMarkdown, formatPDF, formatXLSX}

type reportCmd struct {
	date   string
	format string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the investment portfolio report" }
func (*reportCmd) Usage() string {
	return `findash report [-d <date>] [-f term|md|pdf|xlsx] [-o <file>]

  Renders the report of every holding, aggregated over all valuation dates or over
  the single date given with -d.

  The 'term' format prints the report. Other formats are written to a file of the
  reports directory, unless -o is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date to report on, all dates if empty")
	f.StringVar(&c.format, "f", formatTerm, "Report format: term, md, pdf or xlsx")
	f.StringVar(&c.output, "o", "", "Output file, '-' for the standard output")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOptionalDate(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}

	p, s, err := openPipeline(ctx)
	if err != nil {
		return fail("Error: %v", err)
	}
	defer s.Close()

	doc, err := p.Report(ctx, on)
	if err != nil {
		return fail("Error building report: %v", err)
	}

	var buf bytes.Buffer
	switch c.format {
	case formatTerm:
		if rawMarkdown {
			fmt.Print(renderer.Markdown(doc))
			return subcommands.ExitSuccess
		}
		out, err := renderer.Terminal(doc, 120)
		if err != nil {
			return fail("Error rendering report: %v", err)
		}
		fmt.Print(out)
		return subcommands.ExitSuccess
	case formatMarkdown:
		buf.WriteString(renderer.Markdown(doc))
	case formatPDF:
		err = renderer.PDF(doc, &buf)
	case formatXLSX:
		err = renderer.XLSX(doc, &buf)
	default:
		return usage("unknown report format %q, must be one of %v", c.format, reportFormats)
	}
	if err != nil {
		return fail("Error rendering report: %v", err)
	}

	if c.output == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return fail("Error writing report: %v", err)
		}
		return subcommands.ExitSuccess
	}
	path := c.output
	if path == "" {
		if err := os.MkdirAll(settings.ReportsDir, 0o755); err != nil {
			return fail("Error creating reports directory: %v", err)
		}
		path = filepath.Join(settings.ReportsDir, reportFileName(on, time.Now(), c.format))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fail("Error writing report: %v", err)
	}
	fmt.Println(path)
	return subcommands.ExitSuccess
}

// reportFileName returns the file name of a report on 'on' generated at 'now'.
func reportFileName(on date.Date, now time.Time, format string) string {
	scope := "all"
	if !on.IsZero() {
		scope = on.String()
	}
	return fmt.Sprintf("investment_report_%s_%s.%s", scope, now.Format("20060102_150405"), format)
}

// parseOptionalDate parses 's', the empty string being the zero date.
func parseOptionalDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}
