package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/findash/holdings"
	"github.com/findash/holdings/quote"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type quoteCmd struct {
	full bool
	days int
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the daily prices of a stock symbol" }
func (*quoteCmd) Usage() string {
	return `findash quote [-full] [-n <days>] <symbol>

  Fetches the daily open, high, low, close and volume of a stock from Alpha Vantage,
  most recent day first. Requires FINDASH_ALPHAVANTAGE_KEY.

  Answers are cached for the day.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.full, "full", false, "Fetch the full history instead of the latest 100 days")
	f.IntVar(&c.days, "n", 10, "Number of days to print, all if 0")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("quote requires exactly one symbol")
	}
	if settings.AlphaVantageKey == "" {
		return fail("Error: FINDASH_ALPHAVANTAGE_KEY is not set")
	}

	client := quote.NewClient(settings.AlphaVantageKey, quote.WithLogger(newLogger()))
	series, err := client.Daily(ctx, f.Arg(0), c.full)
	if err != nil {
		return fail("Error: %v", err)
	}

	bars := series.Bars
	if c.days > 0 && len(bars) > c.days {
		bars = bars[:c.days]
	}
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\nLast refreshed: %s (%s)\n\n", series.Symbol, series.LastRefreshed, series.TimeZone)
	md.WriteString("| Date | Open | High | Low | Close | Volume |\n")
	md.WriteString("|:---|---:|---:|---:|---:|---:|\n")
	for _, b := range bars {
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %s | %s |\n", b.Date,
			b.Open.StringFixed(2), b.High.StringFixed(2), b.Low.StringFixed(2), b.Close.StringFixed(2),
			holdings.FormatNumber(decimal.NewFromInt(b.Volume), 0))
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
