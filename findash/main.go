// Command findash imports broker valuation exports and reports on the holdings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/findash/holdings/cmd"
	"github.com/findash/holdings/config"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, cfg)

	cmd.Completion(flag.CommandLine).Complete("findash")

	flag.Parse()
	if err := cmd.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
