package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/findash/holdings/docs"
	"github.com/google/subcommands"
)

// topicCmd prints help pages.
type topicCmd struct{}

func (*topicCmd) Name() string { return "topic" }
func (*topicCmd) Synopsis() string {
	return "read the findash guide: " + strings.Join(docs.Names(), ", ")
}
func (*topicCmd) Usage() string {
	return `findash topic [<topic>...|'*']

  Prints the guide pages of the topics, or the index of topics when none is given.
  '*' prints every page.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	md, err := docs.Pages(f.Args()...)
	if err != nil {
		return usage("Error: %v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
