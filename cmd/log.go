package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nefay/licspend/renderer"
	"github.com/google/subcommands"
)

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct {
	clear bool
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "show the change history" }
func (*logCmd) Usage() string {
	return `lss log [-clear]

  Show the audit log of record changes. Only the last 100 entries are
  kept.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Clear the change history.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.clear {
		if err := p.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Cleared the change history")
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	renderer.RenderHistory(&b, p.History())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
