package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the licensing assistant" }
func (*assistCmd) Usage() string {
	return `lss assist [<prompt>...]

  Start an interactive session with the licensing assistant. It can read
  the dashboard figures and research publishers. Requires a GEMINI_API_KEY
  environment variable.

Usage Examples:
$ lss assist "which renewals should I worry about this quarter?"

`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create AI client: %v\n", err)
		return subcommands.ExitFailure
	}

	load := func() (*licspend.RecordStore, error) {
		_, s, err := LoadStore()
		return s, err
	}
	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(load), agent.NewResearcher())
	if err := a.Run(ctx, client, f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
