package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nefay/licspend"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a publisher" }
func (*addCmd) Usage() string {
	return `lss add <name>

  Create a publisher along with its empty spend and risk rows. Use
  'lss edit' to fill in the fields.

Usage Examples:
$ lss add "HashiCorp"

`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one publisher name\n")
		return subcommands.ExitUsageError
	}
	p, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	pub, err := licspend.AddPublisher(s, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	entry := licspend.ChangeEntry{
		Timestamp: time.Now().UTC(),
		Kind:      licspend.ChangeCreate,
		Subject:   pub.Name,
	}
	if status := SaveStore(p, s, entry); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added publisher %q with id %d\n", pub.Name, pub.ID)
	return subcommands.ExitSuccess
}
