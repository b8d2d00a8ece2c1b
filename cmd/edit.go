package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nefay/licspend"
	"github.com/google/subcommands"
)

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	id    int
	field string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit one field of a publisher" }
func (*editCmd) Usage() string {
	return `lss edit -id <id> -f <field> <value>

  Set one field of one publisher, validating the value against the field
  configuration. The change is recorded in the history log.

Usage Examples:
# Set the renewal date.
$ lss edit -id 3 -f renewalDate 2026-10-26

# Clear the savings type.
$ lss edit -id 3 -f savingsType ""

`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Id of the publisher to edit (see 'lss ls').")
	f.StringVar(&c.field, "f", "", "Field key to set (see 'lss fields').")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 || c.field == "" || f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: -id, -f and exactly one value are required\n")
		return subcommands.ExitUsageError
	}
	p, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	entry, err := licspend.ApplyFieldEdit(s, p.LoadFieldConfig(), c.id, c.field, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(p, s, entry); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Set %s of %q to %q (was %q)\n", entry.Field, entry.Subject, entry.New, entry.Old)
	return subcommands.ExitSuccess
}
