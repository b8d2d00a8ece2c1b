package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nefay/licspend"
	"github.com/google/subcommands"
)

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete publishers by id" }
func (*rmCmd) Usage() string {
	return `lss rm <id> [<id>...]

  Delete the identified publishers and their spend and risk rows. Managed
  titles are kept.

Usage Examples:
$ lss rm 3 7

`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at least one publisher id\n")
		return subcommands.ExitUsageError
	}
	var ids []int
	for _, arg := range f.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid id %q\n", arg)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}
	p, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var entries []licspend.ChangeEntry
	for _, id := range ids {
		if pub := s.PublisherByID(id); pub != nil {
			entries = append(entries, licspend.ChangeEntry{
				Timestamp: time.Now().UTC(),
				Kind:      licspend.ChangeDelete,
				Subject:   pub.Name,
			})
		}
	}
	n := licspend.DeletePublishers(s, ids...)
	if n == 0 {
		fmt.Fprintf(os.Stderr, "Error: no publisher matches the given ids\n")
		return subcommands.ExitFailure
	}
	if status := SaveStore(p, s, entries...); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Deleted %d publisher(s)\n", n)
	return subcommands.ExitSuccess
}
