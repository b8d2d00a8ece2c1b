package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/renderer"
	"github.com/google/subcommands"
)

// snapshotCmd holds the flags for the 'snapshot' subcommand.
type snapshotCmd struct {
	name string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "snapshot the current data" }
func (*snapshotCmd) Usage() string {
	return `lss snapshot [-name <name>]

  Copy the current data into a named snapshot. When storage runs low the
  oldest snapshots are dropped to make room.

Usage Examples:
$ lss snapshot -name "before FY27 import"

`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Snapshot name. Defaults to the creation time.")
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap, err := p.CreateSnapshot(c.name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created snapshot %q (%s)\n", snap.Name, snap.ID)
	return subcommands.ExitSuccess
}

type snapshotsCmd struct{}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "list snapshots" }
func (*snapshotsCmd) Usage() string {
	return `lss snapshots

  List all snapshots, oldest first.
`
}
func (*snapshotsCmd) SetFlags(f *flag.FlagSet) {}
func (*snapshotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderSnapshots(&b, p.Snapshots())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// restoreCmd holds the flags for the 'restore' subcommand.
type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a snapshot as the live data" }
func (*restoreCmd) Usage() string {
	return `lss restore <snapshot-id>

  Replace the live data with the snapshot's copy. The snapshot itself is
  kept.
`
}
func (*restoreCmd) SetFlags(f *flag.FlagSet) {}
func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one snapshot id\n")
		return subcommands.ExitUsageError
	}
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	id := f.Arg(0)
	if !p.RestoreSnapshot(id) {
		fmt.Fprintf(os.Stderr, "Error: no snapshot %q (see 'lss snapshots')\n", id)
		return subcommands.ExitFailure
	}
	if err := p.AppendHistory(licspend.ChangeEntry{
		Timestamp: time.Now().UTC(),
		Kind:      licspend.ChangeRestore,
		Subject:   id,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record change history: %v\n", err)
	}
	fmt.Printf("Restored snapshot %s\n", id)
	return subcommands.ExitSuccess
}

// rmSnapshotCmd holds the flags for the 'rm-snapshot' subcommand.
type rmSnapshotCmd struct{}

func (*rmSnapshotCmd) Name() string     { return "rm-snapshot" }
func (*rmSnapshotCmd) Synopsis() string { return "delete a snapshot" }
func (*rmSnapshotCmd) Usage() string {
	return `lss rm-snapshot <snapshot-id>

  Delete a snapshot. Deleting an unknown id does nothing.
`
}
func (*rmSnapshotCmd) SetFlags(f *flag.FlagSet) {}
func (c *rmSnapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one snapshot id\n")
		return subcommands.ExitUsageError
	}
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p.DeleteSnapshot(f.Arg(0))
	fmt.Printf("Deleted snapshot %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
