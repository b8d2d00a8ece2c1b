package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nefay/licspend"
	"github.com/google/subcommands"
)

// initCmd holds the flags for the 'init' subcommand.
type initCmd struct {
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "seed the data folder with the shipped dataset" }
func (*initCmd) Usage() string {
	return `lss init [-force]

  Write the shipped default dataset into the data folder. Refuses to
  overwrite existing data unless -force is given.

Usage Examples:
$ lss init

`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Overwrite existing data.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	def := licspend.DefaultRecordStore()
	if !c.force && p.HasData() {
		fmt.Fprintf(os.Stderr, "Error: data folder already holds data, use -force to overwrite\n")
		return subcommands.ExitFailure
	}
	if !p.Save(def) {
		fmt.Fprintf(os.Stderr, "Error: could not write the default dataset\n")
		return subcommands.ExitFailure
	}
	fmt.Printf("Seeded %d publishers (dataset %s)\n", len(def.Publishers), def.DatasetVersion)
	return subcommands.ExitSuccess
}
