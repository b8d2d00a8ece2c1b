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

type storageCmd struct{}

func (*storageCmd) Name() string     { return "storage" }
func (*storageCmd) Synopsis() string { return "show storage usage" }
func (*storageCmd) Usage() string {
	return `lss storage

  Show how much of the storage budget is used, the snapshot range, and
  whether changes still need exporting.
`
}
func (*storageCmd) SetFlags(f *flag.FlagSet) {}
func (*storageCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderStorageInfo(&b, p.StorageInfo(), p.IsDirty())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
