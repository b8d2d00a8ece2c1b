package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nefay/licspend"
	"github.com/google/subcommands"
)

// syncCmd holds the flags for the 'sync' subcommand.
type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "refresh external ticket figures" }
func (*syncCmd) Usage() string {
	return `lss sync

  Fetch the external KPI sources configured in lss.yaml and update the
  ticket figures. Values are taken as-is from the source systems.

Configuration example (lss.yaml):
  kpiSources:
    - name: "SNOW Tickets MTD"
      url: "https://snow.example.com/api/tickets/mtd"
      path: "$.result.count"
      unit: "tickets"
      source: "ServiceNow"

`
}

func (*syncCmd) SetFlags(f *flag.FlagSet) {}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()
	if len(cfg.KPISources) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no kpiSources configured in %s\n", configFile)
		return subcommands.ExitFailure
	}
	p, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := licspend.SyncExternalKPIs(nil, cfg.KPISources, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(p, s); status != subcommands.ExitSuccess {
		return status
	}
	for _, k := range s.ExternalKPIs {
		fmt.Printf("%s: %g %s (%s)\n", k.Name, k.Value, k.Unit, k.Source)
	}
	return subcommands.ExitSuccess
}
