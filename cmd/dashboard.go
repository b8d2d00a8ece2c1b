package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/renderer"
	"github.com/google/subcommands"
)

// dashboardCmd holds the flags for the 'dashboard' subcommand.
type dashboardCmd struct {
	date string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the full licensing dashboard" }
func (*dashboardCmd) Usage() string {
	return `lss dashboard [-d <date>]

  Compute and display every aggregate view: key figures, savings by type,
  risk tracking, upcoming renewals and compliance health.

Usage Examples:
# Dashboard as of today.
$ lss dashboard

`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date for the dashboard. Defaults to today.")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, status := parseDateFlag(c.date)
	if status != subcommands.ExitSuccess {
		return status
	}
	_, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderDashboard(&b, licspend.ComputeAllOn(s, on))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// parseDateFlag parses a -d flag value, empty meaning today.
func parseDateFlag(value string) (licspend.Date, subcommands.ExitStatus) {
	if value == "" {
		return licspend.Today(), subcommands.ExitSuccess
	}
	on, err := licspend.ParseDate(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return licspend.Date{}, subcommands.ExitUsageError
	}
	return on, subcommands.ExitSuccess
}
