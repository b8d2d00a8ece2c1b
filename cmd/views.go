package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/renderer"
	"github.com/google/subcommands"
)

// The single-view commands all follow the same shape: load, compute one
// view, render it.

func renderView(date string, render func(io.Writer, *licspend.RecordStore, licspend.Date)) subcommands.ExitStatus {
	on, status := parseDateFlag(date)
	if status != subcommands.ExitSuccess {
		return status
	}
	_, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	render(&b, s, on)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type savingsCmd struct{}

func (*savingsCmd) Name() string     { return "savings" }
func (*savingsCmd) Synopsis() string { return "show savings broken down by type" }
func (*savingsCmd) Usage() string {
	return `lss savings

  Group positive savings amounts by savings type, in millions of dollars.
`
}
func (*savingsCmd) SetFlags(f *flag.FlagSet) {}
func (*savingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return renderView("", func(w io.Writer, s *licspend.RecordStore, _ licspend.Date) {
		renderer.RenderSavings(w, licspend.ComputeSavingsByType(s))
	})
}

type risksCmd struct{}

func (*risksCmd) Name() string     { return "risks" }
func (*risksCmd) Synopsis() string { return "show at-risk publisher counts per category" }
func (*risksCmd) Usage() string {
	return `lss risks

  Count publishers flagged in each risk category (SSPA, PO, Finance,
  Legal, Inventory).
`
}
func (*risksCmd) SetFlags(f *flag.FlagSet) {}
func (*risksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return renderView("", func(w io.Writer, s *licspend.RecordStore, _ licspend.Date) {
		renderer.RenderRisks(w, licspend.ComputeRiskTracking(s))
	})
}

// renewalsCmd holds the flags for the 'renewals' subcommand.
type renewalsCmd struct {
	date string
}

func (*renewalsCmd) Name() string     { return "renewals" }
func (*renewalsCmd) Synopsis() string { return "show the next renewal deadline" }
func (*renewalsCmd) Usage() string {
	return `lss renewals [-d <date>]

  Show the next upcoming renewal and how many contracts expire this
  quarter.
`
}
func (c *renewalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date. Defaults to today.")
}
func (c *renewalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return renderView(c.date, func(w io.Writer, s *licspend.RecordStore, on licspend.Date) {
		renderer.RenderRenewals(w, licspend.ComputeUpcomingRenewals(s, on))
	})
}

// complianceCmd holds the flags for the 'compliance' subcommand.
type complianceCmd struct {
	date string
}

func (*complianceCmd) Name() string     { return "compliance" }
func (*complianceCmd) Synopsis() string { return "show renewal compliance buckets" }
func (*complianceCmd) Usage() string {
	return `lss compliance [-d <date>]

  Partition publishers with a renewal date into Past Due, Due by EOQ and
  Due by EOY buckets.
`
}
func (c *complianceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date. Defaults to today.")
}
func (c *complianceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return renderView(c.date, func(w io.Writer, s *licspend.RecordStore, on licspend.Date) {
		renderer.RenderCompliance(w, licspend.ComputeComplianceHealth(s, on))
	})
}

type kpiCmd struct{}

func (*kpiCmd) Name() string     { return "kpi" }
func (*kpiCmd) Synopsis() string { return "show the headline key figures" }
func (*kpiCmd) Usage() string {
	return `lss kpi

  Show total spend, managed title and publisher counts, and the external
  ticket figures.
`
}
func (*kpiCmd) SetFlags(f *flag.FlagSet) {}
func (*kpiCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return renderView("", func(w io.Writer, s *licspend.RecordStore, _ licspend.Date) {
		renderer.RenderKPIs(w, licspend.ComputeKPIs(s))
	})
}

type lsCmd struct{}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list publishers" }
func (*lsCmd) Usage() string {
	return `lss ls

  List all publishers with the configured visible fields.
`
}
func (*lsCmd) SetFlags(f *flag.FlagSet) {}
func (*lsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, s, err := LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderPublishers(&b, s, p.LoadFieldConfig())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
