package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nefay/licspend"
)

// RenderDashboard renders every aggregate view as one markdown document.
func RenderDashboard(w io.Writer, d licspend.Dashboard) {
	fmt.Fprintf(w, "# Licensing Dashboard on %s\n\n", d.On)
	fmt.Fprintf(w, "*As of %s*\n\n", Now().Format("2006-01-02 15:04:05"))

	RenderKPIs(w, d.KPIs)
	RenderSavings(w, d.Savings)
	RenderRisks(w, d.Risks)
	RenderRenewals(w, d.Renewals)
	RenderCompliance(w, d.Compliance)
}

// RenderKPIs renders the headline figures.
func RenderKPIs(w io.Writer, k licspend.KPIs) {
	fmt.Fprintf(w, "## Key Figures\n\n")
	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	row := func(label string, value float64, kpiType string) {
		fmt.Fprintf(w, "| %s | %s |\n", label, licspend.FormatKPIValue(value, kpiType))
	}
	row("Company Spend", k.CompanySpend, "companySpend")
	row("MSD Spend", k.MSDSpend, "msdSpend")
	row("TI&M Spend", k.TIAMSpend, "tiamSpend")
	row("SNOW Tickets MTD", k.SnowTickets, "snowTickets")
	row("ICM Tickets MTD", k.IcmTickets, "icmTickets")
	fmt.Fprintf(w, "| Managed Titles | %d |\n", k.ManagedTitles)
	fmt.Fprintf(w, "| Publishers | %d |\n", k.Publishers)
	fmt.Fprintln(w, "")
}

// RenderSavings renders the savings-by-type breakdown.
func RenderSavings(w io.Writer, s licspend.SavingsByType) {
	fmt.Fprintf(w, "## Savings by Type\n\n")
	fmt.Fprintln(w, "| Type | $M | Share |")
	fmt.Fprintln(w, "|:---|---:|---:|")
	for i, label := range s.Labels {
		fmt.Fprintf(w, "| %s | %.2f | %s |\n", label, s.Values[i], s.Percentages[i])
	}
	fmt.Fprintln(w, "")
}

// RenderRisks renders the per-category at-risk counts.
func RenderRisks(w io.Writer, r licspend.RiskTracking) {
	fmt.Fprintf(w, "## Risk Tracking\n\n")
	fmt.Fprintln(w, "| Category | At Risk |")
	fmt.Fprintln(w, "|:---|---:|")
	for i, cat := range r.Categories {
		fmt.Fprintf(w, "| %s | %d |\n", cat, r.Counts[i])
	}
	fmt.Fprintln(w, "")
}

// RenderRenewals renders the next-renewal summary.
func RenderRenewals(w io.Writer, r licspend.UpcomingRenewals) {
	fmt.Fprintf(w, "## Upcoming Renewals\n\n")
	if r.Publisher == "None" {
		fmt.Fprintf(w, "No upcoming renewals.\n\n")
		return
	}
	fmt.Fprintf(w, "Next renewal: **%s** on %s (in %d days).\n\n", r.Publisher, r.RenewalDate, r.DaysUntilNext)
	fmt.Fprintf(w, "Contracts expiring this quarter: %d. CSA expirations this quarter: %d.\n\n", r.CoExpThisQ, r.CsaExpThisQ)
}

// RenderCompliance renders the renewal urgency buckets, listing members per
// bucket when any exist.
func RenderCompliance(w io.Writer, c licspend.ComplianceHealth) {
	fmt.Fprintf(w, "## Compliance Health\n\n")
	fmt.Fprintln(w, "| Bucket | Publishers | Share |")
	fmt.Fprintln(w, "|:---|---:|---:|")
	for i, label := range c.Labels {
		fmt.Fprintf(w, "| %s | %d | %s |\n", label, c.Values[i], c.Percentages[i])
	}
	fmt.Fprintln(w, "")

	for i, label := range c.Labels {
		members := c.Members[i]
		ConditionalBlock(w, func(bw io.Writer) bool {
			fmt.Fprintf(bw, "**%s**: %s\n", label, strings.Join(members, ", "))
			return len(members) > 0
		})
	}
	fmt.Fprintln(w, "")
}
