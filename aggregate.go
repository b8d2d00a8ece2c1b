package licspend

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Chart colors. Fixed so the dashboard keeps a stable visual identity
// across datasets.
var savingsTypeColors = map[SavingsType]string{
	CostAvoidance:       "#1abc9c",
	CostReduction:       "#e67e22",
	LicenseOptimization: "#3498db",
	Renegotiation:       "#9b59b6",
	Consolidation:       "#2c3e50",
	OtherSavings:        "#e74c3c",
}

// NeutralColor is used for placeholder slices and unknown savings types.
const NeutralColor = "#95a5a6"

// RiskCategories are the five tracked risk categories, in display order.
var RiskCategories = [5]string{"SSPA", "PO", "Finance", "Legal", "Inventory"}

var riskCategoryColors = [5]string{"#2c3e50", "#3498db", "#1abc9c", "#9b59b6", "#e67e22"}

var complianceLabels = [3]string{"Past Due", "Renewals Due by EOQ", "Renewals Due by EOY"}

var complianceColors = [3]string{"#e74c3c", "#e67e22", "#3498db"}

// SavingsByType is the savings-by-type chart: parallel slices sorted by
// amount descending.
type SavingsByType struct {
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"` // millions, 2 decimals
	Percentages []string  `json:"percentages"`
	Colors      []string  `json:"colors"`
}

// RiskTracking is the count of at-risk publishers per category.
type RiskTracking struct {
	Categories []string `json:"categories"`
	Counts     []int    `json:"counts"`
	Colors     []string `json:"colors"`
}

// UpcomingRenewals summarizes the next renewal deadline.
type UpcomingRenewals struct {
	DaysUntilNext int    `json:"daysUntilNext"`
	Publisher     string `json:"publisher"`
	RenewalDate   string `json:"renewalDate"` // M/D/YYYY, or "N/A"
	CsaExpThisQ   int    `json:"csaExpThisQ"`
	CoExpThisQ    int    `json:"coExpThisQ"`
}

// ComplianceHealth partitions dated publishers into renewal urgency buckets.
// Renewals beyond the end of the year are not represented.
type ComplianceHealth struct {
	Labels      []string   `json:"labels"`
	Values      []int      `json:"values"`
	Percentages []string   `json:"percentages"`
	Colors      []string   `json:"colors"`
	Members     [][]string `json:"members"` // publisher names per bucket
}

// KPIs are the headline figures of the dashboard. Spend figures are scaled
// (millions for company and MSD, thousands for TI&M); ticket counts come
// from external systems and are passed through verbatim.
type KPIs struct {
	CompanySpend  float64 `json:"companySpend"`
	MSDSpend      float64 `json:"msdSpend"`
	TIAMSpend     float64 `json:"tiamSpend"`
	SnowTickets   float64 `json:"snowTickets"`
	IcmTickets    float64 `json:"icmTickets"`
	ManagedTitles int     `json:"managedTitles"`
	Publishers    int     `json:"publishers"`
}

// Dashboard gathers every aggregate view at one point in time.
type Dashboard struct {
	On         Date             `json:"on"`
	Savings    SavingsByType    `json:"savings"`
	Risks      RiskTracking     `json:"risks"`
	Renewals   UpcomingRenewals `json:"renewals"`
	Compliance ComplianceHealth `json:"compliance"`
	KPIs       KPIs             `json:"kpis"`
}

// External KPI names synced from ticketing systems.
const (
	SnowTicketsKPI = "SNOW Tickets MTD"
	IcmTicketsKPI  = "ICM Tickets MTD"
)

// ComputeAll computes every aggregate view as of today.
func ComputeAll(s *RecordStore) Dashboard { return ComputeAllOn(s, Today()) }

// ComputeAllOn computes every aggregate view as of the given date.
func ComputeAllOn(s *RecordStore, on Date) Dashboard {
	return Dashboard{
		On:         on,
		Savings:    ComputeSavingsByType(s),
		Risks:      ComputeRiskTracking(s),
		Renewals:   ComputeUpcomingRenewals(s, on),
		Compliance: ComputeComplianceHealth(s, on),
		KPIs:       ComputeKPIs(s),
	}
}

// ComputeSavingsByType groups positive savings amounts by savings type and
// returns them sorted by amount descending. Publishers with no recorded type
// count as "Other". With no positive savings at all, a single neutral
// placeholder slice is returned.
func ComputeSavingsByType(s *RecordStore) SavingsByType {
	totals := make(map[SavingsType]decimal.Decimal)
	var order []SavingsType // first-seen order, for stable ties
	for _, p := range s.Publishers {
		if !p.SavingsAmount.IsPositive() {
			continue
		}
		t := p.SavingsType
		if t == "" {
			t = OtherSavings
		}
		if _, seen := totals[t]; !seen {
			order = append(order, t)
		}
		totals[t] = totals[t].Add(p.SavingsAmount)
	}
	if len(order) == 0 {
		return SavingsByType{
			Labels:      []string{"No Savings Data"},
			Values:      []float64{0},
			Percentages: []string{"0%"},
			Colors:      []string{NeutralColor},
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	grand := decimal.Zero
	for _, t := range order {
		grand = grand.Add(totals[t])
	}
	million := decimal.NewFromInt(1_000_000)
	hundred := decimal.NewFromInt(100)

	r := SavingsByType{}
	for _, t := range order {
		amount := totals[t]
		color, ok := savingsTypeColors[t]
		if !ok {
			color = NeutralColor
		}
		r.Labels = append(r.Labels, string(t))
		r.Values = append(r.Values, amount.Div(million).Round(2).InexactFloat64())
		pct := amount.Mul(hundred).Div(grand)
		r.Percentages = append(r.Percentages, fmt.Sprintf("%s%%", pct.StringFixed(2)))
		r.Colors = append(r.Colors, color)
	}
	return r
}

// ComputeRiskTracking counts, per category, the publishers whose risk row
// flags that category. Every category appears even when its count is zero.
func ComputeRiskTracking(s *RecordStore) RiskTracking {
	counts := make([]int, len(RiskCategories))
	for _, row := range s.RiskData {
		for i, v := range row.Categories() {
			if v.IsAtRisk() {
				counts[i]++
			}
		}
	}
	return RiskTracking{
		Categories: RiskCategories[:],
		Counts:     counts,
		Colors:     riskCategoryColors[:],
	}
}

// ComputeUpcomingRenewals returns the next renewal on or after the given
// date, and how many renewals fall within the current calendar quarter.
// CsaExpThisQ is always 0: CSA expiration dates are not tracked yet.
func ComputeUpcomingRenewals(s *RecordStore, on Date) UpcomingRenewals {
	var upcoming []Publisher
	for _, p := range s.Publishers {
		if p.RenewalDate.IsZero() || p.RenewalDate.Before(on) {
			continue
		}
		upcoming = append(upcoming, p)
	}
	if len(upcoming) == 0 {
		return UpcomingRenewals{
			DaysUntilNext: 0,
			Publisher:     "None",
			RenewalDate:   "N/A",
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].RenewalDate.Before(upcoming[j].RenewalDate)
	})

	qEnd := on.EndOfQuarter()
	coExpThisQ := 0
	for _, p := range upcoming {
		if !p.RenewalDate.After(qEnd) {
			coExpThisQ++
		}
	}

	next := upcoming[0]
	return UpcomingRenewals{
		DaysUntilNext: on.DaysUntil(next.RenewalDate),
		Publisher:     next.Name,
		RenewalDate:   next.RenewalDate.ShortUS(),
		CsaExpThisQ:   0,
		CoExpThisQ:    coExpThisQ,
	}
}

// ComputeComplianceHealth partitions publishers that have a renewal date
// into Past Due, Due by EOQ and Due by EOY buckets. Publishers renewing
// after the end of the year fall into no bucket. Percentages are over the
// bucketed population and rounded to whole points.
func ComputeComplianceHealth(s *RecordStore, on Date) ComplianceHealth {
	eoq := on.EndOfQuarter()
	eoy := on.EndOfYear()

	values := make([]int, 3)
	members := make([][]string, 3)
	for i := range members {
		members[i] = []string{}
	}
	for _, p := range s.Publishers {
		d := p.RenewalDate
		if d.IsZero() {
			continue
		}
		var bucket int
		switch {
		case d.Before(on):
			bucket = 0
		case !d.After(eoq):
			bucket = 1
		case !d.After(eoy):
			bucket = 2
		default:
			continue
		}
		values[bucket]++
		members[bucket] = append(members[bucket], p.Name)
	}

	total := values[0] + values[1] + values[2]
	percentages := make([]string, 3)
	for i, v := range values {
		if total == 0 {
			percentages[i] = "0%"
			continue
		}
		percentages[i] = fmt.Sprintf("%d%%", int(math.Round(float64(v)/float64(total)*100)))
	}
	return ComplianceHealth{
		Labels:      complianceLabels[:],
		Values:      values,
		Percentages: percentages,
		Colors:      complianceColors[:],
		Members:     members,
	}
}

// ComputeKPIs sums spend figures across all spend rows and counts managed
// titles and distinct publisher names. Ticket counts are read from the
// external KPI records as-is.
func ComputeKPIs(s *RecordStore) KPIs {
	company, msd, tiam := decimal.Zero, decimal.Zero, decimal.Zero
	for _, sp := range s.SpendData {
		company = company.Add(sp.Company)
		msd = msd.Add(sp.MSD)
		tiam = tiam.Add(sp.TIAM)
	}
	names := make(map[string]struct{})
	for _, p := range s.Publishers {
		names[p.Name] = struct{}{}
	}
	return KPIs{
		CompanySpend:  M(company).Millions(),
		MSDSpend:      M(msd).Millions(),
		TIAMSpend:     M(tiam).Thousands(),
		SnowTickets:   s.ExternalKPI(SnowTicketsKPI),
		IcmTickets:    s.ExternalKPI(IcmTicketsKPI),
		ManagedTitles: len(s.ManagedTitles),
		Publishers:    len(names),
	}
}

// FormatKPIValue formats an already-scaled KPI value for display:
// spend KPIs get their scale suffix, everything else rounds to a whole
// number.
func FormatKPIValue(value float64, kpiType string) string {
	switch kpiType {
	case "companySpend", "msdSpend":
		return fmt.Sprintf("%.2fM", value)
	case "tiamSpend":
		return fmt.Sprintf("%.2fK", value)
	default:
		return fmt.Sprintf("%d", int(math.Round(value)))
	}
}
