package licspend

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// saver is a test helper to build a publisher with a savings amount.
func saver(t *testing.T, name string, amount int64, st SavingsType) Publisher {
	t.Helper()
	return Publisher{Name: name, SavingsAmount: decimal.NewFromInt(amount), SavingsType: st}
}

// renewing is a test helper to build a publisher with a renewal date.
func renewing(t *testing.T, name, date string) Publisher {
	t.Helper()
	return Publisher{Name: name, RenewalDate: MustParseDate(date)}
}

func TestComputeSavingsByType(t *testing.T) {
	t.Run("same type sums to one slice", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{
			saver(t, "A", 600_000, CostAvoidance),
			saver(t, "B", 400_000, CostAvoidance),
		}}
		got := ComputeSavingsByType(s)
		if len(got.Labels) != 1 || got.Labels[0] != "Cost Avoidance" {
			t.Fatalf("labels = %v, want [Cost Avoidance]", got.Labels)
		}
		if got.Values[0] != 1.0 {
			t.Errorf("values[0] = %v, want 1.0", got.Values[0])
		}
		if got.Percentages[0] != "100.00%" {
			t.Errorf("percentages[0] = %q, want %q", got.Percentages[0], "100.00%")
		}
		if got.Colors[0] != "#1abc9c" {
			t.Errorf("colors[0] = %q, want %q", got.Colors[0], "#1abc9c")
		}
	})

	t.Run("sorted by amount descending", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{
			saver(t, "A", 1_000_000, Renegotiation),
			saver(t, "B", 3_000_000, CostReduction),
			saver(t, "C", 2_000_000, LicenseOptimization),
		}}
		got := ComputeSavingsByType(s)
		want := []string{"Cost Reduction", "License Optimization", "Renegotiation"}
		for i, label := range want {
			if got.Labels[i] != label {
				t.Fatalf("labels = %v, want %v", got.Labels, want)
			}
		}
	})

	t.Run("missing type counts as Other", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{saver(t, "A", 500_000, "")}}
		got := ComputeSavingsByType(s)
		if got.Labels[0] != "Other" {
			t.Errorf("labels[0] = %q, want Other", got.Labels[0])
		}
	})

	t.Run("unknown type gets the neutral color", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{saver(t, "A", 500_000, "Bartering")}}
		got := ComputeSavingsByType(s)
		if got.Colors[0] != NeutralColor {
			t.Errorf("colors[0] = %q, want %q", got.Colors[0], NeutralColor)
		}
	})

	t.Run("non positive amounts are ignored", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{
			saver(t, "A", 0, CostAvoidance),
			saver(t, "B", -100, CostReduction),
		}}
		got := ComputeSavingsByType(s)
		if got.Labels[0] != "No Savings Data" || got.Values[0] != 0 || got.Percentages[0] != "0%" {
			t.Errorf("placeholder = %v %v %v", got.Labels, got.Values, got.Percentages)
		}
		if got.Colors[0] != NeutralColor {
			t.Errorf("placeholder color = %q, want %q", got.Colors[0], NeutralColor)
		}
	})

	t.Run("percentages sum to 100", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{
			saver(t, "A", 1_000_000, CostAvoidance),
			saver(t, "B", 1_000_000, CostReduction),
			saver(t, "C", 1_000_000, Renegotiation),
		}}
		got := ComputeSavingsByType(s)
		var sum decimal.Decimal
		for _, pct := range got.Percentages {
			d, err := decimal.NewFromString(pct[:len(pct)-1])
			if err != nil {
				t.Fatalf("bad percentage %q: %v", pct, err)
			}
			sum = sum.Add(d)
		}
		if diff := sum.Sub(decimal.NewFromInt(100)).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.01)) {
			t.Errorf("percentages sum to %s, want 100 (±0.01)", sum)
		}
	})
}

func TestComputeRiskTracking(t *testing.T) {
	s := &RecordStore{RiskData: []Risk{
		{Publisher: "A", SSPA: DescribedRisk("attestation pending"), PO: DescribedRisk(" ")},
		{Publisher: "B", SSPA: LegacyRisk(2), Finance: DescribedRisk("invoice disputed")},
		{Publisher: "C", Inventory: LegacyRisk(0)},
	}}
	got := ComputeRiskTracking(s)

	wantCounts := []int{2, 0, 1, 0, 0}
	for i, want := range wantCounts {
		if got.Counts[i] != want {
			t.Errorf("counts[%s] = %d, want %d", got.Categories[i], got.Counts[i], want)
		}
	}
	if len(got.Categories) != 5 || got.Categories[0] != "SSPA" || got.Categories[4] != "Inventory" {
		t.Errorf("categories = %v", got.Categories)
	}

	t.Run("count is monotone in flagged rows", func(t *testing.T) {
		s.RiskData = append(s.RiskData, Risk{Publisher: "D", SSPA: DescribedRisk("new issue")})
		if next := ComputeRiskTracking(s); next.Counts[0] != got.Counts[0]+1 {
			t.Errorf("sspa count = %d, want %d", next.Counts[0], got.Counts[0]+1)
		}
	})
}

func TestComputeUpcomingRenewals(t *testing.T) {
	on := NewDate(2026, time.January, 17)

	t.Run("zero state", func(t *testing.T) {
		got := ComputeUpcomingRenewals(NewRecordStore(), on)
		want := UpcomingRenewals{DaysUntilNext: 0, Publisher: "None", RenewalDate: "N/A"}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("earliest upcoming renewal", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{
			renewing(t, "Past", "2026-01-10"),
			renewing(t, "Soon", "2026-01-20"),
			renewing(t, "Later", "2026-02-10"),
			renewing(t, "NextQuarter", "2026-04-05"),
			{Name: "Undated"},
		}}
		got := ComputeUpcomingRenewals(s, on)
		if got.Publisher != "Soon" {
			t.Errorf("publisher = %q, want Soon", got.Publisher)
		}
		if got.DaysUntilNext != 3 {
			t.Errorf("daysUntilNext = %d, want 3", got.DaysUntilNext)
		}
		if got.RenewalDate != "1/20/2026" {
			t.Errorf("renewalDate = %q, want 1/20/2026", got.RenewalDate)
		}
		// Soon and Later are due before 2026-03-31, NextQuarter is not.
		if got.CoExpThisQ != 2 {
			t.Errorf("coExpThisQ = %d, want 2", got.CoExpThisQ)
		}
		// CSA expirations are not tracked yet.
		if got.CsaExpThisQ != 0 {
			t.Errorf("csaExpThisQ = %d, want 0", got.CsaExpThisQ)
		}
	})

	t.Run("renewal today counts as upcoming", func(t *testing.T) {
		s := &RecordStore{Publishers: []Publisher{renewing(t, "Today", "2026-01-17")}}
		got := ComputeUpcomingRenewals(s, on)
		if got.Publisher != "Today" || got.DaysUntilNext != 0 {
			t.Errorf("got %+v, want Today in 0 days", got)
		}
	})
}

func TestComputeComplianceHealth(t *testing.T) {
	on := NewDate(2026, time.January, 17)
	s := &RecordStore{Publishers: []Publisher{
		renewing(t, "Late", "2026-01-10"),
		renewing(t, "ThisQuarter", "2026-02-15"),
		renewing(t, "ThisYear", "2026-06-30"),
		renewing(t, "NextYear", "2027-01-05"),
		{Name: "Undated"},
	}}
	got := ComputeComplianceHealth(s, on)

	wantValues := []int{1, 1, 1}
	for i, want := range wantValues {
		if got.Values[i] != want {
			t.Errorf("values[%s] = %d, want %d", got.Labels[i], got.Values[i], want)
		}
	}
	wantMembers := [][]string{{"Late"}, {"ThisQuarter"}, {"ThisYear"}}
	for i, want := range wantMembers {
		if len(got.Members[i]) != 1 || got.Members[i][0] != want[0] {
			t.Errorf("members[%s] = %v, want %v", got.Labels[i], got.Members[i], want)
		}
	}
	for i, want := range []string{"33%", "33%", "33%"} {
		if got.Percentages[i] != want {
			t.Errorf("percentages[%d] = %q, want %q", i, got.Percentages[i], want)
		}
	}

	t.Run("buckets partition the dated population", func(t *testing.T) {
		total := 0
		for _, v := range got.Values {
			total += v
		}
		// NextYear and Undated stay out of the chart.
		if total != 3 {
			t.Errorf("bucketed total = %d, want 3", total)
		}
	})

	t.Run("empty population reads 0%", func(t *testing.T) {
		got := ComputeComplianceHealth(NewRecordStore(), on)
		for i := range got.Labels {
			if got.Values[i] != 0 || got.Percentages[i] != "0%" {
				t.Errorf("bucket %s = %d %q, want 0 0%%", got.Labels[i], got.Values[i], got.Percentages[i])
			}
		}
	})
}

func TestComputeKPIs(t *testing.T) {
	s := &RecordStore{
		Publishers: []Publisher{{Name: "A"}, {Name: "B"}, {Name: "A"}},
		SpendData: []Spend{
			{Publisher: "A", Company: decimal.NewFromInt(100_000_000), MSD: decimal.NewFromInt(20_000_000), TIAM: decimal.NewFromInt(500_000)},
			{Publisher: "B", Company: decimal.NewFromInt(34_180_000), MSD: decimal.NewFromInt(1_500_000), TIAM: decimal.NewFromInt(265_510)},
		},
		ManagedTitles: []ManagedTitle{{Title: "X"}, {Title: "Y"}},
		ExternalKPIs: []ExternalKPI{
			{Name: SnowTicketsKPI, Value: 450},
			{Name: IcmTicketsKPI, Value: 210},
		},
	}
	got := ComputeKPIs(s)

	if got.CompanySpend != 134.18 {
		t.Errorf("companySpend = %v, want 134.18", got.CompanySpend)
	}
	if got.MSDSpend != 21.5 {
		t.Errorf("msdSpend = %v, want 21.5", got.MSDSpend)
	}
	if got.TIAMSpend != 765.51 {
		t.Errorf("tiamSpend = %v, want 765.51", got.TIAMSpend)
	}
	if got.SnowTickets != 450 || got.IcmTickets != 210 {
		t.Errorf("tickets = %v/%v, want 450/210", got.SnowTickets, got.IcmTickets)
	}
	if got.ManagedTitles != 2 {
		t.Errorf("managedTitles = %d, want 2", got.ManagedTitles)
	}
	// distinct names: A appears twice.
	if got.Publishers != 2 {
		t.Errorf("publishers = %d, want 2", got.Publishers)
	}
}

func TestComputeAllOnEmptyStore(t *testing.T) {
	// must not panic, and every view yields its zero or placeholder shape.
	got := ComputeAllOn(NewRecordStore(), NewDate(2026, time.January, 17))

	if got.Savings.Labels[0] != "No Savings Data" {
		t.Errorf("savings = %v", got.Savings.Labels)
	}
	if got.Renewals.Publisher != "None" || got.Renewals.RenewalDate != "N/A" {
		t.Errorf("renewals = %+v", got.Renewals)
	}
	if got.KPIs != (KPIs{}) {
		t.Errorf("kpis = %+v, want zero", got.KPIs)
	}
	for _, c := range got.Risks.Counts {
		if c != 0 {
			t.Errorf("risk counts = %v, want zeros", got.Risks.Counts)
		}
	}
}

func TestFormatKPIValue(t *testing.T) {
	tests := []struct {
		value   float64
		kpiType string
		want    string
	}{
		{134.18, "companySpend", "134.18M"},
		{21.5, "msdSpend", "21.50M"},
		{765.51, "tiamSpend", "765.51K"},
		{450, "snowTickets", "450"},
		{449.6, "icmTickets", "450"},
		{7, "managedTitles", "7"},
	}
	for _, tc := range tests {
		t.Run(tc.kpiType, func(t *testing.T) {
			if got := FormatKPIValue(tc.value, tc.kpiType); got != tc.want {
				t.Errorf("FormatKPIValue(%v, %q) = %q, want %q", tc.value, tc.kpiType, got, tc.want)
			}
		})
	}
}
