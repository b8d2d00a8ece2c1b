package licspend

import "testing"

func TestDefaultRecordStore(t *testing.T) {
	s := DefaultRecordStore()
	if len(s.Publishers) == 0 || len(s.SpendData) == 0 || len(s.RiskData) == 0 {
		t.Fatalf("seed dataset is missing collections: %d publishers, %d spend, %d risk",
			len(s.Publishers), len(s.SpendData), len(s.RiskData))
	}
	if s.DatasetVersion == "" {
		t.Error("seed dataset has no version")
	}
	for _, name := range []string{SnowTicketsKPI, IcmTicketsKPI} {
		if s.ExternalKPI(name) <= 0 {
			t.Errorf("external KPI %q is missing or zero", name)
		}
	}
	// every spend and risk row must join to a publisher.
	for _, sp := range s.SpendData {
		if s.Publisher(sp.Publisher) == nil {
			t.Errorf("spend row for unknown publisher %q", sp.Publisher)
		}
	}
	for _, r := range s.RiskData {
		if s.Publisher(r.Publisher) == nil {
			t.Errorf("risk row for unknown publisher %q", r.Publisher)
		}
	}
	// publisher ids are unique.
	seen := make(map[int]string)
	for _, p := range s.Publishers {
		if other, dup := seen[p.ID]; dup {
			t.Errorf("id %d used by both %q and %q", p.ID, other, p.Name)
		}
		seen[p.ID] = p.Name
	}
}

func TestDefaultRecordStoreIsFreshEachCall(t *testing.T) {
	a := DefaultRecordStore()
	a.Publishers[0].Name = "mutated"
	if b := DefaultRecordStore(); b.Publishers[0].Name == "mutated" {
		t.Error("calls share state")
	}
}
