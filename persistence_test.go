package licspend

import (
	"strings"
	"testing"
	"time"

	"github.com/nefay/licspend/kv"
	"github.com/shopspring/decimal"
)

// testStore returns a small record store for persistence tests.
func testStore(t *testing.T) *RecordStore {
	t.Helper()
	s := NewRecordStore()
	s.DatasetVersion = "FY26_TEST"
	s.Publishers = append(s.Publishers, Publisher{
		ID: 1, Name: "Figma", Title: "Figma", Type: SaaS,
		Status: StatusActive, SavingsAmount: decimal.NewFromInt(5_672_880),
		SavingsType: CostAvoidance,
	})
	s.SpendData = append(s.SpendData, Spend{Publisher: "Figma", Company: decimal.NewFromInt(8_900_000)})
	s.RiskData = append(s.RiskData, Risk{Publisher: "Figma"})
	return s
}

// testPersistence returns a persistence layer over an in-memory substrate
// with a ticking fake clock.
func testPersistence(t *testing.T, budget int64) *Persistence {
	t.Helper()
	p := NewPersistence(kv.NewMemory(0), budget)
	tick := time.Date(2026, time.January, 17, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return p
}

func TestLoadFallsBackToDefault(t *testing.T) {
	def := testStore(t)

	t.Run("nothing stored", func(t *testing.T) {
		p := testPersistence(t, 0)
		got := p.Load(def)
		if len(got.Publishers) != 1 || got.Publishers[0].Name != "Figma" {
			t.Errorf("got %+v, want the default store", got)
		}
		// the fallback is a copy, not the default itself.
		got.Publishers[0].Name = "mutated"
		if def.Publishers[0].Name != "Figma" {
			t.Error("Load returned the default itself instead of a copy")
		}
	})

	t.Run("corrupt stored data", func(t *testing.T) {
		p := testPersistence(t, 0)
		if err := p.store.Set("slsmbrui_data", "{not json"); err != nil {
			t.Fatal(err)
		}
		if got := p.Load(def); got.DatasetVersion != "FY26_TEST" {
			t.Errorf("got version %q, want the default", got.DatasetVersion)
		}
	})

	t.Run("stale dataset version", func(t *testing.T) {
		p := testPersistence(t, 0)
		old := testStore(t)
		old.DatasetVersion = "FY25_TEST"
		old.Publishers[0].Name = "OldCo"
		if !p.Save(old) {
			t.Fatal("save failed")
		}
		got := p.Load(def)
		if got.Publishers[0].Name != "Figma" {
			t.Errorf("got %q, want the default store (stale version discarded)", got.Publishers[0].Name)
		}
	})

	t.Run("matching version is kept", func(t *testing.T) {
		p := testPersistence(t, 0)
		stored := testStore(t)
		stored.Publishers[0].Contact = "Neva"
		if !p.Save(stored) {
			t.Fatal("save failed")
		}
		if got := p.Load(def); got.Publishers[0].Contact != "Neva" {
			t.Error("stored data was discarded despite a matching version")
		}
	})
}

func TestSaveNotifiesAndMarksDirty(t *testing.T) {
	p := testPersistence(t, 0)
	if p.IsDirty() {
		t.Error("fresh persistence should not be dirty")
	}

	notified := 0
	p.Subscribe(func(s *RecordStore) { notified++ })

	if !p.Save(testStore(t)) {
		t.Fatal("save failed")
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
	if !p.IsDirty() {
		t.Error("save should mark the state dirty")
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	p := testPersistence(t, 0)
	if _, err := p.CreateSnapshot("too early"); err == nil {
		t.Error("expected an error snapshotting before any save")
	}
	if !p.Save(testStore(t)) {
		t.Fatal("save failed")
	}

	snap, err := p.CreateSnapshot("")
	if err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}
	if !strings.HasPrefix(snap.ID, "snap_") {
		t.Errorf("snapshot id = %q, want a snap_ prefix", snap.ID)
	}
	if snap.Name == "" {
		t.Error("default snapshot name should not be empty")
	}

	t.Run("snapshot is immutable after later edits", func(t *testing.T) {
		s := p.Load(testStore(t))
		s.Publishers[0].Contact = "changed"
		if !p.Save(s) {
			t.Fatal("save failed")
		}
		snaps := p.Snapshots()
		if len(snaps) != 1 {
			t.Fatalf("got %d snapshots, want 1", len(snaps))
		}
		if snaps[0].Data.Publishers[0].Contact == "changed" {
			t.Error("snapshot followed a later edit")
		}
	})

	t.Run("restore", func(t *testing.T) {
		if !p.RestoreSnapshot(snap.ID) {
			t.Fatal("RestoreSnapshot returned false")
		}
		s := p.Load(testStore(t))
		if s.Publishers[0].Contact == "changed" {
			t.Error("restore did not bring the snapshot data back")
		}
		if p.RestoreSnapshot("snap_unknown") {
			t.Error("restoring an unknown id should return false")
		}
	})

	t.Run("delete", func(t *testing.T) {
		p.DeleteSnapshot(snap.ID)
		if n := len(p.Snapshots()); n != 0 {
			t.Errorf("got %d snapshots after delete, want 0", n)
		}
		p.DeleteSnapshot(snap.ID) // deleting again is a no-op
	})
}

func TestSnapshotEviction(t *testing.T) {
	// A small budget forces eviction of the oldest snapshots.
	p := testPersistence(t, 4_000)
	if !p.Save(testStore(t)) {
		t.Fatal("save failed")
	}

	var ids []string
	for i := 0; i < 10; i++ {
		snap, err := p.CreateSnapshot("")
		if err != nil {
			t.Fatalf("CreateSnapshot %d: %v", i, err)
		}
		ids = append(ids, snap.ID)
	}

	snaps := p.Snapshots()
	if len(snaps) == 0 || len(snaps) == 10 {
		t.Fatalf("got %d snapshots, want eviction to have dropped some but not all", len(snaps))
	}
	// the survivors are the newest ones.
	if snaps[len(snaps)-1].ID != ids[len(ids)-1] {
		t.Error("the newest snapshot should survive eviction")
	}
	for _, s := range snaps {
		if s.ID == ids[0] {
			t.Error("the oldest snapshot should have been evicted")
		}
	}
	// the live store is never evicted.
	if !p.HasData() {
		t.Error("live data disappeared during eviction")
	}
}

func TestSaveQuotaFailureKeepsSnapshots(t *testing.T) {
	// A bounded substrate: live-store writes that hit the quota must fail
	// without trading away snapshot history.
	store := kv.NewMemory(8_192)
	p := NewPersistence(store, 8_192)
	tick := time.Date(2026, time.January, 17, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	s := testStore(t)
	if !p.Save(s) {
		t.Fatal("save failed")
	}
	for i := 0; i < 2; i++ {
		if _, err := p.CreateSnapshot(""); err != nil {
			t.Fatalf("CreateSnapshot %d: %v", i, err)
		}
	}

	// grow the live store until a save hits the quota.
	saved := true
	for i := 1; i <= 64 && saved; i++ {
		s.Publishers[0].Custom = map[string]any{"notes": strings.Repeat("x", i*512)}
		saved = p.Save(s)
	}
	if saved {
		t.Fatal("the store never outgrew the budget")
	}
	if n := len(p.Snapshots()); n != 2 {
		t.Errorf("got %d snapshots after the failed save, want both kept", n)
	}
	// the last successful save is still readable.
	stored, ok := p.loadStored()
	if !ok {
		t.Fatal("live data disappeared after the failed save")
	}
	if stored.Publishers[0].Name != "Figma" {
		t.Errorf("stored publisher = %q", stored.Publishers[0].Name)
	}
}

func TestStorageInfo(t *testing.T) {
	p := testPersistence(t, 0)
	if !p.Save(testStore(t)) {
		t.Fatal("save failed")
	}
	if _, err := p.CreateSnapshot("first"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateSnapshot("second"); err != nil {
		t.Fatal(err)
	}

	info := p.StorageInfo()
	if info.SnapshotCount != 2 {
		t.Errorf("snapshotCount = %d, want 2", info.SnapshotCount)
	}
	if info.UsageBytes <= 0 || info.UsagePercent <= 0 {
		t.Errorf("usage = %d bytes %.2f%%, want positive", info.UsageBytes, info.UsagePercent)
	}
	if !info.Oldest.Before(info.Newest) {
		t.Errorf("oldest %v should be before newest %v", info.Oldest, info.Newest)
	}
}
