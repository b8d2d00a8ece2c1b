package licspend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/nefay/licspend/kv"
)

// Storage keys. The prefix predates this tool and is kept so existing data
// directories keep working.
const (
	dataKey        = "slsmbrui_data"
	snapshotsKey   = "slsmbrui_snapshots"
	dirtyKey       = "slsmbrui_dirty"
	fieldConfigKey = "slsmbrui_field_config"
	historyKey     = "slsmbrui_change_history"
)

// Eviction thresholds, as fractions of the storage budget. When usage
// reaches evictThreshold, old snapshots are dropped until usage falls to
// evictTarget.
const (
	evictThreshold = 0.9
	evictTarget    = 0.8
)

// Snapshot is a named, immutable copy of the record store at a point in
// time.
type Snapshot struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Timestamp time.Time    `json:"timestamp"`
	Data      *RecordStore `json:"data"`
}

// StorageInfo describes the current state of the underlying store.
type StorageInfo struct {
	UsagePercent  float64   `json:"usagePercent"`
	UsageBytes    int64     `json:"usageBytes"`
	SnapshotCount int       `json:"snapshotCount"`
	Oldest        time.Time `json:"oldestSnapshot,omitzero"`
	Newest        time.Time `json:"newestSnapshot,omitzero"`
}

// Persistence owns the record store's durable copy. All reads and writes of
// dashboard state go through it; the aggregation engine never touches the
// substrate directly.
//
// Load never fails: any unreadable, corrupt or stale stored state degrades
// to the caller's default. Writes report failure instead.
type Persistence struct {
	store  kv.Store
	budget int64
	subs   []func(*RecordStore)
	now    func() time.Time
}

// NewPersistence returns a persistence layer over the given substrate.
// A budget of 0 means kv.DefaultBudget.
func NewPersistence(store kv.Store, budget int64) *Persistence {
	if budget <= 0 {
		budget = kv.DefaultBudget
	}
	return &Persistence{store: store, budget: budget, now: time.Now}
}

// Subscribe registers a function called synchronously after every
// successful Save, with the freshly saved store.
func (p *Persistence) Subscribe(fn func(*RecordStore)) {
	p.subs = append(p.subs, fn)
}

// Load returns the stored record store, or def when nothing usable is
// stored. A stored copy whose dataset version differs from def's is stale
// (it was derived from an older shipped dataset) and is discarded.
func (p *Persistence) Load(def *RecordStore) *RecordStore {
	raw, ok, err := p.store.Get(dataKey)
	if err != nil {
		log.Printf("warning: cannot read stored data, using defaults: %v", err)
		return def.DeepCopy()
	}
	if !ok {
		return def.DeepCopy()
	}
	var s RecordStore
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Printf("warning: stored data is corrupt, using defaults: %v", err)
		return def.DeepCopy()
	}
	if s.DatasetVersion != def.DatasetVersion {
		log.Printf("warning: stored data is from dataset %q, current is %q, using defaults",
			s.DatasetVersion, def.DatasetVersion)
		return def.DeepCopy()
	}
	return &s
}

// loadStored reads the live store as-is, without the staleness check of
// Load. It reports false when nothing usable is stored.
func (p *Persistence) loadStored() (*RecordStore, bool) {
	raw, ok, err := p.store.Get(dataKey)
	if err != nil || !ok {
		return nil, false
	}
	var s RecordStore
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, false
	}
	return &s, true
}

// HasData reports whether a live store is present in the substrate, without
// judging whether it is usable.
func (p *Persistence) HasData() bool {
	_, ok, err := p.store.Get(dataKey)
	return err == nil && ok
}

// Save writes the store through to the substrate, marks the state dirty and
// notifies subscribers. It reports whether the write succeeded. A quota
// failure is reported as-is, without evicting snapshots: eviction cannot
// free the space the live store itself needs, and a save must never trade
// away snapshot history.
func (p *Persistence) Save(s *RecordStore) bool {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("warning: cannot encode data: %v", err)
		return false
	}
	if err := p.store.Set(dataKey, string(data)); err != nil {
		log.Printf("warning: cannot save data: %v", err)
		return false
	}
	p.setDirty(true)
	for _, fn := range p.subs {
		fn(s)
	}
	return true
}

// IsDirty reports whether the store has unsaved-to-export changes: it goes
// true on every Save and false only after a successful Export.
func (p *Persistence) IsDirty() bool {
	raw, ok, err := p.store.Get(dirtyKey)
	if err != nil || !ok {
		return false
	}
	return raw == "true"
}

func (p *Persistence) setDirty(dirty bool) {
	if err := p.store.Set(dirtyKey, strconv.FormatBool(dirty)); err != nil {
		log.Printf("warning: cannot update dirty flag: %v", err)
	}
}

// Snapshots returns the stored snapshot list, oldest first. A corrupt list
// reads as empty.
func (p *Persistence) Snapshots() []Snapshot {
	raw, ok, err := p.store.Get(snapshotsKey)
	if err != nil || !ok {
		return nil
	}
	var snaps []Snapshot
	if err := json.Unmarshal([]byte(raw), &snaps); err != nil {
		log.Printf("warning: snapshot list is corrupt, ignoring it: %v", err)
		return nil
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps
}

func (p *Persistence) writeSnapshots(snaps []Snapshot) error {
	data, err := json.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("cannot encode snapshot list: %w", err)
	}
	return p.store.Set(snapshotsKey, string(data))
}

// CreateSnapshot copies the currently stored data into a new snapshot. The
// empty name defaults to the creation time. Old snapshots are evicted
// beforehand when usage is high; if the write still hits the quota, one
// more eviction round is attempted and the write retried once.
func (p *Persistence) CreateSnapshot(name string) (*Snapshot, error) {
	s, ok := p.loadStored()
	if !ok {
		return nil, fmt.Errorf("no data to snapshot")
	}

	p.evictIfNeeded()

	now := p.now()
	if name == "" {
		name = now.Format("Jan 2, 2006 3:04 PM")
	}
	snap := Snapshot{
		ID:        snapshotID(now),
		Name:      name,
		Timestamp: now,
		Data:      s,
	}
	snaps := append(p.Snapshots(), snap)
	if err := p.writeSnapshots(snaps); err != nil {
		if !errors.Is(err, kv.ErrQuotaExceeded) {
			return nil, err
		}
		p.evict(1)
		snaps = append(p.Snapshots(), snap)
		if err := p.writeSnapshots(snaps); err != nil {
			return nil, fmt.Errorf("cannot store snapshot: %w", err)
		}
	}
	return &snap, nil
}

// snapshotID builds a unique snapshot id from the creation time and a
// random suffix.
func snapshotID(now time.Time) string {
	return fmt.Sprintf("snap_%d_%s", now.UnixMilli(),
		strconv.FormatInt(rand.Int63n(1<<47), 36))
}

// RestoreSnapshot saves the identified snapshot's data as the live store.
// It reports whether the snapshot was found and restored.
func (p *Persistence) RestoreSnapshot(id string) bool {
	for _, snap := range p.Snapshots() {
		if snap.ID == id {
			return p.Save(snap.Data)
		}
	}
	return false
}

// DeleteSnapshot removes the identified snapshot. Unknown ids are a no-op.
func (p *Persistence) DeleteSnapshot(id string) {
	snaps := p.Snapshots()
	kept := snaps[:0]
	for _, snap := range snaps {
		if snap.ID != id {
			kept = append(kept, snap)
		}
	}
	if len(kept) == len(snaps) {
		return
	}
	if err := p.writeSnapshots(kept); err != nil {
		log.Printf("warning: cannot delete snapshot %s: %v", id, err)
	}
}

// evictIfNeeded runs an eviction round when usage has reached the
// threshold.
func (p *Persistence) evictIfNeeded() {
	usage, err := kv.Usage(p.store)
	if err != nil {
		return
	}
	if float64(usage) >= evictThreshold*float64(p.budget) {
		p.evict(1)
	}
}

// evict drops the oldest snapshots until usage falls to the target or only
// keep snapshots remain. The live store is never evicted.
func (p *Persistence) evict(keep int) {
	snaps := p.Snapshots()
	dropped := false
	for len(snaps) > keep {
		usage, err := kv.Usage(p.store)
		if err != nil || float64(usage) <= evictTarget*float64(p.budget) {
			break
		}
		snaps = snaps[1:] // oldest first
		dropped = true
		if err := p.writeSnapshots(snaps); err != nil {
			log.Printf("warning: eviction write failed: %v", err)
			return
		}
	}
	if dropped {
		log.Printf("storage pressure: evicted old snapshots, %d remaining", len(snaps))
	}
}

// StorageInfo reports usage against the budget and the snapshot range.
func (p *Persistence) StorageInfo() StorageInfo {
	info := StorageInfo{}
	if usage, err := kv.Usage(p.store); err == nil {
		info.UsageBytes = usage
		info.UsagePercent = float64(usage) / float64(p.budget) * 100
	}
	snaps := p.Snapshots()
	info.SnapshotCount = len(snaps)
	if len(snaps) > 0 {
		info.Oldest = snaps[0].Timestamp
		info.Newest = snaps[len(snaps)-1].Timestamp
	}
	return info
}

// getJSON decodes the value stored under key into v, reporting whether the
// key was present and readable.
func (p *Persistence) getJSON(key string, v any) bool {
	raw, ok, err := p.store.Get(key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("warning: stored %s is corrupt, ignoring it: %v", key, err)
		return false
	}
	return true
}

// setJSON encodes v under key.
func (p *Persistence) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", key, err)
	}
	if err := p.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("cannot store %s: %w", key, err)
	}
	return nil
}
