package licspend

import "time"

// ChangeKind classifies a change-history entry.
type ChangeKind string

const (
	ChangeCreate  ChangeKind = "create"
	ChangeUpdate  ChangeKind = "update"
	ChangeDelete  ChangeKind = "delete"
	ChangeImport  ChangeKind = "import"
	ChangeRestore ChangeKind = "restore"
)

// ChangeEntry is one line of the audit log.
type ChangeEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Kind      ChangeKind `json:"kind"`
	Subject   string     `json:"subject"` // publisher name, snapshot name...
	Field     string     `json:"field,omitempty"`
	Old       string     `json:"old,omitempty"`
	New       string     `json:"new,omitempty"`
}

// historyLimit caps the audit log: only the most recent entries are kept.
const historyLimit = 100

// History returns the stored audit log, oldest first. A corrupt log reads
// as empty.
func (p *Persistence) History() []ChangeEntry {
	var entries []ChangeEntry
	p.getJSON(historyKey, &entries)
	return entries
}

// AppendHistory records entries in the audit log, trimming it to the most
// recent historyLimit entries.
func (p *Persistence) AppendHistory(entries ...ChangeEntry) error {
	all := append(p.History(), entries...)
	if len(all) > historyLimit {
		all = all[len(all)-historyLimit:]
	}
	return p.setJSON(historyKey, all)
}

// ClearHistory empties the audit log.
func (p *Persistence) ClearHistory() error {
	return p.setJSON(historyKey, []ChangeEntry{})
}
