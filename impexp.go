package licspend

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportVersion tags exported files so future readers can handle older
// layouts.
const ExportVersion = "1.0"

// exportFile is the on-disk layout of an exported dashboard.
type exportFile struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Data       *RecordStore `json:"data"`
}

// Export writes the currently stored data to w as a versioned JSON
// document, and clears the dirty flag on success. It fails when nothing
// has been stored yet.
func (p *Persistence) Export(w io.Writer) error {
	s, ok := p.loadStored()
	if !ok {
		return fmt.Errorf("no data to export")
	}
	doc := exportFile{
		Version:    ExportVersion,
		ExportedAt: p.now().UTC(),
		Data:       s,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot write export: %w", err)
	}
	p.setDirty(false)
	return nil
}

// Import reads an exported document (or a bare record store) from r,
// validates it, saves it as the live store and returns it.
func (p *Persistence) Import(r io.Reader) (*RecordStore, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read import: %w", err)
	}
	s, err := ParseImport(contents)
	if err != nil {
		return nil, err
	}
	if !p.Save(s) {
		return nil, fmt.Errorf("imported data could not be saved")
	}
	return s, nil
}

// ParseImport decodes exported contents into a record store. It accepts
// both the versioned export wrapper and a bare record store document, and
// rejects documents missing any of the core collections.
func ParseImport(contents []byte) (*RecordStore, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(contents, &top); err != nil {
		return nil, fmt.Errorf("invalid import file: not a JSON object: %w", err)
	}

	// an export wrapper carries both a version and the data; anything else
	// is read as a bare record store.
	raw, keys := contents, top
	if data, isWrapper := top["data"]; isWrapper && len(top["version"]) > 0 {
		raw = data
		if err := json.Unmarshal(data, &keys); err != nil {
			return nil, fmt.Errorf("invalid import file: data is not an object: %w", err)
		}
	}
	for _, required := range []string{"publishers", "spendData", "riskData"} {
		if _, ok := keys[required]; !ok {
			return nil, fmt.Errorf("invalid import file: missing %q collection", required)
		}
	}

	var s RecordStore
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid import file: %w", err)
	}
	return &s, nil
}
