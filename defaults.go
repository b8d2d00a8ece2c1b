package licspend

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed defaultdata.json
var defaultData []byte

// DefaultRecordStore returns a fresh copy of the shipped dataset. It is the
// fallback when nothing usable is stored, and what `lss init` seeds a data
// directory with.
func DefaultRecordStore() *RecordStore {
	var s RecordStore
	if err := json.Unmarshal(defaultData, &s); err != nil {
		// the embedded dataset is validated by tests
		panic(fmt.Sprintf("embedded dataset is invalid: %v", err))
	}
	return &s
}
