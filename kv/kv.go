// Package kv provides the flat key/value substrate the dashboard persists
// into. Values are strings, keys are short fixed names, and a store may
// enforce a byte budget the way a browser's local storage does.
package kv

import "errors"

// DefaultBudget is the storage budget in bytes, 5 MiB.
const DefaultBudget = 5 << 20

// ErrQuotaExceeded is returned by Set when writing the value would push the
// store past its byte budget.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a flat string key/value store.
type Store interface {
	// Get returns the value for key, and whether the key exists.
	Get(key string) (value string, ok bool, err error)
	// Set writes the value for key, returning ErrQuotaExceeded when the
	// write would exceed the store's budget.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all keys present in the store, in no particular order.
	Keys() ([]string, error)
}

// cost estimates the stored size of a value in bytes. Two bytes per
// character, matching UTF-16 backed storage.
func cost(value string) int64 { return int64(len(value)) * 2 }

// Usage returns the estimated number of bytes the store currently holds.
func Usage(s Store) (int64, error) {
	keys, err := s.Keys()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, k := range keys {
		v, ok, err := s.Get(k)
		if err != nil {
			return 0, err
		}
		if ok {
			total += cost(v)
		}
	}
	return total, nil
}
