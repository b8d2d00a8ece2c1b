// Package renderer turns aggregate views into markdown for terminal
// display.
package renderer

import (
	"os"
	"time"
)

// Now is the current time used in reports.
// it has to be overridable so that tests can pin it.
func Now() time.Time {
	if os.Getenv("LICSPEND_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("LICSPEND_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}
