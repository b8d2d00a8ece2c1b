package renderer

import (
	"fmt"
	"io"

	"github.com/nefay/licspend"
)

// RenderHistory renders the change audit log, most recent last.
func RenderHistory(w io.Writer, entries []licspend.ChangeEntry) {
	fmt.Fprintf(w, "# Change History\n\n")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recorded changes.")
		return
	}
	fmt.Fprintln(w, "| When | Kind | Subject | Field | Old | New |")
	fmt.Fprintln(w, "|:---|:---|:---|:---|:---|:---|")
	for _, e := range entries {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Kind, e.Subject, e.Field, e.Old, e.New)
	}
	fmt.Fprintln(w, "")
}

// RenderSnapshots renders the snapshot list, oldest first.
func RenderSnapshots(w io.Writer, snaps []licspend.Snapshot) {
	fmt.Fprintf(w, "# Snapshots\n\n")
	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots.")
		return
	}
	fmt.Fprintln(w, "| Id | Name | Taken | Publishers |")
	fmt.Fprintln(w, "|:---|:---|:---|---:|")
	for _, s := range snaps {
		count := 0
		if s.Data != nil {
			count = len(s.Data.Publishers)
		}
		fmt.Fprintf(w, "| %s | %s | %s | %d |\n",
			s.ID, s.Name, s.Timestamp.Format("2006-01-02 15:04"), count)
	}
	fmt.Fprintln(w, "")
}

// RenderStorageInfo renders the substrate usage summary.
func RenderStorageInfo(w io.Writer, info licspend.StorageInfo, dirty bool) {
	fmt.Fprintf(w, "# Storage\n\n")
	fmt.Fprintf(w, "- Usage: %.1f%% (%d bytes)\n", info.UsagePercent, info.UsageBytes)
	fmt.Fprintf(w, "- Snapshots: %d\n", info.SnapshotCount)
	if info.SnapshotCount > 0 {
		fmt.Fprintf(w, "- Oldest snapshot: %s\n", info.Oldest.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "- Newest snapshot: %s\n", info.Newest.Format("2006-01-02 15:04"))
	}
	if dirty {
		fmt.Fprintln(w, "- Unexported changes: yes (run `lss export` to back them up)")
	} else {
		fmt.Fprintln(w, "- Unexported changes: no")
	}
	fmt.Fprintln(w, "")
}
