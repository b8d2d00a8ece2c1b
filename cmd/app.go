// Package cmd implements the CLI application to manage the licensing
// dashboard.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/kv"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&initCmd{},
	&dashboardCmd{},
	&savingsCmd{},
	&risksCmd{},
	&renewalsCmd{},
	&complianceCmd{},
	&kpiCmd{},
	&lsCmd{},
	&addCmd{},
	&editCmd{},
	&rmCmd{},
	&snapshotCmd{},
	&snapshotsCmd{},
	&restoreCmd{},
	&rmSnapshotCmd{},
	&exportCmd{},
	&importCmd{},
	&syncCmd{},
	&fieldsCmd{},
	&addFieldCmd{},
	&rmFieldCmd{},
	&restoreFieldCmd{},
	&storageCmd{},
	&logCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Path to the dashboard data folder (default .lss, or from lss.yaml)")

// OpenPersistence opens the persistence layer over the configured data
// folder.
func OpenPersistence() (*licspend.Persistence, error) {
	cfg := LoadConfig()
	dir := cfg.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	store, err := kv.NewFilesystem(dir, cfg.Budget)
	if err != nil {
		return nil, err
	}
	return licspend.NewPersistence(store, cfg.Budget), nil
}

// LoadStore opens the persistence layer and loads the record store,
// falling back to the shipped dataset.
func LoadStore() (*licspend.Persistence, *licspend.RecordStore, error) {
	p, err := OpenPersistence()
	if err != nil {
		return nil, nil, err
	}
	return p, p.Load(licspend.DefaultRecordStore()), nil
}

// SaveStore saves the store and records the given history entries. It warns
// when the store carries changes not yet exported.
func SaveStore(p *licspend.Persistence, s *licspend.RecordStore, entries ...licspend.ChangeEntry) subcommands.ExitStatus {
	if !p.Save(s) {
		fmt.Fprintf(os.Stderr, "Error: could not save data (storage full or unavailable)\n")
		return subcommands.ExitFailure
	}
	if len(entries) > 0 {
		if err := p.AppendHistory(entries...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record change history: %v\n", err)
		}
	}
	if p.IsDirty() {
		fmt.Fprintf(os.Stderr, "Note: you have unexported changes, run 'lss export' to back them up.\n")
	}
	return subcommands.ExitSuccess
}
