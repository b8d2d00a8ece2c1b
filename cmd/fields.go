package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/renderer"
	"github.com/google/subcommands"
)

type fieldsCmd struct{}

func (*fieldsCmd) Name() string     { return "fields" }
func (*fieldsCmd) Synopsis() string { return "show the field configuration" }
func (*fieldsCmd) Usage() string {
	return `lss fields

  List every publisher field: built-in and custom ones, with removal
  tombstones.
`
}
func (*fieldsCmd) SetFlags(f *flag.FlagSet) {}
func (*fieldsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderFields(&b, p.LoadFieldConfig())
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// addFieldCmd holds the flags for the 'add-field' subcommand.
type addFieldCmd struct {
	label     string
	fieldType string
	options   string
	width     int
}

func (*addFieldCmd) Name() string     { return "add-field" }
func (*addFieldCmd) Synopsis() string { return "add a custom publisher field" }
func (*addFieldCmd) Usage() string {
	return `lss add-field [-label <label>] [-type <type>] [-options a,b,c] [-width <n>] <key>

  Define a custom field on publishers. Types: text, number, currency, date,
  datetime, boolean, select, url, textarea.

Usage Examples:
$ lss add-field -label "Cost Center" costCenter
$ lss add-field -type select -options "Gold,Silver,Bronze" tier

`
}

func (c *addFieldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Display label. Defaults to the key.")
	f.StringVar(&c.fieldType, "type", "text", "Value type, e.g. text, currency or select.")
	f.StringVar(&c.options, "options", "", "Comma-separated options for select fields.")
	f.IntVar(&c.width, "width", 0, "Preferred display width in characters.")
}

func (c *addFieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one field key\n")
		return subcommands.ExitUsageError
	}
	key := f.Arg(0)
	label := c.label
	if label == "" {
		label = key
	}
	var options []string
	if c.options != "" {
		options = strings.Split(c.options, ",")
	}
	return editFieldConfig(func(cfg *licspend.FieldConfiguration) error {
		return cfg.AddCustomField(licspend.FieldDefinition{
			Key:     key,
			Label:   label,
			Type:    licspend.FieldType(c.fieldType),
			Options: options,
			Width:   c.width,
		})
	}, fmt.Sprintf("Added field %q", key))
}

// rmFieldCmd holds the flags for the 'rm-field' subcommand.
type rmFieldCmd struct{}

func (*rmFieldCmd) Name() string     { return "rm-field" }
func (*rmFieldCmd) Synopsis() string { return "remove a custom field" }
func (*rmFieldCmd) Usage() string {
	return `lss rm-field <key>

  Remove an optional or custom field. No record data is deleted:
  'lss restore-field' brings the field and its values back. Core fields
  cannot be removed.
`
}
func (*rmFieldCmd) SetFlags(f *flag.FlagSet) {}
func (c *rmFieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one field key\n")
		return subcommands.ExitUsageError
	}
	return editFieldConfig(func(cfg *licspend.FieldConfiguration) error {
		return cfg.RemoveField(f.Arg(0))
	}, fmt.Sprintf("Removed field %q (data kept)", f.Arg(0)))
}

// restoreFieldCmd holds the flags for the 'restore-field' subcommand.
type restoreFieldCmd struct{}

func (*restoreFieldCmd) Name() string     { return "restore-field" }
func (*restoreFieldCmd) Synopsis() string { return "restore a removed field" }
func (*restoreFieldCmd) Usage() string {
	return `lss restore-field <key>

  Bring a removed field back, with its data intact.
`
}
func (*restoreFieldCmd) SetFlags(f *flag.FlagSet) {}
func (c *restoreFieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one field key\n")
		return subcommands.ExitUsageError
	}
	return editFieldConfig(func(cfg *licspend.FieldConfiguration) error {
		return cfg.RestoreField(f.Arg(0))
	}, fmt.Sprintf("Restored field %q", f.Arg(0)))
}

// editFieldConfig loads the field configuration, applies the edit and
// stores it back.
func editFieldConfig(edit func(*licspend.FieldConfiguration) error, done string) subcommands.ExitStatus {
	p, err := OpenPersistence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cfg := p.LoadFieldConfig()
	if err := edit(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.SaveFieldConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(done)
	return subcommands.ExitSuccess
}
