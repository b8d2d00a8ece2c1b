package renderer

import (
	"fmt"
	"io"

	"github.com/nefay/licspend"
)

// RenderPublishers renders the publisher grid, honoring the field
// configuration's visible fields and their order.
func RenderPublishers(w io.Writer, s *licspend.RecordStore, cfg *licspend.FieldConfiguration) {
	fmt.Fprintf(w, "# Publishers\n\n")

	var cols []licspend.FieldDefinition
	for _, key := range cfg.Visible {
		if cfg.IsRemoved(key) {
			continue
		}
		if def, ok := cfg.Field(key); ok {
			cols = append(cols, def)
		}
	}

	fmt.Fprint(w, "| Id |")
	for _, def := range cols {
		fmt.Fprintf(w, " %s |", def.Label)
	}
	fmt.Fprintln(w, "")
	fmt.Fprint(w, "|---:|")
	for range cols {
		fmt.Fprint(w, ":---|")
	}
	fmt.Fprintln(w, "")

	for i := range s.Publishers {
		p := &s.Publishers[i]
		fmt.Fprintf(w, "| %d |", p.ID)
		for _, def := range cols {
			fmt.Fprintf(w, " %s |", s.FieldValue(p, def.Key))
		}
		fmt.Fprintln(w, "")
	}
	fmt.Fprintln(w, "")
}

// RenderFields renders the field configuration itself.
func RenderFields(w io.Writer, cfg *licspend.FieldConfiguration) {
	fmt.Fprintf(w, "# Fields\n\n")
	fmt.Fprintln(w, "| Key | Label | Type | Origin | Editable | Width | Removed |")
	fmt.Fprintln(w, "|:---|:---|:---|:---|:---:|---:|:---:|")
	for _, def := range cfg.Fields() {
		mark := func(b bool) string {
			if b {
				return "x"
			}
			return ""
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %d | %s |\n",
			def.Key, def.Label, def.Type, def.Origin, mark(def.Editable),
			def.Width, mark(cfg.IsRemoved(def.Key)))
	}
	fmt.Fprintln(w, "")
}
