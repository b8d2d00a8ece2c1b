package licspend

import (
	"slices"
	"strings"
	"testing"
)

func TestDefaultFieldConfiguration(t *testing.T) {
	c := DefaultFieldConfiguration()
	if !slices.Equal(c.Visible, defaultVisible) {
		t.Fatalf("visible = %v, want the default column set", c.Visible)
	}
	tests := []struct {
		key      string
		origin   FieldOrigin
		editable bool
	}{
		{"name", OriginCore, true},
		{"createdAt", OriginCore, false},
		{"updatedAt", OriginCore, false},
		{"contact", OriginOptional, true},
		{"companySpend", OriginOptional, true},
		{"riskSSPA", OriginOptional, true},
		{"notes", OriginOptional, true},
	}
	for _, tc := range tests {
		def, ok := c.Field(tc.key)
		if !ok {
			t.Errorf("field %q is not defined", tc.key)
			continue
		}
		if def.Origin != tc.origin || def.Editable != tc.editable {
			t.Errorf("field %q: origin=%q editable=%v, want %q/%v",
				tc.key, def.Origin, def.Editable, tc.origin, tc.editable)
		}
		if def.Width <= 0 {
			t.Errorf("field %q has no display width", tc.key)
		}
	}
}

func TestCustomFieldLifecycle(t *testing.T) {
	c := DefaultFieldConfiguration()

	if err := c.AddCustomField(FieldDefinition{Key: "costCenter", Label: "Cost Center", Type: FieldText}); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}
	def, ok := c.Field("costCenter")
	if !ok || def.Origin != OriginCustom || !def.Editable {
		t.Errorf("custom field = %+v, want an editable custom field", def)
	}
	if err := c.AddCustomField(FieldDefinition{Key: "costCenter", Label: "dup"}); err == nil {
		t.Error("expected an error adding a duplicate key")
	}
	if err := c.AddCustomField(FieldDefinition{Key: "name", Label: "shadow"}); err == nil {
		t.Error("expected an error shadowing a built-in field")
	}
	if err := c.AddCustomField(FieldDefinition{Key: "blob", Type: "binary"}); err == nil {
		t.Error("expected an error for an unknown field type")
	}

	t.Run("removal tombstones, keeps data semantics", func(t *testing.T) {
		if err := c.RemoveField("costCenter"); err != nil {
			t.Fatalf("RemoveField: %v", err)
		}
		if !c.IsRemoved("costCenter") {
			t.Error("removed field should carry a tombstone")
		}
		if _, ok := c.Field("costCenter"); !ok {
			t.Error("removed field definition should still resolve")
		}
		if slices.Contains(c.Visible, "costCenter") {
			t.Error("removed field should not be visible")
		}
	})

	t.Run("core fields are not removable", func(t *testing.T) {
		err := c.RemoveField("name")
		if err == nil || !strings.Contains(err.Error(), "core") {
			t.Errorf("RemoveField(name) = %v, want a core-field error", err)
		}
	})

	t.Run("optional built-ins are removable", func(t *testing.T) {
		if err := c.RemoveField("notes"); err != nil {
			t.Fatalf("RemoveField(notes): %v", err)
		}
		if !c.IsRemoved("notes") {
			t.Error("optional built-in should carry a tombstone after removal")
		}
		if err := c.RestoreField("notes"); err != nil {
			t.Fatalf("RestoreField(notes): %v", err)
		}
	})

	t.Run("restore drops the tombstone", func(t *testing.T) {
		if err := c.RestoreField("costCenter"); err != nil {
			t.Fatalf("RestoreField: %v", err)
		}
		if c.IsRemoved("costCenter") {
			t.Error("restored field should not be tombstoned")
		}
		if err := c.RestoreField("costCenter"); err == nil {
			t.Error("restoring a field that is not removed should fail")
		}
	})
}

func TestFieldOverride(t *testing.T) {
	c := DefaultFieldConfiguration()
	if err := c.Override("title", FieldDefinition{Label: "Contract", Type: FieldText, Editable: true, Width: 30}); err != nil {
		t.Fatalf("Override: %v", err)
	}
	def, ok := c.Field("title")
	if !ok || def.Label != "Contract" || def.Width != 30 {
		t.Errorf("field title = %+v, want the overridden definition", def)
	}
	if def.Origin != OriginOptional {
		t.Error("overriding must not change a field's origin")
	}
	if err := c.Override("nope", FieldDefinition{Label: "x"}); err == nil {
		t.Error("expected an error overriding an unknown field")
	}
}

func TestSetVisible(t *testing.T) {
	c := DefaultFieldConfiguration()
	if err := c.SetVisible([]string{"name", "status"}); err != nil {
		t.Fatalf("SetVisible: %v", err)
	}
	if len(c.Visible) != 2 || c.Visible[0] != "name" || c.Visible[1] != "status" {
		t.Errorf("visible = %v", c.Visible)
	}
	if err := c.SetVisible([]string{"name", "nope"}); err == nil {
		t.Error("expected an error for an unknown key")
	}
	// hiding keeps no tombstone: the field stays restorable via SetVisible.
	if c.IsRemoved("contact") {
		t.Error("a hidden field should not be tombstoned")
	}
}

func TestStoreFieldValue(t *testing.T) {
	s := testStore(t)
	s.RiskData[0].PO = DescribedRisk("PO not issued")
	s.SpendData[0].FiscalYear = "FY26"
	p := s.Publisher("Figma")

	tests := []struct {
		key  string
		want string
	}{
		{"name", "Figma"},
		{"companySpend", "8900000"},
		{"fiscalYear", "FY26"},
		{"riskPO", "PO not issued"},
		{"riskLegal", ""},
		{"licenseCount", "0"},
		{"unknown", ""},
	}
	for _, tc := range tests {
		if got := s.FieldValue(p, tc.key); got != tc.want {
			t.Errorf("FieldValue(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestFieldConfigPersistence(t *testing.T) {
	p := testPersistence(t, 0)

	// defaults when nothing is stored
	c := p.LoadFieldConfig()
	if !slices.Equal(c.Visible, defaultVisible) {
		t.Fatalf("fresh config visible = %v", c.Visible)
	}

	if err := c.AddCustomField(FieldDefinition{Key: "tier", Type: FieldSelect, Options: []string{"Gold", "Silver"}}); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveField("tier"); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveField("notes"); err != nil {
		t.Fatal(err)
	}
	if err := p.SaveFieldConfig(c); err != nil {
		t.Fatalf("SaveFieldConfig: %v", err)
	}

	// tombstones survive reload, for custom and optional fields alike
	again := p.LoadFieldConfig()
	if !again.IsRemoved("tier") || !again.IsRemoved("notes") {
		t.Error("tombstones did not survive a reload")
	}
	if _, ok := again.Field("tier"); !ok {
		t.Error("custom field definition did not survive a reload")
	}
}
