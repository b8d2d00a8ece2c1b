package licspend

import (
	"fmt"
	"slices"
)

// FieldType is the value type of a grid field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldCurrency FieldType = "currency"
	FieldDate     FieldType = "date"
	FieldDatetime FieldType = "datetime"
	FieldBoolean  FieldType = "boolean"
	FieldSelect   FieldType = "select"
	FieldURL      FieldType = "url"
	FieldTextarea FieldType = "textarea"
)

var fieldTypes = []FieldType{
	FieldText, FieldNumber, FieldCurrency, FieldDate, FieldDatetime,
	FieldBoolean, FieldSelect, FieldURL, FieldTextarea,
}

// FieldOrigin tells where a field definition comes from, which governs
// whether it may be removed.
type FieldOrigin string

const (
	// OriginCore fields carry the record identity; they can be hidden but
	// never removed.
	OriginCore FieldOrigin = "core"
	// OriginOptional fields are built in but disposable.
	OriginOptional FieldOrigin = "optional"
	// OriginCustom fields are user defined.
	OriginCustom FieldOrigin = "custom"
)

// FieldDefinition describes one grid field: a built-in one or a
// user-defined custom field. Width is the preferred display width in
// characters.
type FieldDefinition struct {
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Type     FieldType   `json:"type"`
	Options  []string    `json:"options,omitempty"`
	Origin   FieldOrigin `json:"origin"`
	Editable bool        `json:"editable"`
	Width    int         `json:"width,omitempty"`
}

// FieldConfiguration is the single persisted unit describing how grid
// fields are presented: which are visible and in what order, label/type
// overrides of built-in fields, user-defined custom fields, and removal
// tombstones.
//
// Removing a field never deletes record data: the key goes on the Removed
// list and the values stay in place, so restoring the field brings the data
// back.
type FieldConfiguration struct {
	Version   int                        `json:"version"`
	Visible   []string                   `json:"visible"`
	Overrides map[string]FieldDefinition `json:"overrides,omitempty"`
	Custom    []FieldDefinition          `json:"custom,omitempty"`
	Removed   []string                   `json:"removed,omitempty"`
}

// FieldConfigVersion is the current layout version of FieldConfiguration.
const FieldConfigVersion = 1

// builtinFields are the built-in grid fields. The grid is wider than the
// publisher record: the spend and risk columns edit the rows joined by
// publisher name.
var builtinFields = []FieldDefinition{
	{Key: "name", Label: "Publisher", Type: FieldText, Origin: OriginCore, Editable: true, Width: 18},
	{Key: "createdAt", Label: "Created", Type: FieldDatetime, Origin: OriginCore, Width: 16},
	{Key: "updatedAt", Label: "Updated", Type: FieldDatetime, Origin: OriginCore, Width: 16},
	{Key: "title", Label: "Title", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 18},
	{Key: "type", Label: "Delivery Type", Type: FieldSelect, Origin: OriginOptional, Editable: true, Width: 10,
		Options: []string{string(SaaS), string(OnPrem), string(Hybrid)}},
	{Key: "contact", Label: "Contact", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 14},
	{Key: "renewalDate", Label: "Renewal Date", Type: FieldDate, Origin: OriginOptional, Editable: true, Width: 12},
	{Key: "status", Label: "Status", Type: FieldSelect, Origin: OriginOptional, Editable: true, Width: 10,
		Options: []string{string(StatusActive), string(StatusPending), string(StatusExpired), string(StatusInReview), string(StatusSunsetted)}},
	{Key: "companySpend", Label: "Company Spend", Type: FieldCurrency, Origin: OriginOptional, Editable: true, Width: 13},
	{Key: "msdSpend", Label: "MSD Spend", Type: FieldCurrency, Origin: OriginOptional, Editable: true, Width: 12},
	{Key: "tiamSpend", Label: "TI&M Spend", Type: FieldCurrency, Origin: OriginOptional, Editable: true, Width: 12},
	{Key: "savingsAmount", Label: "Savings Amount", Type: FieldCurrency, Origin: OriginOptional, Editable: true, Width: 13},
	{Key: "savingsType", Label: "Savings Type", Type: FieldSelect, Origin: OriginOptional, Editable: true, Width: 14,
		Options: []string{string(CostAvoidance), string(CostReduction), string(LicenseOptimization), string(Renegotiation), string(Consolidation), string(OtherSavings)}},
	{Key: "fiscalYear", Label: "Fiscal Year", Type: FieldSelect, Origin: OriginOptional, Editable: true, Width: 8,
		Options: []string{"FY24", "FY25", "FY26", "FY27", "FY28"}},
	{Key: "riskSSPA", Label: "Risk: SSPA", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 16},
	{Key: "riskPO", Label: "Risk: PO", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 16},
	{Key: "riskFinance", Label: "Risk: Finance", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 16},
	{Key: "riskLegal", Label: "Risk: Legal", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 16},
	{Key: "riskInventory", Label: "Risk: Inventory", Type: FieldText, Origin: OriginOptional, Editable: true, Width: 16},
	{Key: "category", Label: "Category", Type: FieldSelect, Origin: OriginOptional, Editable: true, Width: 12,
		Options: []string{"Design", "Development", "Productivity", "Analytics", "Communication", "Security", "Other"}},
	{Key: "licenseCount", Label: "License Count", Type: FieldNumber, Origin: OriginOptional, Editable: true, Width: 9},
	{Key: "notes", Label: "Notes", Type: FieldTextarea, Origin: OriginOptional, Editable: true, Width: 24},
}

// defaultVisible is the column set of a fresh grid.
var defaultVisible = []string{
	"name", "title", "type", "status", "renewalDate",
	"companySpend", "msdSpend", "contact",
}

// DefaultFieldConfiguration returns the configuration for a fresh
// dashboard: the default column set visible, nothing customized.
func DefaultFieldConfiguration() *FieldConfiguration {
	return &FieldConfiguration{
		Version: FieldConfigVersion,
		Visible: slices.Clone(defaultVisible),
	}
}

// Field returns the effective definition for key, with overrides applied,
// or false for an unknown key.
func (c *FieldConfiguration) Field(key string) (FieldDefinition, bool) {
	if def, ok := c.Overrides[key]; ok {
		return def, true
	}
	for _, f := range builtinFields {
		if f.Key == key {
			return f, true
		}
	}
	for _, f := range c.Custom {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Fields returns every known field with overrides applied, built-in fields
// first then custom ones. Removed fields are included; use IsRemoved to
// filter them for display.
func (c *FieldConfiguration) Fields() []FieldDefinition {
	var all []FieldDefinition
	for _, f := range builtinFields {
		if o, ok := c.Overrides[f.Key]; ok {
			f = o
		}
		all = append(all, f)
	}
	for _, f := range c.Custom {
		if o, ok := c.Overrides[f.Key]; ok {
			f = o
		}
		all = append(all, f)
	}
	return all
}

// IsRemoved reports whether the key carries a removal tombstone.
func (c *FieldConfiguration) IsRemoved(key string) bool {
	return slices.Contains(c.Removed, key)
}

// AddCustomField registers a new user-defined field. Custom fields are
// always editable; an empty type means text.
func (c *FieldConfiguration) AddCustomField(def FieldDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("custom field needs a key")
	}
	if _, exists := c.Field(def.Key); exists {
		return fmt.Errorf("field %q already exists", def.Key)
	}
	if def.Type == "" {
		def.Type = FieldText
	}
	if !slices.Contains(fieldTypes, def.Type) {
		return fmt.Errorf("unknown field type %q", def.Type)
	}
	def.Origin = OriginCustom
	def.Editable = true
	c.Custom = append(c.Custom, def)
	c.Visible = append(c.Visible, def.Key)
	return nil
}

// Override replaces the presentation of an existing field (label, type,
// options, editability, width). The key and origin cannot change.
func (c *FieldConfiguration) Override(key string, def FieldDefinition) error {
	current, ok := c.Field(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	def.Key = key
	def.Origin = current.Origin
	if c.Overrides == nil {
		c.Overrides = make(map[string]FieldDefinition)
	}
	c.Overrides[key] = def
	return nil
}

// RemoveField tombstones an optional or custom field so it stays gone
// across reloads. Core fields cannot be removed, and no record data is
// deleted.
func (c *FieldConfiguration) RemoveField(key string) error {
	def, ok := c.Field(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	if def.Origin == OriginCore {
		return fmt.Errorf("field %q is a core field and cannot be removed", key)
	}
	if !c.IsRemoved(key) {
		c.Removed = append(c.Removed, key)
	}
	c.Visible = slices.DeleteFunc(c.Visible, func(k string) bool { return k == key })
	return nil
}

// RestoreField drops the removal tombstone of a field, making it visible
// again with its data intact.
func (c *FieldConfiguration) RestoreField(key string) error {
	if !c.IsRemoved(key) {
		return fmt.Errorf("field %q is not removed", key)
	}
	c.Removed = slices.DeleteFunc(c.Removed, func(k string) bool { return k == key })
	if !slices.Contains(c.Visible, key) {
		c.Visible = append(c.Visible, key)
	}
	return nil
}

// SetVisible sets the visible fields and their order. Unknown keys are
// rejected. Hiding a field this way is reversible and keeps no tombstone.
func (c *FieldConfiguration) SetVisible(keys []string) error {
	for _, k := range keys {
		if _, ok := c.Field(k); !ok {
			return fmt.Errorf("unknown field %q", k)
		}
	}
	c.Visible = slices.Clone(keys)
	return nil
}

// FieldValue returns the display value of one publisher-backed field by
// key. Unknown keys read as empty. Joined spend and risk columns live on
// RecordStore.FieldValue, which falls back here.
func (p *Publisher) FieldValue(key string) string {
	switch key {
	case "name":
		return p.Name
	case "title":
		return p.Title
	case "type":
		return string(p.Type)
	case "contact":
		return p.Contact
	case "renewalDate":
		return p.RenewalDate.String()
	case "status":
		return string(p.Status)
	case "savingsAmount":
		return p.SavingsAmount.String()
	case "savingsType":
		return string(p.SavingsType)
	case "category":
		return p.Category
	case "licenseCount":
		return fmt.Sprint(p.LicenseCount)
	case "createdAt":
		return p.CreatedAt.Format("2006-01-02 15:04")
	case "updatedAt":
		return p.UpdatedAt.Format("2006-01-02 15:04")
	default:
		if v, ok := p.Custom[key]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}
}

// FieldValue returns the display value of one grid field for the given
// publisher, resolving the joined spend and risk columns through the store.
func (s *RecordStore) FieldValue(p *Publisher, key string) string {
	switch key {
	case "companySpend":
		return s.SpendFor(p.Name).Company.String()
	case "msdSpend":
		return s.SpendFor(p.Name).MSD.String()
	case "tiamSpend":
		return s.SpendFor(p.Name).TIAM.String()
	case "fiscalYear":
		return s.SpendFor(p.Name).FiscalYear
	case "notes":
		return s.SpendFor(p.Name).Notes
	case "riskSSPA":
		return s.RiskFor(p.Name).SSPA.String()
	case "riskPO":
		return s.RiskFor(p.Name).PO.String()
	case "riskFinance":
		return s.RiskFor(p.Name).Finance.String()
	case "riskLegal":
		return s.RiskFor(p.Name).Legal.String()
	case "riskInventory":
		return s.RiskFor(p.Name).Inventory.String()
	default:
		return p.FieldValue(key)
	}
}

// LoadFieldConfig returns the stored field configuration, or the default
// one when nothing usable is stored.
func (p *Persistence) LoadFieldConfig() *FieldConfiguration {
	var c FieldConfiguration
	if !p.getJSON(fieldConfigKey, &c) || c.Version != FieldConfigVersion {
		return DefaultFieldConfiguration()
	}
	return &c
}

// SaveFieldConfig stores the field configuration.
func (p *Persistence) SaveFieldConfig(c *FieldConfiguration) error {
	c.Version = FieldConfigVersion
	return p.setJSON(fieldConfigKey, c)
}
