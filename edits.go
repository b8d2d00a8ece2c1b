package licspend

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddPublisher creates a publisher with the given name along with zeroed
// joined spend and risk rows, so every downstream join resolves from the
// start. The name must be unique and non blank.
func AddPublisher(s *RecordStore, name string) (*Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("publisher name cannot be blank")
	}
	if s.Publisher(name) != nil {
		return nil, fmt.Errorf("publisher %q already exists", name)
	}
	now := time.Now().UTC()
	p := Publisher{
		ID:        s.NextID(),
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fiscalYear := ""
	if len(s.SpendData) > 0 {
		fiscalYear = s.SpendData[0].FiscalYear
	}
	s.Publishers = append(s.Publishers, p)
	s.SpendData = append(s.SpendData, Spend{Publisher: name, FiscalYear: fiscalYear})
	s.RiskData = append(s.RiskData, Risk{Publisher: name})
	return s.Publisher(name), nil
}

// DeletePublishers removes the identified publishers and their joined spend
// and risk rows. Managed titles are kept: they describe software, not the
// relationship. It returns how many publishers were removed.
func DeletePublishers(s *RecordStore, ids ...int) int {
	names := make(map[string]bool)
	for _, id := range ids {
		if p := s.PublisherByID(id); p != nil {
			names[p.Name] = true
		}
	}
	if len(names) == 0 {
		return 0
	}
	s.Publishers = slices.DeleteFunc(s.Publishers, func(p Publisher) bool { return names[p.Name] })
	s.SpendData = slices.DeleteFunc(s.SpendData, func(sp Spend) bool { return names[sp.Publisher] })
	s.RiskData = slices.DeleteFunc(s.RiskData, func(r Risk) bool { return names[r.Publisher] })
	return len(names)
}

// ApplyFieldEdit sets one grid field of one publisher from its raw string
// form, validating against the field configuration. The spend and risk
// columns write through to the rows joined by publisher name. It returns a
// history entry describing the change. Renaming a publisher cascades to
// every row joined by name.
func ApplyFieldEdit(s *RecordStore, cfg *FieldConfiguration, id int, key, raw string) (ChangeEntry, error) {
	p := s.PublisherByID(id)
	if p == nil {
		return ChangeEntry{}, fmt.Errorf("no publisher with id %d", id)
	}
	def, ok := cfg.Field(key)
	if !ok {
		return ChangeEntry{}, fmt.Errorf("unknown field %q", key)
	}
	if cfg.IsRemoved(key) {
		return ChangeEntry{}, fmt.Errorf("field %q has been removed", key)
	}
	if !def.Editable {
		return ChangeEntry{}, fmt.Errorf("field %q is not editable", key)
	}

	old, err := setField(s, p, def, raw)
	if err != nil {
		return ChangeEntry{}, err
	}
	p.UpdatedAt = time.Now().UTC()
	return ChangeEntry{
		Timestamp: p.UpdatedAt,
		Kind:      ChangeUpdate,
		Subject:   p.Name,
		Field:     key,
		Old:       old,
		New:       raw,
	}, nil
}

func setField(s *RecordStore, p *Publisher, def FieldDefinition, raw string) (old string, err error) {
	switch def.Key {
	case "name":
		name := strings.TrimSpace(raw)
		if name == "" {
			return "", fmt.Errorf("publisher name cannot be blank")
		}
		if other := s.Publisher(name); other != nil && other.ID != p.ID {
			return "", fmt.Errorf("publisher %q already exists", name)
		}
		old = p.Name
		renamePublisher(s, old, name)
		p.Name = name
	case "title":
		old, p.Title = p.Title, raw
	case "contact":
		old, p.Contact = p.Contact, raw
	case "category":
		if raw != "" {
			if err := checkOption(def, raw); err != nil {
				return "", err
			}
		}
		old, p.Category = p.Category, raw
	case "licenseCount":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return "", fmt.Errorf("invalid license count %q", raw)
		}
		old, p.LicenseCount = strconv.Itoa(p.LicenseCount), n
	case "type":
		if err := checkOption(def, raw); err != nil {
			return "", err
		}
		old, p.Type = string(p.Type), DeliveryType(raw)
	case "status":
		if err := checkOption(def, raw); err != nil {
			return "", err
		}
		old, p.Status = string(p.Status), Status(raw)
	case "renewalDate":
		d, err := ParseDate(raw)
		if err != nil {
			return "", err
		}
		old, p.RenewalDate = p.RenewalDate.String(), d
	case "savingsAmount":
		amount, err := parseAmount(def, raw)
		if err != nil {
			return "", err
		}
		old, p.SavingsAmount = p.SavingsAmount.String(), amount
	case "savingsType":
		if raw != "" {
			if err := checkOption(def, raw); err != nil {
				return "", err
			}
		}
		old, p.SavingsType = string(p.SavingsType), SavingsType(raw)
	case "companySpend", "msdSpend", "tiamSpend":
		amount, err := parseAmount(def, raw)
		if err != nil {
			return "", err
		}
		sp := s.EditSpend(p.Name)
		switch def.Key {
		case "companySpend":
			old, sp.Company = sp.Company.String(), amount
		case "msdSpend":
			old, sp.MSD = sp.MSD.String(), amount
		case "tiamSpend":
			old, sp.TIAM = sp.TIAM.String(), amount
		}
	case "fiscalYear":
		if raw != "" {
			if err := checkOption(def, raw); err != nil {
				return "", err
			}
		}
		sp := s.EditSpend(p.Name)
		old, sp.FiscalYear = sp.FiscalYear, raw
	case "notes":
		sp := s.EditSpend(p.Name)
		old, sp.Notes = sp.Notes, raw
	case "riskSSPA", "riskPO", "riskFinance", "riskLegal", "riskInventory":
		v := riskField(s.EditRisk(p.Name), def.Key)
		old = v.String()
		*v = parseRiskValue(raw)
	default:
		// custom field
		if p.Custom == nil {
			p.Custom = make(map[string]any)
		}
		if prev, ok := p.Custom[def.Key]; ok {
			old = fmt.Sprint(prev)
		}
		v, err := parseCustomValue(def, raw)
		if err != nil {
			return "", err
		}
		p.Custom[def.Key] = v
	}
	return old, nil
}

func checkOption(def FieldDefinition, raw string) error {
	if len(def.Options) == 0 || slices.Contains(def.Options, raw) {
		return nil
	}
	return fmt.Errorf("invalid %s %q, want one of %s", def.Label, raw, strings.Join(def.Options, ", "))
}

// parseAmount parses a monetary field value, which must not be negative.
func parseAmount(def FieldDefinition, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", def.Label, raw, err)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s cannot be negative", def.Label)
	}
	return amount, nil
}

// riskField maps a grid column key to the matching category of a risk row.
func riskField(r *Risk, key string) *RiskValue {
	switch key {
	case "riskSSPA":
		return &r.SSPA
	case "riskPO":
		return &r.PO
	case "riskFinance":
		return &r.Finance
	case "riskLegal":
		return &r.Legal
	default:
		return &r.Inventory
	}
}

// parseRiskValue reads a raw cell value into a risk category value: blank
// clears it, an integer is a legacy severity, anything else is a
// description.
func parseRiskValue(raw string) RiskValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoRisk
	}
	if sev, err := strconv.Atoi(trimmed); err == nil {
		return LegacyRisk(sev)
	}
	return DescribedRisk(raw)
}

func parseCustomValue(def FieldDefinition, raw string) (any, error) {
	switch def.Type {
	case FieldNumber, FieldCurrency:
		n, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q for field %s", raw, def.Key)
		}
		return n.InexactFloat64(), nil
	case FieldDate:
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	case FieldDatetime:
		t, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid datetime %q for field %s, want YYYY-MM-DD HH:MM", raw, def.Key)
		}
		return t.Format("2006-01-02 15:04"), nil
	case FieldBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q for field %s", raw, def.Key)
		}
		return b, nil
	case FieldSelect:
		if err := checkOption(def, raw); err != nil {
			return nil, err
		}
		return raw, nil
	case FieldURL:
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid url %q for field %s", raw, def.Key)
		}
		return u.String(), nil
	default:
		return raw, nil
	}
}

// renamePublisher rewrites the join key in every collection.
func renamePublisher(s *RecordStore, from, to string) {
	for i := range s.SpendData {
		if s.SpendData[i].Publisher == from {
			s.SpendData[i].Publisher = to
		}
	}
	for i := range s.RiskData {
		if s.RiskData[i].Publisher == from {
			s.RiskData[i].Publisher = to
		}
	}
	for i := range s.ManagedTitles {
		if s.ManagedTitles[i].Publisher == from {
			s.ManagedTitles[i].Publisher = to
		}
	}
}
