package licspend

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryType is how a publisher delivers its licenses.
type DeliveryType string

const (
	SaaS   DeliveryType = "SaaS"
	OnPrem DeliveryType = "On Prem"
	Hybrid DeliveryType = "Hybrid"
)

// Status is the lifecycle status of a publisher relationship.
type Status string

const (
	StatusActive    Status = "Active"
	StatusPending   Status = "Pending"
	StatusExpired   Status = "Expired"
	StatusInReview  Status = "In Review"
	StatusSunsetted Status = "Sunsetted"
)

// SavingsType classifies how a savings amount was achieved. The empty value
// means no type was recorded; aggregation treats it as "Other".
type SavingsType string

const (
	CostAvoidance       SavingsType = "Cost Avoidance"
	CostReduction       SavingsType = "Cost Reduction"
	LicenseOptimization SavingsType = "License Optimization"
	Renegotiation       SavingsType = "Renegotiation"
	Consolidation       SavingsType = "Consolidation"
	OtherSavings        SavingsType = "Other"
)

// Publisher is a software publisher the company licenses from.
//
// The name doubles as the join key into the spend and risk collections, so it
// must be unique. The id is immutable for the lifetime of the record.
type Publisher struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Type          DeliveryType    `json:"type"`
	Contact       string          `json:"contact"`
	RenewalDate   Date            `json:"renewalDate"`
	Status        Status          `json:"status"`
	SavingsAmount decimal.Decimal `json:"savingsAmount"`
	SavingsType   SavingsType     `json:"savingsType,omitempty"`
	Category      string          `json:"category,omitempty"`
	LicenseCount  int             `json:"licenseCount,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitzero"`
	UpdatedAt     time.Time       `json:"updatedAt,omitzero"`
	// Custom holds values of user-defined fields, keyed by field key.
	Custom map[string]any `json:"custom,omitempty"`
}

// Spend is the annual spend figures for one publisher.
type Spend struct {
	Publisher  string          `json:"publisher"`
	Company    decimal.Decimal `json:"companySpend"`
	MSD        decimal.Decimal `json:"msdSpend"`
	TIAM       decimal.Decimal `json:"tiamSpend"`
	FiscalYear string          `json:"fiscalYear"`
	Notes      string          `json:"notes"`
}

// Risk is the per-category risk assessment for one publisher.
type Risk struct {
	Publisher string    `json:"publisher"`
	SSPA      RiskValue `json:"sspa"`
	PO        RiskValue `json:"po"`
	Finance   RiskValue `json:"finance"`
	Legal     RiskValue `json:"legal"`
	Inventory RiskValue `json:"inventory"`
	Details   string    `json:"details"`
}

// Categories returns the five category values in their fixed display order.
func (r Risk) Categories() [5]RiskValue {
	return [5]RiskValue{r.SSPA, r.PO, r.Finance, r.Legal, r.Inventory}
}

// ManagedTitle is a software title under management. Purely informational.
type ManagedTitle struct {
	Title        string `json:"title"`
	Publisher    string `json:"publisher"`
	Category     string `json:"category"`
	LicenseCount int    `json:"licenseCount"`
	Notes        string `json:"notes"`
}

// ExternalKPI is a pre-aggregated figure sourced from an external system.
// Its value is passed through to the dashboard verbatim, never recomputed.
type ExternalKPI struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Source      string  `json:"source"`
	LastUpdated string  `json:"lastUpdated"`
	Notes       string  `json:"notes"`
}

// RecordStore is the canonical collection of dashboard records.
//
// It is owned by the persistence layer; the aggregation engine only ever
// reads it. DatasetVersion identifies the shipped dataset a stored copy was
// derived from: on load, a stored copy with a different version than the
// shipped default is considered stale and discarded.
type RecordStore struct {
	Publishers     []Publisher    `json:"publishers"`
	SpendData      []Spend        `json:"spendData"`
	RiskData       []Risk         `json:"riskData"`
	ManagedTitles  []ManagedTitle `json:"managedTitles"`
	DatasetVersion string         `json:"datasetVersion"`
	ExternalKPIs   []ExternalKPI  `json:"externalKpis"`
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		Publishers:    make([]Publisher, 0),
		SpendData:     make([]Spend, 0),
		RiskData:      make([]Risk, 0),
		ManagedTitles: make([]ManagedTitle, 0),
		ExternalKPIs:  make([]ExternalKPI, 0),
	}
}

// Publisher returns the publisher with the given name, or nil if unknown.
func (s *RecordStore) Publisher(name string) *Publisher {
	for i := range s.Publishers {
		if s.Publishers[i].Name == name {
			return &s.Publishers[i]
		}
	}
	return nil
}

// PublisherByID returns the publisher with the given id, or nil if unknown.
func (s *RecordStore) PublisherByID(id int) *Publisher {
	for i := range s.Publishers {
		if s.Publishers[i].ID == id {
			return &s.Publishers[i]
		}
	}
	return nil
}

// SpendFor returns the spend record joined to the named publisher. An
// unmatched join degrades to an all-zero record rather than an error.
func (s *RecordStore) SpendFor(name string) Spend {
	for _, sp := range s.SpendData {
		if sp.Publisher == name {
			return sp
		}
	}
	return Spend{Publisher: name}
}

// RiskFor returns the risk record joined to the named publisher. An
// unmatched join degrades to an all-absent record rather than an error.
func (s *RecordStore) RiskFor(name string) Risk {
	for _, r := range s.RiskData {
		if r.Publisher == name {
			return r
		}
	}
	return Risk{Publisher: name}
}

// EditSpend returns a mutable pointer to the spend record joined to the
// named publisher, appending a zeroed row when none exists yet.
func (s *RecordStore) EditSpend(name string) *Spend {
	for i := range s.SpendData {
		if s.SpendData[i].Publisher == name {
			return &s.SpendData[i]
		}
	}
	s.SpendData = append(s.SpendData, Spend{Publisher: name})
	return &s.SpendData[len(s.SpendData)-1]
}

// EditRisk returns a mutable pointer to the risk record joined to the named
// publisher, appending a zeroed row when none exists yet.
func (s *RecordStore) EditRisk(name string) *Risk {
	for i := range s.RiskData {
		if s.RiskData[i].Publisher == name {
			return &s.RiskData[i]
		}
	}
	s.RiskData = append(s.RiskData, Risk{Publisher: name})
	return &s.RiskData[len(s.RiskData)-1]
}

// NextID returns the id to assign to a new publisher: max(existing)+1.
func (s *RecordStore) NextID() int {
	max := 0
	for _, p := range s.Publishers {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// ExternalKPI returns the value of the named external KPI, or 0 if absent.
func (s *RecordStore) ExternalKPI(name string) float64 {
	for _, k := range s.ExternalKPIs {
		if k.Name == name {
			return k.Value
		}
	}
	return 0
}

// DeepCopy returns an independent copy of the store. Snapshots rely on this
// to stay immutable after later edits.
func (s *RecordStore) DeepCopy() *RecordStore {
	data, err := json.Marshal(s)
	if err != nil {
		// A RecordStore is plain data, marshalling it cannot fail.
		panic(fmt.Sprintf("cannot deep-copy record store: %v", err))
	}
	var cp RecordStore
	if err := json.Unmarshal(data, &cp); err != nil {
		panic(fmt.Sprintf("cannot deep-copy record store: %v", err))
	}
	return &cp
}
