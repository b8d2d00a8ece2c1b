package licspend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// riskKind discriminates the representations a risk category value can take.
type riskKind int

const (
	riskAbsent riskKind = iota
	riskDescribed
	riskLegacy
)

// RiskValue is one risk category assessment for a publisher.
//
// Current data describes risks as free text, but older datasets carried
// numeric severities. Both forms decode into RiskValue and re-encode exactly
// as they were read, so a load/save cycle never rewrites a record.
type RiskValue struct {
	kind riskKind
	text string
	sev  int
}

// NoRisk is the absent risk value.
var NoRisk = RiskValue{}

// DescribedRisk returns a risk value carrying a textual description.
func DescribedRisk(text string) RiskValue {
	return RiskValue{kind: riskDescribed, text: text}
}

// LegacyRisk returns a numeric-severity risk value from older datasets.
func LegacyRisk(severity int) RiskValue {
	return RiskValue{kind: riskLegacy, sev: severity}
}

// IsAtRisk reports whether this value counts as a flagged risk: a positive
// severity, or a description that is not blank.
func (v RiskValue) IsAtRisk() bool {
	switch v.kind {
	case riskDescribed:
		return strings.TrimSpace(v.text) != ""
	case riskLegacy:
		return v.sev > 0
	default:
		return false
	}
}

// Severity returns the numeric severity for display, clamped to 3.
// Described risks report 1 when flagged, 0 otherwise.
func (v RiskValue) Severity() int {
	switch v.kind {
	case riskLegacy:
		if v.sev > 3 {
			return 3
		}
		if v.sev < 0 {
			return 0
		}
		return v.sev
	case riskDescribed:
		if v.IsAtRisk() {
			return 1
		}
	}
	return 0
}

// String returns the description text, or the severity for legacy values.
func (v RiskValue) String() string {
	switch v.kind {
	case riskDescribed:
		return v.text
	case riskLegacy:
		return strconv.Itoa(v.sev)
	default:
		return ""
	}
}

func (v RiskValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case riskLegacy:
		return json.Marshal(v.sev)
	default:
		return json.Marshal(v.text)
	}
}

func (v *RiskValue) UnmarshalJSON(bytes []byte) error {
	s := string(bytes)
	if s == "null" {
		*v = NoRisk
		return nil
	}
	var text string
	if err := json.Unmarshal(bytes, &text); err == nil {
		if text == "" {
			*v = NoRisk
		} else {
			*v = DescribedRisk(text)
		}
		return nil
	}
	var sev int
	if err := json.Unmarshal(bytes, &sev); err == nil {
		*v = LegacyRisk(sev)
		return nil
	}
	return fmt.Errorf("invalid risk value %s: want a string or a number", s)
}

var _ json.Marshaler = (*RiskValue)(nil)
var _ json.Unmarshaler = (*RiskValue)(nil)
