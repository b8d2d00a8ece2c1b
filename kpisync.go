package licspend

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// KPISource describes where one external KPI comes from: an HTTP endpoint
// serving JSON and a jsonpath expression selecting the pre-aggregated value
// inside it. The value is taken as-is, never recomputed.
type KPISource struct {
	Name   string `yaml:"name" json:"name"`     // external KPI name, e.g. "SNOW Tickets MTD"
	URL    string `yaml:"url" json:"url"`       // endpoint serving a JSON document
	Path   string `yaml:"path" json:"path"`     // jsonpath to the value, e.g. "$.result.count"
	Unit   string `yaml:"unit" json:"unit"`     // display unit, e.g. "tickets"
	Source string `yaml:"source" json:"source"` // system of record, e.g. "ServiceNow"
}

// SyncExternalKPIs fetches each source and updates the matching external
// KPI record in the store, creating it when absent. LastUpdated is stamped
// with today's date. The store is modified in place; persisting it is the
// caller's business.
func SyncExternalKPIs(client *http.Client, sources []KPISource, s *RecordStore) error {
	if client == nil {
		client = dailyClient()
	}
	for _, src := range sources {
		value, err := fetchKPIValue(client, src)
		if err != nil {
			return fmt.Errorf("cannot sync %q: %w", src.Name, err)
		}
		upsertExternalKPI(s, src, value)
	}
	return nil
}

func fetchKPIValue(client *http.Client, src KPISource) (float64, error) {
	var doc interface{}
	if err := jwget(client, src.URL, &doc); err != nil {
		return 0, err
	}
	v, err := jsonpath.Get(src.Path, doc)
	if err != nil {
		return 0, fmt.Errorf("invalid path %q: %w", src.Path, err)
	}
	// jsonpath queries can return a list of one match.
	if list, ok := v.([]interface{}); ok && len(list) == 1 {
		v = list[0]
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q at %q is not a number", n, src.Path)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value at %q is %T, want a number", src.Path, v)
	}
}

func upsertExternalKPI(s *RecordStore, src KPISource, value float64) {
	for i := range s.ExternalKPIs {
		if s.ExternalKPIs[i].Name == src.Name {
			s.ExternalKPIs[i].Value = value
			s.ExternalKPIs[i].LastUpdated = Today().String()
			return
		}
	}
	s.ExternalKPIs = append(s.ExternalKPIs, ExternalKPI{
		Name:        src.Name,
		Value:       value,
		Unit:        src.Unit,
		Source:      src.Source,
		LastUpdated: Today().String(),
	})
}
