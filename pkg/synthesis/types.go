package synthesis

import (
	"encoding/json"
	"fmt"
)

// FlexList is a list field that tolerates the degenerate shape models
// sometimes emit: a bare string instead of an array. A string unmarshals as a
// single-element list, never as a sequence of characters.
type FlexList []string

func (f *FlexList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		*f = out
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*f = FlexList{}
	} else {
		*f = FlexList{single}
	}
	return nil
}

// Record is the normalized synthesis of one research batch. A failed synthesis
// degrades to a Record carrying Err; it is data, never a raised error, so
// downstream stages can always read SourcesAnalyzed.
type Record struct {
	Err                string   `json:"error,omitempty"`
	CompanyOverview    string   `json:"company_overview"`
	ProductsServices   FlexList `json:"products_services"`
	MarketPosition     string   `json:"market_position"`
	RecentDevelopments FlexList `json:"recent_developments"`
	KeyInsights        FlexList `json:"key_insights"`
	PotentialConflicts FlexList `json:"potential_conflicts"`
	DataQuality        string   `json:"data_quality"`
	SourcesAnalyzed    int      `json:"sources_analyzed"`
}

// Degraded reports whether this record is the failure form.
func (r *Record) Degraded() bool {
	return r.Err != ""
}
