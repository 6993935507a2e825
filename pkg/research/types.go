package research

// SourceTagWeb marks records that came from web search. Kept as a tag so other
// retrieval backends (news APIs, filings) can be merged into one batch later.
const SourceTagWeb = "web_search"

// SourceRecord is one retrieved snippet, or the inline error placeholder for a
// failed query. Records are immutable once the batch is built.
type SourceRecord struct {
	Title   string `json:"title,omitempty"`
	Link    string `json:"link,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Err     string `json:"error,omitempty"`
	Source  string `json:"source"`
}

// Usable reports whether the record carries real content rather than a
// retrieval failure.
func (r SourceRecord) Usable() bool {
	return r.Err == ""
}

// Batch is the aggregated output of one research invocation. A new invocation
// replaces the previous batch wholesale; batches are never merged.
type Batch struct {
	CompanyName  string         `json:"company_name"`
	Sources      []SourceRecord `json:"sources"`
	TotalSources int            `json:"total_sources"`
}

// UsableSources returns the records that carry content.
func (b *Batch) UsableSources() []SourceRecord {
	usable := make([]SourceRecord, 0, len(b.Sources))
	for _, s := range b.Sources {
		if s.Usable() {
			usable = append(usable, s)
		}
	}
	return usable
}
