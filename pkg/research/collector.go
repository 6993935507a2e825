package research

import (
	"context"
	"fmt"
	"time"

	"ai-research-be/pkg/search"
)

// queryTemplates is the fixed battery of research angles, in execution order.
var queryTemplates = []string{
	"%s company overview",
	"%s products services",
	"%s recent news",
	"%s market position competitors",
	"%s financial performance revenue",
}

const perQueryTimeout = 30 * time.Second

// Collector gathers company information from the search provider. Provider
// failures never abort a batch: each failed query contributes one error-form
// record and collection continues.
type Collector struct {
	provider   search.Provider
	maxSources int
}

func NewCollector(provider search.Provider, maxSources int) *Collector {
	if maxSources <= 0 {
		maxSources = 5
	}
	return &Collector{
		provider:   provider,
		maxSources: maxSources,
	}
}

// Collect runs the full query battery for a company and aggregates every
// result into one Batch. TotalSources counts error placeholders too; callers
// filter with SourceRecord.Usable.
func (c *Collector) Collect(ctx context.Context, companyName string) *Batch {
	batch := &Batch{
		CompanyName: companyName,
		Sources:     []SourceRecord{},
	}

	for _, tmpl := range queryTemplates {
		query := fmt.Sprintf(tmpl, companyName)
		batch.Sources = append(batch.Sources, c.searchWeb(ctx, query)...)
	}

	batch.TotalSources = len(batch.Sources)
	return batch
}

// Overview runs the single company-overview query.
func (c *Collector) Overview(ctx context.Context, companyName string) []SourceRecord {
	return c.searchWeb(ctx, fmt.Sprintf("%s company overview about", companyName))
}

// RecentNews runs the single recent-news query.
func (c *Collector) RecentNews(ctx context.Context, companyName string) []SourceRecord {
	return c.searchWeb(ctx, fmt.Sprintf("%s recent news", companyName))
}

func (c *Collector) searchWeb(ctx context.Context, query string) []SourceRecord {
	ctx, cancel := context.WithTimeout(ctx, perQueryTimeout)
	defer cancel()

	results, err := c.provider.Search(ctx, query, c.maxSources)
	if err != nil {
		return []SourceRecord{{
			Err:    err.Error(),
			Source: SourceTagWeb,
		}}
	}

	if len(results) > c.maxSources {
		results = results[:c.maxSources]
	}

	records := make([]SourceRecord, 0, len(results))
	for _, r := range results {
		records = append(records, SourceRecord{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Source:  SourceTagWeb,
		})
	}
	return records
}
