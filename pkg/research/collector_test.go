package research

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-research-be/pkg/search"
)

// fakeSearchProvider scripts per-query behavior by substring match.
type fakeSearchProvider struct {
	queries    []string
	failOn     string // queries containing this substring return an error
	perQuery   int
	failAlways bool
}

func (f *fakeSearchProvider) Search(ctx context.Context, query string, count int) ([]search.Result, error) {
	f.queries = append(f.queries, query)
	if f.failAlways || (f.failOn != "" && strings.Contains(query, f.failOn)) {
		return nil, fmt.Errorf("provider unavailable")
	}
	n := f.perQuery
	if n > count {
		n = count
	}
	results := make([]search.Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, search.Result{
			Title:   fmt.Sprintf("Result %d for %s", i+1, query),
			Link:    fmt.Sprintf("https://example.com/%d", i+1),
			Snippet: "snippet",
		})
	}
	return results, nil
}

func TestCollectIssuesFixedQueryBattery(t *testing.T) {
	provider := &fakeSearchProvider{perQuery: 2}
	collector := NewCollector(provider, 5)

	batch := collector.Collect(context.Background(), "Acme")

	require.Len(t, provider.queries, 5)
	assert.Equal(t, "Acme company overview", provider.queries[0])
	assert.Equal(t, "Acme products services", provider.queries[1])
	assert.Equal(t, "Acme recent news", provider.queries[2])
	assert.Equal(t, "Acme market position competitors", provider.queries[3])
	assert.Equal(t, "Acme financial performance revenue", provider.queries[4])

	assert.Equal(t, "Acme", batch.CompanyName)
	assert.Equal(t, 10, batch.TotalSources)
	assert.Len(t, batch.Sources, batch.TotalSources)
}

func TestCollectTagsFailuresInline(t *testing.T) {
	provider := &fakeSearchProvider{perQuery: 1, failOn: "recent news"}
	collector := NewCollector(provider, 5)

	batch := collector.Collect(context.Background(), "Acme")

	// 4 successful queries x1 result + 1 error placeholder
	assert.Equal(t, 5, batch.TotalSources)
	assert.Len(t, batch.UsableSources(), 4)

	var errRecords int
	for _, s := range batch.Sources {
		if !s.Usable() {
			errRecords++
			assert.Contains(t, s.Err, "provider unavailable")
			assert.Equal(t, SourceTagWeb, s.Source)
		}
	}
	assert.Equal(t, 1, errRecords)
}

func TestCollectAllErrorBatchStillCompletes(t *testing.T) {
	provider := &fakeSearchProvider{failAlways: true}
	collector := NewCollector(provider, 5)

	batch := collector.Collect(context.Background(), "Acme")

	assert.Equal(t, 5, batch.TotalSources)
	assert.Empty(t, batch.UsableSources())
}

func TestCollectTruncatesToMaxSources(t *testing.T) {
	provider := &fakeSearchProvider{perQuery: 10}
	collector := NewCollector(provider, 3)

	batch := collector.Collect(context.Background(), "Acme")

	assert.Equal(t, 15, batch.TotalSources)
}
