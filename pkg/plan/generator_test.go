package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-research-be/pkg/llm"
	"ai-research-be/pkg/synthesis"
)

type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func TestGenerateStampsMetadata(t *testing.T) {
	provider := &fakeProvider{response: "```json\n" + `{
		"executive_summary": "Acme is a strong prospect",
		"risks_and_challenges": ["Budget cycles"],
		"metadata": {"company_name": "Hallucinated Inc", "version": "9.9"}
	}` + "\n```"}
	g := NewGenerator(provider)

	record := &synthesis.Record{CompanyOverview: "Acme builds widgets", SourcesAnalyzed: 4}
	doc := g.Generate(context.Background(), "Acme", record)

	require.False(t, doc.IsError())
	assert.Equal(t, "Acme is a strong prospect", doc["executive_summary"])

	// Provider-emitted metadata is fully replaced.
	meta := doc.Metadata()
	assert.Equal(t, "Acme", meta["company_name"])
	assert.Equal(t, "1.0", meta["version"])
	assert.NotEmpty(t, meta["generated_at"])

	// The synthesis record rides along in the prompt.
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Acme builds widgets")
	assert.Contains(t, provider.prompts[0], "executive_summary")
}

func TestGenerateProseResponseDegrades(t *testing.T) {
	provider := &fakeProvider{response: "Here is my best effort, sadly not JSON."}
	g := NewGenerator(provider)

	doc := g.Generate(context.Background(), "Acme", &synthesis.Record{})

	require.True(t, doc.IsError())
	assert.Contains(t, doc["error"], "Plan generation failed:")

	meta := doc.Metadata()
	assert.Equal(t, "Acme", meta["company_name"])
	assert.NotEmpty(t, meta["generated_at"])
	_, hasVersion := meta["version"]
	assert.False(t, hasVersion, "degraded documents carry no version")
}

func TestGenerateProviderErrorDegrades(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("rate limited")}
	g := NewGenerator(provider)

	doc := g.Generate(context.Background(), "Acme", &synthesis.Record{})

	require.True(t, doc.IsError())
	assert.Contains(t, doc["error"], "rate limited")
}
