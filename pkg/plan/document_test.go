package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() Document {
	return Document{
		"executive_summary": "Initial summary",
		"engagement_strategy": map[string]any{
			"approach":          "land and expand",
			"value_proposition": "efficiency",
			"next_steps":        []any{"Intro call"},
		},
		"metadata": map[string]any{
			"company_name": "Acme",
			"generated_at": "2026-08-28T10:00:00Z",
			"version":      "1.0",
		},
	}
}

func TestApplyUpdateReplacesLeafOnly(t *testing.T) {
	doc := sampleDoc()

	got := ApplyUpdate(doc, "engagement_strategy.approach", "direct outreach")

	strategy := got["engagement_strategy"].(map[string]any)
	assert.Equal(t, "direct outreach", strategy["approach"])
	// Siblings at the traversed level survive untouched.
	assert.Equal(t, "efficiency", strategy["value_proposition"])
	assert.Equal(t, []any{"Intro call"}, strategy["next_steps"])
	assert.Equal(t, "Initial summary", got["executive_summary"])
}

func TestApplyUpdateCreatesMissingIntermediates(t *testing.T) {
	doc := Document{"existing": "kept"}

	got := ApplyUpdate(doc, "a.b.c", "v")

	a := got["a"].(map[string]any)
	b := a["b"].(map[string]any)
	assert.Equal(t, "v", b["c"])
	assert.Equal(t, "kept", got["existing"])
}

func TestApplyUpdateMutatesInPlace(t *testing.T) {
	doc := sampleDoc()
	got := ApplyUpdate(doc, "executive_summary", "rewritten")

	// Same instance in and out; no copy-on-write.
	assert.Equal(t, "rewritten", doc["executive_summary"])
	assert.Equal(t, Document(doc), got)
}

func TestApplyUpdateBumpsVersion(t *testing.T) {
	doc := sampleDoc()

	ApplyUpdate(doc, "executive_summary", "v2")

	meta := doc.Metadata()
	assert.Equal(t, "1.1", meta["version"])
	assert.NotEmpty(t, meta["last_updated"])
	assert.Equal(t, "Acme", meta["company_name"])
}

func TestApplyUpdateVersionRollsOver(t *testing.T) {
	doc := sampleDoc()
	doc.Metadata()["version"] = "1.9"

	ApplyUpdate(doc, "engagement_strategy.next_steps", []string{"Schedule demo"})

	assert.Equal(t, "2.0", doc.Version())
}

func TestApplyUpdateCreatesMetadataWhenAbsent(t *testing.T) {
	doc := Document{"executive_summary": "bare"}

	ApplyUpdate(doc, "executive_summary", "updated")

	meta := doc.Metadata()
	require.NotNil(t, meta)
	assert.Equal(t, "1.1", meta["version"])
	assert.NotEmpty(t, meta["last_updated"])
	_, hasCompany := meta["company_name"]
	assert.False(t, hasCompany)
}

func TestApplyUpdateOverwritesNestedLeafWholesale(t *testing.T) {
	doc := sampleDoc()

	ApplyUpdate(doc, "engagement_strategy", map[string]any{"approach": "only this"})

	strategy := doc["engagement_strategy"].(map[string]any)
	assert.Equal(t, map[string]any{"approach": "only this"}, strategy)
}

func TestBumpVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.0", "1.1"},
		{"1.9", "2.0"},
		{"", "1.1"},
		{"garbage", "1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := bumpVersion(tt.version); got != tt.want {
				t.Errorf("bumpVersion(%q) = %q, want %q", tt.version, got, tt.want)
			}
		})
	}
}
